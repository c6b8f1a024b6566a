package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/cmd/socialgraph/repository"
	"github.com/linkhive/socialgraph/common/config"
	"github.com/linkhive/socialgraph/common/db"
	"github.com/linkhive/socialgraph/common/logger"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// Seeds the database with a synthetic member population, a connection
// graph and some feed activity. Intended for local development and for
// exercising the recommendation engine against realistic data.
func main() {
	memberCount := flag.Int("members", 50, "number of members to create")
	edgeFactor := flag.Int("edges", 3, "average connection requests per member")
	postFactor := flag.Int("posts", 2, "average posts per member")
	seed := flag.Int64("seed", 0, "PRNG seed (0 means random)")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
		rng = rand.New(rand.NewSource(*seed))
	}

	ctx := context.Background()

	cfg, err := config.Load("seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Service.LogLevel, cfg.Service.LogFormat)

	database, err := db.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.ApplySchema(ctx); err != nil {
		log.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	members := repository.NewMemberRepository(database)
	connections := repository.NewConnectionRepository(database)
	posts := repository.NewPostRepository(database)

	ids, err := seedMembers(ctx, members, *memberCount)
	if err != nil {
		log.Error("failed to seed members", "error", err)
		os.Exit(1)
	}
	log.Info("seeded members", "count", len(ids))

	edges := seedConnections(ctx, connections, ids, *edgeFactor, log)
	log.Info("seeded connections", "count", edges)

	postCount := seedPosts(ctx, posts, ids, *postFactor, log)
	log.Info("seeded posts", "count", postCount)
}

// seedMembers creates the population. Roughly one in five profiles is
// left incomplete so the recommendation filter has something to drop.
func seedMembers(ctx context.Context, repo *repository.MemberRepository, count int) ([]uuid.UUID, error) {
	// A small attribute pool makes company/position/location overlaps
	// frequent enough to matter for scoring.
	companies := make([]string, 8)
	positions := make([]string, 6)
	cities := make([]string, 6)
	for i := range companies {
		companies[i] = gofakeit.Company()
	}
	for i := range positions {
		positions[i] = gofakeit.JobTitle()
	}
	for i := range cities {
		cities[i] = gofakeit.City()
	}

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		member := &models.Member{
			ID:        uuid.New(),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Company:   companies[rng.Intn(len(companies))],
			Position:  positions[rng.Intn(len(positions))],
			Location:  cities[rng.Intn(len(cities))],
		}

		if i%5 == 0 {
			member.Company = ""
		}

		if err := repo.Create(ctx, member); err != nil {
			return nil, err
		}
		ids = append(ids, member.ID)
	}

	return ids, nil
}

// seedConnections wires random edges and accepts most of them
func seedConnections(ctx context.Context, repo *repository.ConnectionRepository, ids []uuid.UUID, factor int, log *logger.Logger) int {
	created := 0
	attempts := len(ids) * factor

	for i := 0; i < attempts; i++ {
		author := ids[rng.Intn(len(ids))]
		recipient := ids[rng.Intn(len(ids))]
		if author == recipient {
			continue
		}

		conn, err := repo.CreateEdge(ctx, author, recipient)
		if err != nil {
			// Duplicate pair, expected under random selection
			if models.IsConflict(err) {
				continue
			}
			log.Warn("failed to create edge", "error", err)
			continue
		}

		if rng.Float64() < 0.8 {
			if _, err := repo.SetAccepted(ctx, conn.ID); err != nil {
				log.Warn("failed to accept edge", "error", err)
			}
		}
		created++
	}

	return created
}

// seedPosts creates feed activity with a sprinkle of likes and comments
func seedPosts(ctx context.Context, repo *repository.PostRepository, ids []uuid.UUID, factor int, log *logger.Logger) int {
	created := 0

	for i := 0; i < len(ids)*factor; i++ {
		author := ids[rng.Intn(len(ids))]
		post := &models.Post{
			AuthorID: author,
			Content:  gofakeit.Sentence(12),
		}
		if err := repo.CreatePost(ctx, post); err != nil {
			log.Warn("failed to create post", "error", err)
			continue
		}
		created++

		for l := rng.Intn(4); l > 0; l-- {
			if _, err := repo.AddLike(ctx, post.ID, ids[rng.Intn(len(ids))]); err != nil {
				log.Warn("failed to add like", "error", err)
			}
		}

		if rng.Float64() < 0.5 {
			comment := &models.Comment{
				PostID:   post.ID,
				AuthorID: ids[rng.Intn(len(ids))],
				Content:  gofakeit.Sentence(8),
			}
			if err := repo.CreateComment(ctx, comment); err != nil {
				log.Warn("failed to create comment", "error", err)
			}
		}
	}

	return created
}
