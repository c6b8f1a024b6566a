package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/linkhive/socialgraph/common/cache"
	"github.com/linkhive/socialgraph/common/logger"
	"golang.org/x/sync/errgroup"
)

// Scoring weights for recommendation candidates. Attribute matches are
// case-insensitive exact comparisons.
const (
	companyWeight  = 3.0
	positionWeight = 2.0
	locationWeight = 1.5
	mutualWeight   = 0.5
)

// neighborCacheTTL bounds staleness of cached neighbor sets. A just
// accepted connection may take this long to influence recommendations.
const neighborCacheTTL = 30 * time.Second

// neighborFetchConcurrency caps parallel store queries per Recommend
// call.
const neighborFetchConcurrency = 8

// RecommendationService computes ranked connection candidates for a
// member. Read-only over the graph.
type RecommendationService struct {
	members     MemberStore
	connections ConnectionStore
	cache       cache.Cache
	log         *logger.Logger
}

// NewRecommendationService creates a new recommendation service. The
// cache may be nil, in which case every neighbor set is fetched from
// the store.
func NewRecommendationService(members MemberStore, connections ConnectionStore, c cache.Cache, log *logger.Logger) *RecommendationService {
	return &RecommendationService{
		members:     members,
		connections: connections,
		cache:       c,
		log:         log,
	}
}

// Candidate pairs a member with its computed score. Ephemeral, never
// persisted.
type Candidate struct {
	Member *models.Member `json:"member"`
	Score  float64        `json:"score"`
}

// Recommend returns up to limit members ranked by descending score.
//
// Candidates are the subject's second-degree network: members reachable
// through exactly two ACCEPTED edges, excluding direct neighbors and the
// subject itself. Only when that set is empty does the search widen to
// every other member (cold start). The widened set is not re-filtered
// against direct neighbors; only the second-degree path excludes them.
func (s *RecommendationService) Recommend(ctx context.Context, memberID uuid.UUID, limit int) ([]*Candidate, error) {
	if limit <= 0 {
		return nil, &models.ValidationError{Field: "limit", Reason: "must be positive"}
	}

	subject, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	directIDs, err := s.neighborIDs(ctx, memberID)
	if err != nil {
		return nil, err
	}

	direct := make(map[uuid.UUID]struct{}, len(directIDs))
	for _, id := range directIDs {
		direct[id] = struct{}{}
	}

	secondDegree, err := s.secondDegreeSet(ctx, memberID, directIDs, direct)
	if err != nil {
		return nil, err
	}

	var candidates []*models.Member
	if len(secondDegree) == 0 {
		candidates, err = s.members.ListOthers(ctx, memberID)
	} else {
		ids := make([]uuid.UUID, 0, len(secondDegree))
		for id := range secondDegree {
			ids = append(ids, id)
		}
		candidates, err = s.members.GetMany(ctx, ids)
	}
	if err != nil {
		return nil, err
	}

	scored, err := s.scoreCandidates(ctx, subject, direct, candidates)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

// secondDegreeSet resolves the neighbors-of-neighbors of memberID,
// minus the direct neighbors and the member itself.
func (s *RecommendationService) secondDegreeSet(ctx context.Context, memberID uuid.UUID, directIDs []uuid.UUID, direct map[uuid.UUID]struct{}) (map[uuid.UUID]struct{}, error) {
	neighborSets := make([][]uuid.UUID, len(directIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(neighborFetchConcurrency)
	for i, id := range directIDs {
		i, id := i, id
		g.Go(func() error {
			ids, err := s.neighborIDs(gctx, id)
			if err != nil {
				return err
			}
			neighborSets[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	second := make(map[uuid.UUID]struct{})
	for _, ids := range neighborSets {
		for _, id := range ids {
			if id == memberID {
				continue
			}
			if _, isDirect := direct[id]; isDirect {
				continue
			}
			second[id] = struct{}{}
		}
	}

	return second, nil
}

// scoreCandidates drops incomplete profiles and scores the rest
// against the subject.
func (s *RecommendationService) scoreCandidates(ctx context.Context, subject *models.Member, subjectNeighbors map[uuid.UUID]struct{}, candidates []*models.Member) ([]*Candidate, error) {
	var (
		mu     sync.Mutex
		scored []*Candidate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(neighborFetchConcurrency)
	for _, candidate := range candidates {
		if !candidate.ProfileComplete {
			continue
		}

		candidate := candidate
		g.Go(func() error {
			mutual, err := s.mutualCount(gctx, subjectNeighbors, candidate.ID)
			if err != nil {
				return err
			}

			score := attributeScore(subject, candidate) + mutualWeight*float64(mutual)

			mu.Lock()
			scored = append(scored, &Candidate{Member: candidate, Score: score})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return scored, nil
}

// mutualCount is the size of the intersection of the subject's and the
// candidate's accepted-neighbor sets.
func (s *RecommendationService) mutualCount(ctx context.Context, subjectNeighbors map[uuid.UUID]struct{}, candidateID uuid.UUID) (int, error) {
	ids, err := s.neighborIDs(ctx, candidateID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, id := range ids {
		if _, ok := subjectNeighbors[id]; ok {
			count++
		}
	}
	return count, nil
}

// neighborIDs resolves a member's accepted neighbors, via the cache
// when one is configured.
func (s *RecommendationService) neighborIDs(ctx context.Context, memberID uuid.UUID) ([]uuid.UUID, error) {
	key := "neighbors:" + memberID.String()

	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var ids []uuid.UUID
			if err := json.Unmarshal(raw, &ids); err == nil {
				return ids, nil
			}
		}
	}

	ids, err := s.connections.AcceptedNeighborIDs(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(ids); err == nil {
			if err := s.cache.Set(ctx, key, raw, neighborCacheTTL); err != nil {
				s.log.Warn("failed to cache neighbor set", "member", memberID, "error", err)
			}
		}
	}

	return ids, nil
}

func attributeScore(subject, candidate *models.Member) float64 {
	score := 0.0
	if equalFold(subject.Company, candidate.Company) {
		score += companyWeight
	}
	if equalFold(subject.Position, candidate.Position) {
		score += positionWeight
	}
	if equalFold(subject.Location, candidate.Location) {
		score += locationWeight
	}
	return score
}

// equalFold matches non-empty attributes case-insensitively. Two blank
// attributes do not count as a match.
func equalFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// String implements fmt.Stringer for log output
func (c *Candidate) String() string {
	return fmt.Sprintf("%s (%.1f)", c.Member.ID, c.Score)
}
