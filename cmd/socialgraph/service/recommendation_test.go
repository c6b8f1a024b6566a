package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateIDs(candidates []*Candidate) []uuid.UUID {
	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Member.ID
	}
	return ids
}

func TestRecommend_SecondDegreeExcludesSelfAndDirect(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Chain A-B-C-D, all accepted. From A's view: B is direct, C is
	// second degree, D is third degree.
	a := env.addMember("Acme", "Engineer", "Berlin")
	b := env.addMember("Globex", "Manager", "Munich")
	c := env.addMember("Initech", "Analyst", "Hamburg")
	d := env.addMember("Umbrella", "Designer", "Cologne")
	env.connect(a.ID, b.ID)
	env.connect(b.ID, c.ID)
	env.connect(c.ID, d.ID)

	candidates, err := env.recommend.Recommend(ctx, a.ID, 10)
	require.NoError(t, err)

	ids := candidateIDs(candidates)
	assert.Contains(t, ids, c.ID, "second-degree member should be recommended")
	assert.NotContains(t, ids, a.ID, "never recommend the subject")
	assert.NotContains(t, ids, b.ID, "never recommend a direct neighbor")
	assert.NotContains(t, ids, d.ID, "third degree is out of reach without fallback")
}

func TestRecommend_FallbackOnEmptySecondDegree(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// A has no connections at all; the rest of the population is
	// mutually connected.
	a := env.addMember("Acme", "Engineer", "Berlin")
	b := env.addMember("Globex", "Manager", "Munich")
	c := env.addMember("Initech", "Analyst", "Hamburg")
	env.connect(b.ID, c.ID)

	candidates, err := env.recommend.Recommend(ctx, a.ID, 10)
	require.NoError(t, err)

	ids := candidateIDs(candidates)
	assert.ElementsMatch(t, []uuid.UUID{b.ID, c.ID}, ids)
}

func TestRecommend_FallbackIncludesDirectNeighbors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// A's only neighbor B has no onward connections, so the
	// second-degree set is empty and the search widens to the full
	// population. The widened set deliberately includes B: the
	// direct-neighbor exclusion applies to the second-degree path only.
	a := env.addMember("Acme", "Engineer", "Berlin")
	b := env.addMember("Globex", "Manager", "Munich")
	c := env.addMember("Initech", "Analyst", "Hamburg")
	env.connect(a.ID, b.ID)

	candidates, err := env.recommend.Recommend(ctx, a.ID, 10)
	require.NoError(t, err)

	ids := candidateIDs(candidates)
	assert.ElementsMatch(t, []uuid.UUID{b.ID, c.ID}, ids)
}

func TestRecommend_AttributeScoring(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Subject with no connections triggers the full-population
	// fallback, which makes scoring directly observable.
	subject := env.addMember("Acme", "Engineer", "Berlin")
	twin := env.addMember("ACME", "engineer", "berlin")
	stranger := env.addMember("Globex", "Manager", "Munich")

	candidates, err := env.recommend.Recommend(ctx, subject.ID, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	scores := make(map[uuid.UUID]float64)
	for _, c := range candidates {
		scores[c.Member.ID] = c.Score
	}

	// Matching all three attributes case-insensitively is worth
	// exactly 6.5 more than matching none.
	assert.InDelta(t, 6.5, scores[twin.ID]-scores[stranger.ID], 1e-9)

	// And the twin ranks first
	assert.Equal(t, twin.ID, candidates[0].Member.ID)
}

func TestRecommend_MutualConnectionBonus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	subject := env.addMember("Acme", "Engineer", "Berlin")
	bridge1 := env.addMember("Globex", "Manager", "Munich")
	bridge2 := env.addMember("Initech", "Analyst", "Hamburg")
	oneMutual := env.addMember("Zeta", "Clerk", "Bonn")
	twoMutuals := env.addMember("Zeta", "Clerk", "Bonn")

	env.connect(subject.ID, bridge1.ID)
	env.connect(subject.ID, bridge2.ID)
	env.connect(bridge1.ID, oneMutual.ID)
	env.connect(bridge1.ID, twoMutuals.ID)
	env.connect(bridge2.ID, twoMutuals.ID)

	candidates, err := env.recommend.Recommend(ctx, subject.ID, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	scores := make(map[uuid.UUID]float64)
	for _, c := range candidates {
		scores[c.Member.ID] = c.Score
	}

	// Identical profiles, so the only difference is 0.5 per mutual
	assert.InDelta(t, 0.5, scores[twoMutuals.ID]-scores[oneMutual.ID], 1e-9)
	assert.Equal(t, twoMutuals.ID, candidates[0].Member.ID)
}

func TestRecommend_FiltersIncompleteProfiles(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	subject := env.addMember("Acme", "Engineer", "Berlin")
	complete := env.addMember("Globex", "Manager", "Munich")
	incomplete := env.addMember("", "Manager", "Munich")

	candidates, err := env.recommend.Recommend(ctx, subject.ID, 10)
	require.NoError(t, err)

	ids := candidateIDs(candidates)
	assert.Contains(t, ids, complete.ID)
	assert.NotContains(t, ids, incomplete.ID)
}

func TestRecommend_LimitAndOrdering(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	subject := env.addMember("Acme", "Engineer", "Berlin")
	env.addMember("Acme", "Engineer", "Berlin")
	env.addMember("Acme", "Engineer", "Munich")
	env.addMember("Acme", "Manager", "Munich")
	env.addMember("Globex", "Manager", "Munich")

	candidates, err := env.recommend.Recommend(ctx, subject.ID, 3)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score,
			"scores must be non-increasing")
	}
}

func TestRecommend_UnknownMember(t *testing.T) {
	env := newTestEnv()

	_, err := env.recommend.Recommend(context.Background(), uuid.New(), 5)
	assert.True(t, models.IsNotFound(err))
}

func TestRecommend_InvalidLimit(t *testing.T) {
	env := newTestEnv()
	subject := env.addMember("Acme", "Engineer", "Berlin")

	_, err := env.recommend.Recommend(context.Background(), subject.ID, 0)
	assert.True(t, models.IsValidation(err))
}
