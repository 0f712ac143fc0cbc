package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndHasAttempted(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	require.NoError(t, env.results.Create(ctx, "quiz-1"))

	attempted, err := env.ledger.HasAttempted(ctx, "quiz-1", "bob")
	require.NoError(t, err)
	assert.False(t, attempted)

	end := time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC)
	require.NoError(t, env.ledger.Record(ctx, "quiz-1", "bob", 28, []string{"q1", "q2"}, end))

	attempted, err = env.ledger.HasAttempted(ctx, "quiz-1", "bob")
	require.NoError(t, err)
	assert.True(t, attempted)

	entry := env.results.records["quiz-1"].Scores["bob"]
	assert.Equal(t, 28.0, entry.Score)
	assert.Equal(t, []string{"q1", "q2"}, entry.CorrectAnswerIDs)
	assert.Equal(t, end, entry.EndTime)
}

func TestRecordRejectsSecondSubmission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	require.NoError(t, env.results.Create(ctx, "quiz-1"))

	end := time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC)
	require.NoError(t, env.ledger.Record(ctx, "quiz-1", "bob", 28, nil, end))

	err := env.ledger.Record(ctx, "quiz-1", "bob", 40, nil, end.Add(time.Minute))
	assert.ErrorIs(t, err, ErrAlreadyAttempted)

	// First entry stands.
	assert.Equal(t, 28.0, env.results.records["quiz-1"].Scores["bob"].Score)
}

func TestLeaderboardOrdering(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	require.NoError(t, env.results.Create(ctx, "quiz-1"))

	t1 := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	t2 := t1.Add(10 * time.Minute)
	t3 := t1.Add(20 * time.Minute)

	// A and B tie on score; B finished earlier and must rank higher.
	require.NoError(t, env.ledger.Record(ctx, "quiz-1", "A", 50, nil, t2))
	require.NoError(t, env.ledger.Record(ctx, "quiz-1", "B", 50, nil, t1))
	require.NoError(t, env.ledger.Record(ctx, "quiz-1", "C", 70, nil, t3))

	entries, err := env.ledger.Leaderboard(ctx, "quiz-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "C", entries[0].Username)
	assert.Equal(t, "B", entries[1].Username)
	assert.Equal(t, "A", entries[2].Username)
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestLeaderboardMissingQuiz(t *testing.T) {
	env := newTestEnv()

	_, err := env.ledger.Leaderboard(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrResultNotFound)
}
