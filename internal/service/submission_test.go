package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

type captureBroadcaster struct {
	quizID  string
	entries []model.LeaderboardEntry
	calls   int
}

func (b *captureBroadcaster) BroadcastLeaderboard(quizID string, entries []model.LeaderboardEntry) {
	b.quizID = quizID
	b.entries = entries
	b.calls++
}

func TestSubmitFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.users.addAdmin("alice")
	env.users.addParticipant("bob")

	ids := make([]string, 4)
	for i := range ids {
		ids[i] = env.addMCQ(t, 1)
	}
	require.NoError(t, env.catalog.Create(ctx, buildQuiz("quiz-1", nil, ids), "alice"))

	bc := &captureBroadcaster{}
	env.submit.SetBroadcaster(bc)

	resp, err := env.submit.Submit(ctx, "bob", model.SubmitRequest{
		QuizID:  "quiz-1",
		Answers: map[string]int{ids[0]: 1, ids[1]: 1, ids[2]: 1, ids[3]: 0},
		EndTime: time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.InDelta(t, 28.0, resp.Score, 1e-9)
	assert.Len(t, resp.CorrectAnswerIDs, 3)

	// Ledger entry, stats, and live broadcast all happened.
	assert.Equal(t, 28.0, env.results.records["quiz-1"].Scores["bob"].Score)
	assert.Equal(t, 1, env.users.users["bob"].ParticipantStats.Attempts)
	assert.Equal(t, 1, env.users.users["alice"].AdminStats.TotalParticipants)
	assert.Equal(t, 1, bc.calls)
	assert.Equal(t, "quiz-1", bc.quizID)
	require.Len(t, bc.entries, 1)
	assert.Equal(t, "bob", bc.entries[0].Username)
}

func TestSubmitTwiceRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.users.addAdmin("alice")
	env.users.addParticipant("bob")

	ids := []string{env.addMCQ(t, 1)}
	require.NoError(t, env.catalog.Create(ctx, buildQuiz("quiz-1", nil, ids), "alice"))

	req := model.SubmitRequest{
		QuizID:  "quiz-1",
		Answers: map[string]int{ids[0]: 1},
		EndTime: time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC),
	}
	_, err := env.submit.Submit(ctx, "bob", req)
	require.NoError(t, err)

	_, err = env.submit.Submit(ctx, "bob", req)
	assert.ErrorIs(t, err, ErrAlreadyAttempted)

	// Stats were not re-applied.
	assert.Equal(t, 1, env.users.users["bob"].ParticipantStats.Attempts)
	assert.Equal(t, 1, env.users.users["alice"].AdminStats.TotalParticipants)
}

func TestSubmitUnknownQuiz(t *testing.T) {
	env := newTestEnv()
	env.users.addParticipant("bob")

	_, err := env.submit.Submit(context.Background(), "bob", model.SubmitRequest{QuizID: "nope"})
	assert.ErrorIs(t, err, ErrQuizNotFound)
}
