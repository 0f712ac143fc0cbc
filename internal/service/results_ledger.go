package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tarundeepakjain/Quintz/internal/cache"
	"github.com/tarundeepakjain/Quintz/internal/model"
	"github.com/tarundeepakjain/Quintz/internal/repository"
)

// ResultsLedger owns the single aggregate result record per quiz. Each
// participant gets one entry, written at most once; the leaderboard ordering
// is deterministic (descending score, earlier finisher wins ties).
type ResultsLedger struct {
	results     repository.ResultRepo
	leaderboard cache.LeaderboardCache
}

// NewResultsLedger creates a new results ledger
func NewResultsLedger(results repository.ResultRepo, leaderboard cache.LeaderboardCache) *ResultsLedger {
	return &ResultsLedger{
		results:     results,
		leaderboard: leaderboard,
	}
}

// Record writes the user's graded entry into the quiz's result record.
// A second submission by the same user fails with ErrAlreadyAttempted and
// leaves the record untouched.
func (l *ResultsLedger) Record(ctx context.Context, quizID, username string, score float64, correctIDs []string, endTime time.Time) error {
	attempted, err := l.results.HasEntry(ctx, quizID, username)
	if err != nil {
		return fmt.Errorf("failed to check prior attempt: %w", err)
	}
	if attempted {
		return ErrAlreadyAttempted
	}

	entry := model.ParticipantResult{
		Score:            score,
		CorrectAnswerIDs: correctIDs,
		EndTime:          endTime,
	}
	if err := l.results.SetEntry(ctx, quizID, username, entry); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	// The cached leaderboard is stale now.
	_ = l.leaderboard.Invalidate(ctx, quizID)
	return nil
}

// Leaderboard returns the ranked entries for a quiz
func (l *ResultsLedger) Leaderboard(ctx context.Context, quizID string) ([]model.LeaderboardEntry, error) {
	if entries, err := l.leaderboard.Get(ctx, quizID); err == nil && entries != nil {
		return entries, nil
	}

	record, err := l.results.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrResultNotFound
	}

	entries := make([]model.LeaderboardEntry, 0, len(record.Scores))
	for username, res := range record.Scores {
		entries = append(entries, model.LeaderboardEntry{
			Username: username,
			Score:    res.Score,
			EndTime:  res.EndTime,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].EndTime.Before(entries[j].EndTime)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	_ = l.leaderboard.Set(ctx, quizID, entries)
	return entries, nil
}

// HasAttempted reports whether the user already has an entry for the quiz
func (l *ResultsLedger) HasAttempted(ctx context.Context, quizID, username string) (bool, error) {
	return l.results.HasEntry(ctx, quizID, username)
}
