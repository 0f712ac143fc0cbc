package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tarundeepakjain/Quintz/internal/model"
	"github.com/tarundeepakjain/Quintz/internal/repository"
)

const monthKeyLayout = "2006-01"

// PerformanceTracker maintains per-user rolling statistics from each graded
// submission without replaying history: a lifetime running average and best
// score in the user's stats, and a month-keyed series holding a two-point
// rolling blend per month. Admins get a separate quiz-count series.
type PerformanceTracker struct {
	users  repository.UserRepo
	series repository.PerformanceRepo
	loc    *time.Location
}

// NewPerformanceTracker creates a new performance tracker
func NewPerformanceTracker(users repository.UserRepo, series repository.PerformanceRepo, loc *time.Location) *PerformanceTracker {
	return &PerformanceTracker{
		users:  users,
		series: series,
		loc:    loc,
	}
}

// RecordSubmission folds one graded submission into the participant's stats
// and monthly series, and bumps every quiz admin's participant counter.
//
// The score is normalized to a 0-10 scale. Within a month, the stored value
// is the mean of the previous value and the new one, so older submissions in
// the same month are geometrically down-weighted. The lifetime averageScore
// is the mean of the new value and every month value present before this
// write.
func (t *PerformanceTracker) RecordSubmission(ctx context.Context, username string, quiz *model.Quiz, score float64) error {
	normalized := score * 10 / quiz.TotalMarks

	series, err := t.series.Get(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load performance series: %w", err)
	}
	var prior map[string]float64
	if series != nil {
		prior = series.Months
	}

	monthKey := quiz.StartTime.In(t.loc).Format(monthKeyLayout)
	monthValue := normalized
	if old, ok := prior[monthKey]; ok {
		monthValue = (old + normalized) / 2
	}
	if err := t.series.SetMonth(ctx, username, monthKey, monthValue); err != nil {
		return fmt.Errorf("failed to update performance series: %w", err)
	}

	sum := normalized
	for _, v := range prior {
		sum += v
	}
	average := sum / float64(len(prior)+1)

	if err := t.users.ApplySubmission(ctx, username, quiz.QuizID, average, score); err != nil {
		return fmt.Errorf("failed to update participant stats: %w", err)
	}

	for _, admin := range quiz.AdminIDs {
		if err := t.users.IncrementParticipants(ctx, admin); err != nil {
			return fmt.Errorf("failed to update admin %s: %w", admin, err)
		}
	}
	return nil
}

// RecordQuizCreated bumps an admin's series entry for the quiz's start month
func (t *PerformanceTracker) RecordQuizCreated(ctx context.Context, username string, startTime time.Time) error {
	return t.series.IncrMonth(ctx, username, startTime.In(t.loc).Format(monthKeyLayout), 1)
}

// RecordQuizDeleted reverses RecordQuizCreated
func (t *PerformanceTracker) RecordQuizDeleted(ctx context.Context, username string, startTime time.Time) error {
	return t.series.IncrMonth(ctx, username, startTime.In(t.loc).Format(monthKeyLayout), -1)
}

// Series returns the user's month-keyed performance series, which may be nil
// for users with no recorded activity.
func (t *PerformanceTracker) Series(ctx context.Context, username string) (*model.PerformanceSeries, error) {
	return t.series.Get(ctx, username)
}
