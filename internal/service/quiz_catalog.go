package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tarundeepakjain/Quintz/internal/model"
	"github.com/tarundeepakjain/Quintz/internal/repository"
)

// QuizCatalog owns quiz definitions: creation with admin validation and
// unique ids, admin-only edits, deletion with its reference-count cascade,
// and availability windows. The two creation failure paths (unknown admin,
// duplicate id) compensate by releasing the quiz's question references, so
// the pool's counts net out to zero on a failed create.
type QuizCatalog struct {
	quizzes repository.QuizRepo
	users   repository.UserRepo
	results repository.ResultRepo
	pool    *QuestionPool
	ledger  *ResultsLedger
	tracker *PerformanceTracker
	loc     *time.Location
}

// NewQuizCatalog creates a new quiz catalog
func NewQuizCatalog(
	quizzes repository.QuizRepo,
	users repository.UserRepo,
	results repository.ResultRepo,
	pool *QuestionPool,
	ledger *ResultsLedger,
	tracker *PerformanceTracker,
	loc *time.Location,
) *QuizCatalog {
	return &QuizCatalog{
		quizzes: quizzes,
		users:   users,
		results: results,
		pool:    pool,
		ledger:  ledger,
		tracker: tracker,
		loc:     loc,
	}
}

// Create persists a new quiz, its empty result record, and the per-admin
// stats updates. The creator is always an admin of their own quiz.
func (c *QuizCatalog) Create(ctx context.Context, quiz *model.Quiz, creator string) error {
	for _, admin := range quiz.AdminIDs {
		exists, err := c.users.Exists(ctx, admin)
		if err != nil {
			return fmt.Errorf("failed to look up admin %s: %w", admin, err)
		}
		if !exists {
			if relErr := c.pool.Release(ctx, quiz.QuestionIDs); relErr != nil {
				return relErr
			}
			return fmt.Errorf("%w: %s", ErrAdminNotFound, admin)
		}
	}

	if !quiz.HasAdmin(creator) {
		quiz.AdminIDs = append(quiz.AdminIDs, creator)
	}

	existing, err := c.quizzes.GetByID(ctx, quiz.QuizID)
	if err != nil {
		return fmt.Errorf("failed to check quiz id: %w", err)
	}
	if existing != nil {
		if relErr := c.pool.Release(ctx, quiz.QuestionIDs); relErr != nil {
			return relErr
		}
		return fmt.Errorf("%w: %s", ErrDuplicateQuizID, quiz.QuizID)
	}

	if err := c.quizzes.Insert(ctx, quiz); err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}
	if err := c.results.Create(ctx, quiz.QuizID); err != nil {
		return fmt.Errorf("failed to create result record: %w", err)
	}

	public := quiz.Visibility == model.VisibilityPublic
	for _, admin := range quiz.AdminIDs {
		if err := c.users.ApplyQuizCreated(ctx, admin, quiz.QuizID, quiz.TotalMarks, public); err != nil {
			return fmt.Errorf("failed to update admin %s: %w", admin, err)
		}
		if err := c.tracker.RecordQuizCreated(ctx, admin, quiz.StartTime); err != nil {
			return fmt.Errorf("failed to update series for %s: %w", admin, err)
		}
	}
	return nil
}

// Delete removes a quiz, its result record, and one question reference per
// contained question. Questions still used by other quizzes survive with a
// reduced count.
func (c *QuizCatalog) Delete(ctx context.Context, quizID, requester string) error {
	quiz, err := c.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz == nil {
		return fmt.Errorf("%w: %s", ErrQuizNotFound, quizID)
	}
	if !quiz.HasAdmin(requester) {
		return ErrForbidden
	}

	if err := c.pool.Release(ctx, quiz.QuestionIDs); err != nil {
		return err
	}

	public := quiz.Visibility == model.VisibilityPublic
	for _, admin := range quiz.AdminIDs {
		if err := c.users.ApplyQuizDeleted(ctx, admin, quizID, public); err != nil {
			return fmt.Errorf("failed to update admin %s: %w", admin, err)
		}
		if err := c.tracker.RecordQuizDeleted(ctx, admin, quiz.StartTime); err != nil {
			return fmt.Errorf("failed to update series for %s: %w", admin, err)
		}
	}

	if err := c.quizzes.Delete(ctx, quizID); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	if err := c.results.Delete(ctx, quizID); err != nil {
		return fmt.Errorf("failed to delete result record: %w", err)
	}
	return nil
}

// Edit overwrites the quiz's metadata and question list in place. Only an
// admin listed on the supplied definition may edit. References for questions
// dropped from the list are released; added questions already carry the
// reference taken at intake.
func (c *QuizCatalog) Edit(ctx context.Context, quiz *model.Quiz, requester string) error {
	if !quiz.HasAdmin(requester) {
		return ErrForbidden
	}

	existing, err := c.quizzes.GetByID(ctx, quiz.QuizID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrQuizNotFound, quiz.QuizID)
	}

	kept := make(map[string]bool, len(quiz.QuestionIDs))
	for _, id := range quiz.QuestionIDs {
		kept[id] = true
	}
	var removed []string
	for _, id := range existing.QuestionIDs {
		if !kept[id] {
			removed = append(removed, id)
		}
	}
	if err := c.pool.Release(ctx, removed); err != nil {
		return err
	}

	quiz.CreatedAt = existing.CreatedAt
	if err := c.quizzes.Update(ctx, quiz); err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

// Availability classifies now against the quiz's window
func (c *QuizCatalog) Availability(quiz *model.Quiz, now time.Time) model.Availability {
	start := quiz.StartTime
	end := quiz.EndTime()
	switch {
	case now.Before(start):
		return model.AvailabilityNotStarted
	case now.After(end):
		return model.AvailabilityClosed
	default:
		return model.AvailabilityOpen
	}
}

// ListVisible lists the quizzes a user can see: open-or-upcoming public
// quizzes for participants, their own not-yet-closed quizzes for admins.
func (c *QuizCatalog) ListVisible(ctx context.Context, user *model.User, now time.Time) ([]*model.Quiz, error) {
	var (
		quizzes []*model.Quiz
		err     error
	)
	if user.Role == model.RoleAdmin {
		quizzes, err = c.quizzes.ListByAdmin(ctx, user.Username)
	} else {
		quizzes, err = c.quizzes.ListPublic(ctx)
	}
	if err != nil {
		return nil, err
	}

	visible := []*model.Quiz{}
	for _, quiz := range quizzes {
		if c.Availability(quiz, now) != model.AvailabilityClosed {
			visible = append(visible, quiz)
		}
	}
	return visible, nil
}

// Fetch loads a quiz for a user: its questions in order, the availability
// state, and whether the user already submitted. Answer keys are stripped
// unless the user administers the quiz.
func (c *QuizCatalog) Fetch(ctx context.Context, quizID string, user *model.User, now time.Time) (*model.QuizView, error) {
	quiz, err := c.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, quizID)
	}

	questions, err := c.pool.GetByIDs(ctx, quiz.QuestionIDs)
	if err != nil {
		return nil, err
	}
	if !quiz.HasAdmin(user.Username) {
		stripped := make([]*model.Question, len(questions))
		for i, q := range questions {
			copied := *q
			copied.CorrectIndex = nil
			copied.CorrectInteger = nil
			stripped[i] = &copied
		}
		questions = stripped
	}

	given, err := c.ledger.HasAttempted(ctx, quizID, user.Username)
	if err != nil {
		return nil, err
	}

	return &model.QuizView{
		Quiz:         quiz,
		Questions:    questions,
		Availability: c.Availability(quiz, now),
		AlreadyGiven: given,
	}, nil
}

// Results returns the quiz leaderboard. Participants must wait for the
// quiz's result time; admins can always read.
func (c *QuizCatalog) Results(ctx context.Context, quizID string, user *model.User, now time.Time) ([]model.LeaderboardEntry, error) {
	quiz, err := c.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, quizID)
	}
	if !quiz.HasAdmin(user.Username) && now.Before(quiz.ResultTime) {
		return nil, ErrResultsNotReady
	}
	return c.ledger.Leaderboard(ctx, quizID)
}

// PastQuizzes summarizes every quiz on the user's list, newest start first.
// Ids whose quiz has since been deleted are skipped.
func (c *QuizCatalog) PastQuizzes(ctx context.Context, user *model.User, now time.Time) ([]model.QuizSummary, error) {
	summaries := []model.QuizSummary{}
	for _, quizID := range user.Quizzes {
		quiz, err := c.quizzes.GetByID(ctx, quizID)
		if err != nil {
			return nil, err
		}
		if quiz == nil {
			continue
		}
		summaries = append(summaries, model.QuizSummary{
			QuizID:       quiz.QuizID,
			QuizName:     quiz.QuizName,
			StartTime:    quiz.StartTime,
			ResultTime:   quiz.ResultTime,
			Availability: c.Availability(quiz, now),
			ResultsReady: !now.Before(quiz.ResultTime),
		})
	}
	return summaries, nil
}

// GetQuiz loads a quiz definition by id
func (c *QuizCatalog) GetQuiz(ctx context.Context, quizID string) (*model.Quiz, error) {
	quiz, err := c.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, quizID)
	}
	return quiz, nil
}

// ParseTime parses an RFC3339 timestamp; zone-less "2006-01-02T15:04" values
// are interpreted in the catalog's reference zone.
func (c *QuizCatalog) ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, c.loc)
}
