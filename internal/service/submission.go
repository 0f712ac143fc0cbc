package service

import (
	"context"
	"log"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// Broadcaster pushes live leaderboard updates to quiz watchers
type Broadcaster interface {
	BroadcastLeaderboard(quizID string, entries []model.LeaderboardEntry)
}

// SubmissionService runs the submission flow: grade against the pool's
// answer keys, record in the results ledger, fold into performance stats.
type SubmissionService struct {
	catalog     *QuizCatalog
	grader      *Grader
	ledger      *ResultsLedger
	tracker     *PerformanceTracker
	broadcaster Broadcaster
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(catalog *QuizCatalog, grader *Grader, ledger *ResultsLedger, tracker *PerformanceTracker) *SubmissionService {
	return &SubmissionService{
		catalog: catalog,
		grader:  grader,
		ledger:  ledger,
		tracker: tracker,
	}
}

// SetBroadcaster sets the broadcaster for live leaderboard events
func (s *SubmissionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit grades and records one user's answers for a quiz. A user can
// submit a given quiz at most once.
func (s *SubmissionService) Submit(ctx context.Context, username string, req model.SubmitRequest) (*model.SubmitResponse, error) {
	quiz, err := s.catalog.GetQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	attempted, err := s.ledger.HasAttempted(ctx, req.QuizID, username)
	if err != nil {
		return nil, err
	}
	if attempted {
		return nil, ErrAlreadyAttempted
	}

	graded, err := s.grader.Grade(ctx, quiz, req.Answers)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Record(ctx, req.QuizID, username, graded.Score, graded.CorrectAnswerIDs, req.EndTime); err != nil {
		return nil, err
	}
	if err := s.tracker.RecordSubmission(ctx, username, quiz, graded.Score); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		entries, err := s.ledger.Leaderboard(ctx, req.QuizID)
		if err != nil {
			log.Printf("leaderboard refresh for %s failed: %v", req.QuizID, err)
		} else {
			s.broadcaster.BroadcastLeaderboard(req.QuizID, entries)
		}
	}

	return &model.SubmitResponse{
		QuizID:           req.QuizID,
		Score:            graded.Score,
		CorrectAnswerIDs: graded.CorrectAnswerIDs,
	}, nil
}
