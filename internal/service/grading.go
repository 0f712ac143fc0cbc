package service

import (
	"context"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// GradeResult is the outcome of scoring one submission
type GradeResult struct {
	Score            float64
	CorrectAnswerIDs []string
}

// Grader scores submitted answer sets against the pool's answer keys.
// Grading is deterministic and performs no persistence: the same quiz and
// answers always produce the same score.
type Grader struct {
	pool *QuestionPool
}

// NewGrader creates a new grader
func NewGrader(pool *QuestionPool) *Grader {
	return &Grader{pool: pool}
}

// Grade scores answers (question id -> submitted value) against quiz.
//
// Each question is worth totalMarks/questionCount; every attempted-but-wrong
// answer costs negativeMarkPerQuestion. There is no floor at zero, so a
// score can go negative.
func (g *Grader) Grade(ctx context.Context, quiz *model.Quiz, answers map[string]int) (GradeResult, error) {
	if len(quiz.QuestionIDs) == 0 {
		return GradeResult{}, ErrNoQuestions
	}

	correct := []string{}
	for questionID, submitted := range answers {
		key, err := g.pool.AnswerKey(ctx, questionID)
		if err != nil {
			return GradeResult{}, err
		}
		switch key.Type {
		case model.QuestionTypeMCQ:
			if *key.CorrectIndex == submitted {
				correct = append(correct, questionID)
			}
		case model.QuestionTypeInteger:
			if *key.CorrectInteger == submitted {
				correct = append(correct, questionID)
			}
		}
	}

	perQuestionMark := quiz.TotalMarks / float64(len(quiz.QuestionIDs))
	attempted := len(answers)
	incorrect := attempted - len(correct)
	score := perQuestionMark*float64(len(correct)) - quiz.NegativeMarkPerQuestion*float64(incorrect)

	return GradeResult{
		Score:            score,
		CorrectAnswerIDs: correct,
	}, nil
}
