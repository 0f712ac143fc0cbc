package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tarundeepakjain/Quintz/internal/model"
	"github.com/tarundeepakjain/Quintz/internal/repository"
)

// QuestionPool owns the shared question documents. Questions are reused
// across quizzes and reference-counted: AddOrUpdate retains, Release lets go,
// and the last Release deletes the document.
type QuestionPool struct {
	questions repository.QuestionRepo
	tags      repository.TagRepo
}

// NewQuestionPool creates a new question pool
func NewQuestionPool(questions repository.QuestionRepo, tags repository.TagRepo) *QuestionPool {
	return &QuestionPool{
		questions: questions,
		tags:      tags,
	}
}

// AddOrUpdate inserts a new question with one reference, or, when in.ID is
// set, overwrites that question's content and adds a reference to it.
// Returns the question id.
func (p *QuestionPool) AddOrUpdate(ctx context.Context, in model.QuestionInput) (string, error) {
	question := &model.Question{
		ID:             in.ID,
		Type:           in.Type,
		Text:           in.Text,
		CorrectIndex:   in.CorrectIndex,
		CorrectInteger: in.CorrectInteger,
		Subject:        in.Subject,
		Tag:            in.Tag,
	}
	if in.Type == model.QuestionTypeMCQ {
		question.Options = in.Options
	}

	if question.ID != "" {
		if err := p.questions.UpdateAndRetain(ctx, question); err != nil {
			return "", fmt.Errorf("failed to update question: %w", err)
		}
	} else {
		question.ID = uuid.NewString()
		question.AskedIn = 1
		if err := p.questions.Insert(ctx, question); err != nil {
			return "", fmt.Errorf("failed to insert question: %w", err)
		}
	}

	if err := p.registerTag(ctx, in.Subject, in.Tag); err != nil {
		return "", err
	}
	return question.ID, nil
}

// AddBatch runs AddOrUpdate over an intake payload and returns the stored ids
func (p *QuestionPool) AddBatch(ctx context.Context, inputs []model.QuestionInput) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := p.AddOrUpdate(ctx, in)
		if err != nil {
			// Undo the references this batch already took.
			_ = p.Release(ctx, ids)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Release drops one reference from each question and deletes any that reach
// zero. Ids that no longer exist are skipped, so releasing past zero is a
// no-op. This is the only path that deletes a question.
func (p *QuestionPool) Release(ctx context.Context, questionIDs []string) error {
	for _, id := range questionIDs {
		remaining, found, err := p.questions.DecrementAskedIn(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to release question %s: %w", id, err)
		}
		if !found {
			continue
		}
		if remaining <= 0 {
			if err := p.questions.Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete question %s: %w", id, err)
			}
		}
	}
	return nil
}

// AnswerKey returns the grading key for a question
func (p *QuestionPool) AnswerKey(ctx context.Context, questionID string) (model.AnswerKey, error) {
	question, err := p.questions.GetByID(ctx, questionID)
	if err != nil {
		return model.AnswerKey{}, err
	}
	if question == nil {
		return model.AnswerKey{}, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	key := model.AnswerKey{
		Type:           question.Type,
		CorrectIndex:   question.CorrectIndex,
		CorrectInteger: question.CorrectInteger,
	}
	switch question.Type {
	case model.QuestionTypeMCQ:
		if key.CorrectIndex == nil {
			return model.AnswerKey{}, fmt.Errorf("%w: %s", ErrInvalidAnswerKey, questionID)
		}
	case model.QuestionTypeInteger:
		if key.CorrectInteger == nil {
			return model.AnswerKey{}, fmt.Errorf("%w: %s", ErrInvalidAnswerKey, questionID)
		}
	}
	return key, nil
}

// GetByIDs resolves pooled questions preserving the requested order
func (p *QuestionPool) GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error) {
	questions, err := p.questions.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]*model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// Tags returns the full subject/tag catalog
func (p *QuestionPool) Tags(ctx context.Context) ([]*model.TagEntry, error) {
	return p.tags.All(ctx)
}

func (p *QuestionPool) registerTag(ctx context.Context, subject, tag string) error {
	if subject == "" || tag == "" {
		return nil
	}
	subject = strings.ToUpper(subject)
	tag = strings.ToLower(tag)
	if err := p.tags.Register(ctx, subject, tag); err != nil {
		return fmt.Errorf("failed to register tag: %w", err)
	}
	return nil
}
