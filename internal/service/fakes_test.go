package service

import (
	"context"
	"testing"
	"time"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// In-memory repository fakes. The mongo repositories are thin enough that
// map-backed fakes cover the same contracts.

type fakeQuestionRepo struct {
	questions map[string]*model.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[string]*model.Question{}}
}

func (r *fakeQuestionRepo) Insert(_ context.Context, q *model.Question) error {
	copied := *q
	r.questions[q.ID] = &copied
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	copied := *q
	return &copied, nil
}

func (r *fakeQuestionRepo) GetByIDs(_ context.Context, ids []string) ([]*model.Question, error) {
	var out []*model.Question
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			copied := *q
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) UpdateAndRetain(_ context.Context, q *model.Question) error {
	existing, ok := r.questions[q.ID]
	if !ok {
		return nil
	}
	count := existing.AskedIn + 1
	copied := *q
	copied.AskedIn = count
	r.questions[q.ID] = &copied
	return nil
}

func (r *fakeQuestionRepo) DecrementAskedIn(_ context.Context, id string) (int, bool, error) {
	q, ok := r.questions[id]
	if !ok {
		return 0, false, nil
	}
	q.AskedIn--
	return q.AskedIn, true, nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	delete(r.questions, id)
	return nil
}

type fakeQuizRepo struct {
	quizzes map[string]*model.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: map[string]*model.Quiz{}}
}

func (r *fakeQuizRepo) Insert(_ context.Context, quiz *model.Quiz) error {
	copied := *quiz
	r.quizzes[quiz.QuizID] = &copied
	return nil
}

func (r *fakeQuizRepo) GetByID(_ context.Context, quizID string) (*model.Quiz, error) {
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return nil, nil
	}
	copied := *quiz
	return &copied, nil
}

func (r *fakeQuizRepo) Update(_ context.Context, quiz *model.Quiz) error {
	copied := *quiz
	r.quizzes[quiz.QuizID] = &copied
	return nil
}

func (r *fakeQuizRepo) Delete(_ context.Context, quizID string) error {
	delete(r.quizzes, quizID)
	return nil
}

func (r *fakeQuizRepo) ListPublic(_ context.Context) ([]*model.Quiz, error) {
	var out []*model.Quiz
	for _, quiz := range r.quizzes {
		if quiz.Visibility == model.VisibilityPublic {
			copied := *quiz
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) ListByAdmin(_ context.Context, username string) ([]*model.Quiz, error) {
	var out []*model.Quiz
	for _, quiz := range r.quizzes {
		if quiz.HasAdmin(username) {
			copied := *quiz
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) addAdmin(username string) *model.User {
	user := &model.User{
		Username:   username,
		Role:       model.RoleAdmin,
		Quizzes:    []string{},
		AdminStats: &model.AdminStats{},
	}
	r.users[username] = user
	return user
}

func (r *fakeUserRepo) addParticipant(username string) *model.User {
	user := &model.User{
		Username:         username,
		Role:             model.RoleParticipant,
		Quizzes:          []string{},
		ParticipantStats: &model.ParticipantStats{},
	}
	r.users[username] = user
	return user
}

func (r *fakeUserRepo) Insert(_ context.Context, user *model.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *fakeUserRepo) SetName(_ context.Context, username, name string) error {
	if user, ok := r.users[username]; ok {
		user.Name = name
	}
	return nil
}

func (r *fakeUserRepo) SetPasswordHash(_ context.Context, username, hash string) error {
	if user, ok := r.users[username]; ok {
		user.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) ApplyQuizCreated(_ context.Context, username, quizID string, totalMarks float64, public bool) error {
	user := r.users[username]
	user.AdminStats.TotalQuizzes++
	if public {
		user.AdminStats.PublicQuizzes++
	}
	if totalMarks > user.AdminStats.MaxQuizMarks {
		user.AdminStats.MaxQuizMarks = totalMarks
	}
	user.Quizzes = append(user.Quizzes, quizID)
	return nil
}

func (r *fakeUserRepo) ApplyQuizDeleted(_ context.Context, username, quizID string, public bool) error {
	user := r.users[username]
	user.AdminStats.TotalQuizzes--
	if public {
		user.AdminStats.PublicQuizzes--
	}
	kept := user.Quizzes[:0]
	for _, id := range user.Quizzes {
		if id != quizID {
			kept = append(kept, id)
		}
	}
	user.Quizzes = kept
	return nil
}

func (r *fakeUserRepo) ApplySubmission(_ context.Context, username, quizID string, averageScore, rawScore float64) error {
	user := r.users[username]
	user.ParticipantStats.TotalQuizzes++
	user.ParticipantStats.Attempts++
	user.ParticipantStats.AverageScore = averageScore
	if rawScore > user.ParticipantStats.BestScore {
		user.ParticipantStats.BestScore = rawScore
	}
	user.Quizzes = append(user.Quizzes, quizID)
	return nil
}

func (r *fakeUserRepo) IncrementParticipants(_ context.Context, username string) error {
	r.users[username].AdminStats.TotalParticipants++
	return nil
}

type fakeResultRepo struct {
	records map[string]*model.ResultRecord
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{records: map[string]*model.ResultRecord{}}
}

func (r *fakeResultRepo) Create(_ context.Context, quizID string) error {
	r.records[quizID] = &model.ResultRecord{
		QuizID: quizID,
		Scores: map[string]model.ParticipantResult{},
	}
	return nil
}

func (r *fakeResultRepo) Get(_ context.Context, quizID string) (*model.ResultRecord, error) {
	record, ok := r.records[quizID]
	if !ok {
		return nil, nil
	}
	return record, nil
}

func (r *fakeResultRepo) SetEntry(_ context.Context, quizID, username string, entry model.ParticipantResult) error {
	if record, ok := r.records[quizID]; ok {
		record.Scores[username] = entry
	}
	return nil
}

func (r *fakeResultRepo) HasEntry(_ context.Context, quizID, username string) (bool, error) {
	record, ok := r.records[quizID]
	if !ok {
		return false, nil
	}
	_, ok = record.Scores[username]
	return ok, nil
}

func (r *fakeResultRepo) Delete(_ context.Context, quizID string) error {
	delete(r.records, quizID)
	return nil
}

type fakePerformanceRepo struct {
	series map[string]map[string]float64
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{series: map[string]map[string]float64{}}
}

func (r *fakePerformanceRepo) Get(_ context.Context, username string) (*model.PerformanceSeries, error) {
	months, ok := r.series[username]
	if !ok {
		return nil, nil
	}
	copied := make(map[string]float64, len(months))
	for k, v := range months {
		copied[k] = v
	}
	return &model.PerformanceSeries{Username: username, Months: copied}, nil
}

func (r *fakePerformanceRepo) SetMonth(_ context.Context, username, monthKey string, value float64) error {
	if r.series[username] == nil {
		r.series[username] = map[string]float64{}
	}
	r.series[username][monthKey] = value
	return nil
}

func (r *fakePerformanceRepo) IncrMonth(_ context.Context, username, monthKey string, delta float64) error {
	if r.series[username] == nil {
		r.series[username] = map[string]float64{}
	}
	r.series[username][monthKey] += delta
	return nil
}

type fakeTagRepo struct {
	tags map[string]map[string]bool
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[string]map[string]bool{}}
}

func (r *fakeTagRepo) Register(_ context.Context, subject, tag string) error {
	if r.tags[subject] == nil {
		r.tags[subject] = map[string]bool{}
	}
	r.tags[subject][tag] = true
	return nil
}

func (r *fakeTagRepo) All(_ context.Context) ([]*model.TagEntry, error) {
	var out []*model.TagEntry
	for subject, tags := range r.tags {
		entry := &model.TagEntry{Subject: subject}
		for tag := range tags {
			entry.Tags = append(entry.Tags, tag)
		}
		out = append(out, entry)
	}
	return out, nil
}

type noopLeaderboardCache struct{}

func (noopLeaderboardCache) Get(context.Context, string) ([]model.LeaderboardEntry, error) {
	return nil, nil
}
func (noopLeaderboardCache) Set(context.Context, string, []model.LeaderboardEntry) error { return nil }
func (noopLeaderboardCache) Invalidate(context.Context, string) error                    { return nil }

// testEnv wires the whole core subsystem over the fakes
type testEnv struct {
	questions *fakeQuestionRepo
	quizzes   *fakeQuizRepo
	users     *fakeUserRepo
	results   *fakeResultRepo
	perf      *fakePerformanceRepo
	tagRepo   *fakeTagRepo

	pool    *QuestionPool
	grader  *Grader
	ledger  *ResultsLedger
	tracker *PerformanceTracker
	catalog *QuizCatalog
	submit  *SubmissionService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		questions: newFakeQuestionRepo(),
		quizzes:   newFakeQuizRepo(),
		users:     newFakeUserRepo(),
		results:   newFakeResultRepo(),
		perf:      newFakePerformanceRepo(),
		tagRepo:   newFakeTagRepo(),
	}
	env.pool = NewQuestionPool(env.questions, env.tagRepo)
	env.grader = NewGrader(env.pool)
	env.ledger = NewResultsLedger(env.results, noopLeaderboardCache{})
	env.tracker = NewPerformanceTracker(env.users, env.perf, time.UTC)
	env.catalog = NewQuizCatalog(env.quizzes, env.users, env.results, env.pool, env.ledger, env.tracker, time.UTC)
	env.submit = NewSubmissionService(env.catalog, env.grader, env.ledger, env.tracker)
	return env
}

func intPtr(v int) *int { return &v }

// addMCQ seeds the pool with an MCQ question and returns its id
func (e *testEnv) addMCQ(t *testing.T, correctIndex int) string {
	t.Helper()
	id, err := e.pool.AddOrUpdate(context.Background(), model.QuestionInput{
		Type:         model.QuestionTypeMCQ,
		Text:         "pick one",
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: intPtr(correctIndex),
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}
