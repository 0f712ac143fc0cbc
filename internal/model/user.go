package model

// Role selects the shape of a user's stats at signup time
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleParticipant Role = "participant"
)

// AdminStats aggregates quiz-authoring activity
type AdminStats struct {
	TotalQuizzes      int     `json:"totalQuizzes" bson:"totalQuizzes"`
	TotalParticipants int     `json:"totalParticipants" bson:"totalParticipants"`
	PublicQuizzes     int     `json:"publicQuizzes" bson:"publicQuizzes"`
	MaxQuizMarks      float64 `json:"maxQuizMarks" bson:"maxQuizMarks"`
}

// ParticipantStats aggregates quiz-taking performance. AverageScore and
// BestScore are maintained incrementally on each graded submission, never
// recomputed from full history.
type ParticipantStats struct {
	TotalQuizzes int     `json:"totalQuizzes" bson:"totalQuizzes"`
	AverageScore float64 `json:"averageScore" bson:"averageScore"` // 0-10 normalized
	BestScore    float64 `json:"bestScore" bson:"bestScore"`       // raw marks
	Attempts     int     `json:"attempts" bson:"attempts"`
}

// User is an account document. Exactly one of AdminStats/ParticipantStats is
// set, chosen by Role when the account is created.
type User struct {
	Username         string            `json:"username" bson:"_id"`
	Name             string            `json:"name" bson:"name"`
	PasswordHash     string            `json:"-" bson:"password"`
	Role             Role              `json:"role" bson:"role"`
	Quizzes          []string          `json:"quizzes" bson:"quizzes"`
	AdminStats       *AdminStats       `json:"adminStats,omitempty" bson:"adminStats,omitempty"`
	ParticipantStats *ParticipantStats `json:"participantStats,omitempty" bson:"participantStats,omitempty"`
}

// PerformanceSeries is a per-user month-keyed ledger: normalized scores for
// participants (two-point rolling blend), authored-quiz counts for admins.
type PerformanceSeries struct {
	Username string             `json:"username" bson:"_id"`
	Months   map[string]float64 `json:"months" bson:"months"`
}
