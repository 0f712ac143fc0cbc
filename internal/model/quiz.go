package model

import "time"

// Visibility controls who can discover a quiz
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Availability is the state of a quiz relative to its time window
type Availability string

const (
	AvailabilityNotStarted Availability = "not_started"
	AvailabilityOpen       Availability = "open"
	AvailabilityClosed     Availability = "closed"
)

// Quiz is a quiz definition. QuizID is caller-chosen and globally unique;
// QuestionIDs reference pooled questions, each holding one AskedIn reference.
type Quiz struct {
	QuizID                  string     `json:"quizId" bson:"_id"`
	QuizName                string     `json:"quizName" bson:"quizName"`
	QuestionIDs             []string   `json:"questions" bson:"questions"`
	AdminIDs                []string   `json:"adminIds" bson:"adminIds"`
	Visibility              Visibility `json:"visibility" bson:"visibility"`
	StartTime               time.Time  `json:"startTime" bson:"startTime"`
	DurationMinutes         int        `json:"durationMinutes" bson:"durationMinutes"`
	TotalMarks              float64    `json:"totalMarks" bson:"totalMarks"`
	NegativeMarkPerQuestion float64    `json:"negativeMarkPerQuestion" bson:"negativeMarkPerQuestion"`
	ResultTime              time.Time  `json:"resultTime" bson:"resultTime"`
	CreatedAt               time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// EndTime is the close of the quiz's availability window
func (q *Quiz) EndTime() time.Time {
	return q.StartTime.Add(time.Duration(q.DurationMinutes) * time.Minute)
}

// HasAdmin reports whether username is one of the quiz admins
func (q *Quiz) HasAdmin(username string) bool {
	for _, a := range q.AdminIDs {
		if a == username {
			return true
		}
	}
	return false
}

// QuizView is a quiz as served to a user taking or browsing it
type QuizView struct {
	Quiz         *Quiz        `json:"quizDetails"`
	Questions    []*Question  `json:"questions"`
	Availability Availability `json:"availability"`
	AlreadyGiven bool         `json:"alreadyGiven"`
}

// QuizSummary is a past/upcoming quiz listing entry
type QuizSummary struct {
	QuizID       string       `json:"quizId"`
	QuizName     string       `json:"quizName"`
	StartTime    time.Time    `json:"startTime"`
	ResultTime   time.Time    `json:"resultTime"`
	Availability Availability `json:"availability"`
	ResultsReady bool         `json:"resultsReady"`
}
