package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeMCQ     QuestionType = "mcq"     // Multiple choice, graded against correctIndex
	QuestionTypeInteger QuestionType = "integer" // Numeric answer, graded against correctInteger
)

// Question is a pooled question document. Questions are shared across quizzes
// and reference-counted via AskedIn: attaching to a quiz increments the count,
// detaching decrements it, and the document is deleted when the count hits zero.
type Question struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	Type           QuestionType `json:"type" bson:"type"`
	Text           string       `json:"text" bson:"text"`
	Options        []string     `json:"options,omitempty" bson:"options,omitempty"` // MCQ only
	CorrectIndex   *int         `json:"correctIndex,omitempty" bson:"correctIndex,omitempty"`
	CorrectInteger *int         `json:"correctInteger,omitempty" bson:"correctInteger,omitempty"`
	Subject        string       `json:"subject,omitempty" bson:"subject,omitempty"`
	Tag            string       `json:"tag,omitempty" bson:"tag,omitempty"`
	AskedIn        int          `json:"askedIn" bson:"askedIn"`
}

// QuestionInput is the intake payload for adding or updating a question
type QuestionInput struct {
	ID             string       `json:"id,omitempty"`
	Type           QuestionType `json:"type"`
	Text           string       `json:"text"`
	Options        []string     `json:"options,omitempty"`
	CorrectIndex   *int         `json:"correctIndex,omitempty"`
	CorrectInteger *int         `json:"correctInteger,omitempty"`
	Subject        string       `json:"subject,omitempty"`
	Tag            string       `json:"tag,omitempty"`
}

// AnswerKey is the grading view of a question
type AnswerKey struct {
	Type           QuestionType
	CorrectIndex   *int
	CorrectInteger *int
}

// TagEntry maps a subject to the tags seen under it
type TagEntry struct {
	Subject string   `json:"subject" bson:"_id"`
	Tags    []string `json:"tags" bson:"tags"`
}
