package model

import "time"

// ParticipantResult is one user's entry in a quiz result record
type ParticipantResult struct {
	Score            float64   `json:"score" bson:"score"`
	CorrectAnswerIDs []string  `json:"correctAnswerIds" bson:"correctAnswerIds"`
	EndTime          time.Time `json:"endTime" bson:"endTime"`
}

// ResultRecord is the single aggregate result document for a quiz, one entry
// per participant under Scores. Created empty alongside the quiz and written
// with per-user field updates so concurrent submissions do not conflict.
type ResultRecord struct {
	QuizID string                       `json:"quizId" bson:"_id"`
	Scores map[string]ParticipantResult `json:"scores" bson:"scores"`
}

// LeaderboardEntry is one ranked row of a quiz leaderboard
type LeaderboardEntry struct {
	Username string    `json:"username"`
	Score    float64   `json:"score"`
	EndTime  time.Time `json:"endTime"`
	Rank     int       `json:"rank"`
}

// SubmitRequest is the quiz submission payload
type SubmitRequest struct {
	QuizID  string         `json:"quizId"`
	Answers map[string]int `json:"answers"` // question id -> option index or integer answer
	EndTime time.Time      `json:"endTime"`
}

// SubmitResponse reports the graded outcome of a submission
type SubmitResponse struct {
	QuizID           string   `json:"quizId"`
	Score            float64  `json:"score"`
	CorrectAnswerIDs []string `json:"correctAnswerIds"`
}
