package service

import "errors"

var (
	// ErrQuizNotFound indicates the quiz id does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a referenced question id is unknown.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrResultNotFound indicates a quiz has no result record.
	ErrResultNotFound = errors.New("result not found")
	// ErrDuplicateQuizID indicates the caller-chosen quiz id is taken.
	ErrDuplicateQuizID = errors.New("quiz id already exists")
	// ErrAdminNotFound indicates a quiz references an unknown admin identity.
	ErrAdminNotFound = errors.New("admin id does not exist")
	// ErrForbidden indicates the requester is not an admin of the quiz.
	ErrForbidden = errors.New("requester is not a quiz admin")
	// ErrInvalidAnswerKey indicates a question is missing the correct-answer
	// field its declared type requires.
	ErrInvalidAnswerKey = errors.New("answer key missing for question type")
	// ErrNoQuestions indicates a quiz with zero questions, which makes the
	// per-question mark undefined.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrAlreadyAttempted indicates the user already submitted this quiz.
	ErrAlreadyAttempted = errors.New("quiz already attempted")
	// ErrQuizNotOpen indicates a submission outside the availability window.
	ErrQuizNotOpen = errors.New("quiz is not open")
	// ErrResultsNotReady indicates the quiz's result time has not passed.
	ErrResultsNotReady = errors.New("results not available yet")

	// ErrUserExists indicates the username is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound indicates the account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken indicates a bad or expired JWT.
	ErrInvalidToken = errors.New("invalid or expired token")
)
