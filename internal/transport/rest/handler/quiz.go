package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tarundeepakjain/Quintz/internal/model"
	"github.com/tarundeepakjain/Quintz/internal/service"
	"github.com/tarundeepakjain/Quintz/internal/transport/rest/middleware"
)

// QuizHandler handles quiz lifecycle endpoints
type QuizHandler struct {
	catalog *service.QuizCatalog
	authSvc *service.AuthService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(catalog *service.QuizCatalog, authSvc *service.AuthService) *QuizHandler {
	return &QuizHandler{
		catalog: catalog,
		authSvc: authSvc,
	}
}

// QuizDetailsPayload carries quiz metadata with client-formatted timestamps
type QuizDetailsPayload struct {
	QuizID                  string           `json:"quizId"`
	QuizName                string           `json:"quizName"`
	AdminIDs                []string         `json:"adminIds"`
	Visibility              model.Visibility `json:"visibility"`
	StartTime               string           `json:"startTime"`
	DurationMinutes         int              `json:"durationMinutes"`
	TotalMarks              float64          `json:"totalMarks"`
	NegativeMarkPerQuestion float64          `json:"negativeMarkPerQuestion"`
	ResultTime              string           `json:"resultTime"`
}

// QuizRequest is the request body for quiz creation and edits
type QuizRequest struct {
	QuizDetails QuizDetailsPayload `json:"quizDetails"`
	Questions   []string           `json:"questions"`
}

func (h *QuizHandler) buildQuiz(req QuizRequest) (*model.Quiz, error) {
	startTime, err := h.catalog.ParseTime(req.QuizDetails.StartTime)
	if err != nil {
		return nil, err
	}
	resultTime, err := h.catalog.ParseTime(req.QuizDetails.ResultTime)
	if err != nil {
		return nil, err
	}
	return &model.Quiz{
		QuizID:                  req.QuizDetails.QuizID,
		QuizName:                req.QuizDetails.QuizName,
		QuestionIDs:             req.Questions,
		AdminIDs:                req.QuizDetails.AdminIDs,
		Visibility:              req.QuizDetails.Visibility,
		StartTime:               startTime,
		DurationMinutes:         req.QuizDetails.DurationMinutes,
		TotalMarks:              req.QuizDetails.TotalMarks,
		NegativeMarkPerQuestion: req.QuizDetails.NegativeMarkPerQuestion,
		ResultTime:              resultTime,
	}, nil
}

// Create handles POST /create-quiz
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quiz, err := h.buildQuiz(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timestamp: "+err.Error())
		return
	}

	if err := h.catalog.Create(r.Context(), quiz, username); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "quiz created successfully",
		"quizId":  quiz.QuizID,
	})
}

// Edit handles PUT /quiz/{quizId}
func (h *QuizHandler) Edit(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	quizID := mux.Vars(r)["quizId"]

	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.QuizDetails.QuizID = quizID
	quiz, err := h.buildQuiz(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timestamp: "+err.Error())
		return
	}

	if err := h.catalog.Edit(r.Context(), quiz, username); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "quiz updated successfully"})
}

// Delete handles DELETE /quiz/{quizId}
func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	quizID := mux.Vars(r)["quizId"]

	if err := h.catalog.Delete(r.Context(), quizID, username); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "quiz deleted successfully"})
}

// Get handles GET /quiz/{quizId}
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	quizID := mux.Vars(r)["quizId"]

	user, err := h.authSvc.Profile(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	view, err := h.catalog.Fetch(r.Context(), quizID, user, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// List handles GET /quizzes
func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	user, err := h.authSvc.Profile(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	quizzes, err := h.catalog.ListVisible(r.Context(), user, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}

// PastQuizzes handles GET /past-quizzes
func (h *QuizHandler) PastQuizzes(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	user, err := h.authSvc.Profile(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summaries, err := h.catalog.PastQuizzes(r.Context(), user, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"quizzes": summaries})
}
