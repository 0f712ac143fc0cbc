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

// ResultHandler handles submission and results endpoints
type ResultHandler struct {
	submitSvc *service.SubmissionService
	catalog   *service.QuizCatalog
	authSvc   *service.AuthService
}

// NewResultHandler creates a new result handler
func NewResultHandler(submitSvc *service.SubmissionService, catalog *service.QuizCatalog, authSvc *service.AuthService) *ResultHandler {
	return &ResultHandler{
		submitSvc: submitSvc,
		catalog:   catalog,
		authSvc:   authSvc,
	}
}

// Submit handles POST /quiz/submit
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EndTime.IsZero() {
		req.EndTime = time.Now()
	}

	resp, err := h.submitSvc.Submit(r.Context(), username, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Results handles GET /quiz-results/{quizId}
func (h *ResultHandler) Results(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	quizID := mux.Vars(r)["quizId"]

	user, err := h.authSvc.Profile(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	entries, err := h.catalog.Results(r.Context(), quizID, user, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"result": entries})
}
