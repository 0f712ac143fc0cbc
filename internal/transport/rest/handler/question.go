package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tarundeepakjain/Quintz/internal/model"
	"github.com/tarundeepakjain/Quintz/internal/service"
)

// QuestionHandler handles question intake and tag endpoints
type QuestionHandler struct {
	pool *service.QuestionPool
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(pool *service.QuestionPool) *QuestionHandler {
	return &QuestionHandler{pool: pool}
}

// AddQuestions handles POST /add-questions. Each stored question carries one
// reference for the quiz about to be created from it.
func (h *QuestionHandler) AddQuestions(w http.ResponseWriter, r *http.Request) {
	var inputs []model.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids, err := h.pool.AddBatch(r.Context(), inputs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "questions added successfully",
		"questions": ids,
	})
}

// Tags handles GET /tags
func (h *QuestionHandler) Tags(w http.ResponseWriter, r *http.Request) {
	entries, err := h.pool.Tags(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tags": entries})
}
