package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"creativemastery/internal/model"
	"creativemastery/internal/service"
	"creativemastery/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SessionHandler handles quiz session endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
	logger     *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{sessionSvc: sessionSvc, logger: logger}
}

// AnswerRequest is the request body for recording one slider answer
type AnswerRequest struct {
	Value *int `json:"value"`
}

// Start handles POST /v1/sessions
//
//	@Summary	Start a quiz session
//	@Tags		sessions
//	@Produce	json
//	@Success	201	{object}	model.QuizSession
//	@Router		/sessions [post]
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.StartSession(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Get handles GET /v1/sessions/{id}
//
//	@Summary	Get a session
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.QuizSession
//	@Failure	404	{object}	map[string]string
//	@Router		/sessions/{id} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.GetSession(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /v1/sessions/{id}
//
//	@Summary	Delete a session and close its live stream
//	@Tags		sessions
//	@Param		id	path	string	true	"Session ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/sessions/{id} [delete]
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionSvc.DeleteSession(r.Context(), middleware.GetSessionID(r.Context())); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Answer handles PUT /v1/sessions/{id}/answers/{questionId}
//
//	@Summary	Record one slider answer and return the preview results
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string			true	"Session ID"
//	@Param		questionId	path		string			true	"Question ID"
//	@Param		request		body		AnswerRequest	true	"Slider value 0..100"
//	@Success	200			{object}	model.Results
//	@Failure	400			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/sessions/{id}/answers/{questionId} [put]
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["questionId"]

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.sessionSvc.RecordAnswer(r.Context(), middleware.GetSessionID(r.Context()), questionID, *req.Value)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Mastery handles PUT /v1/sessions/{id}/mastery
//
//	@Summary	Store mastery selections and return insights
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Session ID"
//	@Param		request	body		model.MasterySelections	true	"Selections"
//	@Success	200		{object}	model.InsightsBundle
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/sessions/{id}/mastery [put]
func (h *SessionHandler) Mastery(w http.ResponseWriter, r *http.Request) {
	var sel model.MasterySelections
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bundle, err := h.sessionSvc.SelectMastery(r.Context(), middleware.GetSessionID(r.Context()), sel)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// Results handles GET /v1/sessions/{id}/results
//
//	@Summary	Compute results and move the session to the results step
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.Results
//	@Failure	404	{object}	map[string]string
//	@Router		/sessions/{id}/results [get]
func (h *SessionHandler) Results(w http.ResponseWriter, r *http.Request) {
	res, err := h.sessionSvc.Results(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Insights handles GET /v1/sessions/{id}/insights
//
//	@Summary	Mastery insights for a session with selections
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.InsightsBundle
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/sessions/{id}/insights [get]
func (h *SessionHandler) Insights(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.sessionSvc.Insights(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// Progress handles GET /v1/sessions/{id}/progress
//
//	@Summary	Answered and total questions per dimension
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	model.SessionProgress
//	@Failure	404	{object}	map[string]string
//	@Router		/sessions/{id}/progress [get]
func (h *SessionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	p, err := h.sessionSvc.Progress(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Stats handles GET /v1/stats/profiles
//
//	@Summary	Most frequent profiles among completed sessions
//	@Tags		sessions
//	@Produce	json
//	@Param		limit	query		int	false	"Rows to return (default 10, max 50)"
//	@Success	200		{array}		cache.ProfileCount
//	@Failure	400		{object}	map[string]string
//	@Router		/stats/profiles [get]
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	top, err := h.sessionSvc.ProfileStats(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// ProfileRank handles GET /v1/stats/profiles/{key}
//
//	@Summary	Count and rank of one profile among completed sessions
//	@Tags		sessions
//	@Produce	json
//	@Param		key	path		string	true	"Profile key"
//	@Success	200	{object}	cache.ProfileCount
//	@Failure	404	{object}	map[string]string
//	@Router		/stats/profiles/{key} [get]
func (h *SessionHandler) ProfileRank(w http.ResponseWriter, r *http.Request) {
	row, err := h.sessionSvc.ProfileRank(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
