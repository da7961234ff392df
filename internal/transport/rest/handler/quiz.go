package handler

import (
	"encoding/json"
	"net/http"

	"creativemastery/internal/catalog"
	"creativemastery/internal/model"
	"creativemastery/internal/service"

	"go.uber.org/zap"
)

// QuizHandler serves the stateless catalog and engine endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
	logger  *zap.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService, logger *zap.Logger) *QuizHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizHandler{quizSvc: quizSvc, logger: logger}
}

// ResultsRequest is the request body for POST /v1/results
type ResultsRequest struct {
	Answers model.Answers `json:"answers"`
}

// MasteryOptions lists the selectable values of the mastery quiz
type MasteryOptions struct {
	Ambitions      []catalog.AmbitionInfo  `json:"ambitions"`
	CreativeStates []catalog.SelectionInfo `json:"creativeStates"`
	MasteryMetrics []catalog.SelectionInfo `json:"masteryMetrics"`
}

// Dimensions handles GET /v1/dimensions
//
//	@Summary	List the five personality dimensions with their state texts
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}	catalog.DimensionInfo
//	@Router		/dimensions [get]
func (h *QuizHandler) Dimensions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quizSvc.Catalog().Dimensions())
}

// Questions handles GET /v1/questions
//
//	@Summary	List the question bank
//	@Tags		catalog
//	@Produce	json
//	@Param		dimension	query		string	false	"Only questions of this dimension"
//	@Success	200			{array}		model.Question
//	@Failure	400			{object}	map[string]string
//	@Router		/questions [get]
func (h *QuizHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions := h.quizSvc.Catalog().Questions()

	dim := model.DimensionID(r.URL.Query().Get("dimension"))
	if dim == "" {
		writeJSON(w, http.StatusOK, questions)
		return
	}
	if !dim.IsKnown() {
		writeError(w, http.StatusBadRequest, "unknown dimension "+string(dim))
		return
	}

	filtered := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.Dimension == dim {
			filtered = append(filtered, q)
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

// MasteryOptions handles GET /v1/mastery/options
//
//	@Summary	List ambitions, creative states and mastery metrics
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	MasteryOptions
//	@Router		/mastery/options [get]
func (h *QuizHandler) MasteryOptions(w http.ResponseWriter, r *http.Request) {
	cat := h.quizSvc.Catalog()
	writeJSON(w, http.StatusOK, MasteryOptions{
		Ambitions:      cat.AmbitionInfos(),
		CreativeStates: cat.CreativeStateInfos(),
		MasteryMetrics: cat.MetricInfos(),
	})
}

// Results handles POST /v1/results
//
//	@Summary	Score an answer set and resolve its profile
//	@Tags		quiz
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ResultsRequest	true	"Answers by question id"
//	@Success	200		{object}	model.Results
//	@Failure	400		{object}	map[string]string
//	@Router		/results [post]
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	var req ResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		req.Answers = model.Answers{}
	}

	res, err := h.quizSvc.ComputeResults(req.Answers)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Insights handles POST /v1/insights
//
//	@Summary	Generate mastery insights from scores, states and selections
//	@Tags		quiz
//	@Accept		json
//	@Produce	json
//	@Param		request	body		service.InsightsRequest	true	"Scores, states and selections"
//	@Success	200		{object}	model.InsightsBundle
//	@Failure	400		{object}	map[string]string
//	@Router		/insights [post]
func (h *QuizHandler) Insights(w http.ResponseWriter, r *http.Request) {
	var req service.InsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for d, st := range req.DimensionStates {
		if !d.IsKnown() || !st.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid dimension state "+string(d)+"="+string(st))
			return
		}
	}

	writeJSON(w, http.StatusOK, h.quizSvc.GenerateInsights(req))
}
