package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// The list endpoint always reports this category as current, whatever the
// filter. Existing frontends rely on it.
const defaultCurrentCategory = 1

// HTTPHandler exposes the question, category and quiz endpoints.
type HTTPHandler struct {
	queries    *QueryService
	mutations  *MutationService
	categories *CategoryService
	selector   *Selector
	logger     zerolog.Logger
}

// NewHTTPHandler constructs the trivia HTTP handler.
func NewHTTPHandler(queries *QueryService, mutations *MutationService, categories *CategoryService, selector *Selector, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		queries:    queries,
		mutations:  mutations,
		categories: categories,
		selector:   selector,
		logger:     logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Router is satisfied by *http.ServeMux and by the server's instrumented mux.
type Router = interface {
	HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request))
}

// RegisterRoutes mounts the trivia endpoints. Methods are checked by the
// handlers so wrong verbs get the JSON 405 envelope.
func (h *HTTPHandler) RegisterRoutes(mux Router) {
	mux.HandleFunc("/categories", h.HandleCategories)
	mux.HandleFunc("/categories/{id}/questions", h.HandleCategoryQuestions)
	mux.HandleFunc("/questions", h.HandleQuestions)
	mux.HandleFunc("/questions/search", h.HandleSearch)
	mux.HandleFunc("/questions/{id}", h.HandleQuestion)
	mux.HandleFunc("/quizzes", h.HandleQuizzes)
}

// HandleCategories handles GET /categories
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	categories, err := h.categories.ListAll(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "list categories")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// HandleQuestions handles GET /questions?page=N&q=term and POST /questions.
// A POST body carrying searchTerm is treated as a search, anything else as a create.
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r, r.URL.Query().Get("q"))
	case http.MethodPost:
		var req struct {
			CreateInput
			SearchTerm *string `json:"searchTerm"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.RespondBadRequest(w)
			return
		}
		if req.SearchTerm != nil {
			h.listQuestions(w, r, *req.SearchTerm)
			return
		}
		h.createQuestion(w, r, req.CreateInput)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

// HandleSearch handles POST /questions/search with body {"searchTerm": "..."}
func (h *HTTPHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req struct {
		SearchTerm *string `json:"searchTerm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SearchTerm == nil {
		httperrors.RespondBadRequest(w)
		return
	}
	h.listQuestions(w, r, *req.SearchTerm)
}

// HandleQuestion handles GET and DELETE /questions/{id}
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		q, err := h.queries.Get(r.Context(), id)
		if err != nil {
			h.respondServiceError(w, r, err, "get question")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"question": q,
		})
	case http.MethodDelete:
		if err := h.mutations.Delete(r.Context(), id); err != nil {
			h.respondServiceError(w, r, err, "delete question")
			return
		}
		h.requestLogger(r).Info().Int("question_id", id).Msg("question deleted")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"deleted": id,
		})
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

// HandleCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	categoryID, ok := parseID(r.PathValue("id"))
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	ctx := r.Context()
	page, err := h.queries.ListByCategory(ctx, categoryID, parsePage(r))
	if err != nil {
		h.respondServiceError(w, r, err, "list category questions")
		return
	}
	categories, err := h.categories.ListAll(ctx)
	if err != nil {
		h.respondServiceError(w, r, err, "list categories")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"categories":       categories,
		"current_category": labelOrNil(categories, categoryID),
	})
}

// HandleQuizzes handles GET /quizzes?category=N&previous_questions=1,2 and
// POST /quizzes with body {"previous_questions": [...], "quiz_category": {"id": N}}.
func (h *HTTPHandler) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	var (
		categoryID *int
		previous   []int
		err        error
	)

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		if categoryID, err = parseCategory(query.Get("category")); err != nil {
			httperrors.RespondBadRequest(w)
			return
		}
		if previous, err = parseIDList(query["previous_questions"]); err != nil {
			httperrors.RespondBadRequest(w)
			return
		}
	case http.MethodPost:
		var req struct {
			PreviousQuestions []int `json:"previous_questions"`
			QuizCategory      *struct {
				ID interface{} `json:"id"`
			} `json:"quiz_category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperrors.RespondBadRequest(w)
			return
		}
		if req.QuizCategory != nil {
			if categoryID, err = parseCategory(req.QuizCategory.ID); err != nil {
				httperrors.RespondBadRequest(w)
				return
			}
		}
		previous = req.PreviousQuestions
	default:
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	picked, err := h.selector.Select(r.Context(), categoryID, previous)
	if err != nil {
		h.respondServiceError(w, r, err, "select quiz question")
		return
	}

	resp := map[string]interface{}{"success": true}
	if picked != nil {
		resp["question"] = picked
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) listQuestions(w http.ResponseWriter, r *http.Request, searchTerm string) {
	ctx := r.Context()
	page, err := h.queries.List(ctx, parsePage(r), searchTerm)
	if err != nil {
		h.respondServiceError(w, r, err, "list questions")
		return
	}
	categories, err := h.categories.ListAll(ctx)
	if err != nil {
		h.respondServiceError(w, r, err, "list categories")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"categories":       categories,
		"current_category": labelOrNil(categories, defaultCurrentCategory),
	})
}

func (h *HTTPHandler) createQuestion(w http.ResponseWriter, r *http.Request, in CreateInput) {
	q, err := h.mutations.Create(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, r, err, "create question")
		return
	}
	h.requestLogger(r).Info().Int("question_id", q.ID).Int("category", q.Category).Msg("question created")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": q,
	})
}

func (h *HTTPHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrInvalidInput):
		h.requestLogger(r).Debug().Err(err).Str("op", op).Msg("rejected input")
		httperrors.RespondBadRequest(w)
	default:
		h.requestLogger(r).Error().Err(err).Str("op", op).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

// requestLogger prefers the request-scoped logger installed by the server middleware.
func (h *HTTPHandler) requestLogger(r *http.Request) *zerolog.Logger {
	logger := logging.FromContext(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = h.logger
	}
	return &logger
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func labelOrNil(categories map[int]string, id int) interface{} {
	if label, ok := categories[id]; ok {
		return label
	}
	return nil
}

// parseID accepts base-10 ids that fit the INTEGER id column. Anything else
// cannot name a stored row.
func parseID(raw string) (int, bool) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(id), true
}

// parsePage reads the 1-indexed page parameter, defaulting to 1.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parseCategory maps "", "all" and 0 to no restriction.
func parseCategory(v interface{}) (*int, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "all") {
			return nil, nil
		}
		v = s
	}
	id, err := coerceInt(v)
	if err != nil {
		return nil, fmt.Errorf("%w: category: %v", ErrInvalidInput, err)
	}
	if id == AllCategories {
		return nil, nil
	}
	return &id, nil
}

// parseIDList accepts repeated and comma separated ids.
func parseIDList(values []string) ([]int, error) {
	var ids []int
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%w: previous_questions: %q", ErrInvalidInput, part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
