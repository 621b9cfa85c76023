// Package api exposes the inference engine and the review archive over HTTP.
package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"review-lab/domain"
	"review-lab/errors"
	"review-lab/observability"
	"review-lab/repositories"
	"review-lab/services"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const statusMessage = "Sentiment Analysis API is Running"

type Server struct {
	log             *slog.Logger
	service         services.ISentimentService
	repository      repositories.IReviewRepository
	phrases         []string
	maxReviewLength int
	validate        *validator.Validate
}

// NewServer builds the HTTP surface. repository may be nil when the archive is disabled.
func NewServer(log *slog.Logger, service services.ISentimentService, repository repositories.IReviewRepository,
	phrases []string, maxReviewLength int) *Server {
	return &Server{
		log:             log,
		service:         service,
		repository:      repository,
		phrases:         phrases,
		maxReviewLength: maxReviewLength,
		validate:        validator.New(),
	}
}

type predictRequest struct {
	Review json.RawMessage `json:"review" validate:"required"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type reviewResponse struct {
	ID           string    `json:"id"`
	Review       string    `json:"review"`
	Sentiment    string    `json:"sentiment"`
	Confidence   float64   `json:"confidence"`
	PainPoints   []string  `json:"pain_points"`
	Language     string    `json:"language"`
	ModelVersion string    `json:"model_version"`
	At           time.Time `json:"at"`
}

type reviewsResponse struct {
	Reviews []reviewResponse `json:"reviews"`
	Cursor  string           `json:"cursor,omitempty"`
	Total   *uint64          `json:"total,omitempty"`
}

type healthResponse struct {
	Status      string                      `json:"status"`
	ModelLoaded bool                        `json:"model_loaded"`
	Detail      string                      `json:"detail,omitempty"`
	Process     *observability.ProcessStats `json:"process,omitempty"`
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.home)
	mux.HandleFunc("GET /api", s.home)
	mux.HandleFunc("POST /predict", s.predict)
	mux.HandleFunc("POST /api/predict", s.predict)
	mux.HandleFunc("GET /api/reviews", s.listReviews)
	mux.HandleFunc("GET /api/reviews/search", s.searchReviews)
	mux.HandleFunc("GET /api/pain-points", s.painPoints)
	mux.HandleFunc("GET /healthz", s.health)
	return withCORS(mux)
}

func (s *Server) home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": statusMessage})
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	var request predictRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(request); err != nil {
		writeError(w, http.StatusBadRequest, "review is required")
		return
	}

	// A review that is not a string is scored as empty text.
	var review any
	if err := json.Unmarshal(request.Review, &review); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if text, ok := review.(string); ok && s.maxReviewLength > 0 {
		if err := s.validate.Var(text, fmt.Sprintf("max=%d", s.maxReviewLength)); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("review exceeds %d characters", s.maxReviewLength))
			return
		}
	}

	prediction, err := s.service.Predict(r.Context(), review)
	if err != nil {
		s.log.Error("Prediction failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	if s.repository == nil {
		writeError(w, http.StatusNotFound, errors.ErrArchiveDisabled.Error())
		return
	}
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}
	reviews, next, err := s.repository.GetReviews(cursor)
	if err != nil {
		s.log.Error("Failed to list reviews", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reviewsResponse{
		Reviews: toReviewResponses(reviews),
		Cursor:  lo.FromPtr(next),
	})
}

func (s *Server) searchReviews(w http.ResponseWriter, r *http.Request) {
	if s.repository == nil {
		writeError(w, http.StatusNotFound, errors.ErrArchiveDisabled.Error())
		return
	}
	query := r.URL.Query()
	search := repositories.Search{
		Query:     query.Get("q"),
		Sentiment: domain.Sentiment(query.Get("sentiment")),
		PainPoint: query.Get("pain_point"),
	}
	if from := query.Get("from"); from != "" {
		n, err := strconv.Atoi(from)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "from must be a non-negative integer")
			return
		}
		search.From = n
	}
	if minConfidence := query.Get("min_confidence"); minConfidence != "" {
		f, err := strconv.ParseFloat(minConfidence, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "min_confidence must be a number")
			return
		}
		search.MinConfidence = &f
	}
	if search.Sentiment != "" && search.Sentiment != domain.Positive && search.Sentiment != domain.Negative {
		writeError(w, http.StatusBadRequest, "sentiment must be Positive or Negative")
		return
	}

	reviews, total, err := s.repository.SearchPaginated(r.Context(), search)
	if err != nil {
		s.log.Error("Review search failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reviewsResponse{Reviews: toReviewResponses(reviews), Total: &total})
}

func (s *Server) painPoints(w http.ResponseWriter, r *http.Request) {
	if s.repository == nil {
		writeError(w, http.StatusNotFound, errors.ErrArchiveDisabled.Error())
		return
	}
	counts, err := s.repository.PainPointCounts(r.Context(), s.phrases)
	if err != nil {
		s.log.Error("Pain point counts failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.PainPointCount{"pain_points": counts})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	response := healthResponse{Status: "ok", ModelLoaded: true}
	status := http.StatusOK
	if err := s.service.Ready(); err != nil {
		response.Status = "unavailable"
		response.ModelLoaded = false
		response.Detail = err.Error()
		status = http.StatusServiceUnavailable
		if !stderrors.Is(err, errors.ErrMissingParameters) {
			s.log.Warn("Health check failed", "err", err)
		}
	}
	if stats, err := observability.SelfStats(); err == nil {
		response.Process = &stats
	}
	writeJSON(w, status, response)
}

func toReviewResponses(reviews []domain.Review) []reviewResponse {
	return lo.Map(reviews, func(r domain.Review, _ int) reviewResponse {
		return reviewResponse{
			ID:           r.ID.String(),
			Review:       r.Text,
			Sentiment:    string(r.Sentiment),
			Confidence:   r.Confidence,
			PainPoints:   r.PainPoints,
			Language:     r.Language,
			ModelVersion: r.ModelVersion,
			At:           r.At,
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// withCORS allows any origin, method and header.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
