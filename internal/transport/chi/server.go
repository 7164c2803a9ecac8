package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/query"
	"github.com/kailas-cloud/socialsearch/internal/domain/search/result"
	"github.com/kailas-cloud/socialsearch/internal/feature"
	"github.com/kailas-cloud/socialsearch/internal/logger"
	"github.com/kailas-cloud/socialsearch/internal/metrics"
	healthuc "github.com/kailas-cloud/socialsearch/internal/usecase/health"
)

// Searcher runs a search pipeline.
type Searcher interface {
	Search(ctx context.Context, q query.Query) (result.Page, error)
}

// FeatureLister lists registered features.
type FeatureLister interface {
	List(ctx context.Context) []feature.Info
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Options configures the HTTP server.
type Options struct {
	DefaultSite string   // tenant used when a search names none
	APIKeys     []string // empty disables auth
}

// Server is the HTTP API.
type Server struct {
	search        Searcher
	features      FeatureLister
	health        HealthChecker
	opts          Options
	log           *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, features FeatureLister, health HealthChecker, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		search:        search,
		features:      features,
		health:        health,
		opts:          opts,
		log:           log,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes builds the chi router with the full middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.log))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.log))
	r.Use(BearerAuthMiddleware(s.opts.APIKeys))
	r.Use(metrics.Middleware())

	r.Get("/search", s.Search)
	r.Get("/features", s.Features)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})
	return r
}

type searchItem struct {
	ID      string  `json:"id"`
	Index   string  `json:"index"`
	Kind    string  `json:"kind"`
	Title   string  `json:"title"`
	Excerpt string  `json:"excerpt,omitempty"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
}

type searchResponse struct {
	Items []searchItem `json:"items"`
	Total int          `json:"total"`
	From  int          `json:"from"`
	Size  int          `json:"size"`
}

// Search handles GET /search?s=&site=&type=&from=&size=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	from, err := intParam(params.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "from must be an integer")
		return
	}
	size, err := intParam(params.Get("size"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "size must be an integer")
		return
	}

	site := params.Get("site")
	if site == "" {
		site = s.opts.DefaultSite
	}
	var kinds []kind.Kind
	if t := params.Get("type"); t != "" {
		kinds = kind.Parse(strings.Split(t, ","))
	}

	q, err := query.New(params.Get("s"), kinds, site, query.OriginSearch, from, size)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	ctx, usage := domain.NewContextWithSearchUsage(logger.With(r.Context(), zap.String("site", site)))
	page, err := s.search.Search(ctx, q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]searchItem, len(page.Items))
	for i := range page.Items {
		items[i] = searchItemFromResult(&page.Items[i])
	}

	setSearchHeaders(w, usage)
	writeJSON(w, http.StatusOK, searchResponse{
		Items: items,
		Total: page.Total,
		From:  q.From(),
		Size:  q.Size(),
	})
}

type featuresResponse struct {
	Items []feature.Info `json:"items"`
}

// Features handles GET /features.
func (s *Server) Features(w http.ResponseWriter, r *http.Request) {
	items := s.features.List(r.Context())
	if items == nil {
		items = []feature.Info{}
	}
	writeJSON(w, http.StatusOK, featuresResponse{Items: items})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Response headers reporting engine fan-out.
const (
	headerSearchIndices = "X-Search-Indices"
	headerSearchShards  = "X-Search-Shards"
)

func setSearchHeaders(w http.ResponseWriter, usage *domain.SearchUsage) {
	if usage != nil && usage.Used {
		w.Header().Set(headerSearchIndices, strconv.Itoa(usage.Indices))
		w.Header().Set(headerSearchShards, strconv.Itoa(usage.Shards))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func searchItemFromResult(it *result.Item) searchItem {
	return searchItem{
		ID:      it.ID(),
		Index:   it.Index(),
		Kind:    string(it.Kind()),
		Title:   it.Title(),
		Excerpt: it.Excerpt(),
		URL:     it.URL,
		Score:   it.Score(),
	}
}
