package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/projectsearch/internal/domain"
	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
	"github.com/kailas-cloud/projectsearch/internal/domain/geo"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/field"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/request"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/projectsearch/internal/logger"
	"github.com/kailas-cloud/projectsearch/internal/repository/geojson"
	healthuc "github.com/kailas-cloud/projectsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/projectsearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// DatasetReloader reloads the dataset from its configured source.
type DatasetReloader interface {
	Reload(ctx context.Context) (*feature.Collection, error)
}

// Server serves the search API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	reloader      DatasetReloader
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	reloader DatasetReloader,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		health:   health,
		reloader: reloader,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrQueryTooLong, http.StatusBadRequest, CodeQueryTooLong),
		sentinelHandler(domain.ErrInvalidCoordinates, http.StatusBadRequest, CodeBadRequest),
		sentinelHandler(domain.ErrDatasetNotLoaded, http.StatusServiceUnavailable, CodeDatasetNotLoaded),
		sentinelHandler(domain.ErrDatasetNotFound, http.StatusNotFound, CodeDatasetNotFound),
		sentinelHandler(domain.ErrInvalidDataset, http.StatusUnprocessableEntity, CodeInvalidDataset),
		sentinelHandler(domain.ErrUnsupportedFormat, http.StatusUnprocessableEntity, CodeInvalidDataset),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/dataset/reload", s.ReloadDataset)
}

// Search handles GET /search?q=<query>&near=<lat>,<lon>.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var q string
	if err := runtime.BindQueryParameter("form", true, false, "q", params, &q); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid parameter q")
		return
	}

	var near []float64
	if err := runtime.BindQueryParameter("form", false, false, "near", params, &near); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "near must be <lat>,<lon>")
		return
	}
	var point *request.GeoQuery
	if near != nil {
		if len(near) != 2 {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "near must be <lat>,<lon>")
			return
		}
		point = &request.GeoQuery{Latitude: near[0], Longitude: near[1]}
	}

	req, err := request.New(q, point)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx := r.Context()
	if point != nil {
		ctx = logpkg.WithFields(ctx, zap.Float64("near_lat", point.Latitude), zap.Float64("near_lon", point.Longitude))
	}
	matches, err := s.search.Search(ctx, &req)
	if errors.Is(err, domain.ErrDatasetNotLoaded) {
		// searches while the dataset loads see no results; /health reports it
		logpkg.FromContext(ctx).Warn("search before dataset load", zap.String("query", req.Query()))
		matches, err = nil, nil
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.searchResponse(&req, matches))
}

func (s *Server) searchResponse(req *request.Request, matches []result.Match) SearchResponse {
	resp := SearchResponse{
		Query:   req.Query(),
		Count:   len(matches),
		Results: make([]SearchHit, 0, len(matches)),
	}
	for i := range matches {
		resp.Results = append(resp.Results, s.hitFromMatch(&matches[i], req.Near()))
	}
	if b, ok := feature.BoundsOf(result.Features(matches)); ok {
		resp.Bounds = b.Slice()
	}
	return resp
}

func (s *Server) hitFromMatch(m *result.Match, near *request.GeoQuery) SearchHit {
	f := m.Feature()
	city := field.Resolve(f.Properties, field.Aliases(field.City))

	hit := SearchHit{
		ID:          f.ID,
		Score:       m.Score(),
		Name:        field.Resolve(f.Properties, field.Aliases(field.ProjectName)),
		City:        field.Normalize(city),
		CityDisplay: feature.FormatCityName(city),
		Properties:  f.Properties,
	}

	geometry, err := geojson.EncodeGeometry(f.Geometry)
	if err != nil {
		s.logger.Warn("encode geometry", zap.String("id", f.ID), zap.Error(err))
		geometry = json.RawMessage("null")
	}
	hit.Geometry = geometry

	if near != nil {
		if d, ok := geo.DistanceTo(f.Geometry, near.Latitude, near.Longitude); ok {
			hit.DistanceMeters = &d
		}
	}
	return hit
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:   string(report.Status),
		Checks:   checks,
		Features: report.Features,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ReloadDataset handles POST /dataset/reload.
func (s *Server) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	c, err := s.reloader.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{Features: c.Len()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrQueryTooLong,
		domain.ErrInvalidCoordinates,
		domain.ErrDatasetNotLoaded,
		domain.ErrDatasetNotFound,
		domain.ErrInvalidDataset,
		domain.ErrUnsupportedFormat,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
