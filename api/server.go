// Package api provides the HTTP REST API server for stockapi.
//
// Every data endpoint takes a `type` query parameter selecting the response
// representation: `plain` (CSV text inline, the default), `csv` (the same CSV
// as a file attachment), or `model` (the validated typed record as JSON).
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tigerding/stockapi/internal/config"
	"github.com/tigerding/stockapi/internal/metainfo"
	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/internal/providers/finviz"
	"github.com/tigerding/stockapi/internal/providers/yahoo"
	"github.com/tigerding/stockapi/pkg/models"
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	yahoo   *yahoo.Client
	finviz  *finviz.Client
	version string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, version string) *Server {
	cfg.ApplyHTTP()

	y := yahoo.New(cfg.Gate())
	if cfg.Upstream.YahooBaseURL != "" {
		y.BaseURL = cfg.Upstream.YahooBaseURL
	}
	if cfg.Upstream.YahooFeedURL != "" {
		y.FeedURL = cfg.Upstream.YahooFeedURL
	}

	f := finviz.New()
	if cfg.Upstream.FinvizBaseURL != "" {
		f.BaseURL = cfg.Upstream.FinvizBaseURL
	}

	srv := &Server{
		cfg:     cfg,
		yahoo:   y,
		finviz:  f,
		version: version,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Get("/history/{ticker}", s.handleHistory)

	r.Route("/financials", func(r chi.Router) {
		r.Get("/income/{ticker}", s.handleStatement(models.StatementIncome))
		r.Get("/cashflow/{ticker}", s.handleStatement(models.StatementCashFlow))
		r.Get("/balancesheet/{ticker}", s.handleStatement(models.StatementBalanceSheet))
		r.Get("/sec/{ticker}", s.handleFilings)
	})

	r.Get("/tags/{ticker}", s.handleTags)
	r.Get("/news/{ticker}", s.handleNews)
	r.Get("/metainfo/{ticker}", s.handleMetaInfo)

	return r
}

// APIResponse is the standard JSON envelope for model responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": s.version,
		},
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ticker := tickerParam(r)
	q := r.URL.Query()

	rt, ok := models.ParseResponseType(q.Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid response type: "+q.Get("type"))
		return
	}

	req, err := provider.ParseHistoryRequest(q.Get("start"), q.Get("end"), q.Get("period"))
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	bars, err := s.yahoo.History(r.Context(), ticker, q.Get("interval"), req)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	render(w, rt, ticker+"_history", barsTable(bars), bars)
}

func (s *Server) handleStatement(kind models.StatementKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticker := tickerParam(r)
		q := r.URL.Query()

		rt, ok := models.ParseResponseType(q.Get("type"))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid response type: "+q.Get("type"))
			return
		}

		cadence := models.CadenceYearly
		if v := q.Get("cadence"); v != "" {
			cadence, ok = models.ParseCadence(v)
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid cadence: "+v)
				return
			}
		}

		fs, err := s.yahoo.Statement(r.Context(), ticker, kind, cadence)
		if err != nil {
			s.writeProviderError(w, err)
			return
		}

		filename := ticker + "_" + string(kind) + "_" + string(cadence)
		render(w, rt, filename, statementTable(fs), fs)
	}
}

func (s *Server) handleFilings(w http.ResponseWriter, r *http.Request) {
	ticker := tickerParam(r)

	rt, ok := models.ParseResponseType(r.URL.Query().Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid response type")
		return
	}

	filings, err := s.yahoo.Filings(r.Context(), ticker)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	render(w, rt, ticker+"_sec_filings", filingsTable(filings), filings)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	ticker := tickerParam(r)

	rt, ok := models.ParseResponseType(r.URL.Query().Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid response type")
		return
	}

	tags, err := s.finviz.Tags(r.Context(), ticker)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	render(w, rt, ticker+"_tags", tagsTable(tags), tags)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := tickerParam(r)
	q := r.URL.Query()

	rt, ok := models.ParseResponseType(q.Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid response type")
		return
	}

	var items []models.NewsItem
	var err error
	switch source := q.Get("source"); source {
	case "", "finviz":
		items, err = s.finviz.News(r.Context(), ticker)
	case "yahoo":
		items, err = s.yahoo.RSSNews(r.Context(), ticker)
	default:
		writeError(w, http.StatusBadRequest, "invalid news source: "+source)
		return
	}
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	render(w, rt, ticker+"_news", newsTable(items), items)
}

// handleMetaInfo assembles the composite metadata record. The constituent
// fetches run sequentially; the scraped and structured sources contribute
// disjoint field sets, merged and validated exactly once at the end.
func (s *Server) handleMetaInfo(w http.ResponseWriter, r *http.Request) {
	ticker := tickerParam(r)
	ctx := r.Context()

	rt, ok := models.ParseResponseType(r.URL.Query().Get("type"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid response type")
		return
	}

	structured, err := s.yahoo.PartialMetaInfo(ctx, ticker)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	scraped, err := s.finviz.PartialMetaInfo(ctx, ticker)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	earnings, err := s.yahoo.EarningsDate(ctx, ticker)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	meta, err := metainfo.Finalize(structured.Merge(scraped), earnings)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	render(w, rt, ticker+"_metainfo", metaTable(meta), meta)
}

// --- Helpers ---

func tickerParam(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "ticker")))
}

// writeProviderError maps the error taxonomy onto HTTP status codes. Bad
// input is the caller's fault; upstream and structural failures are bad
// gateway conditions; a validation failure is an internal inconsistency.
func (s *Server) writeProviderError(w http.ResponseWriter, err error) {
	var badInput *provider.ErrBadInput
	var upstream *provider.ErrUpstream
	var structure *provider.ErrStructure
	var validation *provider.ErrValidation

	switch {
	case errors.As(err, &badInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &structure):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &upstream):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &validation):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
