package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/potplant/pkg/buildinfo"
	errs "github.com/matzehuels/potplant/pkg/errors"
	plantio "github.com/matzehuels/potplant/pkg/io"
	"github.com/matzehuels/potplant/pkg/observability"
	"github.com/matzehuels/potplant/pkg/pipeline"
	"github.com/matzehuels/potplant/pkg/plant"
)

const (
	// maxBodyBytes bounds request bodies. Parameter trees are larger
	// than the genotypes they encode.
	maxBodyBytes = 4 * errs.MaxGenotypeLength

	shutdownTimeout = 10 * time.Second

	headerRequestID = "X-Request-ID"
	headerCache     = "X-Cache"
)

// serveOptions holds flags for the serve command.
type serveOptions struct {
	addr      string
	cache     string
	redisAddr string
}

// serveCommand creates the serve command, which exposes the plant
// operations over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve plants and genotype operations over HTTP",
		Long: `Serve plants and genotype operations over HTTP.

Endpoints:
  GET  /healthz
  GET  /v1/plants/random?seed=N
  POST /v1/genotypes/decode      {"code": "..."}
  POST /v1/genotypes/validate    {"code": "..."}
  POST /v1/genotypes/geometry    {"code": "..."}
  POST /v1/genotypes/diagram     {"code": "...", "format": "svg", "detailed": false}
  POST /v1/genotypes/encode      <parameter tree JSON>`,
		Example: `  potplant serve --addr :8080
  potplant serve --cache redis --redis-addr redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Serve
			if !cmd.Flags().Changed("addr") {
				opts.addr = cfg.Addr
			}
			if !cmd.Flags().Changed("cache") {
				opts.cache = cfg.Cache
			}
			if cmd.Flags().Changed("redis-addr") {
				c.Config.Serve.RedisAddr = opts.redisAddr
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.cache, "cache", cacheMemory, "document cache: null, memory, file, redis")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "redis address or URL (with --cache redis)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	if err := errs.ValidateFormat(opts.cache, cacheKinds...); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.TTL = c.Config.Serve.CacheTTL.Duration

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.Logger.Info("listening", "addr", opts.addr, "cache", opts.cache)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// =============================================================================
// Server
// =============================================================================

type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// newServer returns the HTTP API for runner.
func newServer(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	s := &server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/plants/random", s.random)
		r.Route("/genotypes", func(r chi.Router) {
			r.Post("/decode", s.decode)
			r.Post("/validate", s.validate)
			r.Post("/geometry", s.geometry)
			r.Post("/diagram", s.diagram)
			r.Post("/encode", s.encode)
		})
	})
	return r
}

type ctxKeyRequestID struct{}

// requestID propagates the caller's X-Request-ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

// observe reports every request to the HTTP hooks and the log.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond),
			"id", requestIDFrom(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

type codeRequest struct {
	Code string `json:"code"`
}

type diagramRequest struct {
	Code     string `json:"code"`
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

type statsResponse struct {
	Stalks   int `json:"stalks"`
	Leaves   int `json:"leaves"`
	Vertices int `json:"vertices"`
}

type plantResponse struct {
	ID    string        `json:"id"`
	Seed  uint64        `json:"seed,omitempty"`
	Code  string        `json:"code"`
	Stats statsResponse `json:"stats"`
	Plant *plant.Data   `json:"plant,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

func newPlantResponse(res *pipeline.Result, withTree bool) plantResponse {
	resp := plantResponse{
		ID:    res.ID.String(),
		Seed:  res.Seed,
		Code:  res.Code,
		Stats: statsResponse(res.Stats),
	}
	if withTree {
		resp.Plant = &res.Data
	}
	return resp
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *server) random(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "seed must be an unsigned integer"))
			return
		}
		opts.Seed = seed
	}
	res, err := s.runner.Random(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newPlantResponse(res, r.URL.Query().Has("tree")))
}

func (s *server) decode(w http.ResponseWriter, r *http.Request) {
	res, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, newPlantResponse(res, true))
}

func (s *server) validate(w http.ResponseWriter, r *http.Request) {
	res, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Valid bool          `json:"valid"`
		Stats statsResponse `json:"stats"`
	}{true, statsResponse(res.Stats)})
}

func (s *server) geometry(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	doc, hit, err := s.runner.Geometry(r.Context(), req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDocument(w, "application/json", doc, hit)
}

func (s *server) diagram(w http.ResponseWriter, r *http.Request) {
	req := diagramRequest{Format: pipeline.DiagramSVG}
	if !s.readJSON(w, r, &req) {
		return
	}
	doc, hit, err := s.runner.Diagram(r.Context(), req.Code, req.Format, req.Detailed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	contentType := "image/svg+xml"
	if req.Format == pipeline.DiagramDOT {
		contentType = "text/vnd.graphviz; charset=utf-8"
	}
	s.writeDocument(w, contentType, doc, hit)
}

func (s *server) encode(w http.ResponseWriter, r *http.Request) {
	d, err := plantio.ReadTree(http.MaxBytesReader(w, r.Body, maxBodyBytes), plantio.FormatJSON)
	if err != nil {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid parameter tree: %v", err))
		return
	}
	res, err := s.runner.Encode(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newPlantResponse(res, false))
}

// load decodes the genotype in a {"code": ...} body.
func (s *server) load(w http.ResponseWriter, r *http.Request) (*pipeline.Result, bool) {
	var req codeRequest
	if !s.readJSON(w, r, &req) {
		return nil, false
	}
	res, err := s.runner.Load(r.Context(), req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return res, true
}

// =============================================================================
// Encoding
// =============================================================================

func (s *server) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "malformed request body"))
		return false
	}
	return true
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *server) writeDocument(w http.ResponseWriter, contentType string, doc []byte, hit bool) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set(headerCache, cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// writeError maps err to a status and a JSON error body. Rejected
// genotypes all read "invalid code".
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errs.GetCode(err)
	msg := errs.UserMessage(err)
	switch {
	case status == http.StatusInternalServerError:
		s.logger.Error("request failed", "err", err, "id", requestIDFrom(r.Context()))
		code, msg = errs.ErrCodeInternal, "internal error"
	case errs.IsRejected(err):
		s.logger.Debug("rejected genotype", "detail", errs.Detail(err), "id", requestIDFrom(r.Context()))
	}
	s.writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: requestIDFrom(r.Context())})
}

func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidSyntax, errs.ErrCodeSchemaViolation:
		return http.StatusBadRequest
	case errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if errors.Is(err, context.Canceled) {
		return 499
	}
	return http.StatusInternalServerError
}
