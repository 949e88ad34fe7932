// Package server exposes the upload-geocode-map flow over HTTP: an upload
// page, per-run progress and results views, the rendered map, the CSV
// download, and the monitoring endpoints.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Houeta/address-mapper/internal/exporter"
	"github.com/Houeta/address-mapper/internal/models"
	"github.com/Houeta/address-mapper/internal/parser"
	"github.com/Houeta/address-mapper/internal/pipeline"
	"github.com/Houeta/address-mapper/internal/webmap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the web handlers and the in-memory run registry. Reports live
// only as long as the process; nothing is persisted. Runs are independent of
// each other: each one owns a fresh report and its own progress counters.
type Server struct {
	log            *slog.Logger
	pipe           *pipeline.Pipeline
	registry       *prometheus.Registry
	maxUploadBytes int64

	mu   sync.RWMutex
	runs map[string]*run
}

// run tracks one pipeline invocation. Its mutex guards progress counters
// written by the pipeline goroutine and read by the progress endpoint.
type run struct {
	mu     sync.Mutex
	state  models.RunState
	done   int
	total  int
	report *models.PipelineReport
}

// RunStatus is the JSON shape served by the progress endpoint.
type RunStatus struct {
	ID       string          `json:"id"`
	State    models.RunState `json:"state"`
	Done     int             `json:"done"`
	Total    int             `json:"total"`
	Fraction float64         `json:"fraction"`
}

func (r *run) setProgress(done, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done, r.total = done, total
}

func (r *run) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = models.StateRunning
}

func (r *run) finish(report *models.PipelineReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = models.StateCompleted
	r.report = report
}

func (r *run) status(id string) RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	fraction := 0.0
	if r.total > 0 {
		fraction = float64(r.done) / float64(r.total)
	} else if r.state == models.StateCompleted {
		fraction = 1.0
	}

	return RunStatus{ID: id, State: r.state, Done: r.done, Total: r.total, Fraction: fraction}
}

// snapshot returns the finalized report, or nil while the run is in flight.
func (r *run) snapshot() *models.PipelineReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != models.StateCompleted {
		return nil
	}
	return r.report
}

// New creates a Server around the given pipeline. The registry is served on
// /metrics; maxUploadBytes caps the size of an uploaded CSV.
func New(log *slog.Logger, pipe *pipeline.Pipeline, registry *prometheus.Registry, maxUploadBytes int64) *Server {
	return &Server{
		log:            log,
		pipe:           pipe,
		registry:       registry,
		maxUploadBytes: maxUploadBytes,
		runs:           make(map[string]*run),
	}
}

// Router assembles the gin engine with all application routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(pageTemplates)
	router.MaxMultipartMemory = s.maxUploadBytes

	router.GET("/", s.indexView)
	router.POST("/runs", s.createRun)
	router.GET("/runs/:id", s.runView)
	router.GET("/runs/:id/progress", s.getProgress)
	router.GET("/runs/:id/map", s.mapView)
	router.GET("/runs/:id/download", s.download)

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return router
}

// Run serves the router until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	const (
		readTimeout     = 5 * time.Second
		writeTimeout    = 30 * time.Second
		shutdownTimeout = 5 * time.Second
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.InfoContext(ctx, "Web server started", "port", port)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down web server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	}
}

func (s *Server) indexView(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"RequiredColumns": parser.RequiredColumns,
	})
}

// createRun validates the uploaded CSV and starts the pipeline in the
// background. A schema failure is fatal for the upload and happens before any
// geocoding call; it never creates a run.
func (s *Server) createRun(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.errorPage(c, http.StatusBadRequest, "A CSV file upload is required.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.errorPage(c, http.StatusBadRequest, "Failed to open the uploaded file.")
		return
	}
	defer file.Close()

	records, err := parser.Parse(file)
	var schemaErr *parser.SchemaError
	if errors.As(err, &schemaErr) {
		s.errorPage(c, http.StatusUnprocessableEntity, schemaErr.Error())
		return
	}
	if err != nil {
		s.errorPage(c, http.StatusBadRequest, "Failed to parse the uploaded file: "+err.Error())
		return
	}

	id := uuid.NewString()
	rn := &run{state: models.StateIdle, total: len(records)}

	s.mu.Lock()
	s.runs[id] = rn
	s.mu.Unlock()

	s.log.InfoContext(c.Request.Context(), "Run accepted", "run_id", id, "records", len(records))

	go s.execute(id, rn, records)

	c.Redirect(http.StatusSeeOther, "/runs/"+id)
}

// execute drives one pipeline run to completion. It deliberately uses a
// background context: the run must outlive the upload request that started it.
func (s *Server) execute(id string, rn *run, records []models.AddressRecord) {
	ctx := context.Background()

	rn.start()
	report := s.pipe.Run(ctx, records, rn.setProgress)
	rn.finish(report)

	s.log.InfoContext(ctx, "Run finished", "run_id", id,
		"succeeded", len(report.Succeeded()), "failed", len(report.Failed()))
}

func (s *Server) lookup(id string) *run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[id]
}

func (s *Server) runView(c *gin.Context) {
	id := c.Param("id")
	rn := s.lookup(id)
	if rn == nil {
		s.errorPage(c, http.StatusNotFound, "Unknown run.")
		return
	}

	report := rn.snapshot()
	if report == nil {
		c.HTML(http.StatusOK, "run_pending.html", gin.H{"RunID": id})
		return
	}

	succeeded := report.Succeeded()
	failed := report.Failed()
	c.HTML(http.StatusOK, "run.html", gin.H{
		"RunID":     id,
		"Total":     report.Len(),
		"Succeeded": len(succeeded),
		"Failed":    failed,
		"Warning":   report.Warning,
		"HasMap":    len(succeeded) > 0,
	})
}

func (s *Server) getProgress(c *gin.Context) {
	id := c.Param("id")
	rn := s.lookup(id)
	if rn == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown run"})
		return
	}
	c.JSON(http.StatusOK, rn.status(id))
}

func (s *Server) mapView(c *gin.Context) {
	rn := s.lookup(c.Param("id"))
	if rn == nil {
		c.String(http.StatusNotFound, "unknown run")
		return
	}
	report := rn.snapshot()
	if report == nil {
		c.String(http.StatusConflict, "run is still in progress")
		return
	}

	var buf bytes.Buffer
	err := webmap.Render(&buf, report)
	if errors.Is(err, webmap.ErrNoMarkers) {
		c.String(http.StatusNotFound, "no successfully geocoded records to display")
		return
	}
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to render map", "error", err)
		c.String(http.StatusInternalServerError, "failed to render map")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) download(c *gin.Context) {
	rn := s.lookup(c.Param("id"))
	if rn == nil {
		c.String(http.StatusNotFound, "unknown run")
		return
	}
	report := rn.snapshot()
	if report == nil {
		c.String(http.StatusConflict, "run is still in progress")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="geocoded_addresses.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := exporter.WriteCSV(c.Writer, report); err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to write CSV download", "error", err)
	}
}

func (s *Server) errorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{"Message": message})
}
