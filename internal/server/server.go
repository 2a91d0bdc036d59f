// Package server exposes the packer over HTTP with gin. Every endpoint is
// stateless: a request carries a complete job and the response carries the
// result.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/export"
	"github.com/piwi3910/BoxFit/internal/model"
)

// Request limits applied by New.
const (
	MaxBodyBytes   = 8 << 20
	MaxItems       = 10000
	MaxGenerations = 1000
)

// Server serves packing requests using the defaults from an AppConfig.
type Server struct {
	cfg    model.AppConfig
	logger *log.Logger
	router *gin.Engine

	maxBodyBytes   int64
	maxItems       int
	maxGenerations int
}

// PackResponse is returned by POST /api/pack and /api/optimize.
type PackResponse struct {
	JobID string             `json:"job_id"`
	Scene export.RenderScene `json:"scene"`
}

// CompareRow summarises one scenario of POST /api/compare.
type CompareRow struct {
	Name        string         `json:"name"`
	Settings    model.Settings `json:"settings"`
	Fitted      int            `json:"fitted"`
	Unfitted    int            `json:"unfitted"`
	Utilization float64        `json:"utilization"`
	Best        bool           `json:"best"`
}

func New(cfg model.AppConfig, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:            cfg,
		logger:         logger,
		router:         gin.New(),
		maxBodyBytes:   MaxBodyBytes,
		maxItems:       MaxItems,
		maxGenerations: MaxGenerations,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())

	s.router.GET("/healthz", s.handleHealth)
	api := s.router.Group("/api")
	api.GET("/presets", s.handlePresets)
	api.POST("/pack", s.handlePack)
	api.POST("/compare", s.handleCompare)
	api.POST("/optimize", s.handleOptimize)
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "elapsed", time.Since(start).Round(time.Microsecond))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg.Inventory())
}

// bindJob decodes a job body. Missing settings take the configured defaults.
// Bodies over maxBodyBytes and jobs over maxItems are rejected with 413.
func (s *Server) bindJob(c *gin.Context) (model.Job, bool) {
	defaults := model.DefaultSettings()
	s.cfg.ApplyToSettings(&defaults)
	job := model.Job{Settings: defaults}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	if err := c.ShouldBindJSON(&job); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
			return model.Job{}, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return model.Job{}, false
	}
	if len(job.Items) > s.maxItems {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("job has %d items, limit is %d", len(job.Items), s.maxItems)})
		return model.Job{}, false
	}
	job.Normalize()
	if err := job.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return model.Job{}, false
	}
	return job, true
}

// handlePack packs a job. With ?format=png the response is an isometric
// preview instead of the JSON scene.
func (s *Server) handlePack(c *gin.Context) {
	job, ok := s.bindJob(c)
	if !ok {
		return
	}
	result, err := engine.New(job.Settings).WithLogger(s.logger).Pack(job.Container, job.Items)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	s.respond(c, job, result)
}

func (s *Server) respond(c *gin.Context, job model.Job, result model.PackingResult) {
	if c.Query("format") == "png" {
		c.Header("Content-Type", "image/png")
		c.Status(http.StatusOK)
		if err := export.RenderPNG(c.Writer, result, export.DefaultImageSize); err != nil {
			s.logger.Error("render png", "job", job.ID, "err", err)
		}
		return
	}
	c.JSON(http.StatusOK, PackResponse{JobID: job.ID, Scene: export.BuildScene(result)})
}

// handleCompare runs every strategy and sort order on the job. With
// ?format=chart the response is an HTML bar chart.
func (s *Server) handleCompare(c *gin.Context) {
	job, ok := s.bindJob(c)
	if !ok {
		return
	}
	scenarios := engine.BuildDefaultScenarios(job.Settings)
	results, err := engine.CompareScenarios(c.Request.Context(), scenarios, job.Container, job.Items)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "chart" {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := export.ExportComparisonChart(c.Writer, results); err != nil {
			s.logger.Error("render chart", "job", job.ID, "err", err)
		}
		return
	}

	best, _ := engine.BestComparison(results)
	rows := make([]CompareRow, len(results))
	for i, r := range results {
		rows[i] = CompareRow{
			Name:        r.Scenario.Name,
			Settings:    r.Scenario.Settings,
			Fitted:      r.FittedCount,
			Unfitted:    r.UnfittedCount,
			Utilization: r.Utilization,
			Best:        r.Scenario.Name == best.Scenario.Name,
		}
	}
	c.JSON(http.StatusOK, rows)
}

// handleOptimize runs the order search. ?generations and ?seed override
// the configured values; generations are capped at maxGenerations.
func (s *Server) handleOptimize(c *gin.Context) {
	job, ok := s.bindJob(c)
	if !ok {
		return
	}
	gc := engine.DefaultGeneticConfig()
	gc.Generations = min(s.cfg.Generations, s.maxGenerations)
	gc.PopulationSize = s.cfg.PopulationSize
	gc.Seed = s.cfg.Seed
	if v := c.Query("generations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "generations: " + err.Error()})
			return
		}
		if n < 0 || n > s.maxGenerations {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("generations must be between 0 and %d", s.maxGenerations)})
			return
		}
		gc.Generations = n
	}
	if v := c.Query("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed: " + err.Error()})
			return
		}
		gc.Seed = n
	}

	ctx := log.WithContext(c.Request.Context(), s.logger)
	result, err := engine.OptimizeOrder(ctx, job.Settings, job.Container, job.Items, gc)
	if err != nil {
		if ctx.Err() == nil || len(result.Fitted)+len(result.Unfitted) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		s.logger.Warn("optimize interrupted", "job", job.ID, "err", err)
	}
	s.respond(c, job, result)
}
