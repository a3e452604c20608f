// Package server exposes the scan pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pqradar/pqradar/internal/engine"
	"github.com/pqradar/pqradar/internal/report"
	"github.com/pqradar/pqradar/internal/session"
	"github.com/pqradar/pqradar/internal/types"
)

// ScanRequest is the body of POST /api/v1/scans.
type ScanRequest struct {
	Path            string `json:"path" binding:"required"`
	Include         string `json:"include"`
	Exclude         string `json:"exclude"`
	MaxBytes        int64  `json:"max_bytes"`
	MaxFiles        int    `json:"max_files"`
	Threads         int    `json:"threads"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	DefaultExcludes *bool  `json:"default_excludes"`
	Top             int    `json:"top"`
}

// Server wires a session store into a gin router.
type Server struct {
	store  *session.Store
	router *gin.Engine
}

// New builds a Server around the given store.
func New(store *session.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{store: store, router: gin.New()}
	s.router.Use(gin.Recovery())
	s.routes()
	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error { return s.router.Run(addr) }

func (s *Server) routes() {
	v1 := s.router.Group("/api/v1")
	v1.POST("/scans", s.createScan)
	v1.GET("/scans", s.listScans)
	v1.GET("/scans/:id", s.getScan)
	v1.GET("/scans/:id/findings", s.getFindings)
	v1.GET("/scans/:id/report", s.getReport)
	v1.GET("/risk/summary", s.riskSummary)
	v1.GET("/risk/top", s.riskTop)
	v1.GET("/risk/features", s.riskFeatures)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) createScan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg := engine.Config{
		Root:            req.Path,
		IncludeGlobs:    req.Include,
		ExcludeGlobs:    req.Exclude,
		MaxBytes:        req.MaxBytes,
		MaxFiles:        req.MaxFiles,
		Threads:         req.Threads,
		DefaultExcludes: true,
	}
	if req.DefaultExcludes != nil {
		cfg.DefaultExcludes = *req.DefaultExcludes
	}
	if req.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	top := req.Top
	if top <= 0 {
		top = 10
	}

	snap := s.store.Create()
	go func() {
		// Errors land in the session snapshot; nothing to do here.
		_, _ = s.store.Run(context.Background(), snap.ScanID, cfg, top)
	}()

	c.JSON(http.StatusAccepted, gin.H{"scan_id": snap.ScanID, "status": string(snap.Status)})
}

func (s *Server) listScans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scans": s.store.List()})
}

func (s *Server) getScan(c *gin.Context) {
	snap, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) getFindings(c *gin.Context) {
	snap, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}
	if !snap.Ready() {
		c.JSON(http.StatusConflict, gin.H{"error": "scan not finished", "status": string(snap.Status)})
		return
	}
	findings := snap.Findings
	if findings == nil {
		findings = []types.EnrichedFinding{}
	}
	c.JSON(http.StatusOK, gin.H{
		"scan_id":  snap.ScanID,
		"total":    len(findings),
		"findings": findings,
	})
}

func (s *Server) getReport(c *gin.Context) {
	snap, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}
	if !snap.Ready() {
		c.JSON(http.StatusConflict, gin.H{"error": "scan not finished", "status": string(snap.Status)})
		return
	}
	format, err := report.ParseFormat(c.DefaultQuery("format", "narrative"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	art, err := report.Generate(snap, s.store.Table(), format, report.Options{
		IncludeAIAnalysis: c.Query("analysis") == "true",
		IncludeSHAPPlots:  c.Query("plots") == "true",
		IncludeDashboard:  c.Query("plots") == "true",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+art.Filename)
	c.Data(http.StatusOK, art.ContentKind, art.Content)
}

func (s *Server) riskSummary(c *gin.Context) {
	table := s.store.Table()
	c.JSON(http.StatusOK, gin.H{
		"fingerprint": table.Fingerprint(),
		"metadata":    table.Metadata(),
		"statistics":  table.Stats(),
	})
}

func (s *Server) riskTop(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	var records []types.RiskRecord
	if label := c.Query("label"); label != "" {
		records = s.store.Table().TopByLabel(types.RiskLabel(label), limit)
	} else {
		records = s.store.Table().TopPriorities(limit)
	}
	c.JSON(http.StatusOK, gin.H{"total": len(records), "records": records})
}

func (s *Server) riskFeatures(c *gin.Context) {
	features := s.store.Table().Features()
	c.JSON(http.StatusOK, gin.H{"total": len(features), "features": features})
}
