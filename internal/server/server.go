package server

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/athanor/almagest/internal/config"
	"github.com/athanor/almagest/internal/core"
	"github.com/athanor/almagest/internal/core/model"
	"github.com/athanor/almagest/internal/driver"
)

type Server struct {
	Engine *core.Engine
	Driver driver.GraphDriver
	Log    *zap.Logger
}

// NewServer wires config, store driver and engine. Environment variables
// override the store settings from the config file.
func NewServer(cfg *config.Config, log *zap.Logger) (*Server, error) {
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		cfg.Store.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		cfg.Store.User = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		cfg.Store.Password = pass
	}

	d, err := driver.NewNeo4jDriver(cfg.Store.URI, cfg.Store.User, cfg.Store.Password, log)
	if err != nil {
		return nil, err
	}

	return &Server{
		Engine: core.NewEngine(d, cfg, log),
		Driver: d,
		Log:    log,
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/evaluate", s.Evaluate)
	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(metricsHandler()))

	return r
}

// Evaluate runs one weighting evaluation for a location+instant snapshot.
func (s *Server) Evaluate(c *gin.Context) {
	var req model.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	start := time.Now()
	doc, err := s.Engine.Evaluate(c.Request.Context(), req)
	evaluationDuration.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, core.ErrInvalidRequest):
		evaluationsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, core.ErrGraphQuery):
		evaluationsTotal.WithLabelValues("store_error").Inc()
		s.Log.Error("graph store query failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "correspondence graph unavailable"})
		return
	case err != nil:
		evaluationsTotal.WithLabelValues("error").Inc()
		s.Log.Error("evaluation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "evaluation failed"})
		return
	}

	evaluationsTotal.WithLabelValues("ok").Inc()
	s.Log.Info("evaluation complete",
		zap.String("evaluation_id", doc.EvaluationID),
		zap.String("dominant", string(doc.Metadata.Dominant)),
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("edges", len(doc.Edges)))
	c.JSON(http.StatusOK, doc)
}

// Health verifies connectivity to the correspondence store.
func (s *Server) Health(c *gin.Context) {
	if err := s.Driver.VerifyConnectivity(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "store": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
