package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"github.com/denysvitali/dirscope-runtime/internal/models"
	"github.com/denysvitali/dirscope-runtime/pkg/config"
	"github.com/denysvitali/dirscope-runtime/pkg/fserr"
	"github.com/denysvitali/dirscope-runtime/pkg/mcp"
	"github.com/denysvitali/dirscope-runtime/pkg/service"
	"github.com/denysvitali/dirscope-runtime/pkg/telemetry"
)

// RequestIDHeader carries the per-request correlation ID
const RequestIDHeader = "X-Request-ID"

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *logrus.Logger
	service *service.Service
	mcp     *mcp.Server
	engine  *gin.Engine
	server  *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, logger *logrus.Logger, opts ...service.Option) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	svc := service.New(cfg, logger, opts...)

	// Set gin mode based on log level
	if logger.Level == logrus.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(ginLogger(logger))

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(telemetry.ServiceName))
	}

	engine.Use(corsMiddleware())

	if cfg.Server.SessionAPIKey != "" {
		engine.Use(authMiddleware(cfg.Server.SessionAPIKey))
	}

	server := &Server{
		config:  cfg,
		logger:  logger,
		service: svc,
		mcp:     mcp.NewServer(logger, svc),
		engine:  engine,
	}

	server.setupRoutes()

	return server, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: time.Duration(s.config.Server.ReadHeaderTimeoutSeconds) * time.Second,
	}

	s.logger.Infof("Starting server on port %d", s.config.Server.Port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Engine returns the gin engine for testing purposes
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) setupRoutes() {
	// Health check
	s.engine.GET("/alive", s.handleAlive)

	// Server info
	s.engine.GET("/server_info", s.handleServerInfo)

	// Introspection
	s.engine.GET("/home_dir", s.handleHomeDir)
	s.engine.POST("/home_dir", s.handleHomeDir)
	s.engine.GET("/list_dir", s.handleListDir)
	s.engine.POST("/list_dir", s.handleListDir)

	// MCP over streamable HTTP
	s.engine.Any("/mcp", gin.WrapH(s.mcp.HTTPHandler()))
}

func (s *Server) handleAlive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleServerInfo(c *gin.Context) {
	currentTime := time.Now()
	info := s.service.Info()

	uptime := currentTime.Sub(info.StartTime).Seconds()
	idleTime := currentTime.Sub(info.LastCallTime).Seconds()

	stats := s.service.SystemStats()
	resources := models.SystemResources{
		CPUCount:      runtime.NumCPU(),
		CPUPercent:    stats.CPUPercent,
		MemoryTotal:   stats.Memory.Total,
		MemoryUsed:    stats.Memory.Used,
		MemoryPercent: stats.Memory.SystemPercent,
		DiskTotal:     stats.Disk.Total,
		DiskUsed:      stats.Disk.Used,
		DiskPercent:   stats.Disk.Percent,
	}

	response := models.ServerInfoResponse{
		Uptime:      uptime,
		IdleTime:    idleTime,
		HomeEnvVars: info.HomeEnvVars,
		Resources:   resources,
	}

	s.logger.Debugf("Server info endpoint response: uptime=%.2fs, idle_time=%.2fs", uptime, idleTime)
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleHomeDir(c *gin.Context) {
	tracer := otel.Tracer(telemetry.ServiceName)
	ctx, span := tracer.Start(c.Request.Context(), "handle_home_dir")
	defer span.End()

	home, err := s.service.HomeDir(ctx)
	if err != nil {
		span.RecordError(err)
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HomeDirResponse{Path: home})
}

func (s *Server) handleListDir(c *gin.Context) {
	tracer := otel.Tracer(telemetry.ServiceName)
	ctx, span := tracer.Start(c.Request.Context(), "handle_list_dir")
	defer span.End()

	var req models.ListDirRequest
	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	span.SetAttributes(telemetry.AttrPath.String(req.Path))

	listing, err := s.service.ListDir(ctx, req.Path)
	if err != nil {
		span.RecordError(err)
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// writeError renders any operation failure the same way
func (s *Server) writeError(c *gin.Context, err error) {
	kind := fserr.KindOf(err)
	s.logger.WithFields(logrus.Fields{
		"kind":       kind,
		"request_id": c.GetString(RequestIDHeader),
	}).Warnf("Operation failed: %v", err)

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: err.Error(),
		Kind:  string(kind),
	})
}

// requestIDMiddleware propagates or assigns X-Request-ID
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ginLogger creates a gin logger middleware using logrus
func ginLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"status":     statusCode,
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"latency":    latency,
			"user_agent": c.Request.UserAgent(),
			"request_id": c.GetString(RequestIDHeader),
		})

		if raw != "" {
			entry = entry.WithField("query", raw)
		}

		if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request completed")
		}
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Session-API-Key, X-Request-ID, Mcp-Session-Id")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Mcp-Session-Id")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authMiddleware validates API key
func authMiddleware(expectedAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-Session-API-Key")
		if apiKey != expectedAPIKey {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Invalid API Key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
