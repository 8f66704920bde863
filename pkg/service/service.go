package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/denysvitali/dirscope-runtime/internal/models"
	"github.com/denysvitali/dirscope-runtime/pkg/config"
	"github.com/denysvitali/dirscope-runtime/pkg/dirlist"
	"github.com/denysvitali/dirscope-runtime/pkg/homedir"
	"github.com/denysvitali/dirscope-runtime/pkg/telemetry"
)

// TracerName is the instrumentation name used for all spans
const TracerName = "dirscope-runtime"

// Service exposes the introspection operations to the transports
type Service struct {
	logger       *logrus.Logger
	resolver     *homedir.Resolver
	lister       *dirlist.Lister
	tracer       trace.Tracer
	startTime    time.Time
	lastCallTime time.Time
	mu           sync.RWMutex
}

// Option customizes a Service
type Option func(*Service)

// WithEnv replaces the environment the home directory is resolved from
func WithEnv(env homedir.Env) Option {
	return func(s *Service) {
		s.resolver = homedir.NewResolver(env)
	}
}

// WithLister replaces the directory lister
func WithLister(l *dirlist.Lister) Option {
	return func(s *Service) {
		s.lister = l
	}
}

// New creates a new service
func New(cfg *config.Config, logger *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		logger:       logger,
		resolver:     homedir.NewResolver(homedir.OSEnv{}),
		lister:       dirlist.NewOSLister(),
		tracer:       otel.Tracer(TracerName),
		startTime:    time.Now(),
		lastCallTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HomeDir resolves the home directory. ctx only carries trace state.
func (s *Service) HomeDir(ctx context.Context) (string, error) {
	ctx, span := s.tracer.Start(ctx, "home_dir")
	defer span.End()
	s.touch()

	home, err := s.resolver.Resolve()
	if err != nil {
		telemetry.RecordFailure(ctx, s.logger, "home_dir", "", err)
		return "", err
	}

	telemetry.RecordHomeDir(ctx, s.logger, home)
	return home, nil
}

// ListDir lists the immediate children of path. ctx only carries trace state;
// a started listing always runs to completion.
func (s *Service) ListDir(ctx context.Context, path string) (dirlist.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "list_dir")
	defer span.End()
	s.touch()

	listing, err := s.lister.List(path)
	if err != nil {
		telemetry.RecordFailure(ctx, s.logger, "list_dir", path, err)
		return nil, err
	}

	telemetry.RecordListing(ctx, s.logger, path, listing)
	return listing, nil
}

// Info returns uptime bookkeeping for the server info endpoint
func (s *Service) Info() models.ServerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ServerInfo{
		StartTime:    s.startTime,
		LastCallTime: s.lastCallTime,
		HomeEnvVars:  homedir.LookupOrder(),
	}
}

func (s *Service) touch() {
	s.mu.Lock()
	s.lastCallTime = time.Now()
	s.mu.Unlock()
}
