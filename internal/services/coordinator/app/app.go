// Package app implements the coordination workflows on top of the backend
// contracts: collaborator aggregation and matchmaking, the invitation
// lifecycle, goal management, task generation, and project chat.
package app

import (
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/collabhub/coordinator/internal/services/coordinator/api"
	"github.com/collabhub/coordinator/internal/services/coordinator/storage"
)

const tracerName = "github.com/collabhub/coordinator/internal/services/coordinator/app"

// SuggestionLimit caps dashboard collaborator suggestions.
const SuggestionLimit = 5

// Config wires a Coordinator.
type Config struct {
	// Backend is the remote contract implementation. Required.
	Backend api.Backend
	// Cache is the offline snapshot store. Optional; reads skip caching
	// when nil.
	Cache storage.Store
	// Logger receives degradation warnings. Defaults to log.Default().
	Logger *log.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Coordinator executes collaboration workflows against the backend.
type Coordinator struct {
	backend api.Backend
	cache   storage.Store
	logger  *log.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// New creates a Coordinator from cfg.
func New(cfg Config) (*Coordinator, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		backend: cfg.Backend,
		cache:   cfg.Cache,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		now:     now,
	}, nil
}
