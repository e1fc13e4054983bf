package storage

import (
	"context"
	"time"

	"github.com/viral-agent/internal/models"
)

// Repository defines the interface for generation history persistence
type Repository interface {
	SaveGeneration(ctx context.Context, gen *models.Generation) error
	ListGenerations(ctx context.Context, filter GenerationFilter) ([]*models.Generation, error)
	DeleteGenerationsBefore(ctx context.Context, before time.Time) (int64, error)

	// Maintenance
	Close() error
	Migrate() error
}

// GenerationFilter defines filtering options for history listings
type GenerationFilter struct {
	Niche     *string
	Since     *time.Time
	Limit     int
	Offset    int
	OrderDesc bool
}

// DefaultGenerationFilter returns a filter with sensible defaults
func DefaultGenerationFilter() GenerationFilter {
	return GenerationFilter{
		Limit:     50,
		OrderDesc: true,
	}
}
