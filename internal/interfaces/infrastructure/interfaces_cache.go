package interfaces

import (
	"context"
	"errors"
	"time"

	"professor-registry/internal/domain/professor"
)

// ErrCacheMiss is returned by cache reads when the key is not present
var ErrCacheMiss = errors.New("cache miss")

type ProfessorCache interface {
	// Single professor by id
	GetProfessor(ctx context.Context, id uint) (*professor.Professor, error)
	SetProfessor(ctx context.Context, p *professor.Professor, ttl time.Duration) error
	InvalidateProfessor(ctx context.Context, id uint) error

	// Full listing
	GetProfessorList(ctx context.Context) ([]*professor.Professor, error)
	SetProfessorList(ctx context.Context, professors []*professor.Professor, ttl time.Duration) error
	InvalidateProfessorList(ctx context.Context) error

	// Health and connection management
	Health(ctx context.Context) error
	Close() error
}
