// Package shares stores teams published under a short code
package shares

import (
	"context"
	"time"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=sharesmock github.com/KirkDiggler/cosmo-api/internal/repositories/shares Repository

// SharedTeam is a persisted share record
type SharedTeam struct {
	// ID is the record identifier, distinct from the public short code
	ID        string                    `json:"id"`
	ShortCode string                    `json:"shortCode"`
	Team      *entities.TeamComposition `json:"team"`
	Name      string                    `json:"name"`
	Notes     string                    `json:"notes"`
	CreatedAt time.Time                 `json:"createdAt"`
	ExpiresAt time.Time                 `json:"expiresAt"`
}

// ExistsInput contains parameters for checking a short code
type ExistsInput struct {
	ShortCode string
}

// ExistsOutput reports whether the code is taken
type ExistsOutput struct {
	Exists bool
}

// CreateInput contains the share to persist
type CreateInput struct {
	ShortCode string
	Team      *entities.TeamComposition
	Name      string
	Notes     string
}

// CreateOutput contains the stored record
type CreateOutput struct {
	Share *SharedTeam
}

// GetInput contains parameters for loading a share
type GetInput struct {
	ShortCode string
}

// GetOutput contains the loaded record
type GetOutput struct {
	Share *SharedTeam
}

// Repository persists shared teams. Records expire on their own; there is
// no delete.
type Repository interface {
	// Exists checks whether a short code is already taken
	Exists(ctx context.Context, input ExistsInput) (*ExistsOutput, error)

	// Create stores a share. It fails with AlreadyExists instead of
	// overwriting a code that another writer took first.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get loads a share, NotFound when missing or expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}
