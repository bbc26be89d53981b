// Package roster provides read access to the character roster
package roster

import (
	"context"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rostermock github.com/KirkDiggler/cosmo-api/internal/repositories/roster Repository

// ListInput contains parameters for listing the roster
type ListInput struct{}

// ListOutput contains the roster in display order
type ListOutput struct {
	Characters []*entities.CharacterRecord
}

// GetInput contains parameters for loading one character
type GetInput struct {
	ID string
}

// GetOutput contains the loaded character
type GetOutput struct {
	Character *entities.CharacterRecord
}

// Repository serves roster characters. Callers never mutate the returned
// records.
type Repository interface {
	// List returns every character in roster order
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Get returns one character by ID, NotFound when missing
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}
