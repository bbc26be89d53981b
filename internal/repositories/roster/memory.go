package roster

import (
	"context"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
)

type memoryRepository struct {
	index *entities.RosterIndex
}

// NewInMemoryRepository serves a fixed set of characters
func NewInMemoryRepository(characters []*entities.CharacterRecord) Repository {
	return &memoryRepository{index: entities.NewRosterIndex(characters)}
}

var _ Repository = (*memoryRepository)(nil)

func (r *memoryRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "list roster")
	}

	all := r.index.All()
	characters := make([]*entities.CharacterRecord, len(all))
	copy(characters, all)

	return &ListOutput{Characters: characters}, nil
}

func (r *memoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("character id cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "get character")
	}

	c, ok := r.index.Find(input.ID)
	if !ok {
		return nil, errors.NotFoundf("character %s not found", input.ID).WithMeta("character_id", input.ID)
	}

	return &GetOutput{Character: c}, nil
}
