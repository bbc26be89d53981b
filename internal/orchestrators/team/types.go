package team

import (
	"time"

	"github.com/KirkDiggler/cosmo-api/internal/engine/sharecode"
	"github.com/KirkDiggler/cosmo-api/internal/engine/synergy"
	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/shares"
)

// CreateShareInput contains the team to publish under a short code
type CreateShareInput struct {
	Team  *entities.TeamComposition
	Name  string
	Notes string
}

// CreateShareOutput contains the assigned code
type CreateShareOutput struct {
	ShortCode string
	ExpiresAt time.Time
}

// ResolveShareInput contains the code to look up
type ResolveShareInput struct {
	Code string
}

// ResolveShareOutput contains the stored share
type ResolveShareOutput struct {
	Share *shares.SharedTeam
}

// EncodeInlineInput contains the team to pack into a token
type EncodeInlineInput struct {
	Team  *entities.TeamComposition
	Name  string
	Notes string
	Style sharecode.Style
}

// EncodeInlineOutput contains the token
type EncodeInlineOutput struct {
	Token string
}

// DecodeInlineInput contains a token from a share link
type DecodeInlineInput struct {
	Token string
}

// DecodeInlineOutput contains the hydrated team
type DecodeInlineOutput struct {
	Team  *entities.TeamComposition
	Name  string
	Notes string
}

// ResolveSynergiesInput contains the team to evaluate
type ResolveSynergiesInput struct {
	Team   *entities.TeamComposition
	Locale string
}

// ResolveSynergiesOutput contains the active synergies
type ResolveSynergiesOutput struct {
	Result *synergy.Result
}

// ListCharactersInput contains parameters for listing the roster
type ListCharactersInput struct{}

// ListCharactersOutput contains the roster in display order
type ListCharactersOutput struct {
	Characters []*entities.CharacterRecord
}
