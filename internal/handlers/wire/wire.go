// Package wire holds the JSON request and response shapes shared by the
// HTTP and gRPC transports
package wire

import (
	"time"

	"github.com/KirkDiggler/cosmo-api/internal/engine/synergy"
	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/orchestrators/team"
)

// ShareRequest is the body of create-share and encode-inline calls
type ShareRequest struct {
	Team  *entities.TeamComposition `json:"team"`
	Name  string                    `json:"name,omitempty"`
	Notes string                    `json:"notes,omitempty"`
	// Style only applies to inline tokens
	Style string `json:"style,omitempty"`
}

// CreateShareResponse carries the assigned short code
type CreateShareResponse struct {
	ShortCode string    `json:"shortCode"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GetShareRequest names a share by code
type GetShareRequest struct {
	Code string `json:"code"`
}

// ShareResponse is a stored share
type ShareResponse struct {
	ShortCode string                    `json:"shortCode"`
	Team      *entities.TeamComposition `json:"team"`
	Name      string                    `json:"name"`
	Notes     string                    `json:"notes"`
	CreatedAt time.Time                 `json:"createdAt"`
	ExpiresAt time.Time                 `json:"expiresAt"`
}

// TokenResponse carries an inline token
type TokenResponse struct {
	Token string `json:"token"`
}

// DecodeTokenRequest carries an inline token to unpack
type DecodeTokenRequest struct {
	Token string `json:"token"`
}

// TeamResponse is a team unpacked from an inline token
type TeamResponse struct {
	Team  *entities.TeamComposition `json:"team"`
	Name  string                    `json:"name"`
	Notes string                    `json:"notes"`
}

// SynergiesRequest asks for the active synergies of a team
type SynergiesRequest struct {
	Team   *entities.TeamComposition `json:"team"`
	Locale string                    `json:"locale,omitempty"`
}

// SynergiesResponse lists active bonds and combine skills
type SynergiesResponse = synergy.Result

// CharactersResponse is the roster
type CharactersResponse struct {
	Characters []*entities.CharacterRecord `json:"characters"`
}

// ErrorResponse is the body of every failed HTTP call
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// NewShareResponse converts a stored share
func NewShareResponse(out *team.ResolveShareOutput) *ShareResponse {
	if out == nil || out.Share == nil {
		return &ShareResponse{}
	}
	s := out.Share
	return &ShareResponse{
		ShortCode: s.ShortCode,
		Team:      s.Team,
		Name:      s.Name,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// NewSynergiesResponse never returns nil slices
func NewSynergiesResponse(out *team.ResolveSynergiesOutput) *SynergiesResponse {
	if out == nil || out.Result == nil {
		return &SynergiesResponse{
			Bonds:         []synergy.ActiveBond{},
			CombineSkills: []synergy.ActiveCombineSkill{},
		}
	}
	return out.Result
}

// NewCharactersResponse never returns a nil slice
func NewCharactersResponse(out *team.ListCharactersOutput) *CharactersResponse {
	resp := &CharactersResponse{Characters: []*entities.CharacterRecord{}}
	if out != nil && out.Characters != nil {
		resp.Characters = out.Characters
	}
	return resp
}
