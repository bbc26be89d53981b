package v1alpha1

import (
	"context"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/cosmo-api/internal/engine/sharecode"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/wire"
	"github.com/KirkDiggler/cosmo-api/internal/orchestrators/team"
)

// HandlerConfig holds the dependencies for the handler
type HandlerConfig struct {
	TeamService team.Service
}

// Validate ensures all required dependencies are provided
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.TeamService == nil {
		return errors.InvalidArgument("team service is required")
	}
	return nil
}

// Handler implements TeamServiceServer
type Handler struct {
	teamService team.Service
}

// NewHandler creates a new team handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{teamService: cfg.TeamService}, nil
}

// CreateShare publishes a team under a short code
func (h *Handler) CreateShare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in wire.ShareRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.teamService.CreateShare(ctx, &team.CreateShareInput{
		Team:  in.Team,
		Name:  in.Name,
		Notes: in.Notes,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&wire.CreateShareResponse{ShortCode: out.ShortCode, ExpiresAt: out.ExpiresAt})
}

// GetShare loads a share by code
func (h *Handler) GetShare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in wire.GetShareRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.teamService.ResolveShare(ctx, &team.ResolveShareInput{Code: in.Code})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(wire.NewShareResponse(out))
}

// EncodeInline packs a team into a link token
func (h *Handler) EncodeInline(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in wire.ShareRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.teamService.EncodeInline(ctx, &team.EncodeInlineInput{
		Team:  in.Team,
		Name:  in.Name,
		Notes: in.Notes,
		Style: sharecode.Style(in.Style),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&wire.TokenResponse{Token: out.Token})
}

// DecodeInline unpacks a link token
func (h *Handler) DecodeInline(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in wire.DecodeTokenRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.teamService.DecodeInline(ctx, &team.DecodeInlineInput{Token: in.Token})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&wire.TeamResponse{Team: out.Team, Name: out.Name, Notes: out.Notes})
}

// ResolveSynergies lists the active bonds and combine skills of a team
func (h *Handler) ResolveSynergies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in wire.SynergiesRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.teamService.ResolveSynergies(ctx, &team.ResolveSynergiesInput{
		Team:   in.Team,
		Locale: in.Locale,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(wire.NewSynergiesResponse(out))
}

// ListCharacters returns the roster
func (h *Handler) ListCharacters(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.teamService.ListCharacters(ctx, &team.ListCharactersInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(wire.NewCharactersResponse(out))
}

func respond(v interface{}) (*structpb.Struct, error) {
	s, err := ToStruct(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return s, nil
}

// ToStruct converts a JSON-tagged value into a Struct message
func ToStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode message")
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "encode message")
	}
	return s, nil
}

// FromStruct fills a JSON-tagged value from a Struct message. A nil
// message leaves v untouched.
func FromStruct(s *structpb.Struct, v interface{}) error {
	if s == nil {
		return nil
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid message")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid message")
	}
	return nil
}
