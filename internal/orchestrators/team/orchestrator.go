// Package team implements team sharing and synergy resolution
package team

//go:generate mockgen -destination=mock/mock_service.go -package=teammock github.com/KirkDiggler/cosmo-api/internal/orchestrators/team Service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/cosmo-api/internal/engine/sharecode"
	"github.com/KirkDiggler/cosmo-api/internal/engine/synergy"
	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/metrics"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/idgen"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/roster"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/shares"
)

const (
	// DefaultTeamName is used when a share has no name
	DefaultTeamName = "Untitled Team"

	// DefaultMaxAttempts bounds the short code retry loop
	DefaultMaxAttempts = 10

	maxNameLength  = 100
	maxNotesLength = 2000
)

// Service defines team sharing and synergy operations
type Service interface {
	CreateShare(ctx context.Context, input *CreateShareInput) (*CreateShareOutput, error)
	ResolveShare(ctx context.Context, input *ResolveShareInput) (*ResolveShareOutput, error)

	EncodeInline(ctx context.Context, input *EncodeInlineInput) (*EncodeInlineOutput, error)
	DecodeInline(ctx context.Context, input *DecodeInlineInput) (*DecodeInlineOutput, error)

	ResolveSynergies(ctx context.Context, input *ResolveSynergiesInput) (*ResolveSynergiesOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
}

// Config holds the dependencies for the team orchestrator
type Config struct {
	SharesRepo shares.Repository
	RosterRepo roster.Repository
	// CodeGenerator produces short codes, defaults to 6 alphanumerics
	CodeGenerator idgen.Generator
	// CodeLength is the accepted short code length, defaults to the
	// generator's length
	CodeLength  int
	MaxAttempts int
	Resolver    *synergy.Resolver
	Logger      *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.SharesRepo == nil {
		vb.RequiredField("SharesRepo")
	}
	if c.RosterRepo == nil {
		vb.RequiredField("RosterRepo")
	}
	if c.MaxAttempts < 0 {
		vb.Field("MaxAttempts", "cannot be negative")
	}
	if c.CodeLength < 0 {
		vb.Field("CodeLength", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	sharesRepo  shares.Repository
	rosterRepo  roster.Repository
	codes       idgen.Generator
	codeLength  int
	maxAttempts int
	resolver    *synergy.Resolver
	logger      *zap.Logger
}

// NewOrchestrator creates a team orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		sharesRepo:  cfg.SharesRepo,
		rosterRepo:  cfg.RosterRepo,
		codes:       cfg.CodeGenerator,
		codeLength:  cfg.CodeLength,
		maxAttempts: cfg.MaxAttempts,
		resolver:    cfg.Resolver,
		logger:      cfg.Logger,
	}
	if o.codes == nil {
		o.codes = idgen.NewShortCode(idgen.DefaultShortCodeLength)
	}
	if o.codeLength == 0 {
		o.codeLength = idgen.DefaultShortCodeLength
		if sc, ok := o.codes.(*idgen.ShortCodeGenerator); ok {
			o.codeLength = sc.Length()
		}
	}
	if o.maxAttempts == 0 {
		o.maxAttempts = DefaultMaxAttempts
	}
	if o.resolver == nil {
		o.resolver = synergy.NewResolver(nil)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return o, nil
}

// CreateShare stores the team under a fresh short code. Codes are
// generated until one is free; collisions and storage failures both use
// up an attempt.
func (o *orchestrator) CreateShare(ctx context.Context, input *CreateShareInput) (*CreateShareOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateShareable(input.Team, input.Name, input.Notes); err != nil {
		return nil, err
	}

	name := defaultName(input.Name)

	var lastErr error
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "create share")
		}

		code := o.codes.Generate()
		log := o.logger.With(zap.String("short_code", code), zap.Int("attempt", attempt))

		exists, err := o.sharesRepo.Exists(ctx, shares.ExistsInput{ShortCode: code})
		if err != nil {
			if !retryable(err) {
				return nil, errors.Wrap(err, "check short code")
			}
			log.Warn("short code check failed", zap.Error(err))
			metrics.ShortCodeAttempts.WithLabelValues("persistence").Inc()
			lastErr = err
			continue
		}
		if exists.Exists {
			log.Debug("short code collision")
			metrics.ShortCodeAttempts.WithLabelValues("collision").Inc()
			lastErr = nil
			continue
		}

		out, err := o.sharesRepo.Create(ctx, shares.CreateInput{
			ShortCode: code,
			Team:      input.Team,
			Name:      name,
			Notes:     input.Notes,
		})
		if err != nil {
			if errors.IsAlreadyExists(err) {
				log.Debug("short code taken concurrently")
				metrics.ShortCodeAttempts.WithLabelValues("collision").Inc()
				lastErr = nil
				continue
			}
			if !retryable(err) {
				return nil, errors.Wrap(err, "store share")
			}
			log.Warn("storing share failed", zap.Error(err))
			metrics.ShortCodeAttempts.WithLabelValues("persistence").Inc()
			lastErr = err
			continue
		}

		metrics.SharesCreated.Inc()
		log.Info("share created", zap.Time("expires_at", out.Share.ExpiresAt))

		return &CreateShareOutput{
			ShortCode: code,
			ExpiresAt: out.Share.ExpiresAt,
		}, nil
	}

	if lastErr != nil {
		return nil, errors.WrapWithCodef(lastErr, errors.CodeUnavailable,
			"share storage unavailable after %d attempts", o.maxAttempts)
	}
	return nil, errors.ResourceExhaustedf("no free short code after %d attempts", o.maxAttempts)
}

// ResolveShare looks a share up by code
func (o *orchestrator) ResolveShare(ctx context.Context, input *ResolveShareInput) (*ResolveShareOutput, error) {
	if input == nil || strings.TrimSpace(input.Code) == "" {
		return nil, errors.InvalidArgument("share code is required")
	}

	code := strings.TrimSpace(input.Code)
	if !idgen.IsShortCode(code, o.codeLength) {
		metrics.ShareLookups.WithLabelValues(metrics.LookupNotFound).Inc()
		return nil, errors.NotFoundf("share %s not found", code).WithMeta("short_code", code)
	}

	out, err := o.sharesRepo.Get(ctx, shares.GetInput{ShortCode: code})
	if err != nil {
		if errors.IsNotFound(err) {
			metrics.ShareLookups.WithLabelValues(metrics.LookupNotFound).Inc()
			return nil, err
		}
		metrics.ShareLookups.WithLabelValues(metrics.LookupError).Inc()
		return nil, errors.Wrap(err, "resolve share")
	}

	metrics.ShareLookups.WithLabelValues(metrics.LookupFound).Inc()
	return &ResolveShareOutput{Share: out.Share}, nil
}

// EncodeInline packs the team into a URL safe token
func (o *orchestrator) EncodeInline(_ context.Context, input *EncodeInlineInput) (*EncodeInlineOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateShareable(input.Team, input.Name, input.Notes); err != nil {
		return nil, err
	}

	style, err := sharecode.ParseStyle(string(input.Style))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid style")
	}

	name := input.Name
	if name == "" {
		name = DefaultTeamName
	}

	token, err := sharecode.Encode(sharecode.NewPayload(input.Team, name, input.Notes, style))
	if err != nil {
		return nil, errors.Wrap(err, "encode share token")
	}

	return &EncodeInlineOutput{Token: token}, nil
}

// DecodeInline unpacks a token and hydrates its slots from the current
// roster. Without a roster the embedded snapshots are used.
func (o *orchestrator) DecodeInline(ctx context.Context, input *DecodeInlineInput) (*DecodeInlineOutput, error) {
	if input == nil || input.Token == "" {
		return nil, errors.InvalidArgument("token is required")
	}

	payload, err := sharecode.Decode(input.Token)
	if err != nil {
		if de, ok := err.(*sharecode.DecodeError); ok {
			metrics.InlineDecodeFailures.WithLabelValues(string(de.Stage)).Inc()
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid share token")
	}

	index := o.loadRoster(ctx, "decode_inline")

	return &DecodeInlineOutput{
		Team:  sharecode.Hydrate(payload.Team, index),
		Name:  payload.Name,
		Notes: payload.Notes,
	}, nil
}

// ResolveSynergies evaluates the team against the current roster. A roster
// failure only degrades partner display.
func (o *orchestrator) ResolveSynergies(ctx context.Context, input *ResolveSynergiesInput) (*ResolveSynergiesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	index := o.loadRoster(ctx, "resolve_synergies")
	result := o.resolver.Resolve(input.Team, index.All(), input.Locale)
	metrics.SynergyResolutions.Inc()

	return &ResolveSynergiesOutput{Result: result}, nil
}

// ListCharacters returns the roster
func (o *orchestrator) ListCharacters(ctx context.Context, _ *ListCharactersInput) (*ListCharactersOutput, error) {
	out, err := o.rosterRepo.List(ctx, roster.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "list characters")
	}
	return &ListCharactersOutput{Characters: out.Characters}, nil
}

// loadRoster returns nil when the roster cannot be read
func (o *orchestrator) loadRoster(ctx context.Context, operation string) *entities.RosterIndex {
	out, err := o.rosterRepo.List(ctx, roster.ListInput{})
	if err != nil {
		o.logger.Warn("continuing without roster",
			zap.String("operation", operation),
			zap.Error(err),
		)
		metrics.RosterFallbacks.WithLabelValues(operation).Inc()
		return nil
	}
	return entities.NewRosterIndex(out.Characters)
}

func validateShareable(team *entities.TeamComposition, name, notes string) error {
	if team == nil {
		return errors.InvalidArgument("team is required")
	}
	if team.IsEmpty() {
		return errors.InvalidArgument("team has no characters")
	}
	if err := team.Validate(); err != nil {
		return err
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMaxLength("name", name, maxNameLength, vb)
	errors.ValidateMaxLength("notes", notes, maxNotesLength, vb)
	return vb.Build()
}

func defaultName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return DefaultTeamName
	}
	return name
}

// retryable reports whether another short code attempt can help
func retryable(err error) bool {
	switch errors.GetCode(err) {
	case errors.CodeCanceled, errors.CodeDeadlineExceeded, errors.CodeInvalidArgument:
		return false
	default:
		return true
	}
}
