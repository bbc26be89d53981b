package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/KirkDiggler/cosmo-api/internal/engine/sharecode"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/wire"
	"github.com/KirkDiggler/cosmo-api/internal/orchestrators/team"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/locale"
)

// CreateShare handles POST /api/share
func (h *Handler) CreateShare(w http.ResponseWriter, r *http.Request) {
	var in wire.ShareRequest
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.teamService.CreateShare(r.Context(), &team.CreateShareInput{
		Team:  in.Team,
		Name:  in.Name,
		Notes: in.Notes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, &wire.CreateShareResponse{
		ShortCode: out.ShortCode,
		ExpiresAt: out.ExpiresAt,
	})
}

// GetShare handles GET /api/share/{code}
func (h *Handler) GetShare(w http.ResponseWriter, r *http.Request) {
	out, err := h.teamService.ResolveShare(r.Context(), &team.ResolveShareInput{
		Code: chi.URLParam(r, "code"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.NewShareResponse(out))
}

// EncodeInline handles POST /api/share/inline
func (h *Handler) EncodeInline(w http.ResponseWriter, r *http.Request) {
	var in wire.ShareRequest
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.teamService.EncodeInline(r.Context(), &team.EncodeInlineInput{
		Team:  in.Team,
		Name:  in.Name,
		Notes: in.Notes,
		Style: sharecode.Style(in.Style),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &wire.TokenResponse{Token: out.Token})
}

// DecodeInline handles GET /api/share/inline/{token}. The raw path segment
// is passed on so that escaped tokens reach the codec untouched.
func (h *Handler) DecodeInline(w http.ResponseWriter, r *http.Request) {
	out, err := h.teamService.DecodeInline(r.Context(), &team.DecodeInlineInput{
		Token: chi.URLParam(r, "token"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &wire.TeamResponse{Team: out.Team, Name: out.Name, Notes: out.Notes})
}

// ResolveSynergies handles POST /api/synergies
func (h *Handler) ResolveSynergies(w http.ResponseWriter, r *http.Request) {
	var in wire.SynergiesRequest
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	tag := r.URL.Query().Get("locale")
	if tag == "" {
		tag = in.Locale
	}
	if tag == "" {
		tag = locale.FromAcceptLanguage(r.Header.Get("Accept-Language"))
	}

	out, err := h.teamService.ResolveSynergies(r.Context(), &team.ResolveSynergiesInput{
		Team:   in.Team,
		Locale: tag,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.NewSynergiesResponse(out))
}

// ListCharacters handles GET /api/characters
func (h *Handler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	out, err := h.teamService.ListCharacters(r.Context(), &team.ListCharactersInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.NewCharactersResponse(out))
}

// Healthz handles GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			h.writeError(w, r, errors.WrapWithCode(err, errors.CodeUnavailable, "dependency unavailable"))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request body")
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeInternal || code == errors.CodeUnavailable {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", code.String()),
			zap.Error(err),
		)
	}

	writeJSON(w, code.HTTPStatus(), &wire.ErrorResponse{
		Code:    code.String(),
		Message: errors.GetMessage(err),
		Meta:    errors.GetMeta(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
