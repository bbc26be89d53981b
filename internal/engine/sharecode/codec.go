package sharecode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Stage names the decoding step that rejected a token
type Stage string

// Decode stages
const (
	StageBase64  Stage = "base64"
	StageText    Stage = "text"
	StagePayload Stage = "payload"
)

// DecodeError reports a token that cannot be read
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid share token (%s): %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is or wraps a *DecodeError
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// legacyPrefix is an escaped '{', found in tokens that were percent-encoded
// before base64
const legacyPrefix = "%7B"

// Encode writes a payload as a URL safe token
func Encode(p *Payload) (string, error) {
	if p == nil {
		return "", errors.New("payload is required")
	}
	if p.Team == nil {
		p = &Payload{Team: CompactTeam{}, Name: p.Name, Notes: p.Notes}
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reads a token produced by Encode or by the older percent-encoded
// format
func Decode(token string) (*Payload, error) {
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}
	token = strings.Trim(token, "\r\n\t")
	if strings.TrimSpace(token) == "" {
		return nil, &DecodeError{Stage: StageBase64, Err: errors.New("empty token")}
	}

	raw, err := base64.StdEncoding.DecodeString(normalizeBase64(token))
	if err != nil {
		return nil, &DecodeError{Stage: StageBase64, Err: err}
	}

	if !utf8.Valid(raw) {
		return nil, &DecodeError{Stage: StageText, Err: errors.New("token is not valid UTF-8")}
	}

	if bytes.HasPrefix(raw, []byte(legacyPrefix)) {
		text, err := url.PathUnescape(string(raw))
		if err != nil {
			return nil, &DecodeError{Stage: StageText, Err: err}
		}
		raw = []byte(text)
	}

	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, &DecodeError{Stage: StagePayload, Err: errors.New("payload is null")}
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &DecodeError{Stage: StagePayload, Err: err}
	}
	if err := p.validate(); err != nil {
		return nil, &DecodeError{Stage: StagePayload, Err: err}
	}
	if p.Team == nil {
		p.Team = CompactTeam{}
	}

	return &p, nil
}

// normalizeBase64 maps both alphabets onto the standard one and restores
// padding. A space is a '+' that went through form decoding.
func normalizeBase64(s string) string {
	s = strings.TrimRight(s, "=")
	s = strings.NewReplacer(" ", "+", "-", "+", "_", "/").Replace(s)
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}
	return s
}
