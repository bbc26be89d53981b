package synergy

import (
	"strings"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
)

// DefaultMinPartnerLength keeps one-letter fragments such as initials from
// matching every name that contains the letter
const DefaultMinPartnerLength = 2

// Matcher decides whether a partner reference names a given character.
// Partner references are free text today; an ID based matcher can replace
// the default without touching activation or dedup.
type Matcher interface {
	Matches(partner entities.LocalizedText, character *entities.CharacterRecord) bool
}

// Normalize lower-cases s and drops every rune outside [a-z0-9]
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SubstringMatcher matches when a normalized partner value, in any language,
// is contained in a normalized character name value, in any language.
// Containment is one way: "Seiya" finds "Pegasus Seiya", not the reverse.
type SubstringMatcher struct {
	MinLength int
}

// Matches implements Matcher
func (m SubstringMatcher) Matches(partner entities.LocalizedText, character *entities.CharacterRecord) bool {
	if character == nil {
		return false
	}

	minLength := m.MinLength
	if minLength < 1 {
		minLength = 1
	}

	names := character.Name.Values()
	if len(names) == 0 {
		return false
	}

	normalizedNames := make([]string, len(names))
	for i, name := range names {
		normalizedNames[i] = Normalize(name)
	}

	for _, value := range partner.Values() {
		needle := Normalize(value)
		if len(needle) < minLength {
			continue
		}
		for _, name := range normalizedNames {
			if strings.Contains(name, needle) {
				return true
			}
		}
	}

	return false
}

var defaultMatcher Matcher = SubstringMatcher{MinLength: DefaultMinPartnerLength}

// DefaultMatcher returns the substring matcher used when none is configured
func DefaultMatcher() Matcher {
	return defaultMatcher
}

// IsPartnerPresent reports whether any character satisfies the partner
// reference under the default matcher
func IsPartnerPresent(partner entities.LocalizedText, characters []*entities.CharacterRecord) bool {
	return findMatch(defaultMatcher, partner, characters) != nil
}

func findMatch(m Matcher, partner entities.LocalizedText, characters []*entities.CharacterRecord) *entities.CharacterRecord {
	for _, c := range characters {
		if c != nil && m.Matches(partner, c) {
			return c
		}
	}
	return nil
}
