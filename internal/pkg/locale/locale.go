// Package locale resolves language tags and per-language text maps
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Default is the fallback language every localized map is expected to carry
const Default = "en"

// Primary reduces a language tag to its lower-cased primary subtag as
// written. "pt-BR" and "pt" are equivalent, a blank tag is treated as Default.
// Deprecated codes such as "tl" or "iw" are kept since roster maps are keyed
// by them.
func Primary(tag string) string {
	primary, _, _ := strings.Cut(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"), "-")
	primary = strings.ToLower(strings.TrimSpace(primary))
	if primary == "" {
		return Default
	}
	return primary
}

// FromAcceptLanguage picks the preferred language of an Accept-Language
// header. The subtag comes from the header text, not the canonical tag.
func FromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return Default
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}

	preferred := tags[0].String()
	for _, entry := range strings.Split(header, ",") {
		raw, _, _ := strings.Cut(entry, ";")
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "*" {
			continue
		}
		if t, err := language.Parse(raw); err == nil && t.String() == preferred {
			return Primary(raw)
		}
	}

	return Primary(preferred)
}

// Text returns the value for the tag's primary language when it is non-blank,
// then the Default entry, then the empty string.
func Text(values map[string]string, tag string) string {
	if len(values) == 0 {
		return ""
	}

	if v, ok := values[Primary(tag)]; ok && strings.TrimSpace(v) != "" {
		return v
	}

	return values[Default]
}
