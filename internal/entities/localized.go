package entities

import (
	"encoding/json"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cosmo-api/internal/pkg/locale"
)

// LocalizedText is display text keyed by language code. Older roster data
// stores bare strings instead of per-language maps, so a LocalizedText can
// also carry a single plain value that is returned for every locale.
type LocalizedText struct {
	plain   string
	isPlain bool
	values  map[string]string
}

// Plain wraps a bare string
func Plain(s string) LocalizedText {
	return LocalizedText{plain: s, isPlain: true}
}

// Localized wraps a language -> text map. The map is copied.
func Localized(values map[string]string) LocalizedText {
	if len(values) == 0 {
		return LocalizedText{}
	}
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return LocalizedText{values: copied}
}

// EN is shorthand for a text with only an English entry
func EN(s string) LocalizedText {
	return Localized(map[string]string{locale.Default: s})
}

// IsPlain reports whether the text is a bare string
func (t LocalizedText) IsPlain() bool {
	return t.isPlain
}

// IsEmpty reports whether the text carries no non-blank value
func (t LocalizedText) IsEmpty() bool {
	return len(t.Values()) == 0
}

// Get returns the raw value for a language key
func (t LocalizedText) Get(lang string) (string, bool) {
	if t.isPlain {
		return t.plain, true
	}
	v, ok := t.values[lang]
	return v, ok
}

// Map returns a copy of the per-language values. Plain text has no map.
func (t LocalizedText) Map() map[string]string {
	if t.isPlain || len(t.values) == 0 {
		return nil
	}
	copied := make(map[string]string, len(t.values))
	for k, v := range t.values {
		copied[k] = v
	}
	return copied
}

// Values returns every non-blank value, ordered by language key
func (t LocalizedText) Values() []string {
	if t.isPlain {
		if strings.TrimSpace(t.plain) == "" {
			return nil
		}
		return []string{t.plain}
	}

	keys := make([]string, 0, len(t.values))
	for k, v := range t.values {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, t.values[k])
	}
	return values
}

// Localize resolves the text for a language tag: the primary language when
// non-blank, then English, then "". Plain text is returned unchanged.
func (t LocalizedText) Localize(tag string) string {
	if t.isPlain {
		return t.plain
	}
	return locale.Text(t.values, tag)
}

// Equal compares two texts by shape and content
func (t LocalizedText) Equal(other LocalizedText) bool {
	if t.isPlain != other.isPlain {
		return false
	}
	if t.isPlain {
		return t.plain == other.plain
	}
	if len(t.values) != len(other.values) {
		return false
	}
	for k, v := range t.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MarshalJSON writes a plain text as a string and a localized text as an object
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.isPlain {
		return json.Marshal(t.plain)
	}
	if t.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t.values)
}

// UnmarshalJSON accepts a string, an object of strings or anything else.
// Non-string members are dropped and unreadable input becomes empty text.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	*t = LocalizedText{}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case string:
		*t = Plain(v)
	case map[string]interface{}:
		values := make(map[string]string, len(v))
		for k, member := range v {
			if s, ok := member.(string); ok {
				values[k] = s
			}
		}
		t.values = values
	}

	return nil
}

// MarshalYAML mirrors MarshalJSON
func (t LocalizedText) MarshalYAML() (interface{}, error) {
	if t.isPlain {
		return t.plain, nil
	}
	if t.values == nil {
		return map[string]string{}, nil
	}
	return t.values, nil
}

// UnmarshalYAML mirrors UnmarshalJSON for roster files
func (t *LocalizedText) UnmarshalYAML(node *yaml.Node) error {
	*t = LocalizedText{}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		*t = Plain(node.Value)
	case yaml.MappingNode:
		values := make(map[string]string, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
				continue
			}
			values[key.Value] = value.Value
		}
		t.values = values
	}

	return nil
}
