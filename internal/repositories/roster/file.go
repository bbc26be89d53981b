package roster

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
)

type rosterDocument struct {
	Characters []*entities.CharacterRecord `yaml:"characters"`
}

// LoadFile reads a roster from YAML or JSON. The document is either a list
// of characters or a mapping with a "characters" list.
func LoadFile(path string) ([]*entities.CharacterRecord, error) {
	data, err := os.ReadFile(path) // #nosec G304 operator supplied path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("roster file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read roster file %s", path)
	}

	return Parse(data)
}

// Parse decodes and validates roster data
func Parse(data []byte) ([]*entities.CharacterRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse roster")
	}

	var characters []*entities.CharacterRecord
	if len(node.Content) > 0 {
		root := node.Content[0]
		var err error
		switch root.Kind {
		case yaml.SequenceNode:
			err = root.Decode(&characters)
		case yaml.MappingNode:
			var doc rosterDocument
			err = root.Decode(&doc)
			characters = doc.Characters
		default:
			err = errors.New(errors.CodeInvalidArgument, "roster must be a list or a mapping with characters")
		}
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode roster")
		}
	}

	seen := make(map[string]int, len(characters))
	for i, c := range characters {
		if err := c.Validate(); err != nil {
			return nil, errors.Wrapf(err, "character %d", i)
		}
		if first, dup := seen[c.ID]; dup {
			return nil, errors.InvalidArgumentf("character %d: id %q already used by character %d", i, c.ID, first)
		}
		seen[c.ID] = i
	}

	return characters, nil
}

// NewFileRepository loads a roster file once and serves it from memory
func NewFileRepository(path string) (Repository, error) {
	characters, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewInMemoryRepository(characters), nil
}
