// Package entities contains the roster and team composition types shared by
// the synergy resolver, the share codecs and the transports
package entities

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/locale"
)

// CharacterRecord is one roster entry
type CharacterRecord struct {
	ID            string         `json:"id" yaml:"id"`
	Name          LocalizedText  `json:"name" yaml:"name"`
	Bonds         []Bond         `json:"bonds" yaml:"bonds"`
	CombineSkills []CombineSkill `json:"combineSkills" yaml:"combineSkills"`
	ImageURL      string         `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`

	// Presentational fields, opaque to synergy resolution
	Rarity      string        `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Faction     string        `json:"faction,omitempty" yaml:"faction,omitempty"`
	Positioning LocalizedText `json:"positioning" yaml:"positioning"`
}

// Bond is an attribute boost unlocked when every partner is on the team.
// Partners are name texts, not character IDs.
type Bond struct {
	Name     LocalizedText   `json:"name" yaml:"name"`
	Effect   LocalizedText   `json:"effect" yaml:"effect"`
	Partners []LocalizedText `json:"partners" yaml:"partners"`
}

// CombineSkill matches partners exactly like a Bond but carries an icon and
// is displayed ahead of bonds
type CombineSkill struct {
	Name        LocalizedText   `json:"name" yaml:"name"`
	Description LocalizedText   `json:"description" yaml:"description"`
	IconURL     string          `json:"iconUrl,omitempty" yaml:"iconUrl,omitempty"`
	Partners    []LocalizedText `json:"partners" yaml:"partners"`
}

type combineSkillJSON struct {
	Name        LocalizedText   `json:"name" yaml:"name"`
	Description LocalizedText   `json:"description" yaml:"description"`
	Effect      *LocalizedText  `json:"effect,omitempty" yaml:"effect"`
	IconURL     string          `json:"iconUrl,omitempty" yaml:"iconUrl"`
	Partners    []LocalizedText `json:"partners" yaml:"partners"`
}

// UnmarshalJSON accepts "effect" as an alias for "description"
func (s *CombineSkill) UnmarshalJSON(data []byte) error {
	var raw combineSkillJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.fromRaw(raw)
	return nil
}

// UnmarshalYAML accepts "effect" as an alias for "description"
func (s *CombineSkill) UnmarshalYAML(node *yaml.Node) error {
	var raw combineSkillJSON
	if err := node.Decode(&raw); err != nil {
		return err
	}
	s.fromRaw(raw)
	return nil
}

func (s *CombineSkill) fromRaw(raw combineSkillJSON) {
	s.Name = raw.Name
	s.Description = raw.Description
	if s.Description.IsEmpty() && raw.Effect != nil {
		s.Description = *raw.Effect
	}
	s.IconURL = raw.IconURL
	s.Partners = raw.Partners
}

type characterRecordJSON CharacterRecord

// UnmarshalJSON accepts the document key "_id" as an alias for "id", either
// as a string or as {"$oid": "..."}
func (c *CharacterRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		characterRecordJSON
		DocumentID json.RawMessage `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = CharacterRecord(raw.characterRecordJSON)
	if c.ID == "" && len(raw.DocumentID) > 0 {
		c.ID = documentID(raw.DocumentID)
	}
	return nil
}

func documentID(raw json.RawMessage) string {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &oid); err == nil {
		return oid.OID
	}
	return ""
}

// DisplayName returns the character name for a language tag
func (c *CharacterRecord) DisplayName(tag string) string {
	if c == nil {
		return ""
	}
	return c.Name.Localize(tag)
}

// Validate checks the fields a roster import depends on
func (c *CharacterRecord) Validate() error {
	if c == nil {
		return errors.InvalidArgument("character cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", c.ID, vb)

	switch {
	case c.Name.IsEmpty():
		vb.RequiredField("name")
	case !c.Name.IsPlain():
		if v, ok := c.Name.Get(locale.Default); !ok || v == "" {
			vb.Field("name", "must have an en entry")
		}
	}

	return vb.Build()
}
