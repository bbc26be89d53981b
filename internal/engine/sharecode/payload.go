package sharecode

import (
	"fmt"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
)

// Style selects how Compact writes characters
type Style string

const (
	// StyleSnapshot embeds the full character record in each slot
	StyleSnapshot Style = "snapshot"
	// StyleReference writes the character ID with the record as fallback
	StyleReference Style = "reference"
)

// ParseStyle maps a request value to a Style, empty means snapshot
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case "", StyleSnapshot:
		return StyleSnapshot, nil
	case StyleReference:
		return StyleReference, nil
	default:
		return "", fmt.Errorf("unknown share style %q", s)
	}
}

// Payload is the decoded content of an inline token
type Payload struct {
	Team  CompactTeam `json:"team"`
	Name  string      `json:"name"`
	Notes string      `json:"notes"`
}

// CompactTeam holds the occupied slots only
type CompactTeam map[entities.SlotKey]*CompactSlot

// CompactSlot is one slot in either of the two wire shapes
type CompactSlot struct {
	Character         *entities.CharacterRecord `json:"character,omitempty"`
	CharacterID       string                    `json:"characterId,omitempty"`
	FallbackCharacter *entities.CharacterRecord `json:"fallbackCharacter,omitempty"`
	RelicID           string                    `json:"relicId"`
	CardIDs           []string                  `json:"cardIds"`
}

// lookupID is the ID to re-resolve against the roster
func (s *CompactSlot) lookupID() string {
	switch {
	case s.CharacterID != "":
		return s.CharacterID
	case s.Character != nil && s.Character.ID != "":
		return s.Character.ID
	case s.FallbackCharacter != nil:
		return s.FallbackCharacter.ID
	default:
		return ""
	}
}

// snapshot is the embedded record, if any
func (s *CompactSlot) snapshot() *entities.CharacterRecord {
	if s.Character != nil {
		return s.Character
	}
	return s.FallbackCharacter
}

// Compact converts a team into its wire form, dropping empty slots
func Compact(team *entities.TeamComposition, style Style) CompactTeam {
	compact := make(CompactTeam)
	for _, assignment := range team.Entries() {
		entry := assignment.Entry
		slot := &CompactSlot{
			RelicID: entry.RelicID,
			CardIDs: entry.CardIDs,
		}

		if style == StyleReference && entry.Character.ID != "" {
			slot.CharacterID = entry.Character.ID
			slot.FallbackCharacter = entry.Character
		} else {
			slot.Character = entry.Character
		}

		compact[assignment.Key] = slot
	}
	return compact
}

// NewPayload compacts a team together with its name and notes
func NewPayload(team *entities.TeamComposition, name, notes string, style Style) *Payload {
	return &Payload{
		Team:  Compact(team, style),
		Name:  name,
		Notes: notes,
	}
}

// Hydrate rebuilds a team from its wire form. Each slot takes the roster
// record matching its character ID and falls back to the embedded record;
// a slot with neither stays empty.
func Hydrate(team CompactTeam, index *entities.RosterIndex) *entities.TeamComposition {
	hydrated := &entities.TeamComposition{}

	for _, key := range entities.SlotKeys {
		slot := team[key]
		if slot == nil {
			continue
		}

		character, ok := index.Find(slot.lookupID())
		if !ok {
			character = slot.snapshot()
		}
		if character == nil {
			continue
		}

		// keys come from entities.SlotKeys so SetSlot cannot fail
		_ = hydrated.SetSlot(key, &entities.SlotEntry{
			Character: character,
			RelicID:   slot.RelicID,
			CardIDs:   slot.CardIDs,
		})
	}

	return hydrated
}

func (p *Payload) validate() error {
	for key, slot := range p.Team {
		if _, err := entities.ParseSlotKey(string(key)); err != nil {
			return err
		}
		if slot != nil && len(slot.CardIDs) > entities.MaxCardsPerSlot {
			return fmt.Errorf("%s: %d cards exceeds the limit of %d", key, len(slot.CardIDs), entities.MaxCardsPerSlot)
		}
	}
	return nil
}
