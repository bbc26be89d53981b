package entities

import (
	"github.com/KirkDiggler/cosmo-api/internal/errors"
)

// SlotKey identifies one of the fixed team positions
type SlotKey string

// Team slots
const (
	SlotFront1   SlotKey = "front1"
	SlotFront2   SlotKey = "front2"
	SlotFront3   SlotKey = "front3"
	SlotMid1     SlotKey = "mid1"
	SlotMid2     SlotKey = "mid2"
	SlotMid3     SlotKey = "mid3"
	SlotBack1    SlotKey = "back1"
	SlotBack2    SlotKey = "back2"
	SlotBack3    SlotKey = "back3"
	SlotSupport1 SlotKey = "support1"
	SlotSupport2 SlotKey = "support2"
)

// MaxCardsPerSlot is the number of cards a single slot can equip
const MaxCardsPerSlot = 5

// SlotKeys lists every slot in canonical order
var SlotKeys = [...]SlotKey{
	SlotFront1, SlotFront2, SlotFront3,
	SlotMid1, SlotMid2, SlotMid3,
	SlotBack1, SlotBack2, SlotBack3,
	SlotSupport1, SlotSupport2,
}

// ParseSlotKey validates a slot name
func ParseSlotKey(s string) (SlotKey, error) {
	for _, key := range SlotKeys {
		if string(key) == s {
			return key, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown slot: %q", s)
}

// IsSupport reports whether the slot is one of the support positions
func (k SlotKey) IsSupport() bool {
	return k == SlotSupport1 || k == SlotSupport2
}

// SlotEntry is an occupied slot
type SlotEntry struct {
	Character *CharacterRecord `json:"character"`
	RelicID   string           `json:"relicId"`
	CardIDs   []string         `json:"cardIds"`
}

// SlotAssignment pairs an occupied slot with its key
type SlotAssignment struct {
	Key   SlotKey
	Entry *SlotEntry
}

// TeamComposition is a full team. Every slot is always present and is either
// nil (empty) or occupied. The same character may appear in more than one slot.
type TeamComposition struct {
	Front1   *SlotEntry `json:"front1"`
	Front2   *SlotEntry `json:"front2"`
	Front3   *SlotEntry `json:"front3"`
	Mid1     *SlotEntry `json:"mid1"`
	Mid2     *SlotEntry `json:"mid2"`
	Mid3     *SlotEntry `json:"mid3"`
	Back1    *SlotEntry `json:"back1"`
	Back2    *SlotEntry `json:"back2"`
	Back3    *SlotEntry `json:"back3"`
	Support1 *SlotEntry `json:"support1"`
	Support2 *SlotEntry `json:"support2"`
}

func (t *TeamComposition) slot(key SlotKey) **SlotEntry {
	switch key {
	case SlotFront1:
		return &t.Front1
	case SlotFront2:
		return &t.Front2
	case SlotFront3:
		return &t.Front3
	case SlotMid1:
		return &t.Mid1
	case SlotMid2:
		return &t.Mid2
	case SlotMid3:
		return &t.Mid3
	case SlotBack1:
		return &t.Back1
	case SlotBack2:
		return &t.Back2
	case SlotBack3:
		return &t.Back3
	case SlotSupport1:
		return &t.Support1
	case SlotSupport2:
		return &t.Support2
	default:
		return nil
	}
}

// Slot returns the entry at key, nil when empty or unknown
func (t *TeamComposition) Slot(key SlotKey) *SlotEntry {
	if t == nil {
		return nil
	}
	if p := t.slot(key); p != nil {
		return *p
	}
	return nil
}

// SetSlot places an entry, nil clears the slot
func (t *TeamComposition) SetSlot(key SlotKey, entry *SlotEntry) error {
	p := t.slot(key)
	if p == nil {
		return errors.InvalidArgumentf("unknown slot: %q", key)
	}
	*p = entry
	return nil
}

// Entries returns the occupied slots in canonical order. A slot holding an
// entry without a character counts as empty.
func (t *TeamComposition) Entries() []SlotAssignment {
	if t == nil {
		return nil
	}

	entries := make([]SlotAssignment, 0, len(SlotKeys))
	for _, key := range SlotKeys {
		entry := t.Slot(key)
		if entry == nil || entry.Character == nil {
			continue
		}
		entries = append(entries, SlotAssignment{Key: key, Entry: entry})
	}
	return entries
}

// Characters returns the character of every occupied slot, duplicates included
func (t *TeamComposition) Characters() []*CharacterRecord {
	entries := t.Entries()
	characters := make([]*CharacterRecord, 0, len(entries))
	for _, e := range entries {
		characters = append(characters, e.Entry.Character)
	}
	return characters
}

// IsEmpty reports whether no slot is occupied
func (t *TeamComposition) IsEmpty() bool {
	return len(t.Entries()) == 0
}

// Validate checks slot contents
func (t *TeamComposition) Validate() error {
	if t == nil {
		return errors.InvalidArgument("team cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	for _, key := range SlotKeys {
		entry := t.Slot(key)
		if entry == nil {
			continue
		}
		if entry.Character == nil {
			vb.Field(string(key), "character is required for an occupied slot")
		}
		if len(entry.CardIDs) > MaxCardsPerSlot {
			vb.Fieldf(string(key), "cannot equip more than %d cards", MaxCardsPerSlot)
		}
	}

	return vb.Build()
}
