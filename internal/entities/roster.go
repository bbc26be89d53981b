package entities

// RosterIndex looks roster characters up by ID while keeping roster order
type RosterIndex struct {
	ordered []*CharacterRecord
	byID    map[string]*CharacterRecord
}

// NewRosterIndex indexes a roster. Nil entries are skipped and the first
// record wins when IDs repeat.
func NewRosterIndex(characters []*CharacterRecord) *RosterIndex {
	idx := &RosterIndex{
		ordered: make([]*CharacterRecord, 0, len(characters)),
		byID:    make(map[string]*CharacterRecord, len(characters)),
	}

	for _, c := range characters {
		if c == nil {
			continue
		}
		idx.ordered = append(idx.ordered, c)
		if c.ID == "" {
			continue
		}
		if _, exists := idx.byID[c.ID]; !exists {
			idx.byID[c.ID] = c
		}
	}

	return idx
}

// Find returns the character with the given ID
func (r *RosterIndex) Find(id string) (*CharacterRecord, bool) {
	if r == nil || id == "" {
		return nil, false
	}
	c, ok := r.byID[id]
	return c, ok
}

// All returns the roster in its original order
func (r *RosterIndex) All() []*CharacterRecord {
	if r == nil {
		return nil
	}
	return r.ordered
}

// Len returns the number of indexed characters
func (r *RosterIndex) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ordered)
}
