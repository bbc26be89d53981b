package builders

import (
	"github.com/KirkDiggler/cosmo-api/internal/entities"
)

// TeamBuilder provides a fluent interface for building test TeamComposition instances
type TeamBuilder struct {
	team *entities.TeamComposition
	err  error
}

// NewTeamBuilder creates a builder for an empty team
func NewTeamBuilder() *TeamBuilder {
	return &TeamBuilder{team: &entities.TeamComposition{}}
}

// WithCharacter places a character in a slot
func (b *TeamBuilder) WithCharacter(slot entities.SlotKey, character *entities.CharacterRecord) *TeamBuilder {
	if entry := b.team.Slot(slot); entry != nil {
		entry.Character = character
		return b
	}
	if err := b.team.SetSlot(slot, &entities.SlotEntry{Character: character}); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// WithRelic equips a relic on an occupied slot
func (b *TeamBuilder) WithRelic(slot entities.SlotKey, relicID string) *TeamBuilder {
	if entry := b.team.Slot(slot); entry != nil {
		entry.RelicID = relicID
	}
	return b
}

// WithCards equips cards on an occupied slot
func (b *TeamBuilder) WithCards(slot entities.SlotKey, cardIDs ...string) *TeamBuilder {
	if entry := b.team.Slot(slot); entry != nil {
		entry.CardIDs = append(entry.CardIDs, cardIDs...)
	}
	return b
}

// Build returns the built team, panicking on an unknown slot
func (b *TeamBuilder) Build() *entities.TeamComposition {
	if b.err != nil {
		panic(b.err)
	}
	return b.team
}
