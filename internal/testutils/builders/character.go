// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/cosmo-api/internal/entities"
)

// CharacterBuilder provides a fluent interface for building test CharacterRecord instances
type CharacterBuilder struct {
	character *entities.CharacterRecord
}

// NewCharacterBuilder creates a builder with an English name equal to the ID
func NewCharacterBuilder(id string) *CharacterBuilder {
	return &CharacterBuilder{
		character: &entities.CharacterRecord{
			ID:   id,
			Name: entities.EN(id),
		},
	}
}

// WithName sets an English-only name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.character.Name = entities.EN(name)
	return b
}

// WithLocalizedName sets a per-language name
func (b *CharacterBuilder) WithLocalizedName(values map[string]string) *CharacterBuilder {
	b.character.Name = entities.Localized(values)
	return b
}

// WithImage sets the portrait URL
func (b *CharacterBuilder) WithImage(url string) *CharacterBuilder {
	b.character.ImageURL = url
	return b
}

// WithRarity sets the rarity and faction
func (b *CharacterBuilder) WithRarity(rarity, faction string) *CharacterBuilder {
	b.character.Rarity = rarity
	b.character.Faction = faction
	return b
}

// WithBond adds an English-only bond
func (b *CharacterBuilder) WithBond(name, effect string, partners ...string) *CharacterBuilder {
	b.character.Bonds = append(b.character.Bonds, entities.Bond{
		Name:     entities.EN(name),
		Effect:   entities.EN(effect),
		Partners: englishTexts(partners),
	})
	return b
}

// WithCombineSkill adds an English-only combine skill
func (b *CharacterBuilder) WithCombineSkill(name, description, iconURL string, partners ...string) *CharacterBuilder {
	b.character.CombineSkills = append(b.character.CombineSkills, entities.CombineSkill{
		Name:        entities.EN(name),
		Description: entities.EN(description),
		IconURL:     iconURL,
		Partners:    englishTexts(partners),
	})
	return b
}

// Build returns the built character
func (b *CharacterBuilder) Build() *entities.CharacterRecord {
	return b.character
}

func englishTexts(values []string) []entities.LocalizedText {
	texts := make([]entities.LocalizedText, 0, len(values))
	for _, v := range values {
		texts = append(texts, entities.EN(v))
	}
	return texts
}
