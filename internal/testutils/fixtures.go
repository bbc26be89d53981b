package testutils

import (
	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/testutils/builders"
)

// Character IDs of the fixture roster
const (
	SagaID  = "saga"
	KanonID = "kanon"
	SeiyaID = "seiya"
	ShunID  = "shun"
	IkkiID  = "ikki"
)

// CreateTestRoster returns a small roster with one bond that needs two
// partners, one that needs a single partner and a combine skill
func CreateTestRoster() []*entities.CharacterRecord {
	return []*entities.CharacterRecord{
		builders.NewCharacterBuilder(SagaID).
			WithName("Gemini Saga").
			WithRarity("UR", "Gold").
			WithBond("Twin Stars", "ATK+15%", "Kanon").
			WithCombineSkill("Galaxian Explosion", "Deals heavy damage to all enemies", "icons/ge.png", "Kanon").
			Build(),
		builders.NewCharacterBuilder(KanonID).
			WithName("Gemini Kanon").
			WithRarity("SSR", "Gold").
			Build(),
		builders.NewCharacterBuilder(SeiyaID).
			WithLocalizedName(map[string]string{"en": "Pegasus Seiya", "pt": "Seiya de Pégaso"}).
			WithImage("https://img.example/seiya.png").
			WithBond("Bronze Brothers", "DEF+10%", "Shun", "Ikki").
			Build(),
		builders.NewCharacterBuilder(ShunID).
			WithName("Andromeda Shun").
			Build(),
		builders.NewCharacterBuilder(IkkiID).
			WithName("Phoenix Ikki").
			Build(),
	}
}

// CreateTestTeam places saga in front1 and kanon in back1, which activates
// Twin Stars and Galaxian Explosion
func CreateTestTeam(roster []*entities.CharacterRecord) *entities.TeamComposition {
	index := entities.NewRosterIndex(roster)
	saga, _ := index.Find(SagaID)
	kanon, _ := index.Find(KanonID)

	return builders.NewTeamBuilder().
		WithCharacter(entities.SlotFront1, saga).
		WithRelic(entities.SlotFront1, "relic-1").
		WithCharacter(entities.SlotBack1, kanon).
		WithCards(entities.SlotBack1, "card-1", "card-2").
		Build()
}
