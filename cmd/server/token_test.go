package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/cosmo-api/internal/engine/sharecode"
	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/wire"
	"github.com/KirkDiggler/cosmo-api/internal/orchestrators/team"
)

const teamFile = `{
	"team": {
		"front1": {"character": {"id": "seiya", "name": {"en": "Pegasus Seiya"}}, "relicId": "r1", "cardIds": ["c1"]}
	},
	"notes": "opener"
}`

func TestEncodeDecodeToken(t *testing.T) {
	token, err := encodeToken(strings.NewReader(teamFile), "")
	require.NoError(t, err)
	assert.NotContains(t, token, "=")

	out, err := decodeToken(token, nil)
	require.NoError(t, err)

	var resp wire.TeamResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, team.DefaultTeamName, resp.Name)
	assert.Equal(t, "opener", resp.Notes)
	require.NotNil(t, resp.Team.Front1)
	assert.Equal(t, "Pegasus Seiya", resp.Team.Front1.Character.Name.Localize("en"))
	assert.Equal(t, []string{"c1"}, resp.Team.Front1.CardIDs)
}

func TestDecodeTokenHydratesFromRoster(t *testing.T) {
	token, err := encodeToken(strings.NewReader(teamFile), string(sharecode.StyleReference))
	require.NoError(t, err)

	current := &entities.CharacterRecord{ID: "seiya", Name: entities.EN("Seiya (God Cloth)")}
	out, err := decodeToken(token, entities.NewRosterIndex([]*entities.CharacterRecord{current}))
	require.NoError(t, err)

	var resp wire.TeamResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, "Seiya (God Cloth)", resp.Team.Front1.Character.Name.Localize("en"))
}

func TestEncodeTokenErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		style string
	}{
		{name: "not json", input: `team`},
		{name: "no team", input: `{"name":"x"}`},
		{name: "empty team", input: `{"team":{}}`},
		{name: "unknown style", input: teamFile, style: "compressed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encodeToken(strings.NewReader(tt.input), tt.style)
			assert.Error(t, err)
		})
	}

	_, err := encodeToken(strings.NewReader(`{"team":{}}`), "")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, err := decodeToken("***", nil)
	require.Error(t, err)
	assert.True(t, sharecode.IsDecodeError(err))
}
