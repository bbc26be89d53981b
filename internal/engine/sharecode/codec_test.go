package sharecode_test

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cosmo-api/internal/engine/sharecode"
	"github.com/KirkDiggler/cosmo-api/internal/entities"
)

type CodecTestSuite struct {
	suite.Suite

	roster []*entities.CharacterRecord
	index  *entities.RosterIndex
	team   *entities.TeamComposition
}

func (s *CodecTestSuite) SetupTest() {
	seiya := &entities.CharacterRecord{
		ID:       "seiya",
		Name:     entities.Localized(map[string]string{"en": "Pegasus Seiya", "pt": "Seiya de Pégaso"}),
		ImageURL: "https://img.example/seiya.png",
		Rarity:   "SSR",
		Bonds: []entities.Bond{{
			Name:     entities.EN("Bronze Brothers"),
			Effect:   entities.EN("DEF+10%"),
			Partners: []entities.LocalizedText{entities.EN("Shun")},
		}},
		Positioning: entities.EN("Front"),
	}
	shun := &entities.CharacterRecord{
		ID:   "shun",
		Name: entities.EN("Andromeda Shun"),
		CombineSkills: []entities.CombineSkill{{
			Name:        entities.EN("Nebula Chain"),
			Description: entities.Plain("Binds every enemy"),
			IconURL:     "https://img.example/chain.png",
			Partners:    []entities.LocalizedText{entities.EN("Seiya")},
		}},
	}

	s.roster = []*entities.CharacterRecord{seiya, shun}
	s.index = entities.NewRosterIndex(s.roster)
	s.team = &entities.TeamComposition{
		Front1:   &entities.SlotEntry{Character: seiya, RelicID: "relic-9", CardIDs: []string{"c1", "c2"}},
		Back2:    &entities.SlotEntry{Character: shun, CardIDs: []string{}},
		Support1: &entities.SlotEntry{Character: seiya},
	}
}

func (s *CodecTestSuite) roundTrip(style sharecode.Style) (*sharecode.Payload, *entities.TeamComposition) {
	token, err := sharecode.Encode(sharecode.NewPayload(s.team, "Bronze rush", "open with Seiya", style))
	s.Require().NoError(err)

	decoded, err := sharecode.Decode(token)
	s.Require().NoError(err)

	return decoded, sharecode.Hydrate(decoded.Team, s.index)
}

func (s *CodecTestSuite) TestRoundTripSnapshot() {
	decoded, team := s.roundTrip(sharecode.StyleSnapshot)

	s.Equal("Bronze rush", decoded.Name)
	s.Equal("open with Seiya", decoded.Notes)
	if diff := cmp.Diff(s.team, team); diff != "" {
		s.Failf("team mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *CodecTestSuite) TestRoundTripReference() {
	decoded, team := s.roundTrip(sharecode.StyleReference)

	s.Equal("seiya", decoded.Team[entities.SlotFront1].CharacterID)
	s.Nil(decoded.Team[entities.SlotFront1].Character)
	if diff := cmp.Diff(s.team, team); diff != "" {
		s.Failf("team mismatch", "(-want +got):\n%s", diff)
	}
	s.Same(s.roster[0], team.Front1.Character)
}

func (s *CodecTestSuite) TestTokenIsURLSafe() {
	p := sharecode.NewPayload(s.team, "ÿÿÿ>>>???", strings.Repeat("~", 31), sharecode.StyleSnapshot)
	token, err := sharecode.Encode(p)
	s.Require().NoError(err)

	s.Equal(url.PathEscape(token), token)
	s.NotContains(token, "=")
}

func (s *CodecTestSuite) TestHydratePrefersCurrentRoster() {
	stale := &entities.CharacterRecord{ID: "seiya", Name: entities.EN("Seiya (old)")}
	compact := sharecode.CompactTeam{
		entities.SlotMid1: {Character: stale},
		entities.SlotMid2: {CharacterID: "seiya", FallbackCharacter: stale},
	}

	team := sharecode.Hydrate(compact, s.index)
	s.Same(s.roster[0], team.Mid1.Character)
	s.Same(s.roster[0], team.Mid2.Character)
}

func (s *CodecTestSuite) TestHydrateFallsBackToSnapshot() {
	removed := &entities.CharacterRecord{ID: "ikki", Name: entities.EN("Phoenix Ikki")}
	compact := sharecode.CompactTeam{
		entities.SlotFront1:   {CharacterID: "ikki", FallbackCharacter: removed, RelicID: "r1"},
		entities.SlotFront2:   {Character: removed},
		entities.SlotFront3:   {FallbackCharacter: &entities.CharacterRecord{ID: "shun"}},
		entities.SlotBack1:    {CharacterID: "gone"},
		entities.SlotSupport2: nil,
	}

	team := sharecode.Hydrate(compact, s.index)
	s.Same(removed, team.Front1.Character)
	s.Equal("r1", team.Front1.RelicID)
	s.Same(removed, team.Front2.Character)
	s.Same(s.roster[1], team.Front3.Character)
	s.Nil(team.Back1)
	s.Nil(team.Support2)

	// a nil index only uses snapshots
	team = sharecode.Hydrate(compact, nil)
	s.Equal("shun", team.Front3.Character.ID)
	s.Nil(team.Front3.Character.Bonds)
}

func (s *CodecTestSuite) TestDecodeToleratesTransportDamage() {
	token, err := sharecode.Encode(sharecode.NewPayload(s.team, "x?y", "notes>>", sharecode.StyleReference))
	s.Require().NoError(err)

	std := base64.StdEncoding.EncodeToString(mustDecodeRaw(s.T(), token))

	for name, damaged := range map[string]string{
		"standard alphabet":  std,
		"padding stripped":   strings.TrimRight(std, "="),
		"plus became space":  strings.ReplaceAll(std, "+", " "),
		"percent escaped":    url.QueryEscape(std),
		"trailing newline":   token + "\r\n",
	} {
		s.Run(name, func() {
			p, err := sharecode.Decode(damaged)
			s.Require().NoError(err)
			s.Equal("x?y", p.Name)
			s.Equal("notes>>", p.Notes)
		})
	}
}

func (s *CodecTestSuite) TestDecodeLegacyPercentEncodedToken() {
	raw, err := json.Marshal(map[string]interface{}{
		"team": map[string]interface{}{
			"mid2": map[string]interface{}{
				"character": map[string]interface{}{"id": "shun", "name": map[string]string{"en": "Andromeda Shun"}},
				"relicId":   "",
				"cardIds":   []string{},
			},
		},
		"name":  "Velha guarda + ação",
		"notes": "",
	})
	s.Require().NoError(err)

	// encodeURIComponent leaves letters, digits and -_.!~*'() alone
	escaped := strings.ReplaceAll(url.QueryEscape(string(raw)), "+", "%20")
	token := base64.StdEncoding.EncodeToString([]byte(escaped))

	p, err := sharecode.Decode(token)
	s.Require().NoError(err)
	s.Equal("Velha guarda + ação", p.Name)

	team := sharecode.Hydrate(p.Team, s.index)
	s.Same(s.roster[1], team.Mid2.Character)
}

func (s *CodecTestSuite) TestDecodeDocumentIDRehydrates() {
	token := rawToken([]byte(`{"team":{` +
		`"front1":{"character":{"_id":"seiya","name":{"en":"Old Seiya"},"bonds":[]}},` +
		`"front2":{"character":{"_id":"seiya","name":{"en":"Old Seiya"},"bonds":[]}},` +
		`"back1":{"character":{"_id":{"$oid":"shun"},"name":{"en":"Old Shun"}}}` +
		`},"name":"legacy"}`))

	p, err := sharecode.Decode(token)
	s.Require().NoError(err)
	s.Equal("seiya", p.Team[entities.SlotFront1].Character.ID)
	s.Equal("shun", p.Team[entities.SlotBack1].Character.ID)

	team := sharecode.Hydrate(p.Team, s.index)
	s.Same(s.roster[0], team.Front1.Character)
	s.Same(s.roster[0], team.Front2.Character)
	s.Same(s.roster[1], team.Back1.Character)
	s.Len(team.Front1.Character.Bonds, 1)
}

func (s *CodecTestSuite) TestDecodeErrors() {
	tests := []struct {
		name  string
		token string
		stage sharecode.Stage
	}{
		{"empty", "", sharecode.StageBase64},
		{"blank", "   ", sharecode.StageBase64},
		{"not base64", "!!!not*base64!!!", sharecode.StageBase64},
		{"impossible length", "abcde", sharecode.StageBase64},
		{"binary", rawToken([]byte{0xff, 0xfe, 0xfd}), sharecode.StageText},
		{"broken legacy escape", rawToken([]byte("%7B%zz")), sharecode.StageText},
		{"plain text", rawToken([]byte("hello world")), sharecode.StagePayload},
		{"json array", rawToken([]byte(`[1,2,3]`)), sharecode.StagePayload},
		{"json null", rawToken([]byte(`null`)), sharecode.StagePayload},
		{"team is a list", rawToken([]byte(`{"team":[]}`)), sharecode.StagePayload},
		{"unknown slot", rawToken([]byte(`{"team":{"front9":{"characterId":"x"}}}`)), sharecode.StagePayload},
		{"too many cards", rawToken([]byte(`{"team":{"front1":{"characterId":"x","cardIds":["1","2","3","4","5","6"]}}}`)), sharecode.StagePayload},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var (
				p   *sharecode.Payload
				err error
			)
			s.NotPanics(func() { p, err = sharecode.Decode(tt.token) })
			s.Nil(p)
			s.Require().Error(err)
			s.True(sharecode.IsDecodeError(err))

			var de *sharecode.DecodeError
			s.Require().ErrorAs(err, &de)
			s.Equal(tt.stage, de.Stage)
		})
	}
}

func (s *CodecTestSuite) TestDecodeEmptyObject() {
	p, err := sharecode.Decode(rawToken([]byte(`{}`)))
	s.Require().NoError(err)
	s.NotNil(p.Team)
	s.True(sharecode.Hydrate(p.Team, s.index).IsEmpty())
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func TestCompactDropsEmptySlots(t *testing.T) {
	shun := &entities.CharacterRecord{ID: "shun"}
	nameless := &entities.CharacterRecord{Name: entities.EN("Mystery")}
	team := &entities.TeamComposition{
		Front1: &entities.SlotEntry{Character: shun},
		Front2: &entities.SlotEntry{},
		Mid1:   &entities.SlotEntry{Character: nameless},
	}

	compact := sharecode.Compact(team, sharecode.StyleReference)
	require.Len(t, compact, 2)
	assert.Equal(t, "shun", compact[entities.SlotFront1].CharacterID)
	// records without an ID can only travel as snapshots
	assert.Same(t, nameless, compact[entities.SlotMid1].Character)

	assert.Empty(t, sharecode.Compact(nil, sharecode.StyleSnapshot))
}

func TestEncodeRejectsNilPayload(t *testing.T) {
	_, err := sharecode.Encode(nil)
	assert.Error(t, err)

	token, err := sharecode.Encode(&sharecode.Payload{Name: "empty"})
	require.NoError(t, err)
	p, err := sharecode.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "empty", p.Name)
	assert.Empty(t, p.Team)
}

func TestParseStyle(t *testing.T) {
	style, err := sharecode.ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, sharecode.StyleSnapshot, style)

	style, err = sharecode.ParseStyle("reference")
	require.NoError(t, err)
	assert.Equal(t, sharecode.StyleReference, style)

	_, err = sharecode.ParseStyle("compressed")
	assert.Error(t, err)
}

func rawToken(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func mustDecodeRaw(t *testing.T, token string) []byte {
	t.Helper()
	b, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	return b
}
