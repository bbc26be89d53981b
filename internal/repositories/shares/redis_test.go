package shares_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/clock"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/idgen"
	"github.com/KirkDiggler/cosmo-api/internal/redis"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/shares"
	"github.com/KirkDiggler/cosmo-api/internal/testutils"
)

const testCode = "aB3dE9"

type RedisSharesTestSuite struct {
	suite.Suite

	client  redis.Client
	mr      *miniredis.Miniredis
	cleanup func()
	clock   *clock.Fixed
	repo    shares.Repository
	ctx     context.Context
	team    *entities.TeamComposition
}

func (s *RedisSharesTestSuite) SetupTest() {
	s.client, s.mr, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.clock = clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	repo, err := shares.NewRedisRepository(&shares.Config{
		Client:      s.client,
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("share"),
		TTL:         48 * time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.team = &entities.TeamComposition{
		Mid2: &entities.SlotEntry{
			Character: &entities.CharacterRecord{ID: "seiya", Name: entities.EN("Pegasus Seiya")},
			RelicID:   "relic-1",
			CardIDs:   []string{"c1"},
		},
	}
}

func (s *RedisSharesTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisSharesTestSuite) TestNewRedisRepository() {
	_, err := shares.NewRedisRepository(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = shares.NewRedisRepository(&shares.Config{})
	s.True(errors.IsInvalidArgument(err))

	_, err = shares.NewRedisRepository(&shares.Config{Client: s.client, TTL: -time.Second})
	s.True(errors.IsInvalidArgument(err))

	repo, err := shares.NewRedisRepository(&shares.Config{Client: s.client})
	s.Require().NoError(err)
	out, err := repo.Create(s.ctx, shares.CreateInput{ShortCode: "dflt01", Team: s.team})
	s.Require().NoError(err)
	s.Equal(shares.DefaultTTL, s.mr.TTL("shared_team:dflt01"))
	s.NotEmpty(out.Share.ID)
}

func (s *RedisSharesTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, shares.CreateInput{
		ShortCode: testCode,
		Team:      s.team,
		Name:      "Bronze rush",
		Notes:     "notes",
	})
	s.Require().NoError(err)
	s.Equal("share_1", created.Share.ID)
	s.Equal(s.clock.Now(), created.Share.CreatedAt)
	s.Equal(s.clock.Now().Add(48*time.Hour), created.Share.ExpiresAt)

	s.True(s.mr.Exists("shared_team:" + testCode))
	s.Equal(48*time.Hour, s.mr.TTL("shared_team:"+testCode))

	raw, err := s.mr.Get("shared_team:" + testCode)
	s.Require().NoError(err)
	var stored map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	s.JSONEq(`"Bronze rush"`, string(stored["name"]))

	got, err := s.repo.Get(s.ctx, shares.GetInput{ShortCode: testCode})
	s.Require().NoError(err)
	s.Equal(testCode, got.Share.ShortCode)
	s.Equal("Bronze rush", got.Share.Name)
	s.Equal("notes", got.Share.Notes)
	s.Require().NotNil(got.Share.Team.Mid2)
	s.Equal("seiya", got.Share.Team.Mid2.Character.ID)
	s.Equal("Pegasus Seiya", got.Share.Team.Mid2.Character.Name.Localize("en"))
	s.Equal([]string{"c1"}, got.Share.Team.Mid2.CardIDs)
	s.Nil(got.Share.Team.Front1)
	s.True(created.Share.ExpiresAt.Equal(got.Share.ExpiresAt))
}

func (s *RedisSharesTestSuite) TestExists() {
	out, err := s.repo.Exists(s.ctx, shares.ExistsInput{ShortCode: testCode})
	s.Require().NoError(err)
	s.False(out.Exists)

	s.Require().NoError(s.mr.Set("shared_team:"+testCode, "{}"))

	out, err = s.repo.Exists(s.ctx, shares.ExistsInput{ShortCode: testCode})
	s.Require().NoError(err)
	s.True(out.Exists)
}

func (s *RedisSharesTestSuite) TestCreateNeverOverwrites() {
	_, err := s.repo.Create(s.ctx, shares.CreateInput{ShortCode: testCode, Team: s.team, Name: "first"})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, shares.CreateInput{ShortCode: testCode, Team: s.team, Name: "second"})
	s.True(errors.IsAlreadyExists(err))
	s.Equal(testCode, errors.GetMeta(err)["short_code"])

	got, err := s.repo.Get(s.ctx, shares.GetInput{ShortCode: testCode})
	s.Require().NoError(err)
	s.Equal("first", got.Share.Name)
}

func (s *RedisSharesTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, shares.GetInput{ShortCode: "nope00"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisSharesTestSuite) TestGetExpired() {
	_, err := s.repo.Create(s.ctx, shares.CreateInput{ShortCode: testCode, Team: s.team})
	s.Require().NoError(err)

	// the clock passes ExpiresAt before redis evicts the key
	s.clock.Advance(49 * time.Hour)
	_, err = s.repo.Get(s.ctx, shares.GetInput{ShortCode: testCode})
	s.True(errors.IsNotFound(err))

	s.mr.FastForward(49 * time.Hour)
	s.False(s.mr.Exists("shared_team:" + testCode))
}

func (s *RedisSharesTestSuite) TestGetCorruptRecord() {
	s.Require().NoError(s.mr.Set("shared_team:"+testCode, "not json"))

	_, err := s.repo.Get(s.ctx, shares.GetInput{ShortCode: testCode})
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *RedisSharesTestSuite) TestInvalidInput() {
	_, err := s.repo.Exists(s.ctx, shares.ExistsInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, shares.CreateInput{Team: s.team})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, shares.CreateInput{ShortCode: testCode})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, shares.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisSharesTestSuite) TestStorageOutage() {
	s.mr.Close()

	_, err := s.repo.Exists(s.ctx, shares.ExistsInput{ShortCode: testCode})
	s.True(errors.IsUnavailable(err))

	_, err = s.repo.Create(s.ctx, shares.CreateInput{ShortCode: testCode, Team: s.team})
	s.True(errors.IsUnavailable(err))

	_, err = s.repo.Get(s.ctx, shares.GetInput{ShortCode: testCode})
	s.True(errors.IsUnavailable(err))
}

func (s *RedisSharesTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.repo.Exists(ctx, shares.ExistsInput{ShortCode: testCode})
	s.True(errors.IsCanceled(err))
}

func TestRedisSharesSuite(t *testing.T) {
	suite.Run(t, new(RedisSharesTestSuite))
}
