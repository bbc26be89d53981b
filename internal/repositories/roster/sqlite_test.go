package roster_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/clock"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/roster"
)

type SQLiteRosterTestSuite struct {
	suite.Suite

	ctx        context.Context
	path       string
	repo       *roster.SQLiteRepository
	characters []*entities.CharacterRecord
}

func (s *SQLiteRosterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "roster.db")

	repo, err := roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{
		Path:  s.path,
		Clock: clock.NewFixed(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)),
	})
	s.Require().NoError(err)
	s.repo = repo

	characters, err := roster.LoadFile(filepath.Join("testdata", "roster.yaml"))
	s.Require().NoError(err)
	s.characters = characters
}

func (s *SQLiteRosterTestSuite) TearDownTest() {
	s.Require().NoError(s.repo.Close())
}

func (s *SQLiteRosterTestSuite) TestOpenValidation() {
	_, err := roster.OpenSQLite(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{Path: "  "})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SQLiteRosterTestSuite) TestUpsertAndList() {
	out, err := s.repo.Upsert(s.ctx, roster.UpsertInput{Characters: s.characters})
	s.Require().NoError(err)
	s.Equal(2, out.Written)

	list, err := s.repo.List(s.ctx, roster.ListInput{})
	s.Require().NoError(err)
	if diff := cmp.Diff(s.characters, list.Characters); diff != "" {
		s.Failf("roster mismatch", "(-want +got):\n%s", diff)
	}

	got, err := s.repo.Get(s.ctx, roster.GetInput{ID: "shun"})
	s.Require().NoError(err)
	s.Equal("Binds every enemy", got.Character.CombineSkills[0].Description.Localize("en"))
}

func (s *SQLiteRosterTestSuite) TestUpsertReordersAndReplaces() {
	_, err := s.repo.Upsert(s.ctx, roster.UpsertInput{Characters: s.characters})
	s.Require().NoError(err)

	ikki := &entities.CharacterRecord{ID: "ikki", Name: entities.EN("Phoenix Ikki")}
	renamed := &entities.CharacterRecord{ID: "shun", Name: entities.EN("Andromeda Shun (God Cloth)")}

	out, err := s.repo.Upsert(s.ctx, roster.UpsertInput{
		Characters: []*entities.CharacterRecord{ikki, renamed},
		Replace:    true,
	})
	s.Require().NoError(err)
	s.Equal(2, out.Written)
	s.Equal(1, out.Removed)

	list, err := s.repo.List(s.ctx, roster.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(list.Characters, 2)
	s.Equal("ikki", list.Characters[0].ID)
	s.Equal("Andromeda Shun (God Cloth)", list.Characters[1].Name.Localize("en"))
	s.Empty(list.Characters[1].Bonds)

	_, err = s.repo.Get(s.ctx, roster.GetInput{ID: "seiya"})
	s.True(errors.IsNotFound(err))
}

func (s *SQLiteRosterTestSuite) TestUpsertRejectsInvalid() {
	_, err := s.repo.Upsert(s.ctx, roster.UpsertInput{
		Characters: []*entities.CharacterRecord{{Name: entities.EN("No ID")}},
	})
	s.True(errors.IsInvalidArgument(err))

	list, err := s.repo.List(s.ctx, roster.ListInput{})
	s.Require().NoError(err)
	s.Empty(list.Characters)
}

func (s *SQLiteRosterTestSuite) TestReopenKeepsData() {
	_, err := s.repo.Upsert(s.ctx, roster.UpsertInput{Characters: s.characters})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Close())

	// migrations already applied, so this only reopens
	repo, err := roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{Path: s.path})
	s.Require().NoError(err)
	s.repo = repo

	list, err := s.repo.List(s.ctx, roster.ListInput{})
	s.Require().NoError(err)
	s.Len(list.Characters, 2)
}

func (s *SQLiteRosterTestSuite) TestMigrationsLogOnlyWhenApplied() {
	core, logs := observer.New(zap.DebugLevel)
	path := filepath.Join(s.T().TempDir(), "fresh.db")

	repo, err := roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{Path: path, Logger: zap.New(core)})
	s.Require().NoError(err)
	s.Require().NoError(repo.Close())

	applied := logs.FilterMessage("roster migrations applied").All()
	s.Require().Len(applied, 1)
	s.Equal(uint64(1), applied[0].ContextMap()["to"])

	logs.TakeAll()
	repo, err = roster.OpenSQLite(s.ctx, &roster.SQLiteConfig{Path: path, Logger: zap.New(core)})
	s.Require().NoError(err)
	s.Require().NoError(repo.Close())
	s.Empty(logs.FilterMessage("roster migrations applied").All())
}

func (s *SQLiteRosterTestSuite) TestGetValidation() {
	_, err := s.repo.Get(s.ctx, roster.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestSQLiteRosterSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRosterTestSuite))
}
