package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/clock"
)

const charactersTable = "characters"

var characterColumns = []string{
	"id", "position", "name", "image_url", "rarity", "faction",
	"positioning", "bonds", "combine_skills", "updated_at",
}

type characterRow struct {
	ID            string `db:"id"`
	Position      int    `db:"position"`
	Name          string `db:"name"`
	ImageURL      string `db:"image_url"`
	Rarity        string `db:"rarity"`
	Faction       string `db:"faction"`
	Positioning   string `db:"positioning"`
	Bonds         string `db:"bonds"`
	CombineSkills string `db:"combine_skills"`
	UpdatedAt     int64  `db:"updated_at"`
}

// SQLiteConfig configures the SQLite store
type SQLiteConfig struct {
	// Path of the database file, created when missing
	Path   string
	Clock  clock.Clock
	Logger *zap.Logger
}

// Validate ensures all required settings are provided
func (c *SQLiteConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", strings.TrimSpace(c.Path), vb)
	return vb.Build()
}

// SQLiteRepository keeps the roster in a SQLite database. Roster imports
// write through Upsert and the API reads through List and Get.
type SQLiteRepository struct {
	db    *sqlx.DB
	clock clock.Clock
}

var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens the database and applies pending migrations
func OpenSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := filepath.Clean(cfg.Path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "open roster database")
	}
	db.SetMaxOpenConns(1)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := migrateUp(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	repo := &SQLiteRepository{db: db, clock: cfg.Clock}
	if repo.clock == nil {
		repo.clock = clock.New()
	}
	return repo, nil
}

// Close releases the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// List returns every character ordered by position
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(characterColumns...).From(charactersTable).OrderBy("position", "id").Asc()
	query, args := sb.Build()

	var rows []characterRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list characters")
	}

	characters := make([]*entities.CharacterRecord, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}

	return &ListOutput{Characters: characters}, nil
}

// Get returns one character
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("character id cannot be empty")
	}

	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(characterColumns...).From(charactersTable).Where(sb.Equal("id", input.ID))
	query, args := sb.Build()

	var row characterRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("character %s not found", input.ID).WithMeta("character_id", input.ID)
		}
		return nil, errors.Wrapf(err, "get character %s", input.ID)
	}

	c, err := row.toEntity()
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: c}, nil
}

// UpsertInput contains the characters to import
type UpsertInput struct {
	Characters []*entities.CharacterRecord
	// Replace removes characters missing from the input
	Replace bool
}

// UpsertOutput reports what the import changed
type UpsertOutput struct {
	Written int
	Removed int
}

// Upsert writes characters in one transaction. Input order becomes roster
// order.
func (r *SQLiteRepository) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	now := r.clock.Now().UTC().UnixMilli()

	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.ReplaceInto(charactersTable).Cols(characterColumns...)

	ids := make([]interface{}, 0, len(input.Characters))
	for i, c := range input.Characters {
		if err := c.Validate(); err != nil {
			return nil, errors.Wrapf(err, "character %d", i)
		}
		row, err := fromEntity(c, i, now)
		if err != nil {
			return nil, err
		}
		ib.Values(row.ID, row.Position, row.Name, row.ImageURL, row.Rarity, row.Faction,
			row.Positioning, row.Bonds, row.CombineSkills, row.UpdatedAt)
		ids = append(ids, c.ID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin roster import")
	}
	defer func() { _ = tx.Rollback() }()

	out := &UpsertOutput{}
	if len(input.Characters) > 0 {
		query, args := ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, errors.Wrap(err, "write characters")
		}
		out.Written = len(input.Characters)
	}

	if input.Replace {
		del := sqlbuilder.SQLite.NewDeleteBuilder()
		del.DeleteFrom(charactersTable)
		if len(ids) > 0 {
			del.Where(del.NotIn("id", ids...))
		}
		query, args := del.Build()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, errors.Wrap(err, "remove stale characters")
		}
		removed, _ := res.RowsAffected()
		out.Removed = int(removed)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit roster import")
	}
	return out, nil
}

func fromEntity(c *entities.CharacterRecord, position int, updatedAt int64) (*characterRow, error) {
	name, err := json.Marshal(c.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "encode name of %s", c.ID)
	}
	positioning, err := json.Marshal(c.Positioning)
	if err != nil {
		return nil, errors.Wrapf(err, "encode positioning of %s", c.ID)
	}
	bonds, err := json.Marshal(nonNil(c.Bonds))
	if err != nil {
		return nil, errors.Wrapf(err, "encode bonds of %s", c.ID)
	}
	skills, err := json.Marshal(nonNil(c.CombineSkills))
	if err != nil {
		return nil, errors.Wrapf(err, "encode combine skills of %s", c.ID)
	}

	return &characterRow{
		ID:            c.ID,
		Position:      position,
		Name:          string(name),
		ImageURL:      c.ImageURL,
		Rarity:        c.Rarity,
		Faction:       c.Faction,
		Positioning:   string(positioning),
		Bonds:         string(bonds),
		CombineSkills: string(skills),
		UpdatedAt:     updatedAt,
	}, nil
}

func (row *characterRow) toEntity() (*entities.CharacterRecord, error) {
	c := &entities.CharacterRecord{
		ID:       row.ID,
		ImageURL: row.ImageURL,
		Rarity:   row.Rarity,
		Faction:  row.Faction,
	}

	if err := json.Unmarshal([]byte(row.Name), &c.Name); err != nil {
		return nil, errors.Wrapf(err, "decode name of %s", row.ID)
	}
	if err := json.Unmarshal([]byte(row.Positioning), &c.Positioning); err != nil {
		return nil, errors.Wrapf(err, "decode positioning of %s", row.ID)
	}
	if err := json.Unmarshal([]byte(row.Bonds), &c.Bonds); err != nil {
		return nil, errors.Wrapf(err, "decode bonds of %s", row.ID)
	}
	if err := json.Unmarshal([]byte(row.CombineSkills), &c.CombineSkills); err != nil {
		return nil, errors.Wrapf(err, "decode combine skills of %s", row.ID)
	}
	if len(c.Bonds) == 0 {
		c.Bonds = nil
	}
	if len(c.CombineSkills) == 0 {
		c.CombineSkills = nil
	}

	return c, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
