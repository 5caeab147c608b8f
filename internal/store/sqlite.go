package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/tatianab/basilisk/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	slot         TEXT PRIMARY KEY,
	current_room TEXT NOT NULL,
	player_name  TEXT NOT NULL,
	debug_mode   INTEGER NOT NULL,
	flags        TEXT NOT NULL,
	variables    TEXT NOT NULL,
	inventory    TEXT NOT NULL,
	updated_at   INTEGER NOT NULL
)`

type saveRow struct {
	Slot        string `db:"slot"`
	CurrentRoom string `db:"current_room"`
	PlayerName  string `db:"player_name"`
	DebugMode   bool   `db:"debug_mode"`
	Flags       string `db:"flags"`
	Variables   string `db:"variables"`
	Inventory   string `db:"inventory"`
	UpdatedAt   int64  `db:"updated_at"`
}

// SQLite keeps one row per slot; flags, variables and inventory are JSON
// columns.
type SQLite struct {
	db *sqlx.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "creating %s", dir)
		}
	}
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return &SQLite{db: db}, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(b), nil
}

func (s *SQLite) Save(ctx context.Context, slot string, gs *models.GameState) error {
	if err := ValidSlot(slot); err != nil {
		return err
	}
	row := saveRow{
		Slot:        slot,
		CurrentRoom: gs.CurrentRoomID,
		PlayerName:  gs.PlayerName,
		DebugMode:   gs.DebugMode,
		UpdatedAt:   time.Now().UnixMilli(),
	}
	var err error
	if row.Flags, err = encodeJSON(gs.Flags); err != nil {
		return err
	}
	if row.Variables, err = encodeJSON(gs.Variables); err != nil {
		return err
	}
	if row.Inventory, err = encodeJSON(gs.Inventory); err != nil {
		return err
	}

	_, err = s.db.NamedExecContext(ctx, `
INSERT INTO saves (slot, current_room, player_name, debug_mode, flags, variables, inventory, updated_at)
VALUES (:slot, :current_room, :player_name, :debug_mode, :flags, :variables, :inventory, :updated_at)
ON CONFLICT(slot) DO UPDATE SET
	current_room = excluded.current_room,
	player_name = excluded.player_name,
	debug_mode = excluded.debug_mode,
	flags = excluded.flags,
	variables = excluded.variables,
	inventory = excluded.inventory,
	updated_at = excluded.updated_at`, row)
	return errors.Wrapf(err, "saving slot %s", slot)
}

func (s *SQLite) Load(ctx context.Context, slot string) (*models.GameState, error) {
	if err := ValidSlot(slot); err != nil {
		return nil, err
	}
	var row saveRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM saves WHERE slot = ?`, slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "slot %s", slot)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading slot %s", slot)
	}

	gs := models.NewGameState(row.CurrentRoom)
	gs.PlayerName = row.PlayerName
	gs.DebugMode = row.DebugMode
	if err := json.Unmarshal([]byte(row.Flags), &gs.Flags); err != nil {
		return nil, errors.Wrapf(err, "decoding flags of %s", slot)
	}
	if err := json.Unmarshal([]byte(row.Variables), &gs.Variables); err != nil {
		return nil, errors.Wrapf(err, "decoding variables of %s", slot)
	}
	if err := json.Unmarshal([]byte(row.Inventory), &gs.Inventory); err != nil {
		return nil, errors.Wrapf(err, "decoding inventory of %s", slot)
	}
	return gs.Normalize(), nil
}

func (s *SQLite) List(ctx context.Context) ([]string, error) {
	slots := []string{}
	if err := s.db.SelectContext(ctx, &slots, `SELECT slot FROM saves ORDER BY slot`); err != nil {
		return nil, errors.WithStack(err)
	}
	return slots, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
