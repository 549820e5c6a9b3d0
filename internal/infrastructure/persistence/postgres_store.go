package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps stats and match history in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and prepares the schema
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		profile TEXT PRIMARY KEY,
		matches INTEGER NOT NULL DEFAULT 0,
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		sudden_death_wins INTEGER NOT NULL DEFAULT 0,
		sudden_death_losses INTEGER NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		deaths INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS matches (
		id SERIAL PRIMARY KEY,
		profile TEXT REFERENCES profiles(profile),
		won BOOLEAN NOT NULL,
		sudden_death BOOLEAN NOT NULL,
		bosses_won BOOLEAN NOT NULL,
		team INTEGER NOT NULL,
		character INTEGER NOT NULL,
		kills INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		played_at TIMESTAMP WITH TIME ZONE NOT NULL
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveResult upserts the profile totals and appends the match row
func (ps *PostgresStore) SaveResult(r Record) error {
	var delta Stats
	delta.Add(r)

	tx, err := ps.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
	INSERT INTO profiles (profile, matches, wins, losses, sudden_death_wins, sudden_death_losses, kills, deaths)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (profile)
	DO UPDATE SET
		matches = profiles.matches + $2,
		wins = profiles.wins + $3,
		losses = profiles.losses + $4,
		sudden_death_wins = profiles.sudden_death_wins + $5,
		sudden_death_losses = profiles.sudden_death_losses + $6,
		kills = profiles.kills + $7,
		deaths = profiles.deaths + $8,
		updated_at = NOW()
	`
	if _, err := tx.Exec(upsert, r.Profile, delta.Matches, delta.Wins, delta.Losses,
		delta.SuddenDeathWins, delta.SuddenDeathLosses, delta.Kills, delta.Deaths); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	insert := `
	INSERT INTO matches (profile, won, sudden_death, bosses_won, team, character, kills, deaths, ticks, played_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := tx.Exec(insert, r.Profile, r.Won, r.SuddenDeath, r.BossesWon, r.Team,
		r.Character, r.Kills, r.Deaths, r.Ticks, r.PlayedAt); err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// LoadStats reads the profile totals
func (ps *PostgresStore) LoadStats(profile string) (*Stats, error) {
	query := `SELECT profile, matches, wins, losses, sudden_death_wins, sudden_death_losses, kills, deaths FROM profiles WHERE profile = $1`

	var s Stats
	err := ps.db.QueryRow(query, profile).Scan(
		&s.Profile, &s.Matches, &s.Wins, &s.Losses,
		&s.SuddenDeathWins, &s.SuddenDeathLosses, &s.Kills, &s.Deaths,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", profile, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return &s, nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
