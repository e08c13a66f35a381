package history

import (
	"database/sql"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"medisynth/internal/types"
)

// PostgresStore persists the log in a table. Seeding happens exactly
// once at schema creation, so a user who deletes every row keeps an
// empty log, same as the file backend.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) ensureSchema() error {
	s.schemaOnce.Do(func() {
		_, err := s.db.Exec(`
			CREATE TABLE IF NOT EXISTS history_entries (
				id            BIGINT PRIMARY KEY,
				patient_label TEXT NOT NULL,
				date_label    TEXT NOT NULL,
				analysis_type TEXT NOT NULL,
				status        TEXT NOT NULL,
				recorded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE TABLE IF NOT EXISTS history_meta (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`)
		if err != nil {
			s.schemaErr = err
			return
		}
		s.schemaErr = s.seedOnce()
	})
	return s.schemaErr
}

func (s *PostgresStore) seedOnce() error {
	var seeded bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM history_meta WHERE key = 'seeded')`).Scan(&seeded)
	if err != nil {
		return err
	}
	if seeded {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, e := range Seed() {
		if _, err := tx.Exec(
			`INSERT INTO history_entries (id, patient_label, date_label, analysis_type, status)
			 VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			e.ID, e.PatientLabel, e.Date, e.AnalysisType, e.Status,
		); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO history_meta (key, value) VALUES ('seeded', 'true')`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) Load() ([]types.HistoryEntry, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT id, patient_label, date_label, analysis_type, status
		 FROM history_entries ORDER BY recorded_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []types.HistoryEntry{}
	for rows.Next() {
		var e types.HistoryEntry
		if err := rows.Scan(&e.ID, &e.PatientLabel, &e.Date, &e.AnalysisType, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) Record(entry types.HistoryEntry) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO history_entries (id, patient_label, date_label, analysis_type, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.PatientLabel, entry.Date, entry.AnalysisType, entry.Status)
	return err
}

func (s *PostgresStore) Remove(id int64) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM history_entries WHERE id = $1`, id)
	return err
}
