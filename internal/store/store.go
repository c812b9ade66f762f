// Package store handles SQLite persistence of finished quiz runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			filter TEXT NOT NULL,
			modes TEXT NOT NULL,
			correct INTEGER NOT NULL,
			close_count INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			best_streak INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_answers (
			run_id INTEGER NOT NULL,
			question_key TEXT NOT NULL,
			symbol TEXT NOT NULL,
			question_type TEXT NOT NULL,
			prompt TEXT NOT NULL,
			status TEXT NOT NULL,
			PRIMARY KEY (run_id, question_key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_answers_symbol ON run_answers(symbol);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a finished run and the latest outcome per question.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, answers []model.AnswerRecord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, filter, modes, correct, close_count, incorrect, best_streak, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Filter,
		run.Modes,
		run.Counts.Correct,
		run.Counts.Close,
		run.Counts.Incorrect,
		run.BestStreak,
		run.EndedAt.Sub(run.StartedAt).Milliseconds(),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(answers) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_answers (run_id, question_key, symbol, question_type, prompt, status)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, a := range answers {
			if _, err := stmt.ExecContext(ctx, id, a.Key, a.Symbol, string(a.Type), a.Prompt, string(a.Status)); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns run aggregates filtered by stats config, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.StatsConfig) ([]model.RunAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, correct, close_count, incorrect, best_streak, duration_ms
		FROM runs
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var endedAt string
		if err := rows.Scan(&agg.RunID, &endedAt, &agg.Counts.Correct, &agg.Counts.Close, &agg.Counts.Incorrect, &agg.BestStreak, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListElementAggregates aggregates answer outcomes per element across runs.
func (s *Store) ListElementAggregates(ctx context.Context, runIDs []int64) ([]model.ElementAggregate, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT symbol,
		SUM(CASE WHEN status = 'correct' THEN 1 ELSE 0 END) AS correct,
		SUM(CASE WHEN status = 'close' THEN 1 ELSE 0 END) AS close_count,
		SUM(CASE WHEN status = 'incorrect' THEN 1 ELSE 0 END) AS incorrect
		FROM run_answers
		WHERE run_id IN (%s)
		GROUP BY symbol`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ElementAggregate
	for rows.Next() {
		var agg model.ElementAggregate
		if err := rows.Scan(&agg.Symbol, &agg.Counts.Correct, &agg.Counts.Close, &agg.Counts.Incorrect); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
