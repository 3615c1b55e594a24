// Package sqlstore persists evaluations and their metrics through
// database/sql. SQLite (modernc, pure Go) is the default; MySQL is
// supported for shared deployments.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/domain/entity"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

type Config struct {
	Driver string
	DSN    string
}

type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

var _ output.EvaluationRepository = (*Store)(nil)

// Open connects to the configured database and applies connection settings.
// It does not create tables; call Migrate for that.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Driver {
	case DriverSQLite:
		if dir := filepath.Dir(cfg.DSN); dir != "." && !strings.HasPrefix(cfg.DSN, "file:") {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("sqlstore: create data dir: %w", err)
			}
		}
	case DriverMySQL:
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}

	db, err := openDB(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// One writer at a time; WAL lets readers proceed.
		db.SetMaxOpenConns(1)
		pragmas := []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA busy_timeout = 5000",
			"PRAGMA synchronous = NORMAL",
			"PRAGMA foreign_keys = ON",
		}
		for _, p := range pragmas {
			if _, err := db.ExecContext(ctx, p); err != nil {
				db.Close()
				return nil, fmt.Errorf("sqlstore: pragma %q: %w", p, err)
			}
		}
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}

	return &Store{db: db, driver: cfg.Driver, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if s.driver == DriverMySQL {
		schema = mysqlSchema
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

func (s *Store) Create(ctx context.Context, e *entity.Evaluation) error {
	features, err := encodeList(e.Features)
	if err != nil {
		return err
	}
	constraints, err := encodeList(e.Constraints)
	if err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO evaluations
			(id, user_id, project_name, description, target_users, features, constraints, model_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.ProjectName, e.Description, e.TargetUsers,
		features, constraints, e.ModelID, string(e.Status),
		e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlstore: create evaluation %s: %w", e.ID, err)
	}
	return nil
}

func (s *Store) SaveMetrics(ctx context.Context, evaluationID string, m entity.EvaluationMetrics) error {
	suggestions, err := encodeList(m.Suggestions)
	if err != nil {
		return err
	}
	risks, err := encodeList(m.Risks)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO evaluation_metrics (
			id, evaluation_id, clarity_score, capability_score, objectivity_score,
			data_score, tolerance_score, matrix_x, matrix_y, zone,
			suggestions, risks, reasoning, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), evaluationID,
		m.ClarityScore, m.CapabilityScore, m.ObjectivityScore, m.DataScore, m.ToleranceScore,
		m.MatrixX, m.MatrixY, string(m.Zone),
		suggestions, risks, m.Reasoning, s.timestamp(),
	)
	if err != nil {
		return fmt.Errorf("sqlstore: save metrics for %s: %w", evaluationID, err)
	}
	return nil
}

func (s *Store) Complete(ctx context.Context, evaluationID string, totalScore int) error {
	return s.updateStatus(ctx, evaluationID,
		`UPDATE evaluations SET status = ?, total_score = ?, completed_at = ? WHERE id = ?`,
		string(entity.StatusCompleted), totalScore, s.timestamp(), evaluationID,
	)
}

func (s *Store) MarkFailed(ctx context.Context, evaluationID string) error {
	return s.updateStatus(ctx, evaluationID,
		`UPDATE evaluations SET status = ? WHERE id = ?`,
		string(entity.StatusFailed), evaluationID,
	)
}

func (s *Store) updateStatus(ctx context.Context, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlstore: update evaluation %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: update evaluation %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("sqlstore: update evaluation %s: %w", id, output.ErrEvaluationNotFound)
	}
	return nil
}

const evaluationColumns = `id, user_id, project_name, description, target_users, features,
	constraints, model_id, status, total_score, created_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (*entity.Evaluation, error) {
	var (
		e                     entity.Evaluation
		features, constraints string
		status, createdAt     string
		totalScore            sql.NullInt64
		completedAt           sql.NullString
	)
	err := row.Scan(&e.ID, &e.UserID, &e.ProjectName, &e.Description, &e.TargetUsers,
		&features, &constraints, &e.ModelID, &status, &totalScore, &createdAt, &completedAt)
	if err != nil {
		return nil, err
	}

	e.Status = entity.EvaluationStatus(status)
	if e.Features, err = decodeList(features); err != nil {
		return nil, err
	}
	if e.Constraints, err = decodeList(constraints); err != nil {
		return nil, err
	}
	if totalScore.Valid {
		v := int(totalScore.Int64)
		e.TotalScore = &v
	}
	if e.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if completedAt.Valid {
		t, err := time.Parse(timeLayout, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		e.CompletedAt = &t
	}
	return &e, nil
}

// Get returns the evaluation with its most recent metrics row, if any.
func (s *Store) Get(ctx context.Context, id string) (*entity.Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations WHERE id = ?`, id)
	e, err := scanEvaluation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlstore: %s: %w", id, output.ErrEvaluationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get evaluation %s: %w", id, err)
	}

	m, err := s.metricsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Metrics = m
	return e, nil
}

func (s *Store) metricsFor(ctx context.Context, evaluationID string) (*entity.EvaluationMetrics, error) {
	var (
		m                  entity.EvaluationMetrics
		zone               string
		suggestions, risks string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT clarity_score, capability_score, objectivity_score, data_score, tolerance_score,
			matrix_x, matrix_y, zone, suggestions, risks, reasoning
		FROM evaluation_metrics WHERE evaluation_id = ?
		ORDER BY created_at DESC LIMIT 1`, evaluationID,
	).Scan(&m.ClarityScore, &m.CapabilityScore, &m.ObjectivityScore, &m.DataScore, &m.ToleranceScore,
		&m.MatrixX, &m.MatrixY, &zone, &suggestions, &risks, &m.Reasoning)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get metrics for %s: %w", evaluationID, err)
	}

	m.Zone = entity.Zone(zone)
	if m.Suggestions, err = decodeList(suggestions); err != nil {
		return nil, fmt.Errorf("sqlstore: metrics for %s: %w", evaluationID, err)
	}
	if m.Risks, err = decodeList(risks); err != nil {
		return nil, fmt.Errorf("sqlstore: metrics for %s: %w", evaluationID, err)
	}
	return &m, nil
}

// ListRecent returns the newest evaluations first. Metrics are not loaded.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]entity.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list evaluations: %w", err)
	}
	defer rows.Close()

	out := []entity.Evaluation{}
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlstore: list evaluations: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: list evaluations: %w", err)
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlstore: ping: %w", err)
	}
	return n, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("sqlstore: encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	out := []string{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
