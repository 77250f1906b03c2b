package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/verdict/internal/compare"
)

// ErrRunNotFound indicates no run row exists for the requested id.
var ErrRunNotFound = errors.New("run not found")

// RunInfo is the listing view of one saved comparison run.
type RunInfo struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Suite       string    `json:"suite"`
	Status      string    `json:"status"`
	Tests       int       `json:"tests"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Fingerprint string    `json:"fingerprint"`
}

// SaveComparison persists one comparison run and returns its run id.
// The stored document is the RFC 8785 canonical form, so identical
// comparisons always produce identical rows apart from id and timestamp.
func (s *Store) SaveComparison(ctx context.Context, r *compare.Result) (string, error) {
	canonical, err := r.CanonicalJSON()
	if err != nil {
		return "", fmt.Errorf("save comparison: %w", err)
	}
	fingerprint, err := r.Fingerprint()
	if err != nil {
		return "", fmt.Errorf("save comparison: %w", err)
	}

	sum := r.Summarize()
	id := uuid.Must(uuid.NewV7()).String()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, suite, status, tests, passed, failed, fingerprint, document)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		time.Now().UTC().Format(time.RFC3339),
		r.Suite,
		string(r.Status()),
		sum.Tests,
		sum.Passed,
		sum.Failed,
		fingerprint,
		canonical,
	)
	if err != nil {
		return "", fmt.Errorf("save comparison: %w", err)
	}
	return id, nil
}

// GetComparison re-loads a saved comparison by run id.
func (s *Store) GetComparison(ctx context.Context, id string) (*compare.Result, error) {
	var document []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM runs WHERE id = ?`, id,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get comparison %s: %w", id, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("get comparison %s: %w", id, err)
	}
	return compare.Decode(doc)
}

// ListRuns returns saved runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, suite, status, tests, passed, failed, fingerprint
		FROM runs
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			info      RunInfo
			createdAt string
		)
		if err := rows.Scan(&info.ID, &createdAt, &info.Suite, &info.Status,
			&info.Tests, &info.Passed, &info.Failed, &info.Fingerprint); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		info.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list runs: parse created_at %q: %w", createdAt, err)
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
