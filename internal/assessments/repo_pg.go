package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"hrmaturity-backend/internal/shared/util"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts a result row.
func (r *PGRepo) Append(ctx context.Context, result Result) error {
	const query = `
INSERT INTO assessment_results (id, organization_name, submitted_at, answers, comments, analysis)
VALUES ($1, $2, $3, $4, $5, $6)`
	args, err := insertArgs(result)
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

// GetByID loads a single result.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Result, error) {
	const query = `
SELECT id, organization_name, submitted_at, answers, comments, analysis
FROM assessment_results
WHERE id = $1`
	var (
		res                         Result
		submittedAt                 time.Time
		answers, comments, analysis []byte
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&res.ID, &res.OrganizationName, &submittedAt, &answers, &comments, &analysis)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, err
	}
	res.SubmittedAt = util.ISOTimestamp(submittedAt)
	if err := decodeColumns(&res, answers, comments, analysis); err != nil {
		return Result{}, err
	}
	return res, nil
}

// List returns all results in insertion order.
func (r *PGRepo) List(ctx context.Context) ([]Result, error) {
	const query = `
SELECT id, organization_name, submitted_at, answers, comments, analysis
FROM assessment_results
ORDER BY seq ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var (
			res                         Result
			submittedAt                 time.Time
			answers, comments, analysis []byte
		)
		if err := rows.Scan(&res.ID, &res.OrganizationName, &submittedAt, &answers, &comments, &analysis); err != nil {
			return nil, err
		}
		res.SubmittedAt = util.ISOTimestamp(submittedAt)
		if err := decodeColumns(&res, answers, comments, analysis); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func insertArgs(result Result) ([]any, error) {
	submittedAt, err := time.Parse(time.RFC3339Nano, result.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("parse submittedAt: %w", err)
	}
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return nil, err
	}
	comments, err := marshalJSONB(result.Comments)
	if err != nil {
		return nil, err
	}
	analysis := []byte(result.Analysis)
	if len(analysis) == 0 {
		analysis = []byte("null")
	}
	return []any{result.ID, result.OrganizationName, submittedAt.UTC(), answers, comments, analysis}, nil
}

func marshalJSONB(value map[string]string) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}

func decodeColumns(res *Result, answers, comments, analysis []byte) error {
	if err := json.Unmarshal(answers, &res.Answers); err != nil {
		return fmt.Errorf("decode answers for %s: %w", res.ID, err)
	}
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &res.Comments); err != nil {
			return fmt.Errorf("decode comments for %s: %w", res.ID, err)
		}
	}
	if res.Comments == nil {
		res.Comments = map[string]string{}
	}
	res.Analysis = json.RawMessage(append([]byte(nil), analysis...))
	return nil
}

var _ Repo = (*PGRepo)(nil)
