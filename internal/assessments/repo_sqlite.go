package assessments

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepo implements Repo on an embedded SQLite database. Timestamps are stored as
// the ISO strings the API returns.
type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) Append(ctx context.Context, result Result) error {
	const query = `
INSERT INTO assessment_results (id, organization_name, submitted_at, answers, comments, analysis)
VALUES (?, ?, ?, ?, ?, ?)`
	args, err := insertArgs(result)
	if err != nil {
		return err
	}
	// Keep the submitted string verbatim instead of the parsed time.
	args[2] = result.SubmittedAt
	for i := 3; i < len(args); i++ {
		args[i] = string(args[i].([]byte))
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		if isSQLiteUnique(err) {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (Result, error) {
	const query = `
SELECT id, organization_name, submitted_at, answers, comments, analysis
FROM assessment_results
WHERE id = ?`
	var (
		res                         Result
		answers, comments, analysis string
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&res.ID, &res.OrganizationName, &res.SubmittedAt, &answers, &comments, &analysis)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, err
	}
	if err := decodeColumns(&res, []byte(answers), []byte(comments), []byte(analysis)); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (r *SQLiteRepo) List(ctx context.Context) ([]Result, error) {
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
			answers, comments, analysis string
		)
		if err := rows.Scan(&res.ID, &res.OrganizationName, &res.SubmittedAt, &answers, &comments, &analysis); err != nil {
			return nil, err
		}
		if err := decodeColumns(&res, []byte(answers), []byte(comments), []byte(analysis)); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func isSQLiteUnique(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ Repo = (*SQLiteRepo)(nil)
