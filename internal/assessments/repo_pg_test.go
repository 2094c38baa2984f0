package assessments

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultColumns = []string{"id", "organization_name", "submitted_at", "answers", "comments", "analysis"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoAppend(t *testing.T) {
	repo, mock := newMockRepo(t)
	res := testResult("1767225600000")

	mock.ExpectExec("INSERT INTO assessment_results").
		WithArgs(
			res.ID,
			res.OrganizationName,
			sqlmock.AnyArg(), // submitted_at
			[]byte(`{"p1":3}`),
			[]byte(`{}`),
			[]byte(`{"overallScore":3}`),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Append(t.Context(), res))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoAppendDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO assessment_results").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	assert.ErrorIs(t, repo.Append(t.Context(), testResult("1")), ErrDuplicateID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoAppendRejectsBadTimestamp(t *testing.T) {
	repo, mock := newMockRepo(t)
	res := testResult("1")
	res.SubmittedAt = "yesterday"

	assert.Error(t, repo.Append(t.Context(), res))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	submitted := time.Date(2026, 3, 4, 5, 6, 7, 890_000_000, time.UTC)

	mock.ExpectQuery("SELECT id, organization_name, submitted_at").
		WithArgs("42").
		WillReturnRows(sqlmock.NewRows(resultColumns).
			AddRow("42", "Acme", submitted, []byte(`{"p1":4}`), []byte(`{"p1":"note"}`), []byte(`{"overallScore":4.2}`)))

	got, err := repo.GetByID(t.Context(), "42")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04T05:06:07.890Z", got.SubmittedAt)
	assert.Equal(t, map[string]int{"p1": 4}, map[string]int(got.Answers))
	assert.Equal(t, map[string]string{"p1": "note"}, map[string]string(got.Comments))
	assert.JSONEq(t, `{"overallScore":4.2}`, string(got.Analysis))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT id, organization_name, submitted_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(resultColumns))

	_, err := repo.GetByID(t.Context(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoListInSequenceOrder(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("ORDER BY seq ASC").
		WillReturnRows(sqlmock.NewRows(resultColumns).
			AddRow("1", "Acme", at, []byte(`{}`), []byte(`{}`), []byte(`{}`)).
			AddRow("2", "Globex", at.Add(time.Second), []byte(`{"a1":2}`), nil, []byte(`{"maturityLevel":"Developing"}`)))

	got, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "Globex", got[1].OrganizationName)
	assert.NotNil(t, got[1].Comments)
	require.NoError(t, mock.ExpectationsWereMet())
}
