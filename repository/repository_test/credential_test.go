package repository_test_test

import (
	"testing"

	"passkey_ms/repository"
	"passkey_ms/repository/repository_test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCountByUser_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "webauthn_credentials" WHERE user_id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	repo := repository.NewCredentialRepository()
	count, err := repo.CountByUser(conn, 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveByExternalIDForUser_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "external_id", "sign_count", "active"}).
		AddRow(1, 42, []byte("cred1"), 5, true)

	mock.ExpectQuery(`SELECT \* FROM "webauthn_credentials" WHERE user_id = \$1 AND external_id = \$2 AND active = \$3 ORDER BY "webauthn_credentials"\."id" LIMIT \$4`).
		WithArgs(42, []byte("cred1"), true, 1).
		WillReturnRows(rows)

	repo := repository.NewCredentialRepository()
	credential, err := repo.GetActiveByExternalIDForUser(conn, 42, []byte("cred1"))

	assert.NoError(t, err)
	assert.NotNil(t, credential)
	assert.Equal(t, uint32(5), credential.SignCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNickname_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "webauthn_credentials" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := repository.NewCredentialRepository()
	rows, err := repo.UpdateNickname(conn, 42, 1, "Work laptop")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvanceSignCountMissesStaleCounter_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	// Guarded write: the row only matches while sign_count is still below
	// the asserted value, so a stale counter affects zero rows.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "webauthn_credentials" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := repository.NewCredentialRepository()
	rows, err := repo.AdvanceSignCount(conn, 1, 6, []byte("{}"))

	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteForUser_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "webauthn_credentials" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := repository.NewCredentialRepository()
	rows, err := repo.DeleteForUser(conn, 42, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
