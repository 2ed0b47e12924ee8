package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mkalvans/cinetrack/internal/common"
	"github.com/mkalvans/cinetrack/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+users\b.*RETURNING\s+created_at,\s*updated_at`).
		WithArgs("id-1", "a@b.c", "hash", "Alice", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u, err := repo.Create(context.Background(), &models.User{
		ID: "id-1", Email: "a@b.c", PasswordHash: "hash", DisplayName: "Alice",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.CreatedAt.Equal(now) {
		t.Fatalf("created_at not populated: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("id-1", "a@b.c", "hash", "Alice", nil).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{
		ID: "id-1", Email: "a@b.c", PasswordHash: "hash", DisplayName: "Alice",
	})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want common.ErrAlreadyExists, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "display_name", "avatar_url", "created_at", "updated_at"}).
		AddRow("id-1", "a@b.c", "hash", "Alice", nil, now, now)

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*email,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("a@b.c").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "a@b.c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "id-1" || u.DisplayName != "Alice" || u.AvatarUrl != nil {
		t.Fatalf("unexpected row: %+v", u)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).
		WithArgs("nobody@b.c").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@b.c")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	avatar := "https://img/avatar.png"
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "display_name", "avatar_url", "created_at", "updated_at"}).
		AddRow("id-2", "b@b.c", "hash", "Bob", avatar, now, now)

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("id-2").
		WillReturnRows(rows)

	u, err := repo.GetByID(context.Background(), "id-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.AvatarUrl == nil || *u.AvatarUrl != avatar {
		t.Fatalf("avatar not scanned: %+v", u)
	}
}
