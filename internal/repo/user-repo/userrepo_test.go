package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/novafunded/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

var createdAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT id, login, password_hash, role, created_at FROM users WHERE login = $1")

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User found",
			login: "test_user",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "created_at"}).
					AddRow(1, "test_user", "hashed_password", "user", createdAt)
				mock.ExpectQuery(query).
					WithArgs("test_user").
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.User{
				ID:           1,
				Login:        "test_user",
				PasswordHash: "hashed_password",
				Role:         domain.RoleUser,
				CreatedAt:    createdAt,
			},
		},
		{
			name:  "User not found",
			login: "non_existing_user",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("non_existing_user").
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:  "Database error",
			login: "test_user",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("test_user").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByLogin(context.Background(), tt.login)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT id, login, password_hash, role, created_at FROM users WHERE id = $1")

	rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "created_at"}).
		AddRow(2, "boss", "hash", "admin", createdAt)
	mock.ExpectQuery(query).WithArgs(2).WillReturnRows(rows)

	result, err := repo.FindByID(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, result.Role)

	mock.ExpectQuery(query).WithArgs(3).WillReturnError(pgx.ErrNoRows)
	result, err = repo.FindByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Nil(t, result)

	mock.ExpectQuery(query).WithArgs(4).WillReturnError(errors.New("database error"))
	_, err = repo.FindByID(context.Background(), 4)
	assert.Error(t, err)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name: "Create user successfully",
			user: &domain.User{
				Login:        "new_user",
				PasswordHash: "hashed_password",
				Role:         domain.RoleUser,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
					INSERT INTO users (login, password_hash, role)
					VALUES ($1, $2, $3)
					RETURNING id, created_at
				`)).
					WithArgs("new_user", "hashed_password", "user").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))
			},
			expectErr: false,
			result: &domain.User{
				ID:           1,
				Login:        "new_user",
				PasswordHash: "hashed_password",
				Role:         domain.RoleUser,
				CreatedAt:    createdAt,
			},
		},
		{
			name: "Database error",
			user: &domain.User{
				Login:        "new_user",
				PasswordHash: "hashed_password",
				Role:         domain.RoleUser,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
					INSERT INTO users (login, password_hash, role)
					VALUES ($1, $2, $3)
					RETURNING id, created_at
				`)).
					WithArgs("new_user", "hashed_password", "user").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT id, login, role, created_at FROM users ORDER BY created_at DESC")

	rows := pgxmock.NewRows([]string{"id", "login", "role", "created_at"}).
		AddRow(2, "boss", "admin", createdAt).
		AddRow(1, "trader", "user", createdAt)
	mock.ExpectQuery(query).WillReturnRows(rows)

	users, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []domain.User{
		{ID: 2, Login: "boss", Role: "admin", CreatedAt: createdAt},
		{ID: 1, Login: "trader", Role: "user", CreatedAt: createdAt},
	}, users)

	mock.ExpectQuery(query).WillReturnError(errors.New("database error"))
	users, err = repo.List(context.Background())
	assert.Error(t, err)
	assert.Nil(t, users)
}

func TestRepository_SetRole(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("UPDATE users SET role = $2 WHERE id = $1")

	mock.ExpectExec(query).WithArgs(1, "admin").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	ok, err := repo.SetRole(context.Background(), 1, "admin")
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(query).WithArgs(9, "admin").WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	ok, err = repo.SetRole(context.Background(), 9, "admin")
	assert.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectExec(query).WithArgs(1, "admin").WillReturnError(errors.New("database error"))
	_, err = repo.SetRole(context.Background(), 1, "admin")
	assert.Error(t, err)
}

func TestRepository_Count(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
	count, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 12, count)
}
