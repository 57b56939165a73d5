package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userTestColumns = []string{
	"id", "tg_id", "username", "register_date", "fio", "phone", "address", "is_newbie",
}

func TestUserRepository_GetOrCreate_NewUser(t *testing.T) {
	// Arrange
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(NewTestDB(mock))

	registered := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(userTestColumns).
		AddRow(1, "100200300", "buyer", registered, "", "", "", true)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("100200300", "buyer").
		WillReturnRows(rows)

	// Act
	user, err := repo.GetOrCreate(context.Background(), "100200300", "buyer")

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "100200300", user.TgID)
	assert.True(t, user.IsNewCustomer)
	assert.False(t, user.ProfileComplete())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetOrCreate_DatabaseError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(NewTestDB(mock))

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("100200300", "buyer").
		WillReturnError(errors.New("database connection error"))

	user, err := repo.GetOrCreate(context.Background(), "100200300", "buyer")

	assert.Error(t, err)
	assert.True(t, customerror.IsStorage(err))
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(NewTestDB(mock))

	update := ProfileUpdate{
		FullName: "Иванов Иван",
		Phone:    "+79990001122",
		Address:  "Москва",
	}

	mock.ExpectExec("UPDATE users SET fio").
		WithArgs(update.FullName, update.Phone, update.Address, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateProfile(context.Background(), 1, update)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile_UserNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(NewTestDB(mock))

	mock.ExpectExec("UPDATE users SET fio").
		WithArgs("x", "y", "z", 99999).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateProfile(context.Background(), 99999, ProfileUpdate{FullName: "x", Phone: "y", Address: "z"})

	assert.True(t, customerror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_MarkReturning(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(NewTestDB(mock))

	mock.ExpectExec("UPDATE users SET is_newbie").
		WithArgs(1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.MarkReturning(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
