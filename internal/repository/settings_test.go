package repository

import (
	"context"
	"testing"

	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_Get_Success(t *testing.T) {
	// Arrange
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettingsRepository(NewTestDB(mock))

	rows := pgxmock.NewRows([]string{"value"}).AddRow("12.71")
	mock.ExpectQuery("SELECT value FROM bot_settings").
		WithArgs(models.SettingCnyRate).
		WillReturnRows(rows)

	// Act
	value, err := repo.Get(context.Background(), models.SettingCnyRate)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "12.71", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettingsRepository(NewTestDB(mock))

	mock.ExpectQuery("SELECT value FROM bot_settings").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	value, err := repo.Get(context.Background(), "missing")

	assert.True(t, customerror.IsNotFound(err))
	assert.Empty(t, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_GetInt(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		want    int
		invalid bool
	}{
		{name: "целое значение", stored: "99", want: 99},
		{name: "не число", stored: "abc", invalid: true},
		{name: "дробное значение не int", stored: "12.71", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewSettingsRepository(NewTestDB(mock))

			rows := pgxmock.NewRows([]string{"value"}).AddRow(tt.stored)
			mock.ExpectQuery("SELECT value FROM bot_settings").
				WithArgs(models.SettingTaxTier1).
				WillReturnRows(rows)

			value, err := repo.GetInt(context.Background(), models.SettingTaxTier1)

			if tt.invalid {
				assert.True(t, customerror.IsValidation(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, value)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSettingsRepository_GetFloat(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettingsRepository(NewTestDB(mock))

	rows := pgxmock.NewRows([]string{"value"}).AddRow("12.71")
	mock.ExpectQuery("SELECT value FROM bot_settings").
		WithArgs(models.SettingCnyRate).
		WillReturnRows(rows)

	value, err := repo.GetFloat(context.Background(), models.SettingCnyRate)

	assert.NoError(t, err)
	assert.InDelta(t, 12.71, value, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_GetFloat_NotANumber(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSettingsRepository(NewTestDB(mock))

	rows := pgxmock.NewRows([]string{"value"}).AddRow("дорого")
	mock.ExpectQuery("SELECT value FROM bot_settings").
		WithArgs(models.SettingCnyRate).
		WillReturnRows(rows)

	_, err = repo.GetFloat(context.Background(), models.SettingCnyRate)

	assert.True(t, customerror.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
