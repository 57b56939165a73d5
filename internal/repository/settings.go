package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/Bessima/proxyshop-bot/internal/config/db"
	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/retry"
	"github.com/jackc/pgx/v5"
)

type SettingsRepository struct {
	db *db.DB
}

type SettingsStorageRepositoryI interface {
	Get(ctx context.Context, name string) (string, error)
	GetInt(ctx context.Context, name string) (int, error)
	GetFloat(ctx context.Context, name string) (float64, error)
}

func NewSettingsRepository(dbObj *db.DB) *SettingsRepository {
	return &SettingsRepository{db: dbObj}
}

func (repository *SettingsRepository) Get(ctx context.Context, name string) (string, error) {
	query := `SELECT value FROM bot_settings WHERE name = $1 LIMIT 1`

	value, err := retry.DoRetryWithResult(ctx, func() (string, error) {
		row := repository.db.Pool.QueryRow(ctx, query, name)
		var value string
		err := row.Scan(&value)
		return value, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", customerror.NewNotFoundError("setting " + name)
		}
		return "", customerror.NewStorageError("get setting "+name, err)
	}
	return value, nil
}

func (repository *SettingsRepository) GetInt(ctx context.Context, name string) (int, error) {
	value, err := repository.Get(ctx, name)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, customerror.NewValidationError("setting " + name + " is not an integer")
	}
	return parsed, nil
}

func (repository *SettingsRepository) GetFloat(ctx context.Context, name string) (float64, error) {
	value, err := repository.Get(ctx, name)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, customerror.NewValidationError("setting " + name + " is not a number")
	}
	return parsed, nil
}
