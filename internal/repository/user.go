package repository

import (
	"context"
	"errors"

	"github.com/Bessima/proxyshop-bot/internal/config/db"
	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/retry"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db *db.DB
}

// ProfileUpdate перечисляет единственные изменяемые поля профиля
type ProfileUpdate struct {
	FullName string
	Phone    string
	Address  string
}

type UserStorageRepositoryI interface {
	GetOrCreate(ctx context.Context, tgID, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, update ProfileUpdate) error
	MarkReturning(ctx context.Context, id int) error
}

func NewUserRepository(dbObj *db.DB) *UserRepository {
	return &UserRepository{db: dbObj}
}

const userColumns = `id, tg_id, username, register_date, fio, phone, address, is_newbie`

func scanUser(row pgx.Row) (*models.User, error) {
	user := models.User{}
	err := row.Scan(
		&user.ID,
		&user.TgID,
		&user.Username,
		&user.RegisteredAt,
		&user.FullName,
		&user.Phone,
		&user.Address,
		&user.IsNewCustomer,
	)
	return &user, err
}

// GetOrCreate возвращает пользователя по tg_id, при первом контакте создаёт его
func (repository *UserRepository) GetOrCreate(ctx context.Context, tgID, username string) (*models.User, error) {
	query := `INSERT INTO users (tg_id, username) VALUES ($1, $2)
		ON CONFLICT (tg_id) DO UPDATE SET username = EXCLUDED.username
		RETURNING ` + userColumns

	user, err := retry.DoRetryWithResult(ctx, func() (*models.User, error) {
		return scanUser(repository.db.Pool.QueryRow(ctx, query, tgID, username))
	})
	if err != nil {
		return nil, customerror.NewStorageError("user was not created", err)
	}
	return user, nil
}

func (repository *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := retry.DoRetryWithResult(ctx, func() (*models.User, error) {
		return scanUser(repository.db.Pool.QueryRow(ctx, query, id))
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customerror.NewNotFoundError("user")
		}
		return nil, customerror.NewStorageError("get user", err)
	}
	return user, nil
}

// UpdateProfile меняет только fio/phone/address, другие поля профиля снаружи не правятся
func (repository *UserRepository) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) error {
	query := `UPDATE users SET fio = $1, phone = $2, address = $3 WHERE id = $4`

	return retry.DoRetry(ctx, func() error {
		row, err := repository.db.Pool.Exec(ctx, query, update.FullName, update.Phone, update.Address, id)
		if err != nil {
			return customerror.NewStorageError("update profile", err)
		}
		if row.RowsAffected() == 0 {
			return customerror.NewNotFoundError("user")
		}
		return nil
	})
}

// MarkReturning снимает признак нового клиента после первой оплаты
func (repository *UserRepository) MarkReturning(ctx context.Context, id int) error {
	query := `UPDATE users SET is_newbie = FALSE WHERE id = $1`

	return retry.DoRetry(ctx, func() error {
		row, err := repository.db.Pool.Exec(ctx, query, id)
		if err != nil {
			return customerror.NewStorageError("mark returning", err)
		}
		if row.RowsAffected() == 0 {
			return customerror.NewNotFoundError("user")
		}
		return nil
	})
}
