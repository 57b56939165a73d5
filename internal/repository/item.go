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

type ItemRepository struct {
	db *db.DB
}

type ItemStorageRepositoryI interface {
	GetByID(ctx context.Context, id int) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
}

func NewItemRepository(dbObj *db.DB) *ItemRepository {
	return &ItemRepository{db: dbObj}
}

func (repository *ItemRepository) GetByID(ctx context.Context, id int) (*models.Item, error) {
	query := `SELECT id, name, shipping FROM items WHERE id = $1`

	item, err := retry.DoRetryWithResult(ctx, func() (*models.Item, error) {
		row := repository.db.Pool.QueryRow(ctx, query, id)
		elem := models.Item{}
		err := row.Scan(&elem.ID, &elem.Name, &elem.ShippingCost)
		return &elem, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customerror.NewNotFoundError("item")
		}
		return nil, customerror.NewStorageError("get item", err)
	}
	return item, nil
}

func (repository *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	query := `SELECT id, name, shipping FROM items ORDER BY id`

	items, err := retry.DoRetryWithResult(ctx, func() ([]models.Item, error) {
		rows, err := repository.db.Pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		items := []models.Item{}
		for rows.Next() {
			var item models.Item
			if err = rows.Scan(&item.ID, &item.Name, &item.ShippingCost); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, rows.Err()
	})
	if err != nil {
		return nil, customerror.NewStorageError("list items", err)
	}
	return items, nil
}
