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

type FaqRepository struct {
	db *db.DB
}

type FaqStorageRepositoryI interface {
	GetByID(ctx context.Context, id int) (*models.Faq, error)
	List(ctx context.Context) ([]models.Faq, error)
}

func NewFaqRepository(dbObj *db.DB) *FaqRepository {
	return &FaqRepository{db: dbObj}
}

func (repository *FaqRepository) GetByID(ctx context.Context, id int) (*models.Faq, error) {
	query := `SELECT id, question, answer FROM faq WHERE id = $1`

	faq, err := retry.DoRetryWithResult(ctx, func() (*models.Faq, error) {
		row := repository.db.Pool.QueryRow(ctx, query, id)
		elem := models.Faq{}
		err := row.Scan(&elem.ID, &elem.Question, &elem.Answer)
		return &elem, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customerror.NewNotFoundError("faq")
		}
		return nil, customerror.NewStorageError("get faq", err)
	}
	return faq, nil
}

func (repository *FaqRepository) List(ctx context.Context) ([]models.Faq, error) {
	query := `SELECT id, question, answer FROM faq ORDER BY id`

	faqs, err := retry.DoRetryWithResult(ctx, func() ([]models.Faq, error) {
		rows, err := repository.db.Pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		faqs := []models.Faq{}
		for rows.Next() {
			var faq models.Faq
			if err = rows.Scan(&faq.ID, &faq.Question, &faq.Answer); err != nil {
				return nil, err
			}
			faqs = append(faqs, faq)
		}
		return faqs, rows.Err()
	})
	if err != nil {
		return nil, customerror.NewStorageError("list faq", err)
	}
	return faqs, nil
}
