package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Bessima/proxyshop-bot/internal/config/db"
	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/retry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db *db.DB
}

type OrderStorageRepositoryI interface {
	Create(ctx context.Context, order *models.Order) (int, error)
	GetByID(ctx context.Context, id int) (*models.Order, error)
	GetByManagerMsgID(ctx context.Context, msgID int) (*models.Order, error)
	ListByUserAndStatus(ctx context.Context, userID int, status models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int, newStatus models.OrderStatus) error
	SetSubmitted(ctx context.Context, orderID, managerMsgID int) error
	Delete(ctx context.Context, orderID int) error
	AttachPaymentProof(ctx context.Context, userID int, proof []byte, batchID uuid.UUID, at time.Time) error
}

func NewOrderRepository(dbObj *db.DB) *OrderRepository {
	return &OrderRepository{db: dbObj}
}

const orderColumns = `o.id, o.user_id, o.item_id, o.status, o.photo, o.link, o.size, o.cost,
		o.pay_confirm, o.pay_date, o.pay_batch, o.manager_msg_id, o.created_at,
		i.name, i.shipping,
		u.tg_id, u.username, u.fio, u.phone, u.address, u.is_newbie`

const orderJoins = ` FROM orders o
		JOIN items i ON i.id = o.item_id
		JOIN users u ON u.id = o.user_id`

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := models.Order{
		Item: &models.Item{},
		User: &models.User{},
	}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ItemID,
		&order.Status,
		&order.Photo,
		&order.Link,
		&order.Size,
		&order.Cost,
		&order.PaymentProof,
		&order.PaymentSubmittedAt,
		&order.PaymentBatchID,
		&order.ManagerMsgID,
		&order.CreatedAt,
		&order.Item.Name,
		&order.Item.ShippingCost,
		&order.User.TgID,
		&order.User.Username,
		&order.User.FullName,
		&order.User.Phone,
		&order.User.Address,
		&order.User.IsNewCustomer,
	)
	if err != nil {
		return nil, err
	}
	order.Item.ID = order.ItemID
	order.User.ID = order.UserID
	return &order, nil
}

// Create сохраняет собранный черновик; вызывается один раз, на подтверждении
func (repository *OrderRepository) Create(ctx context.Context, order *models.Order) (int, error) {
	query := `INSERT INTO orders (user_id, item_id, status, photo, link, size, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	id, err := retry.DoRetryWithResult(ctx, func() (int, error) {
		row := repository.db.Pool.QueryRow(ctx, query,
			order.UserID, order.ItemID, models.DraftStatus,
			order.Photo, order.Link, order.Size, order.Cost,
		)
		var orderID int
		err := row.Scan(&orderID)
		return orderID, err
	})
	if err != nil {
		return 0, customerror.NewStorageError("order was not created", err)
	}
	return id, nil
}

func (repository *OrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	query := `SELECT ` + orderColumns + orderJoins + ` WHERE o.id = $1`

	order, err := retry.DoRetryWithResult(ctx, func() (*models.Order, error) {
		return scanOrder(repository.db.Pool.QueryRow(ctx, query, id))
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customerror.NewNotFoundError("order")
		}
		return nil, customerror.NewStorageError("get order", err)
	}
	return order, nil
}

// GetByManagerMsgID находит заказ по сообщению, на которое ответил менеджер
func (repository *OrderRepository) GetByManagerMsgID(ctx context.Context, msgID int) (*models.Order, error) {
	query := `SELECT ` + orderColumns + orderJoins + ` WHERE o.manager_msg_id = $1`

	order, err := retry.DoRetryWithResult(ctx, func() (*models.Order, error) {
		return scanOrder(repository.db.Pool.QueryRow(ctx, query, msgID))
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customerror.NewNotFoundError("order")
		}
		return nil, customerror.NewStorageError("get order by manager message", err)
	}
	return order, nil
}

// ListByUserAndStatus возвращает заказы пользователя в порядке добавления
func (repository *OrderRepository) ListByUserAndStatus(ctx context.Context, userID int, status models.OrderStatus) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + orderJoins + ` WHERE o.user_id = $1 AND o.status = $2 ORDER BY o.id`

	orders, err := retry.DoRetryWithResult(ctx, func() ([]models.Order, error) {
		rows, err := repository.db.Pool.Query(ctx, query, userID, status)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		orders := []models.Order{}
		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return nil, err
			}
			orders = append(orders, *order)
		}
		return orders, rows.Err()
	})
	if err != nil {
		return nil, customerror.NewStorageError("list orders", err)
	}
	return orders, nil
}

func (repository *OrderRepository) UpdateStatus(ctx context.Context, orderID int, newStatus models.OrderStatus) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2`

	return retry.DoRetry(ctx, func() error {
		row, err := repository.db.Pool.Exec(ctx, query, newStatus, orderID)
		if err != nil {
			return customerror.NewStorageError("update order status", err)
		}
		if row.RowsAffected() == 0 {
			return customerror.NewNotFoundError("order")
		}
		return nil
	})
}

// SetSubmitted переводит draft -> submitted и запоминает сообщение менеджера.
// Заказы в других статусах не трогает, поэтому повтор отправки корзины безопасен.
func (repository *OrderRepository) SetSubmitted(ctx context.Context, orderID, managerMsgID int) error {
	query := `UPDATE orders SET status = $1, manager_msg_id = $2 WHERE id = $3 AND status = $4`

	return retry.DoRetry(ctx, func() error {
		row, err := repository.db.Pool.Exec(ctx, query,
			models.SubmittedStatus, managerMsgID, orderID, models.DraftStatus)
		if err != nil {
			return customerror.NewStorageError("submit order", err)
		}
		if row.RowsAffected() == 0 {
			return customerror.NewNotFoundError("draft order")
		}
		return nil
	})
}

// Delete удаляет заказ, пока он лежит в корзине черновиком
func (repository *OrderRepository) Delete(ctx context.Context, orderID int) error {
	query := `DELETE FROM orders WHERE id = $1 AND status = $2`

	return retry.DoRetry(ctx, func() error {
		row, err := repository.db.Pool.Exec(ctx, query, orderID, models.DraftStatus)
		if err != nil {
			return customerror.NewStorageError("delete order", err)
		}
		if row.RowsAffected() == 0 {
			return customerror.NewNotFoundError("draft order")
		}
		return nil
	})
}

// AttachPaymentProof записывает один чек во все черновики корзины разом
func (repository *OrderRepository) AttachPaymentProof(ctx context.Context, userID int, proof []byte, batchID uuid.UUID, at time.Time) error {
	query := `UPDATE orders SET pay_confirm = $1, pay_date = $2, pay_batch = $3
		WHERE user_id = $4 AND status = $5`

	return retry.DoRetry(ctx, func() error {
		_, err := repository.db.Pool.Exec(ctx, query, proof, at, batchID, userID, models.DraftStatus)
		if err != nil {
			return customerror.NewStorageError("attach payment proof", err)
		}
		return nil
	})
}
