package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderTestColumns = []string{
	"id", "user_id", "item_id", "status", "photo", "link", "size", "cost",
	"pay_confirm", "pay_date", "pay_batch", "manager_msg_id", "created_at",
	"name", "shipping",
	"tg_id", "username", "fio", "phone", "address", "is_newbie",
}

func orderTestRow(rows *pgxmock.Rows, id int, status models.OrderStatus, managerMsgID *int) *pgxmock.Rows {
	return rows.AddRow(
		id, 1, 2, status, []byte{0x1}, "https://example.com/item", "42", 100.0,
		nil, nil, nil, managerMsgID, time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		"Кроссовки", 1390,
		"100200300", "buyer", "Иванов Иван", "+79990001122", "Москва", true,
	)
}

func TestOrderRepository_Create_Success(t *testing.T) {
	// Arrange
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	order := &models.Order{
		UserID: 1,
		ItemID: 2,
		Photo:  []byte{0x1},
		Link:   "https://example.com/item",
		Size:   "42",
		Cost:   100,
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(order.UserID, order.ItemID, models.DraftStatus,
			order.Photo, order.Link, order.Size, order.Cost).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(42))

	// Act
	orderID, err := repo.Create(context.Background(), order)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 42, orderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_DatabaseError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(1, 2, models.DraftStatus, []byte{0x1}, "link", "42", 100.0).
		WillReturnError(errors.New("database connection error"))

	_, err = repo.Create(context.Background(), &models.Order{
		UserID: 1, ItemID: 2, Photo: []byte{0x1}, Link: "link", Size: "42", Cost: 100,
	})

	assert.Error(t, err)
	assert.True(t, customerror.IsStorage(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	msgID := 777
	rows := orderTestRow(pgxmock.NewRows(orderTestColumns), 42, models.SubmittedStatus, &msgID)

	mock.ExpectQuery("SELECT (.+) FROM orders o").
		WithArgs(42).
		WillReturnRows(rows)

	order, err := repo.GetByID(context.Background(), 42)

	assert.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, models.SubmittedStatus, order.Status)
	require.NotNil(t, order.ManagerMsgID)
	assert.Equal(t, 777, *order.ManagerMsgID)
	require.NotNil(t, order.Item)
	assert.Equal(t, "Кроссовки", order.Item.Name)
	assert.Equal(t, 1390, order.Item.ShippingCost)
	require.NotNil(t, order.User)
	assert.Equal(t, "100200300", order.User.TgID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	mock.ExpectQuery("SELECT (.+) FROM orders o").
		WithArgs(99999).
		WillReturnError(pgx.ErrNoRows)

	order, err := repo.GetByID(context.Background(), 99999)

	assert.Error(t, err)
	assert.True(t, customerror.IsNotFound(err))
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByManagerMsgID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	mock.ExpectQuery("SELECT (.+) FROM orders o").
		WithArgs(555).
		WillReturnError(pgx.ErrNoRows)

	order, err := repo.GetByManagerMsgID(context.Background(), 555)

	assert.True(t, customerror.IsNotFound(err))
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUserAndStatus_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	rows := pgxmock.NewRows(orderTestColumns)
	rows = orderTestRow(rows, 1, models.DraftStatus, nil)
	rows = orderTestRow(rows, 2, models.DraftStatus, nil)

	mock.ExpectQuery("SELECT (.+) FROM orders o").
		WithArgs(1, models.DraftStatus).
		WillReturnRows(rows)

	orders, err := repo.ListByUserAndStatus(context.Background(), 1, models.DraftStatus)

	assert.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 1, orders[0].ID)
	assert.Equal(t, 2, orders[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUserAndStatus_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	mock.ExpectQuery("SELECT (.+) FROM orders o").
		WithArgs(999, models.DraftStatus).
		WillReturnRows(pgxmock.NewRows(orderTestColumns))

	orders, err := repo.ListByUserAndStatus(context.Background(), 999, models.DraftStatus)

	assert.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(models.ConfirmedStatus, 42).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateStatus(context.Background(), 42, models.ConfirmedStatus)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_OrderNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(models.CanceledStatus, 99999).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateStatus(context.Background(), 99999, models.CanceledStatus)

	assert.Error(t, err)
	assert.True(t, customerror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_SetSubmitted_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(models.SubmittedStatus, 777, 42, models.DraftStatus).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.SetSubmitted(context.Background(), 42, 777)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_SetSubmitted_SkipsNonDraft(t *testing.T) {
	// Повторная отправка корзины не трогает уже отправленный заказ
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(models.SubmittedStatus, 778, 42, models.DraftStatus).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.SetSubmitted(context.Background(), 42, 778)

	assert.Error(t, err)
	assert.True(t, customerror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Delete_DraftOnly(t *testing.T) {
	testCases := []struct {
		name     string
		affected int64
		wantErr  bool
	}{
		{name: "draft is deleted", affected: 1, wantErr: false},
		{name: "submitted order is kept", affected: 0, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewOrderRepository(NewTestDB(mock))

			mock.ExpectExec("DELETE FROM orders").
				WithArgs(42, models.DraftStatus).
				WillReturnResult(pgxmock.NewResult("DELETE", tc.affected))

			err = repo.Delete(context.Background(), 42)

			if tc.wantErr {
				assert.True(t, customerror.IsNotFound(err))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_AttachPaymentProof(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(NewTestDB(mock))

	proof := []byte{0xCA, 0xFE}
	batchID := uuid.New()
	at := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE orders SET pay_confirm").
		WithArgs(proof, at, batchID, 1, models.DraftStatus).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	err = repo.AttachPaymentProof(context.Background(), 1, proof, batchID, at)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
