package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/metrics"
	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/repository"
	"github.com/Bessima/proxyshop-bot/internal/transport"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService struct {
	orders   repository.OrderStorageRepositoryI
	users    repository.UserStorageRepositoryI
	settings repository.SettingsStorageRepositoryI
	pricing  *PricingService
	chat     transport.Client
}

func NewCartService(
	orders repository.OrderStorageRepositoryI,
	users repository.UserStorageRepositoryI,
	settings repository.SettingsStorageRepositoryI,
	pricingService *PricingService,
	chat transport.Client,
) *CartService {
	return &CartService{
		orders:   orders,
		users:    users,
		settings: settings,
		pricing:  pricingService,
		chat:     chat,
	}
}

// ListDrafts — содержимое корзины: только подтверждённые черновики
func (service *CartService) ListDrafts(ctx context.Context, user *models.User) ([]models.Order, error) {
	return service.orders.ListByUserAndStatus(ctx, user.ID, models.DraftStatus)
}

// CartText собирает сводку корзины для показа пользователю
func (service *CartService) CartText(ctx context.Context, user *models.User) (string, error) {
	orders, err := service.ListDrafts(ctx, user)
	if err != nil {
		return "", err
	}

	total, err := service.pricing.CartTotal(ctx, user, orders)
	if err != nil {
		return "", err
	}

	payReq, err := service.settings.Get(ctx, models.SettingPayReq)
	if err != nil {
		return "", err
	}

	return CartText(user, orders, total, payReq), nil
}

// DeleteDraft убирает заказ из корзины. Ошибка здесь не валит сценарий:
// логируем и показываем корзину как есть.
func (service *CartService) DeleteDraft(ctx context.Context, orderID int) {
	if err := service.orders.Delete(ctx, orderID); err != nil {
		logger.Log.Warn("order was not deleted", zap.Int("order_id", orderID), zap.Error(err))
	}
}

// AttachPaymentProof прикладывает один чек ко всем черновикам корзины
func (service *CartService) AttachPaymentProof(ctx context.Context, user *models.User, proof []byte) error {
	if len(proof) == 0 {
		return customerror.NewValidationError("empty payment proof")
	}
	now := time.Now()
	return service.orders.AttachPaymentProof(ctx, user.ID, proof, uuid.New(), now)
}

func (service *CartService) managerChatID(ctx context.Context) (int64, error) {
	raw, err := service.settings.Get(ctx, models.SettingManagerID)
	if err != nil {
		return 0, err
	}
	managerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, customerror.NewValidationError("manager_id setting is not a chat id")
	}
	return managerID, nil
}

// SubmitToManager отправляет менеджеру карточку по каждому черновику и переводит
// заказ в submitted, запоминая id сообщения. Отправка негарантированная:
// сбой по одному заказу логируется, остальные уходят дальше. Заказ, оставшийся
// в draft, попадёт в следующую отправку — SetSubmitted не трогает уже
// отправленные.
func (service *CartService) SubmitToManager(ctx context.Context, user *models.User) ([]int, error) {
	managerID, err := service.managerChatID(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := service.ListDrafts(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	var submitted []int
	var proof []byte
	for i := range orders {
		order := &orders[i]
		msgID, err := service.chat.SendPhoto(ctx, managerID, order.Photo, ManagerOrderText(user, order))
		if err != nil {
			logger.Log.Error("manager notification failed",
				zap.Int("order_id", order.ID), zap.Error(err))
			continue
		}
		if err = service.orders.SetSubmitted(ctx, order.ID, msgID); err != nil {
			logger.Log.Error("order was not marked submitted",
				zap.Int("order_id", order.ID), zap.Error(err))
			continue
		}
		submitted = append(submitted, order.ID)
		proof = order.PaymentProof
		metrics.OrdersSubmitted.Inc()
	}

	if len(submitted) > 0 && len(proof) > 0 {
		caption := fmt.Sprintf("Платеж к заказам %v", submitted)
		if _, err = service.chat.SendPhoto(ctx, managerID, proof, caption); err != nil {
			logger.Log.Error("payment proof was not sent to manager", zap.Error(err))
		}
	}

	return submitted, nil
}
