package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/metrics"
	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/repository"
	"github.com/Bessima/proxyshop-bot/internal/transport"
	"go.uber.org/zap"
)

// ManagerService применяет решения менеджера к отправленным заказам.
// Отмена ищет заказ по номеру из текста ответа, подтверждение — по сообщению,
// на которое менеджер ответил. Это два разных пути поиска, оба как в проде.
type ManagerService struct {
	orders repository.OrderStorageRepositoryI
	chat   transport.Client
}

func NewManagerService(orders repository.OrderStorageRepositoryI, chat transport.Client) *ManagerService {
	return &ManagerService{orders: orders, chat: chat}
}

// StartCancel проверяет, что заказ существует и ещё не в конечном статусе.
// Причину отмены менеджер сообщает следующим сообщением.
func (service *ManagerService) StartCancel(ctx context.Context, orderID int) (*models.Order, error) {
	order, err := service.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, customerror.NewValidationError(
			fmt.Sprintf("order %d is already %s", orderID, order.Status))
	}
	return order, nil
}

// CompleteCancel: уведомить владельца с причиной, перевести в canceled,
// убрать карточку из чата менеджера
func (service *ManagerService) CompleteCancel(ctx context.Context, orderID int, reason string, managerChatID int64, managerMsgID int) error {
	order, err := service.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.Terminal() {
		return customerror.NewValidationError(
			fmt.Sprintf("order %d is already %s", orderID, order.Status))
	}

	userChatID, err := strconv.ParseInt(order.User.TgID, 10, 64)
	if err != nil {
		return customerror.NewValidationError("order owner has no chat id")
	}

	cancelText := fmt.Sprintf("Заказ %d отменен:\n%s", orderID, reason)
	if _, err = service.chat.SendMessage(ctx, userChatID, cancelText); err != nil {
		logger.Log.Error("user was not notified about cancellation",
			zap.Int("order_id", orderID), zap.Error(err))
	}

	if err = service.orders.UpdateStatus(ctx, orderID, models.CanceledStatus); err != nil {
		return err
	}
	metrics.ManagerDecisions.WithLabelValues("cancel").Inc()

	if err = service.chat.DeleteMessage(ctx, managerChatID, managerMsgID); err != nil {
		logger.Log.Warn("manager message was not deleted",
			zap.Int("message_id", managerMsgID), zap.Error(err))
	}

	logger.Log.Info("order canceled", zap.Int("order_id", orderID))
	return nil
}

// Confirm обрабатывает ответ-фото «подтвердить N»: заказ ищется по сообщению,
// на которое ответили, номер из подписи обязан совпасть с найденным
func (service *ManagerService) Confirm(ctx context.Context, repliedMsgID, suppliedOrderID int, proofPhotoFileID string, managerChatID int64) (*models.Order, error) {
	order, err := service.orders.GetByManagerMsgID(ctx, repliedMsgID)
	if err != nil {
		return nil, err
	}
	if order.ID != suppliedOrderID {
		return nil, customerror.NewNotFoundError("order")
	}
	if order.Status.Terminal() {
		return nil, customerror.NewValidationError(
			fmt.Sprintf("order %d is already %s", order.ID, order.Status))
	}

	if err = service.orders.UpdateStatus(ctx, order.ID, models.ConfirmedStatus); err != nil {
		return nil, err
	}
	metrics.ManagerDecisions.WithLabelValues("confirm").Inc()

	userChatID, parseErr := strconv.ParseInt(order.User.TgID, 10, 64)
	if parseErr != nil {
		logger.Log.Error("order owner has no chat id", zap.Int("order_id", order.ID))
	} else {
		confirmText := fmt.Sprintf("Заказ %d выкуплен", order.ID)
		if _, err = service.chat.SendPhotoByFileID(ctx, userChatID, proofPhotoFileID, confirmText); err != nil {
			logger.Log.Error("purchase proof was not forwarded to user",
				zap.Int("order_id", order.ID), zap.Error(err))
		}
	}

	if err = service.chat.DeleteMessage(ctx, managerChatID, repliedMsgID); err != nil {
		logger.Log.Warn("manager message was not deleted",
			zap.Int("message_id", repliedMsgID), zap.Error(err))
	}

	logger.Log.Info("order confirmed", zap.Int("order_id", order.ID))
	return order, nil
}
