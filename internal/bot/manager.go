package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/session"
	"go.uber.org/zap"
)

// handleManagerCancelRequest: ответ «отменить N» на карточку заказа.
// Заказ ищется по номеру из текста, причину отмены ждём следующим сообщением.
func (b *Bot) handleManagerCancelRequest(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	raw := strings.TrimSpace(strings.TrimPrefix(strings.ToLower(msg.Text), cancelPrefix))
	orderID, err := strconv.Atoi(raw)
	if err != nil {
		b.send(ctx, chatID, "Заказ не найден", nil)
		return
	}

	order, err := b.manager.StartCancel(ctx, orderID)
	if err != nil {
		if customerror.IsValidation(err) {
			b.send(ctx, chatID, fmt.Sprintf("Заказ %d уже завершен", orderID), nil)
			return
		}
		b.send(ctx, chatID, "Заказ не найден", nil)
		return
	}

	state := b.sessions.Get(chatID)
	state.Mode = session.ModeManagerCancelReason
	state.PendingCancel = &session.PendingCancel{
		OrderID:       order.ID,
		ManagerChatID: chatID,
		ManagerMsgID:  msg.ReplyToMessage.MessageID,
	}
	b.send(ctx, chatID, "Укажите причину отмены", nil)
}

func (b *Bot) handleManagerCancelReason(ctx context.Context, msg *tgbotapi.Message, state *session.State) {
	chatID := msg.Chat.ID
	pending := state.PendingCancel

	state.Mode = session.ModeIdle
	state.PendingCancel = nil

	if pending == nil {
		return
	}

	err := b.manager.CompleteCancel(ctx, pending.OrderID, msg.Text, pending.ManagerChatID, pending.ManagerMsgID)
	if err != nil {
		logger.Log.Error("order was not canceled", zap.Int("order_id", pending.OrderID), zap.Error(err))
		if customerror.IsNotFound(err) {
			b.send(ctx, chatID, "Заказ не найден", nil)
		} else {
			b.send(ctx, chatID, fmt.Sprintf("Ошибка: %v", err), nil)
		}
		return
	}

	b.send(ctx, chatID, fmt.Sprintf("Заказ %d отменен", pending.OrderID), nil)
}

// handleManagerConfirm: ответ-фото «подтвердить N» на карточку заказа.
// Заказ ищется по сообщению, на которое ответили; номер обязан совпасть.
func (b *Bot) handleManagerConfirm(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	raw := strings.TrimSpace(strings.TrimPrefix(strings.ToLower(msg.Caption), confirmPrefix))
	orderID, err := strconv.Atoi(raw)
	if err != nil {
		b.send(ctx, chatID, "Заказ не найден", nil)
		return
	}

	proofFileID := msg.Photo[len(msg.Photo)-1].FileID
	order, err := b.manager.Confirm(ctx, msg.ReplyToMessage.MessageID, orderID, proofFileID, chatID)
	if err != nil {
		logger.Log.Error("order was not confirmed", zap.Int("order_id", orderID), zap.Error(err))
		switch {
		case customerror.IsNotFound(err):
			b.send(ctx, chatID, "Заказ не найден", nil)
		case customerror.IsValidation(err):
			b.send(ctx, chatID, fmt.Sprintf("Заказ %d уже завершен", orderID), nil)
		default:
			b.send(ctx, chatID, fmt.Sprintf("Ошибка: %v", err), nil)
		}
		return
	}

	b.send(ctx, chatID, fmt.Sprintf("Заказ %d подтвержден", order.ID), nil)
}
