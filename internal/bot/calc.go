package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/service"
	"github.com/Bessima/proxyshop-bot/internal/session"
	"go.uber.org/zap"
)

// startCalc — калькулятор: та же цепочка категория-цена, но без заказа
func (b *Bot) startCalc(ctx context.Context, chatID int64, messageID int, state *session.State) {
	b.deleteMessage(ctx, chatID, messageID)

	items, err := b.items.List(ctx)
	if err != nil {
		logger.Log.Error("items list failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	state.Mode = session.ModeCalcSelectingItem
	state.Draft = nil

	kb := itemsKb(items)
	b.send(ctx, chatID, "Выберите тип товара:", &kb)
}

func (b *Bot) handleCalcItemSelected(ctx context.Context, cb *tgbotapi.CallbackQuery, state *session.State, itemID int) {
	if _, err := b.items.GetByID(ctx, itemID); err != nil {
		logger.Log.Warn("calc item was not found", zap.Int("item_id", itemID), zap.Error(err))
		return
	}

	state.CalcItemID = itemID
	state.Mode = session.ModeCalcAwaitingCost

	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, "Укажите цену")
	if _, err := b.api.Send(edit); err != nil {
		logger.Log.Warn("message was not edited", zap.Error(err))
	}
}

func (b *Bot) handleCalcCost(ctx context.Context, msg *tgbotapi.Message, state *session.State) {
	chatID := msg.Chat.ID

	draft := service.NewDraft()
	draft.Step = service.StepAwaitingCost
	if err := b.drafts.SetCost(draft, msg.Text); err != nil {
		b.send(ctx, chatID, "Введите корректную стоимость", nil)
		return
	}

	user, err := b.currentUser(ctx, msg.From)
	if err != nil || user == nil {
		logger.Log.Error("calc failed", zap.Error(err))
		return
	}

	item, err := b.items.GetByID(ctx, state.CalcItemID)
	if err != nil {
		logger.Log.Error("calc item lookup failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	preview := &models.Order{Cost: draft.Cost, Item: item}
	total, err := b.pricing.OrderTotal(ctx, user, preview)
	if err != nil {
		logger.Log.Error("calc total failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	state.Mode = session.ModeIdle
	state.CalcItemID = 0

	text := fmt.Sprintf("%s\nСтоимость товара: %v ¥\n\nИтог: %s руб.", item.Name, draft.Cost, total.String())
	kb := startKb()
	b.send(ctx, chatID, text, &kb)
}
