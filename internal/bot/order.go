package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/service"
	"github.com/Bessima/proxyshop-bot/internal/session"
	"go.uber.org/zap"
)

// showCart показывает корзину; незавершённый черновик при этом пропадает
func (b *Bot) showCart(ctx context.Context, cb *tgbotapi.CallbackQuery, state *session.State) {
	chatID := cb.Message.Chat.ID
	b.deleteMessage(ctx, chatID, cb.Message.MessageID)

	if state.Draft != nil {
		b.drafts.Abandon(state.Draft)
		state.Draft = nil
	}
	state.Mode = session.ModeIdle

	user, err := b.currentUser(ctx, cb.From)
	if err != nil || user == nil {
		logger.Log.Error("cart view failed", zap.Error(err))
		return
	}

	text, err := b.cart.CartText(ctx, user)
	if err != nil {
		logger.Log.Error("cart text failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}
	kb := cartKb()
	b.send(ctx, chatID, text, &kb)
}

func (b *Bot) startDraft(ctx context.Context, cb *tgbotapi.CallbackQuery, state *session.State) {
	chatID := cb.Message.Chat.ID
	b.deleteMessage(ctx, chatID, cb.Message.MessageID)

	items, err := b.items.List(ctx)
	if err != nil {
		logger.Log.Error("items list failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	state.Mode = session.ModeOrder
	state.Draft = service.NewDraft()

	kb := itemsKb(items)
	b.send(ctx, chatID, "Выберите тип товара:", &kb)
}

func (b *Bot) handleItemSelected(ctx context.Context, cb *tgbotapi.CallbackQuery, state *session.State, data string) {
	chatID := cb.Message.Chat.ID
	itemID, err := strconv.Atoi(strings.TrimPrefix(data, "item_"))
	if err != nil {
		return
	}

	if state.Mode == session.ModeCalcSelectingItem {
		b.handleCalcItemSelected(ctx, cb, state, itemID)
		return
	}

	if state.Mode != session.ModeOrder || state.Draft == nil {
		return
	}

	if err = b.drafts.SelectItem(ctx, state.Draft, itemID); err != nil {
		// Незнакомая категория: остаёмся на выборе
		logger.Log.Warn("item was not selected", zap.Int("item_id", itemID), zap.Error(err))
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, "Вставьте фото товара")
	if _, err = b.api.Send(edit); err != nil {
		logger.Log.Warn("message was not edited", zap.Error(err))
	}
}

func (b *Bot) handleDraftMessage(ctx context.Context, msg *tgbotapi.Message, state *session.State) {
	chatID := msg.Chat.ID
	draft := state.Draft
	if draft == nil {
		return
	}

	switch draft.Step {
	case service.StepAwaitingPhoto:
		if len(msg.Photo) == 0 {
			return
		}
		fileID := msg.Photo[len(msg.Photo)-1].FileID
		photo, err := b.chat.DownloadFile(ctx, fileID)
		if err != nil {
			logger.Log.Error("photo was not downloaded", zap.Error(err))
			b.send(ctx, chatID, "Не удалось получить фото, пришлите ещё раз", nil)
			return
		}
		if err = b.drafts.SetPhoto(draft, photo); err != nil {
			b.send(ctx, chatID, "Вставьте фото товара", nil)
			return
		}
		b.send(ctx, chatID, "Укажите ссылку на товар", nil)

	case service.StepAwaitingLink:
		if err := b.drafts.SetLink(draft, msg.Text); err != nil {
			b.send(ctx, chatID, "Укажите ссылку на товар", nil)
			return
		}
		b.send(ctx, chatID, "Укажите размер товара (если есть) или напишите \"нет\"", nil)

	case service.StepAwaitingSize:
		if err := b.drafts.SetSize(draft, msg.Text); err != nil {
			b.send(ctx, chatID, "Укажите размер товара (если есть) или напишите \"нет\"", nil)
			return
		}
		b.send(ctx, chatID, "Укажите стоимость", nil)

	case service.StepAwaitingCost:
		if err := b.drafts.SetCost(draft, msg.Text); err != nil {
			b.send(ctx, chatID, "Введите корректную стоимость", nil)
			return
		}
		b.sendDraftPreview(ctx, msg, draft)
	}
}

// sendDraftPreview — карточка черновика с фото и кнопками подтверждения
func (b *Bot) sendDraftPreview(ctx context.Context, msg *tgbotapi.Message, draft *service.Draft) {
	caption := "Всё ли указано верно?\n\n" + service.ConfirmText(draft)

	if user, err := b.currentUser(ctx, msg.From); err == nil && user != nil && draft.Item != nil {
		preview := &models.Order{Cost: draft.Cost, Item: draft.Item}
		if total, err := b.pricing.OrderTotal(ctx, user, preview); err == nil {
			caption += "Итог: " + total.String() + " руб.\n"
		}
	}

	photoMsg := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "photo", Bytes: draft.Photo})
	photoMsg.Caption = caption
	photoMsg.ReplyMarkup = confirmKb()
	if _, err := b.api.Send(photoMsg); err != nil {
		logger.Log.Error("draft preview was not sent", zap.Error(err))
	}
}

func (b *Bot) handleDraftConfirm(ctx context.Context, cb *tgbotapi.CallbackQuery, state *session.State) {
	chatID := cb.Message.Chat.ID
	if state.Draft == nil {
		return
	}

	user, err := b.currentUser(ctx, cb.From)
	if err != nil || user == nil {
		logger.Log.Error("order confirm failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	if _, err = b.drafts.Confirm(ctx, state.Draft, user.ID); err != nil {
		logger.Log.Error("order was not created", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	b.deleteMessage(ctx, chatID, cb.Message.MessageID)
	state.Draft = nil
	state.Mode = session.ModeIdle

	text, err := b.cart.CartText(ctx, user)
	if err != nil {
		logger.Log.Error("cart text failed", zap.Error(err))
		return
	}
	kb := cartKb()
	b.send(ctx, chatID, text, &kb)
}

func (b *Bot) showCartDelete(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	b.deleteMessage(ctx, chatID, cb.Message.MessageID)

	user, err := b.currentUser(ctx, cb.From)
	if err != nil || user == nil {
		return
	}

	orders, err := b.cart.ListDrafts(ctx, user)
	if err != nil {
		logger.Log.Error("cart list failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	text, err := b.cart.CartText(ctx, user)
	if err != nil {
		logger.Log.Error("cart text failed", zap.Error(err))
		return
	}

	kb := cartDeleteKb(orders)
	b.send(ctx, chatID, text+"\nКакой товар удалить?", &kb)
}

func (b *Bot) handleCartDelete(ctx context.Context, cb *tgbotapi.CallbackQuery, data string) {
	chatID := cb.Message.Chat.ID
	b.deleteMessage(ctx, chatID, cb.Message.MessageID)

	orderID, err := strconv.Atoi(strings.TrimPrefix(data, "cartdel_"))
	if err != nil {
		return
	}
	b.cart.DeleteDraft(ctx, orderID)

	user, err := b.currentUser(ctx, cb.From)
	if err != nil || user == nil {
		return
	}
	text, err := b.cart.CartText(ctx, user)
	if err != nil {
		logger.Log.Error("cart text failed", zap.Error(err))
		return
	}
	kb := cartKb()
	b.send(ctx, chatID, text, &kb)
}

// startPayConfirm просит чек; без заполненного профиля сперва анкета
func (b *Bot) startPayConfirm(ctx context.Context, cb *tgbotapi.CallbackQuery, state *session.State) {
	chatID := cb.Message.Chat.ID

	user, err := b.currentUser(ctx, cb.From)
	if err != nil || user == nil {
		logger.Log.Error("pay confirm failed", zap.Error(err))
		return
	}

	b.deleteMessage(ctx, chatID, cb.Message.MessageID)

	if !user.ProfileComplete() {
		state.Mode = session.ModeProfileFullName
		b.send(ctx, chatID, "У вас не заполнен профиль. Укажите ФИО:", nil)
		return
	}

	state.Mode = session.ModeAwaitingPayProof
	b.send(ctx, chatID, "Пришлите, пожалуйста, чек", nil)
}

// handlePayProof: чек прикладывается ко всем черновикам, корзина уходит менеджеру
func (b *Bot) handlePayProof(ctx context.Context, msg *tgbotapi.Message, state *session.State) {
	chatID := msg.Chat.ID
	if len(msg.Photo) == 0 {
		b.send(ctx, chatID, "Пришлите, пожалуйста, чек", nil)
		return
	}

	user, err := b.currentUser(ctx, msg.From)
	if err != nil || user == nil {
		logger.Log.Error("pay proof failed", zap.Error(err))
		return
	}

	fileID := msg.Photo[len(msg.Photo)-1].FileID
	proof, err := b.chat.DownloadFile(ctx, fileID)
	if err != nil {
		logger.Log.Error("payment proof was not downloaded", zap.Error(err))
		b.send(ctx, chatID, "Не удалось получить чек, пришлите ещё раз", nil)
		return
	}

	if err = b.cart.AttachPaymentProof(ctx, user, proof); err != nil {
		logger.Log.Error("payment proof was not saved", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	// Сводка считается до смены тарифа: корзина оплачена ещё по старой комиссии
	text, err := b.cart.CartText(ctx, user)
	if err == nil {
		b.send(ctx, chatID, "Ваш заказ оформлен:\n"+text, nil)
	}

	kb := startKb()
	b.send(ctx, chatID,
		"Спасибо за покупку!\nНаш менеджер подтвердит оплату в течение 24 часов, и пришлёт скриншот выкупа.",
		&kb)

	if err = b.users.MarkReturning(ctx, user.ID); err != nil {
		logger.Log.Warn("user tier was not updated", zap.Int("user_id", user.ID), zap.Error(err))
	}

	if _, err = b.cart.SubmitToManager(ctx, user); err != nil {
		if !customerror.IsValidation(err) {
			logger.Log.Error("cart was not submitted to manager", zap.Error(err))
		}
	}

	b.sessions.Clear(chatID)
	state.Mode = session.ModeIdle
}
