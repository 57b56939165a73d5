package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/repository"
	"github.com/Bessima/proxyshop-bot/internal/session"
	"go.uber.org/zap"
)

func tgIDOf(from *tgbotapi.User) string {
	return strconv.FormatInt(from.ID, 10)
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	b.sessions.Clear(msg.Chat.ID)

	if _, err := b.currentUser(ctx, msg.From); err != nil {
		logger.Log.Error("user was not registered", zap.Error(err))
	}

	kb := startKb()
	b.send(ctx, msg.Chat.ID, "Привет", &kb)
}

func (b *Bot) showMenu(ctx context.Context, chatID int64, messageID int) {
	b.deleteMessage(ctx, chatID, messageID)
	kb := startKb()
	b.send(ctx, chatID, "Главное меню", &kb)
}

func (b *Bot) showFaq(ctx context.Context, chatID int64, messageID int) {
	faqs, err := b.faqs.List(ctx)
	if err != nil {
		logger.Log.Error("faq list failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	b.deleteMessage(ctx, chatID, messageID)
	kb := faqKb(faqs)
	b.send(ctx, chatID, "Частые вопросы:", &kb)
}

func (b *Bot) showFaqAnswer(ctx context.Context, chatID int64, data string) {
	faqID, err := strconv.Atoi(strings.TrimPrefix(data, "answer_"))
	if err != nil {
		return
	}

	faq, err := b.faqs.GetByID(ctx, faqID)
	if err != nil {
		logger.Log.Warn("faq was not found", zap.Int("faq_id", faqID), zap.Error(err))
		return
	}

	kb := startKb()
	b.send(ctx, chatID, faq.Answer, &kb)
}

func (b *Bot) showItems(ctx context.Context, chatID int64, messageID int) {
	items, err := b.items.List(ctx)
	if err != nil {
		logger.Log.Error("items list failed", zap.Error(err))
		b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
		return
	}

	var lines []string
	for _, item := range items {
		lines = append(lines, item.Name+" (Доставка "+strconv.Itoa(item.ShippingCost)+")")
	}

	b.deleteMessage(ctx, chatID, messageID)
	kb := startKb()
	b.send(ctx, chatID, strings.Join(lines, "\n"), &kb)
}

func (b *Bot) startProfileUpdate(ctx context.Context, cb *tgbotapi.CallbackQuery, state *session.State) {
	b.deleteMessage(ctx, cb.Message.Chat.ID, cb.Message.MessageID)
	state.Mode = session.ModeProfileFullName
	b.send(ctx, cb.Message.Chat.ID, "Укажите ФИО", nil)
}

// handleProfileMessage ведёт анкету: ФИО -> телефон -> адрес, затем сохраняет
// все три поля одним обновлением
func (b *Bot) handleProfileMessage(ctx context.Context, msg *tgbotapi.Message, state *session.State) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch state.Mode {
	case session.ModeProfileFullName:
		state.ProfileFullName = text
		state.Mode = session.ModeProfilePhone
		b.send(ctx, chatID, "Введите номер телефона", nil)

	case session.ModeProfilePhone:
		state.ProfilePhone = text
		state.Mode = session.ModeProfileAddress
		b.send(ctx, chatID, "Введите адрес", nil)

	case session.ModeProfileAddress:
		user, err := b.currentUser(ctx, msg.From)
		if err != nil || user == nil {
			logger.Log.Error("profile update failed", zap.Error(err))
			b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
			return
		}

		update := repository.ProfileUpdate{
			FullName: state.ProfileFullName,
			Phone:    state.ProfilePhone,
			Address:  text,
		}
		if err = b.users.UpdateProfile(ctx, user.ID, update); err != nil {
			logger.Log.Error("profile update failed", zap.Int("user_id", user.ID), zap.Error(err))
			b.send(ctx, chatID, "Что-то пошло не так, попробуйте позже", nil)
			return
		}

		user.FullName = update.FullName
		user.Phone = update.Phone
		user.Address = update.Address
		state.Mode = session.ModeIdle
		state.ProfileFullName = ""
		state.ProfilePhone = ""

		text, err := b.cart.CartText(ctx, user)
		if err != nil {
			logger.Log.Error("cart text failed", zap.Error(err))
			return
		}
		kb := cartKb()
		b.send(ctx, chatID, text, &kb)
	}
}
