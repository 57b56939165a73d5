package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/repository"
	"github.com/Bessima/proxyshop-bot/internal/service"
	"github.com/Bessima/proxyshop-bot/internal/session"
	"github.com/Bessima/proxyshop-bot/internal/transport"
	"go.uber.org/zap"
)

const (
	cancelPrefix  = "отменить "
	confirmPrefix = "подтвердить "
)

// Bot связывает входящие апдейты с сервисами заказа, корзины и менеджера
type Bot struct {
	api      *tgbotapi.BotAPI
	chat     transport.Client
	sessions *session.Manager

	users    repository.UserStorageRepositoryI
	items    repository.ItemStorageRepositoryI
	faqs     repository.FaqStorageRepositoryI
	settings repository.SettingsStorageRepositoryI

	drafts  *service.DraftService
	cart    *service.CartService
	manager *service.ManagerService
	pricing *service.PricingService
}

type Deps struct {
	API      *tgbotapi.BotAPI
	Chat     transport.Client
	Users    repository.UserStorageRepositoryI
	Items    repository.ItemStorageRepositoryI
	Faqs     repository.FaqStorageRepositoryI
	Settings repository.SettingsStorageRepositoryI
	Drafts   *service.DraftService
	Cart     *service.CartService
	Manager  *service.ManagerService
	Pricing  *service.PricingService
}

func New(deps Deps) *Bot {
	return &Bot{
		api:      deps.API,
		chat:     deps.Chat,
		sessions: session.NewManager(),
		users:    deps.Users,
		items:    deps.Items,
		faqs:     deps.Faqs,
		settings: deps.Settings,
		drafts:   deps.Drafts,
		cart:     deps.Cart,
		manager:  deps.Manager,
		pricing:  deps.Pricing,
	}
}

// Run крутит long polling до отмены контекста
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)
	logger.Log.Info("bot is polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	// Ответы менеджера перехватываются раньше пользовательских сценариев
	if msg.ReplyToMessage != nil {
		if strings.HasPrefix(strings.ToLower(msg.Text), cancelPrefix) {
			b.handleManagerCancelRequest(ctx, msg)
			return
		}
		if len(msg.Photo) > 0 && strings.HasPrefix(strings.ToLower(msg.Caption), confirmPrefix) {
			b.handleManagerConfirm(ctx, msg)
			return
		}
	}

	if msg.IsCommand() && msg.Command() == "start" {
		b.handleStart(ctx, msg)
		return
	}

	state := b.sessions.Get(chatID)
	switch state.Mode {
	case session.ModeManagerCancelReason:
		b.handleManagerCancelReason(ctx, msg, state)
	case session.ModeOrder:
		b.handleDraftMessage(ctx, msg, state)
	case session.ModeAwaitingPayProof:
		b.handlePayProof(ctx, msg, state)
	case session.ModeProfileFullName, session.ModeProfilePhone, session.ModeProfileAddress:
		b.handleProfileMessage(ctx, msg, state)
	case session.ModeCalcAwaitingCost:
		b.handleCalcCost(ctx, msg, state)
	default:
		// Эхо-фильтр: сообщение вне сценария только логируем
		logger.Log.Debug("unhandled message",
			zap.Int64("chat_id", chatID), zap.String("text", msg.Text))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logger.Log.Warn("callback was not answered", zap.Error(err))
	}
	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	state := b.sessions.Get(chatID)
	data := cb.Data

	switch {
	case data == "menu":
		b.showMenu(ctx, chatID, cb.Message.MessageID)
	case data == "faq":
		b.showFaq(ctx, chatID, cb.Message.MessageID)
	case strings.HasPrefix(data, "answer_"):
		b.showFaqAnswer(ctx, chatID, data)
	case data == "items":
		b.showItems(ctx, chatID, cb.Message.MessageID)
	case data == "calc":
		b.startCalc(ctx, chatID, cb.Message.MessageID, state)
	case data == "cart":
		b.showCart(ctx, cb, state)
	case data == "order":
		b.startDraft(ctx, cb, state)
	case strings.HasPrefix(data, "item_"):
		b.handleItemSelected(ctx, cb, state, data)
	case data == "order_confirm":
		b.handleDraftConfirm(ctx, cb, state)
	case data == "cart_del":
		b.showCartDelete(ctx, cb)
	case strings.HasPrefix(data, "cartdel_"):
		b.handleCartDelete(ctx, cb, data)
	case data == "pay_confirm":
		b.startPayConfirm(ctx, cb, state)
	case data == "user_update":
		b.startProfileUpdate(ctx, cb, state)
	default:
		logger.Log.Debug("unhandled callback", zap.String("data", data))
	}
}

func (b *Bot) currentUser(ctx context.Context, from *tgbotapi.User) (*models.User, error) {
	if from == nil {
		return nil, nil
	}
	return b.users.GetOrCreate(ctx, tgIDOf(from), from.UserName)
}

// send отправляет текст с клавиатурой, без — уходит через транспорт
func (b *Bot) send(ctx context.Context, chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	if kb == nil {
		if _, err := b.chat.SendMessage(ctx, chatID, text); err != nil {
			logger.Log.Error("message was not sent", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = *kb
	if _, err := b.api.Send(msg); err != nil {
		logger.Log.Error("message was not sent", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) deleteMessage(ctx context.Context, chatID int64, messageID int) {
	if err := b.chat.DeleteMessage(ctx, chatID, messageID); err != nil {
		logger.Log.Debug("message was not deleted", zap.Error(err))
	}
}
