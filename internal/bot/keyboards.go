package bot

import (
	"fmt"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/Bessima/proxyshop-bot/internal/models"
)

// button — подпись и callback data; порядок кнопок важен
type button struct {
	text string
	data string
}

func customKb(width int, buttons []button) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, b := range buttons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.text, b.data))
		if len(row) == width {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func startKb() tgbotapi.InlineKeyboardMarkup {
	return customKb(1, []button{
		{"Ответы на частые вопросы", "faq"},
		{"Товары в наличии", "items"},
		{"Калькулятор стоимости", "calc"},
		{"Оформить заказ", "cart"},
	})
}

func cartKb() tgbotapi.InlineKeyboardMarkup {
	return customKb(1, []button{
		{"Удалить товар из корзины", "cart_del"},
		{"Подтвердить оплату", "pay_confirm"},
		{"Добавить товар в корзину", "order"},
		{"Изменить контактную информацию", "user_update"},
	})
}

func confirmKb() tgbotapi.InlineKeyboardMarkup {
	return customKb(2, []button{
		{"Изменить", "cart"},
		{"Верно!", "order_confirm"},
	})
}

func itemsKb(items []models.Item) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]button, 0, len(items))
	for _, item := range items {
		buttons = append(buttons, button{
			text: fmt.Sprintf("%s (Доставка %d)", item.Name, item.ShippingCost),
			data: fmt.Sprintf("item_%d", item.ID),
		})
	}
	return customKb(1, buttons)
}

func cartDeleteKb(orders []models.Order) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]button, 0, len(orders))
	for num, order := range orders {
		buttons = append(buttons, button{
			text: fmt.Sprintf("%d. Номер %d", num+1, order.ID),
			data: fmt.Sprintf("cartdel_%d", order.ID),
		})
	}
	return customKb(1, buttons)
}

func faqKb(faqs []models.Faq) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]button, 0, len(faqs)+1)
	for _, faq := range faqs {
		buttons = append(buttons, button{
			text: faq.Question,
			data: fmt.Sprintf("answer_%d", faq.ID),
		})
	}
	buttons = append(buttons, button{text: "Назад", data: "menu"})
	return customKb(1, buttons)
}
