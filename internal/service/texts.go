package service

import (
	"fmt"
	"strings"

	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/shopspring/decimal"
)

// ConfirmText — карточка черновика перед подтверждением
func ConfirmText(draft *Draft) string {
	return fmt.Sprintf("Ссылка: %s\nРазмер: %s\nСтоимость: %v\n", draft.Link, draft.Size, draft.Cost)
}

// CartText — сводка корзины с итогом, адресом доставки и реквизитами
func CartText(user *models.User, orders []models.Order, total decimal.Decimal, payReq string) string {
	if len(orders) == 0 {
		return "Ваша корзина пуста"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Итоговая стоимость: %s\n\n", total.String())
	for num, order := range orders {
		fmt.Fprintf(&b, "%d. %s\n", num+1, order.Item.Name)
		fmt.Fprintf(&b, "%s\n", order.Link)
		fmt.Fprintf(&b, "Размер: %s\n", order.Size)
		fmt.Fprintf(&b, "Стоимость: %v\n", order.Cost)
		fmt.Fprintf(&b, "Доставка: %d\n", order.Item.ShippingCost)
		fmt.Fprintf(&b, "Номер: %d\n\n", order.ID)
	}
	fmt.Fprintf(&b, "Доставка по адресу:\n%s\n", user.Address)
	fmt.Fprintf(&b, "Фио получателя:\n%s\n", user.FullName)
	fmt.Fprintf(&b, "Номер получателя:\n%s\n\n", user.Phone)
	fmt.Fprintf(&b, "Реквизиты для оплаты:\n%s\n\n", payReq)
	b.WriteString("После оплаты пришлите чек")
	return b.String()
}

// ManagerOrderText — карточка заказа для чата менеджера
func ManagerOrderText(user *models.User, order *models.Order) string {
	var b strings.Builder
	if order.PaymentSubmittedAt != nil {
		fmt.Fprintf(&b, "%s\n", order.PaymentSubmittedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "@%s\n", user.Username)
	fmt.Fprintf(&b, "%s\n", order.Link)
	fmt.Fprintf(&b, "Размер: %s\n", order.Size)
	fmt.Fprintf(&b, "Стоимость: %v\n", order.Cost)
	fmt.Fprintf(&b, "Номер: %d\n", order.ID)
	fmt.Fprintf(&b, "Фио: %s\n", user.FullName)
	fmt.Fprintf(&b, "Телефон: %s\n", user.Phone)
	fmt.Fprintf(&b, "Доставка по адресу:\n%s\n", user.Address)
	return b.String()
}
