package pricing

import (
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/shopspring/decimal"
)

// Наценка сервиса поверх сконвертированной цены товара,
// доставка и комиссия ею не облагаются
var serviceFactor = decimal.RequireFromString("1.01")

var rateMargin = decimal.RequireFromString("0.5")

var ten = decimal.NewFromInt(10)

// ConvertRate превращает базовый курс в расчётный: прибавляет фиксированную
// маржу и поднимает результат вверх до ближайшей десятой. Округление всегда
// в большую сторону — защитное правило ценообразования, применяется к курсу,
// а не к сумме заказа.
func ConvertRate(baseRate float64) decimal.Decimal {
	rate := decimal.NewFromFloat(baseRate).Add(rateMargin)
	return rate.Mul(ten).Ceil().Div(ten)
}

// TaxTiers — комиссии из настроек: первая для новых клиентов, вторая для остальных
type TaxTiers struct {
	Tier1 int
	Tier2 int
}

func TaxFor(user *models.User, tiers TaxTiers) int {
	if user.IsNewCustomer {
		return tiers.Tier1
	}
	return tiers.Tier2
}

// TotalForOrder считает стоимость заказа: цена * курс * 1.01 + доставка + комиссия
func TotalForOrder(order *models.Order, rate decimal.Decimal, tax int) decimal.Decimal {
	cost := decimal.NewFromFloat(order.Cost)
	total := cost.Mul(rate).Mul(serviceFactor)
	total = total.Add(decimal.NewFromInt(int64(order.Item.ShippingCost)))
	return total.Add(decimal.NewFromInt(int64(tax)))
}

// TotalForCart суммирует черновики корзины; пустая корзина стоит ноль.
// Итог округляется до копеек обычным округлением, правило «вверх до 0.1»
// относится только к курсу.
func TotalForCart(orders []models.Order, rate decimal.Decimal, tax int) decimal.Decimal {
	total := decimal.Zero
	for i := range orders {
		total = total.Add(TotalForOrder(&orders[i], rate, tax))
	}
	return total.Round(2)
}
