package service

import (
	"context"

	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/pricing"
	"github.com/Bessima/proxyshop-bot/internal/repository"
	"github.com/shopspring/decimal"
)

// PricingService подтягивает курс и комиссии из настроек
// и считает стоимость через pricing
type PricingService struct {
	settings repository.SettingsStorageRepositoryI
}

func NewPricingService(settings repository.SettingsStorageRepositoryI) *PricingService {
	return &PricingService{settings: settings}
}

// Rate — расчётный курс: базовый из настроек плюс защитная наценка
func (service *PricingService) Rate(ctx context.Context) (decimal.Decimal, error) {
	baseRate, err := service.settings.GetFloat(ctx, models.SettingCnyRate)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.ConvertRate(baseRate), nil
}

func (service *PricingService) Tiers(ctx context.Context) (pricing.TaxTiers, error) {
	tier1, err := service.settings.GetInt(ctx, models.SettingTaxTier1)
	if err != nil {
		return pricing.TaxTiers{}, err
	}
	tier2, err := service.settings.GetInt(ctx, models.SettingTaxTier2)
	if err != nil {
		return pricing.TaxTiers{}, err
	}
	return pricing.TaxTiers{Tier1: tier1, Tier2: tier2}, nil
}

// OrderTotal — предварительная стоимость одного заказа для показа пользователю
func (service *PricingService) OrderTotal(ctx context.Context, user *models.User, order *models.Order) (decimal.Decimal, error) {
	rate, err := service.Rate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	tiers, err := service.Tiers(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.TotalForOrder(order, rate, pricing.TaxFor(user, tiers)).Round(2), nil
}

// CartTotal — итог по черновикам корзины, ноль для пустой
func (service *PricingService) CartTotal(ctx context.Context, user *models.User, orders []models.Order) (decimal.Decimal, error) {
	if len(orders) == 0 {
		return decimal.Zero, nil
	}
	rate, err := service.Rate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	tiers, err := service.Tiers(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.TotalForCart(orders, rate, pricing.TaxFor(user, tiers)), nil
}
