package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/Bessima/proxyshop-bot/internal/customerror"
	"github.com/Bessima/proxyshop-bot/internal/metrics"
	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/repository"
	"go.uber.org/zap"
)

// Step — шаг сборки черновика заказа
type Step int

const (
	StepSelectingItem Step = iota
	StepAwaitingPhoto
	StepAwaitingLink
	StepAwaitingSize
	StepAwaitingCost
	StepAwaitingConfirmation
	StepPersisted
	StepAbandoned
)

// Draft собирается по шагам в рамках одной беседы и попадает в базу
// единственным вызовом Confirm. До этого корзина о нём не знает.
type Draft struct {
	Step   Step
	ItemID int
	Item   *models.Item
	Photo  []byte
	Link   string
	Size   string
	Cost   float64
}

func NewDraft() *Draft {
	return &Draft{Step: StepSelectingItem}
}

type DraftService struct {
	items  repository.ItemStorageRepositoryI
	orders repository.OrderStorageRepositoryI
}

func NewDraftService(items repository.ItemStorageRepositoryI, orders repository.OrderStorageRepositoryI) *DraftService {
	return &DraftService{items: items, orders: orders}
}

// SelectItem принимает категорию из каталога; незнакомый id шаг не двигает
func (service *DraftService) SelectItem(ctx context.Context, draft *Draft, itemID int) error {
	if draft.Step != StepSelectingItem {
		return customerror.NewValidationError("item is already selected")
	}

	item, err := service.items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	draft.ItemID = item.ID
	draft.Item = item
	draft.Step = StepAwaitingPhoto
	return nil
}

// SetPhoto сохраняет уже скачанное фото товара
func (service *DraftService) SetPhoto(draft *Draft, photo []byte) error {
	if draft.Step != StepAwaitingPhoto {
		return customerror.NewValidationError("photo is not expected at this step")
	}
	if len(photo) == 0 {
		return customerror.NewValidationError("empty photo")
	}

	draft.Photo = photo
	draft.Step = StepAwaitingLink
	return nil
}

func (service *DraftService) SetLink(draft *Draft, link string) error {
	if draft.Step != StepAwaitingLink {
		return customerror.NewValidationError("link is not expected at this step")
	}
	link = strings.TrimSpace(link)
	if link == "" {
		return customerror.NewValidationError("empty link")
	}

	draft.Link = link
	draft.Step = StepAwaitingSize
	return nil
}

// SetSize принимает любой текст, включая «нет» для безразмерных товаров
func (service *DraftService) SetSize(draft *Draft, size string) error {
	if draft.Step != StepAwaitingSize {
		return customerror.NewValidationError("size is not expected at this step")
	}

	draft.Size = strings.TrimSpace(size)
	draft.Step = StepAwaitingCost
	return nil
}

// SetCost разбирает стоимость; при плохом вводе шаг не меняется,
// пользователю уходит просьба ввести корректную стоимость
func (service *DraftService) SetCost(draft *Draft, input string) error {
	if draft.Step != StepAwaitingCost {
		return customerror.NewValidationError("cost is not expected at this step")
	}

	cost, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || cost <= 0 {
		return customerror.NewValidationError("cost must be a positive number")
	}

	draft.Cost = cost
	draft.Step = StepAwaitingConfirmation
	return nil
}

// Confirm единственный раз сохраняет черновик; до него в базе ничего нет
func (service *DraftService) Confirm(ctx context.Context, draft *Draft, userID int) (int, error) {
	if draft.Step != StepAwaitingConfirmation {
		return 0, customerror.NewValidationError("draft is not complete")
	}
	if len(draft.Photo) == 0 || draft.Link == "" || draft.Size == "" || draft.Cost <= 0 {
		return 0, customerror.NewValidationError("draft is missing required fields")
	}

	order := &models.Order{
		UserID: userID,
		ItemID: draft.ItemID,
		Status: models.DraftStatus,
		Photo:  draft.Photo,
		Link:   draft.Link,
		Size:   draft.Size,
		Cost:   draft.Cost,
	}

	orderID, err := service.orders.Create(ctx, order)
	if err != nil {
		return 0, err
	}

	draft.Step = StepPersisted
	metrics.OrdersCreated.Inc()
	logger.Log.Info("order created", zap.Int("order_id", orderID), zap.Int("user_id", userID))
	return orderID, nil
}

// Abandon выбрасывает черновик; частично введённые данные не сохраняются
func (service *DraftService) Abandon(draft *Draft) {
	draft.Step = StepAbandoned
}
