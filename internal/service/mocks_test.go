package service

import (
	"context"
	"time"

	"github.com/Bessima/proxyshop-bot/internal/models"
	"github.com/Bessima/proxyshop-bot/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository - мок для OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) (int, error) {
	args := m.Called(ctx, order)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByManagerMsgID(ctx context.Context, msgID int) (*models.Order, error) {
	args := m.Called(ctx, msgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUserAndStatus(ctx context.Context, userID int, status models.OrderStatus) ([]models.Order, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID int, newStatus models.OrderStatus) error {
	args := m.Called(ctx, orderID, newStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) SetSubmitted(ctx context.Context, orderID, managerMsgID int) error {
	args := m.Called(ctx, orderID, managerMsgID)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, orderID int) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) AttachPaymentProof(ctx context.Context, userID int, proof []byte, batchID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, userID, proof, batchID, at)
	return args.Error(0)
}

// MockItemRepository - мок для ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Item), args.Error(1)
}

// MockUserRepository - мок для UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, tgID, username string) (*models.User, error) {
	args := m.Called(ctx, tgID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int, update repository.ProfileUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockUserRepository) MarkReturning(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingsRepository - мок для SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) GetInt(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

func (m *MockSettingsRepository) GetFloat(ctx context.Context, name string) (float64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(float64), args.Error(1)
}

// MockChatClient - мок для transport.Client
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	args := m.Called(ctx, chatID, text)
	return args.Int(0), args.Error(1)
}

func (m *MockChatClient) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) (int, error) {
	args := m.Called(ctx, chatID, photo, caption)
	return args.Int(0), args.Error(1)
}

func (m *MockChatClient) SendPhotoByFileID(ctx context.Context, chatID int64, fileID, caption string) (int, error) {
	args := m.Called(ctx, chatID, fileID, caption)
	return args.Int(0), args.Error(1)
}

func (m *MockChatClient) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	args := m.Called(ctx, chatID, messageID)
	return args.Error(0)
}

func (m *MockChatClient) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
