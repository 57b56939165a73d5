package session

import (
	"sync"

	"github.com/Bessima/proxyshop-bot/internal/service"
)

// Mode — текущий сценарий беседы; внутри сборки заказа шаг ведёт сам Draft
type Mode int

const (
	ModeIdle Mode = iota
	ModeOrder
	ModeAwaitingPayProof
	ModeProfileFullName
	ModeProfilePhone
	ModeProfileAddress
	ModeCalcSelectingItem
	ModeCalcAwaitingCost
	ModeManagerCancelReason
)

// PendingCancel — отмена, ожидающая причину от менеджера
type PendingCancel struct {
	OrderID       int
	ManagerChatID int64
	ManagerMsgID  int
}

// State — всё изменяемое состояние одной беседы. Черновик живёт
// только здесь, пока пользователь не подтвердит заказ.
type State struct {
	Mode  Mode
	Draft *service.Draft

	ProfileFullName string
	ProfilePhone    string

	CalcItemID int

	PendingCancel *PendingCancel
}

// Manager хранит состояния бесед по id чата, безопасен для конкурентных обновлений
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*State
}

func NewManager() *Manager {
	return &Manager{states: make(map[int64]*State)}
}

// Get возвращает состояние беседы, создавая пустое при первом обращении
func (m *Manager) Get(chatID int64) *State {
	m.mu.RLock()
	state, ok := m.states[chatID]
	m.mu.RUnlock()
	if ok {
		return state
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok = m.states[chatID]; ok {
		return state
	}
	state = &State{}
	m.states[chatID] = state
	return state
}

// Clear сбрасывает беседу в начальное состояние; черновик при этом пропадает
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, chatID)
}
