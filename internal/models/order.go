package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
	ItemID int `json:"item_id"`

	Status OrderStatus `json:"status"`

	Photo []byte  `json:"-"`
	Link  string  `json:"link"`
	Size  string  `json:"size"`
	Cost  float64 `json:"cost"`

	PaymentProof       []byte     `json:"-"`
	PaymentSubmittedAt *time.Time `json:"pay_date,omitempty"`
	PaymentBatchID     *uuid.UUID `json:"pay_batch,omitempty"`
	// ManagerMsgID связывает заказ с сообщением в чате менеджера,
	// заполняется только при статусах submitted/confirmed/canceled
	ManagerMsgID *int `json:"manager_msg_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Item *Item `json:"-"`
	User *User `json:"-"`
}

type OrderStatus string

const (
	DraftStatus     OrderStatus = "draft"
	SubmittedStatus OrderStatus = "submitted"
	ConfirmedStatus OrderStatus = "confirmed"
	CanceledStatus  OrderStatus = "canceled"
)

// Terminal — из confirmed и canceled переходов больше нет
func (s OrderStatus) Terminal() bool {
	return s == ConfirmedStatus || s == CanceledStatus
}
