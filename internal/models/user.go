package models

import "time"

type User struct {
	ID            int       `json:"id"`
	TgID          string    `json:"tg_id"`
	Username      string    `json:"username"`
	FullName      string    `json:"fio"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	IsNewCustomer bool      `json:"is_newbie"`
	RegisteredAt  time.Time `json:"register_date"`
}

// ProfileComplete — без ФИО, телефона и адреса корзину к оплате не отправить
func (u *User) ProfileComplete() bool {
	return u.FullName != "" && u.Phone != "" && u.Address != ""
}
