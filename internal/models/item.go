package models

// Item — категория товара с фиксированной стоимостью доставки
type Item struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ShippingCost int    `json:"shipping"`
}
