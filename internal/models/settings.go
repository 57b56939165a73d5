package models

// Ключи bot_settings, заводятся миграцией
const (
	SettingTaxTier1  = "tax1"
	SettingTaxTier2  = "tax2"
	SettingManagerID = "manager_id"
	SettingPayReq    = "pay_req"
	SettingCnyRate   = "cny_rate"
)

type BotSetting struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}
