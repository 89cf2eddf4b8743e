package models

// Setting is process-wide key/value configuration (business name, admin PIN
// hash, currency symbol, tax rate).
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}

const (
	SettingBusinessName   = "business_name"
	SettingAdminPin       = "admin_pin"
	SettingCurrencySymbol = "currency_symbol"
	SettingTaxRate        = "tax_rate"
)
