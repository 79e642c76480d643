package model

// Setting is the single-row venue configuration (id fixed to 1 at seed time).
type Setting struct {
	DTO
	AdminPasswordHash string `gorm:"not null" json:"-"`
	PayNowUEN         string `json:"paynowUen"`
	MerchantName      string `json:"merchantName"`
	MerchantCity      string `json:"merchantCity"`
}
