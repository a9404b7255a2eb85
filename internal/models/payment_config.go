package models

// PaymentConfig holds the bank-transfer details shown at checkout. At most one
// row is active at a time; the handler's upsert enforces that.
type PaymentConfig struct {
	BaseModel
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	QRImageURL    string `json:"qrImageUrl"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`
}
