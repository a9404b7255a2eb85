package models

// Admin is a back-office account. Admins are created by the seed command, not
// self-registerable.
type Admin struct {
	BaseModel
	Username     string `gorm:"uniqueIndex" json:"username"`
	PasswordHash string `json:"-"`
}
