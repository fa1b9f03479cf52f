package db_models

// Account is a dashboard operator, not a customer.
type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"size:16;default:'admin'"`
}
