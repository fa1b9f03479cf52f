package db_models

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

type Customer struct {
	BaseModel
	Name    string `gorm:"not null"`
	Email   string `gorm:"uniqueIndex"`
	Phone   string `gorm:"index"`
	Address string
	Status  CustomerStatus `gorm:"size:16;default:'active'"`
}
