package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tiffin/internal/models/db_models"
)

type ICustomerRepository interface {
	Insert(ctx context.Context, customer *db_models.Customer) error
	GetById(ctx context.Context, id string) (*db_models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*db_models.Customer, error)
	List(ctx context.Context, page int, pageSize int) ([]db_models.Customer, int64, error)
	Update(ctx context.Context, customer *db_models.Customer) error
	SoftDelete(ctx context.Context, id string) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) ICustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Insert(ctx context.Context, customer *db_models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetById(ctx context.Context, id string) (*db_models.Customer, error) {
	var customer db_models.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*db_models.Customer, error) {
	var customer db_models.Customer
	err := r.db.WithContext(ctx).First(&customer, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, page int, pageSize int) ([]db_models.Customer, int64, error) {
	var customers []db_models.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.Customer{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *db_models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&db_models.Customer{}, "id = ?", id).Error
}
