package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tiffin/internal/models/db_models"
)

type IMembershipRepository interface {
	Insert(ctx context.Context, membership *db_models.Membership) error
	GetById(ctx context.Context, id string) (*db_models.Membership, error)
	List(ctx context.Context, customerID string, status string, page int, pageSize int) ([]db_models.Membership, int64, error)
	MutateWithLock(ctx context.Context, id string, fn func(m *db_models.Membership) error) (*db_models.Membership, error)
	HardDelete(ctx context.Context, id string) error
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) IMembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Insert(ctx context.Context, membership *db_models.Membership) error {
	return r.db.WithContext(ctx).Omit("Customer", "MealPlan").Create(membership).Error
}

func (r *membershipRepository) GetById(ctx context.Context, id string) (*db_models.Membership, error) {
	var membership db_models.Membership
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("MealPlan").
		First(&membership, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &membership, nil
}

func (r *membershipRepository) List(ctx context.Context, customerID string, status string, page int, pageSize int) ([]db_models.Membership, int64, error) {
	var memberships []db_models.Membership
	var total int64

	query := r.db.WithContext(ctx).Model(&db_models.Membership{})
	if customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Customer").
		Preload("MealPlan").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&memberships).Error
	if err != nil {
		return nil, 0, err
	}

	return memberships, total, nil
}

// MutateWithLock runs fn against the membership row held under SELECT ...
// FOR UPDATE, then saves counters, schedule and ledger in the same
// transaction. Concurrent punches against one membership serialize on the
// row lock, so a balance checked inside fn cannot be spent twice.
func (r *membershipRepository) MutateWithLock(ctx context.Context, id string, fn func(m *db_models.Membership) error) (*db_models.Membership, error) {
	var membership db_models.Membership

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&membership, "id = ?", id).Error; err != nil {
			return err
		}

		if err := fn(&membership); err != nil {
			return err
		}

		return tx.Omit("Customer", "MealPlan").Save(&membership).Error
	})
	if err != nil {
		return nil, err
	}

	return &membership, nil
}

func (r *membershipRepository) HardDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&db_models.Membership{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
