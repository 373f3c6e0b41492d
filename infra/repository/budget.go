package repository

import (
	"context"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type budgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) repository.BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) Create(ctx context.Context, b *domain.Budget) error {
	m := toBudgetModel(b)
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	}); err != nil {
		return err
	}
	b.CreatedAt, b.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *budgetRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Budget, error) {
	var m Budget
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			First(&m).Error
	}); err != nil {
		return nil, err
	}
	return toBudgetDomain(&m), nil
}

func (r *budgetRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	var models []Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(models, toBudgetDomain), nil
}

func (r *budgetRepository) ListActive(
	ctx context.Context,
	userID uuid.UUID,
	category domain.Category,
	at time.Time,
) ([]*domain.Budget, error) {
	var models []Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, string(category)).
		Where("start_date <= ? AND end_date >= ?", at, at).
		Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(models, toBudgetDomain), nil
}

func (r *budgetRepository) Update(ctx context.Context, b *domain.Budget) error {
	return affected(r.db.WithContext(ctx).
		Model(&Budget{}).
		Where("id = ? AND user_id = ?", b.ID, b.UserID).
		Select("*").
		Omit("id", "user_id", "created_at", "deleted_at").
		Updates(toBudgetModel(b)))
}

func (r *budgetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Budget{}))
}
