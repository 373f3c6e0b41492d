package repository

import (
	"context"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) repository.GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, g *domain.Goal) error {
	m := toGoalModel(g)
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	}); err != nil {
		return err
	}
	g.CreatedAt, g.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *goalRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	var m Goal
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			First(&m).Error
	}); err != nil {
		return nil, err
	}
	return toGoalDomain(&m), nil
}

func (r *goalRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	var models []Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(models, toGoalDomain), nil
}

func (r *goalRepository) ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	var models []Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ?", userID, false).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(models, toGoalDomain), nil
}

func (r *goalRepository) Update(ctx context.Context, g *domain.Goal) error {
	return affected(r.db.WithContext(ctx).
		Model(&Goal{}).
		Where("id = ? AND user_id = ?", g.ID, g.UserID).
		Select("*").
		Omit("id", "user_id", "created_at", "deleted_at").
		Updates(toGoalModel(g)))
}

func (r *goalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Goal{}))
}
