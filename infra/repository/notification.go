package repository

import (
	"context"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := toNotificationModel(n)
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	}); err != nil {
		return err
	}
	n.CreatedAt = m.CreatedAt
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error) {
	var m Notification
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			First(&m).Error
	}); err != nil {
		return nil, err
	}
	return toNotificationDomain(&m), nil
}

func (r *notificationRepository) List(
	ctx context.Context,
	filter domain.NotificationFilter,
) ([]*domain.Notification, int64, error) {
	filter.Normalize()
	q := r.db.WithContext(ctx).Model(&Notification{}).Where("user_id = ?", filter.UserID)
	if filter.IsRead != nil {
		q = q.Where("is_read = ?", *filter.IsRead)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", string(filter.Type))
	}
	q = dateRange(q, "created_at", filter.StartDate, filter.EndDate)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}

	var models []Notification
	if err := q.Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&models).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}
	return mapSlice(models, toNotificationDomain), total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return affected(res)
}

func (r *notificationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Notification{}))
}
