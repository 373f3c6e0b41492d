package repository

import (
	"context"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository on db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	m := toTransactionModel(tx)
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	}); err != nil {
		return err
	}
	tx.CreatedAt, tx.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	var m Transaction
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			First(&m).Error
	}); err != nil {
		return nil, err
	}
	return toTransactionDomain(&m), nil
}

func (r *transactionRepository) List(
	ctx context.Context,
	filter domain.TransactionFilter,
) ([]*domain.Transaction, int64, error) {
	filter.Normalize()
	q := r.db.WithContext(ctx).Model(&Transaction{}).Where("user_id = ?", filter.UserID)
	if filter.Tag != "" {
		q = q.Where("tags LIKE ?", `%"`+filter.Tag+`"%`)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", string(filter.Category))
	}
	if filter.Type != "" {
		q = q.Where("type = ?", string(filter.Type))
	}
	q = dateRange(q, "date", filter.StartDate, filter.EndDate)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}

	var models []Transaction
	if err := q.Order("date DESC").Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&models).Error; err != nil {
		return nil, 0, MapGormErrorToDomain(err)
	}
	return mapSlice(models, toTransactionDomain), total, nil
}

func (r *transactionRepository) ListInRange(
	ctx context.Context,
	userID uuid.UUID,
	start, end *time.Time,
) ([]*domain.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	q = dateRange(q, "date", start, end)

	var models []Transaction
	if err := q.Order("date ASC").Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(models, toTransactionDomain), nil
}

func (r *transactionRepository) ListRecurringDueBefore(
	ctx context.Context,
	t time.Time,
) ([]*domain.Transaction, error) {
	var models []Transaction
	if err := r.db.WithContext(ctx).
		Where("is_recurring = ? AND next_due_date IS NOT NULL AND next_due_date < ?", true, t).
		Order("next_due_date ASC").
		Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapSlice(models, toTransactionDomain), nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	m := toTransactionModel(tx)
	return affected(r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ? AND user_id = ?", tx.ID, tx.UserID).
		Select("*").
		Omit("id", "user_id", "created_at", "deleted_at").
		Updates(m))
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Transaction{}))
}

func dateRange(q *gorm.DB, column string, start, end *time.Time) *gorm.DB {
	if start != nil {
		q = q.Where(column+" >= ?", *start)
	}
	if end != nil {
		q = q.Where(column+" <= ?", *end)
	}
	return q
}
