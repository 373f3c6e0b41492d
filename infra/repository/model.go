package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is the persisted form of domain.User.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Firstname    string    `gorm:"type:varchar(64);not null"`
	Lastname     string    `gorm:"type:varchar(64)"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(72);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

// Transaction is the persisted form of domain.Transaction.
type Transaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         string          `gorm:"type:varchar(16);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'"`
	BaseAmount   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	BaseCurrency string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Category     string          `gorm:"type:varchar(32);not null;index"`
	Tags         []string        `gorm:"serializer:json"`
	Comments     string          `gorm:"type:varchar(200)"`
	Date         time.Time       `gorm:"not null;index"`
	IsRecurring  bool            `gorm:"not null;default:false"`
	Recurrence   string          `gorm:"type:varchar(16)"`
	NextDueDate  *time.Time      `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type Budget struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title        string          `gorm:"type:varchar(128);not null"`
	Category     string          `gorm:"type:varchar(32);not null"`
	MonthlyLimit decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Spent        decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'"`
	BaseAmount   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	BaseCurrency string          `gorm:"type:varchar(3);not null;default:'USD'"`
	StartDate    time.Time       `gorm:"not null"`
	EndDate      time.Time       `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Budget) TableName() string {
	return "budgets"
}

type Goal struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title                string          `gorm:"type:varchar(128);not null"`
	TargetAmount         decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	SavedAmount          decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Currency             string          `gorm:"type:varchar(3);not null;default:'USD'"`
	BaseAmount           decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	BaseCurrency         string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Deadline             *time.Time
	IsCompleted          bool            `gorm:"not null;default:false"`
	AllocationCategories []string        `gorm:"serializer:json"`
	AllocationPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (Goal) TableName() string {
	return "goals"
}

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(32);not null"`
	Message   string    `gorm:"type:text;not null"`
	IsRead    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Models lists every table owned by this package, in migration order.
func Models() []any {
	return []any{&User{}, &Transaction{}, &Budget{}, &Goal{}, &Notification{}}
}
