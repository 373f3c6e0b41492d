package repository

import (
	"github.com/amirasaad/finance-tracker/pkg/domain"
)

func toUserModel(u *domain.User) *User {
	return &User{
		ID:           u.ID,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserDomain(m *User) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Firstname:    m.Firstname,
		Lastname:     m.Lastname,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toTransactionModel(t *domain.Transaction) *Transaction {
	return &Transaction{
		ID:           t.ID,
		UserID:       t.UserID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		Currency:     t.Currency,
		BaseAmount:   t.BaseAmount,
		BaseCurrency: t.BaseCurrency,
		Category:     string(t.Category),
		Tags:         t.Tags,
		Comments:     t.Comments,
		Date:         t.Date,
		IsRecurring:  t.IsRecurring,
		Recurrence:   string(t.Recurrence),
		NextDueDate:  t.NextDueDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTransactionDomain(m *Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:           m.ID,
		UserID:       m.UserID,
		Type:         domain.TransactionType(m.Type),
		Amount:       m.Amount,
		Currency:     m.Currency,
		BaseAmount:   m.BaseAmount,
		BaseCurrency: m.BaseCurrency,
		Category:     domain.Category(m.Category),
		Tags:         m.Tags,
		Comments:     m.Comments,
		Date:         m.Date,
		IsRecurring:  m.IsRecurring,
		Recurrence:   domain.Recurrence(m.Recurrence),
		NextDueDate:  m.NextDueDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toBudgetModel(b *domain.Budget) *Budget {
	return &Budget{
		ID:           b.ID,
		UserID:       b.UserID,
		Title:        b.Title,
		Category:     string(b.Category),
		MonthlyLimit: b.MonthlyLimit,
		Spent:        b.Spent,
		Currency:     b.Currency,
		BaseAmount:   b.BaseAmount,
		BaseCurrency: b.BaseCurrency,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toBudgetDomain(m *Budget) *domain.Budget {
	return &domain.Budget{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		Category:     domain.Category(m.Category),
		MonthlyLimit: m.MonthlyLimit,
		Spent:        m.Spent,
		Currency:     m.Currency,
		BaseAmount:   m.BaseAmount,
		BaseCurrency: m.BaseCurrency,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toGoalModel(g *domain.Goal) *Goal {
	categories := make([]string, len(g.AllocationCategories))
	for i, c := range g.AllocationCategories {
		categories[i] = string(c)
	}
	return &Goal{
		ID:                   g.ID,
		UserID:               g.UserID,
		Title:                g.Title,
		TargetAmount:         g.TargetAmount,
		SavedAmount:          g.SavedAmount,
		Currency:             g.Currency,
		BaseAmount:           g.BaseAmount,
		BaseCurrency:         g.BaseCurrency,
		Deadline:             g.Deadline,
		IsCompleted:          g.IsCompleted,
		AllocationCategories: categories,
		AllocationPercentage: g.AllocationPercentage,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
}

func toGoalDomain(m *Goal) *domain.Goal {
	categories := make([]domain.Category, len(m.AllocationCategories))
	for i, c := range m.AllocationCategories {
		categories[i] = domain.Category(c)
	}
	return &domain.Goal{
		ID:                   m.ID,
		UserID:               m.UserID,
		Title:                m.Title,
		TargetAmount:         m.TargetAmount,
		SavedAmount:          m.SavedAmount,
		Currency:             m.Currency,
		BaseAmount:           m.BaseAmount,
		BaseCurrency:         m.BaseCurrency,
		Deadline:             m.Deadline,
		IsCompleted:          m.IsCompleted,
		AllocationCategories: categories,
		AllocationPercentage: m.AllocationPercentage,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toNotificationModel(n *domain.Notification) *Notification {
	return &Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func toNotificationDomain(m *Notification) *domain.Notification {
	return &domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      domain.NotificationType(m.Type),
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

func mapSlice[M any, D any](models []M, fn func(*M) *D) []*D {
	out := make([]*D, 0, len(models))
	for i := range models {
		out = append(out, fn(&models[i]))
	}
	return out
}
