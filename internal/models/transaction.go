package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the strict income/expense discriminator the budget
// evaluator relies on. It is unrelated to Category.Type.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the enumerated values.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Transaction struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time       `gorm:"precision:3" json:"created_at"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Type        TransactionType `gorm:"type:varchar(20);index;not null" json:"type"`
	Description string          `gorm:"type:text" json:"description"`
	Date        Date            `gorm:"index;not null" json:"date"`
}
