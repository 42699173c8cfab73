package account

import "time"

// Account represents an account record in the database.
// AccountType and Active mirror the document so listings can filter on them.
type Account struct {
	AccountID   int64  `gorm:"column:account_id;primaryKey;autoIncrement"`
	AccountType string `gorm:"column:account_type;type:varchar;index;not null"`
	Active      bool   `gorm:"column:active;index;not null"`
	Model       string `gorm:"column:model;type:jsonb;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
