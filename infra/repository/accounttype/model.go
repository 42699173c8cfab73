package accounttype

import "time"

// AccountType represents an account type record in the database.
// Model holds the versioned JSON document of the template.
type AccountType struct {
	Name      string `gorm:"column:name;primaryKey"`
	Model     string `gorm:"column:model;type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the AccountType model.
func (AccountType) TableName() string {
	return "account_types"
}
