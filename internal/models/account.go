package models

// Account is the accounts table row.
type Account struct {
	AccountID       string  `db:"account_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	AccountType     string  `db:"account_type"`
	NormalBalance   string  `db:"normal_balance"`
	ParentAccountID *string `db:"parent_account_id"` // Nullable
	Description     *string `db:"description"`       // Nullable
	IsActive        bool    `db:"is_active"`
	AuditFields
}
