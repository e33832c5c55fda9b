package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a chart-of-accounts row. The engine only ever reads
// accounts; creation and maintenance belong to the chart-of-accounts owner.
type Account struct {
	Code        string      `json:"code"` // unique chart code, used as the account key
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	ParentCode  *string     `json:"parentCode"` // weak reference to the parent's Code, nil for roots
	Level       int         `json:"level"`      // depth hint from the chart owner, presentation only
	IsActive    bool        `json:"isActive"`
	AuditFields
}
