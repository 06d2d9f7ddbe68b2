package persistence

import "strings"

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Anything that is not DESC becomes ASC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates a caller-supplied sort field against a
// whitelist of real column names. Returns defaultField when the input is
// empty or not whitelisted, so user input never reaches the ORDER BY
// clause verbatim.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"document":           true,
	"name":               true,
	"email":              true,
	"monthly_income":     true,
	"total_debt":         true,
	"delinquency_status": true,
	"status":             true,
}

// TransitionSortFields contains allowed sort fields for status history
var TransitionSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"changed_at":      true,
	"previous_status": true,
	"new_status":      true,
}

// DebtSortFields contains allowed sort fields for debts
var DebtSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"principal":        true,
	"due_date":         true,
	"penalty":          true,
	"total":            true,
	"last_assessed_at": true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"amount":      true,
	"paid_at":     true,
	"status":      true,
	"reviewed_at": true,
}

// AssignmentSortFields contains allowed sort fields for assignments
var AssignmentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"advisor_name": true,
	"assigned_at":  true,
	"active":       true,
	"released_at":  true,
}

// EvaluationSortFields contains allowed sort fields for evaluations
var EvaluationSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"evaluated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}
