package domain

type ModificationPriority string

const (
	ModificationPriorityLow      ModificationPriority = "low"
	ModificationPriorityMedium   ModificationPriority = "medium"
	ModificationPriorityHigh     ModificationPriority = "high"
	ModificationPriorityCritical ModificationPriority = "critical"
)

type ModificationStatus string

const (
	ModificationStatusPending           ModificationStatus = "pending"
	ModificationStatusAccepted          ModificationStatus = "accepted"
	ModificationStatusRejected          ModificationStatus = "rejected"
	ModificationStatusCompleted         ModificationStatus = "completed"
	ModificationStatusNeedsExtraPayment ModificationStatus = "needs_extra_payment"
)

// ModificationFile is embedded in its parent Modification.
type ModificationFile struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Modification is a change request raised against a project, by the owning
// client (portal or authenticated) or by staff. Title and description are
// plain text, not localized.
type Modification struct {
	ID                 int32                `json:"id"`
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	Priority           ModificationPriority `json:"priority"`
	ProjectID          int32                `json:"project_id"`
	UserID             int32                `json:"user_id"`
	Requester          *User                `json:"requester,omitempty"` // populated on fetch
	Status             ModificationStatus   `json:"status"`
	ExtraPaymentAmount float64              `json:"extra_payment_amount,omitempty"`
	CostAccepted       bool                 `json:"cost_accepted"`
	AttachedFiles      []ModificationFile   `json:"attached_files,omitempty"`
	CreatedOn          string               `json:"created_on"`
	UpdatedOn          string               `json:"updated_on"`
}

// CanTransition reports whether moving from s to next follows the intended
// modification flow. pending -> accepted|rejected; accepted ->
// needs_extra_payment|completed; needs_extra_payment -> accepted (once the
// client accepts the cost); rejected and completed are terminal.
func (s ModificationStatus) CanTransition(next ModificationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ModificationStatusPending:
		return next == ModificationStatusAccepted || next == ModificationStatusRejected
	case ModificationStatusAccepted:
		return next == ModificationStatusNeedsExtraPayment || next == ModificationStatusCompleted
	case ModificationStatusNeedsExtraPayment:
		return next == ModificationStatusAccepted
	default:
		return false
	}
}
