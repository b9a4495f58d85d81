package domain

import "time"

type PhaseStatus string

const (
	PhaseStatusUpcoming   PhaseStatus = "upcoming"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusCompleted  PhaseStatus = "completed"
)

type ProgressType string

const (
	ProgressTypeProject      ProgressType = "project"
	ProgressTypeModification ProgressType = "modification"
)

// Phase is embedded in its parent Project and has no identity of its own.
type Phase struct {
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description,omitempty"`
	Duration    int32         `json:"duration"` // days
	PhaseNumber int32         `json:"phase_number,omitempty"`
	Status      PhaseStatus   `json:"status"`
	Progress    int32         `json:"progress"` // 0-100
}

type Project struct {
	ID          int32         `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	Logo        string        `json:"logo,omitempty"`
	UserID      int32         `json:"user_id"`
	Client      *User         `json:"client,omitempty"` // populated on fetch
	TotalCost   float64       `json:"total_cost"`
	Phases      []Phase       `json:"phases"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	Progress    int32         `json:"progress"` // 0-100
	// ProgressType says whether Progress tracks the project's own phases or
	// the currently active modification.
	ProgressType         ProgressType `json:"progress_type"`
	ActiveModificationID *int32       `json:"active_modification_id,omitempty"`
	ActiveModification   *Modification `json:"active_modification,omitempty"`

	// Back-reference arrays to owned children, maintained on child
	// create/delete. The populated slices are filled on fetch.
	PaymentIDs      []int32 `json:"payment_ids"`
	ModificationIDs []int32 `json:"modification_ids"`
	Payments        []Payment      `json:"payments,omitempty"`
	Modifications   []Modification `json:"modifications,omitempty"`

	EmployeeIDs []int32 `json:"employee_ids"`
	Employees   []User  `json:"employees,omitempty"`

	WhatsappGroupLink string `json:"whatsapp_group_link,omitempty"`
	PortalCode        string `json:"portal_code,omitempty"`
	ProjectURL        string `json:"project_url,omitempty"`
	CreatedOn         string `json:"created_on"`
	UpdatedOn         string `json:"updated_on"`
}

// HasEmployee reports whether the given user is assigned to the project.
func (p *Project) HasEmployee(userID int32) bool {
	for _, id := range p.EmployeeIDs {
		if id == userID {
			return true
		}
	}
	return false
}
