package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusDue     PaymentStatus = "due"
	PaymentStatusDueSoon PaymentStatus = "due_soon"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUpcoming PaymentStatus = "upcoming"
)

type Payment struct {
	ID          int32         `json:"id"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description,omitempty"`
	ProjectID   int32         `json:"project_id"`
	UserID      int32         `json:"user_id"`
	Payer       *User         `json:"payer,omitempty"` // populated on fetch
	Amount      float64       `json:"amount"`
	DueDate     time.Time     `json:"due_date"`
	Status      PaymentStatus `json:"status"`
	CreatedOn   string        `json:"created_on"`
	UpdatedOn   string        `json:"updated_on"`
}
