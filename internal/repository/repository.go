package repository

import (
	"context"

	"invare-backend/internal/domain"
)

// ProjectFilter narrows List queries. Zero values mean "no restriction".
// EmployeeID is the server-side assignment restriction for employee actors
// and is applied inside the query, never as a post-filter.
type ProjectFilter struct {
	UserID     int32
	EmployeeID int32
	Search     string
	// OwnerIDs widens a Search to projects owned by any of these users, so
	// a search can also hit client names resolved by the caller.
	OwnerIDs []int32
	Page     int32
	Limit    int32
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByRawLoginCode(ctx context.Context, code string) (*domain.User, error)
	EmailExists(ctx context.Context, email string, excludeID int32) (bool, error)
	PhoneExists(ctx context.Context, phone string, excludeID int32) (bool, error)
	RawLoginCodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, search string, role domain.UserRole, page, limit int32) ([]domain.User, int32, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int32) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	GetByPortalCode(ctx context.Context, code string) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, int32, error)
	PortalCodeExists(ctx context.Context, code string, excludeID int32) (bool, error)

	// Back-reference array maintenance. Each call is a single-document
	// update; pairing it with the child write is intentionally not
	// transactional (see DESIGN.md).
	AddPayment(ctx context.Context, projectID, paymentID int32) error
	RemovePayment(ctx context.Context, projectID, paymentID int32) error
	AddModification(ctx context.Context, projectID, modificationID int32) error
	RemoveModification(ctx context.Context, projectID, modificationID int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	ListByIDs(ctx context.Context, ids []int32) ([]domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id int32) error
	DeleteByProject(ctx context.Context, projectID int32) error
}

type ModificationRepository interface {
	Create(ctx context.Context, mod *domain.Modification) error
	GetByID(ctx context.Context, id int32) (*domain.Modification, error)
	ListByIDs(ctx context.Context, ids []int32) ([]domain.Modification, error)
	Update(ctx context.Context, mod *domain.Modification) error
	Delete(ctx context.Context, id int32) error
	DeleteByProject(ctx context.Context, projectID int32) error
}

type ProjectFileRepository interface {
	Create(ctx context.Context, file *domain.ProjectFile) error
	GetByID(ctx context.Context, id int32) (*domain.ProjectFile, error)
	ListByProject(ctx context.Context, projectID int32, uploadedBy domain.FileUploadedBy) ([]domain.ProjectFile, error)
	Update(ctx context.Context, file *domain.ProjectFile) error
	Delete(ctx context.Context, id int32) error
}

type NotificationRepository interface {
	UpsertToken(ctx context.Context, token *domain.PushToken) error
	DeleteToken(ctx context.Context, fcmToken string) error
	DeleteTokens(ctx context.Context, fcmTokens []string) error
	ListTokens(ctx context.Context, userID int32, role domain.UserRole) ([]string, error)

	CreateLog(ctx context.Context, log *domain.NotificationLog) error
	ListLogs(ctx context.Context, userID int32, read *bool, limit int32) ([]domain.NotificationLog, error)
	MarkLogRead(ctx context.Context, logID, userID int32) error
	MarkAllLogsRead(ctx context.Context, userID int32) error
	ClearLogs(ctx context.Context, userID int32) error
}
