package service

import (
	"context"
	"time"

	"invare-backend/internal/domain"
)

// Actor identifies the authenticated caller of a service operation. A nil
// *Actor on the operations that accept one means the caller came in through
// the public portal surface without a token.
type Actor struct {
	ID   int32
	Role domain.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == domain.UserRoleAdmin
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

type RegisterAdminInput struct {
	Name        string
	Email       string
	Phone       string
	CompanyName string
	Password    string
}

type UpdateProfileInput struct {
	Name        *string
	Email       *string
	Phone       *string
	CompanyName *string
}

type AuthService interface {
	// RegisterAdmin creates the bootstrap admin account. Gated by the setup
	// key from configuration.
	RegisterAdmin(ctx context.Context, setupKey string, in RegisterAdminInput) (*domain.User, string, error)
	// Login authenticates staff (admin or employee) by email and password.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// LoginWithCode authenticates a client by login code alone.
	LoginWithCode(ctx context.Context, code string) (*domain.User, string, error)
	GetProfile(ctx context.Context, actor Actor) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor Actor, in UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, actor Actor, currentPassword, newPassword string) error
}

type CreateUserInput struct {
	Name        string
	Email       string
	Phone       string
	CompanyName string
	Role        domain.UserRole
	// Password applies to staff accounts only. Clients get a generated
	// login code instead.
	Password string
}

type UpdateUserInput struct {
	Name        *string
	Email       *string
	Phone       *string
	CompanyName *string
	Role        *domain.UserRole
}

type UserService interface {
	CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context, actor Actor, search string, role domain.UserRole, page, limit int32) ([]domain.User, int32, error)
	GetUser(ctx context.Context, actor Actor, id int32) (*domain.User, error)
	UpdateUser(ctx context.Context, actor Actor, id int32, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, actor Actor, id int32) error
	// RegenerateLoginCode issues a fresh login code for a client account.
	RegenerateLoginCode(ctx context.Context, actor Actor, id int32) (*domain.User, error)
}

type CreateProjectInput struct {
	Name              domain.LocalizedText
	Description       domain.LocalizedText
	Logo              string
	UserID            int32
	TotalCost         float64
	Phases            []domain.Phase
	StartDate         *time.Time
	EmployeeIDs       []int32
	WhatsappGroupLink string
	ProjectURL        string
}

// UpdateProjectInput is a partial patch. Nil fields are left untouched.
type UpdateProjectInput struct {
	Name                 *domain.LocalizedText
	Description          *domain.LocalizedText
	Logo                 *string
	UserID               *int32
	TotalCost            *float64
	Phases               *[]domain.Phase
	StartDate            *time.Time
	Progress             *int32
	ProgressType         *domain.ProgressType
	ActiveModificationID *int32
	EmployeeIDs          *[]int32
	WhatsappGroupLink    *string
	ProjectURL           *string
}

type ListProjectsInput struct {
	Search string
	// UserID filters by owning client. Staff only; for client actors the
	// list is always scoped to their own projects.
	UserID int32
	Page   int32
	Limit  int32
}

type CreatePaymentInput struct {
	Title       domain.LocalizedText
	Description domain.LocalizedText
	Amount      float64
	DueDate     time.Time
	Status      domain.PaymentStatus
}

type UpdatePaymentInput struct {
	Title       *domain.LocalizedText
	Description *domain.LocalizedText
	Amount      *float64
	DueDate     *time.Time
	Status      *domain.PaymentStatus
}

type CreateModificationInput struct {
	Title         string
	Description   string
	Priority      domain.ModificationPriority
	AttachedFiles []domain.ModificationFile
}

type UpdateModificationInput struct {
	Title              *string
	Description        *string
	Priority           *domain.ModificationPriority
	Status             *domain.ModificationStatus
	ExtraPaymentAmount *float64
	CostAccepted       *bool
	AttachedFiles      *[]domain.ModificationFile
}

type ProjectService interface {
	CreateProject(ctx context.Context, actor Actor, in CreateProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context, actor Actor, in ListProjectsInput) ([]domain.Project, int32, error)
	GetProject(ctx context.Context, actor Actor, id int32) (*domain.Project, error)
	UpdateProject(ctx context.Context, actor Actor, id int32, in UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, actor Actor, id int32) error

	GeneratePortalCode(ctx context.Context, actor Actor, projectID int32) (*domain.Project, error)
	GetProjectByPortalCode(ctx context.Context, code string) (*domain.Project, error)

	CreatePayment(ctx context.Context, actor Actor, projectID int32, in CreatePaymentInput) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, actor Actor, paymentID int32, in UpdatePaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, actor Actor, paymentID int32) error

	// CreateModification accepts a nil actor: change requests may arrive
	// through the portal without a token, in which case they are attributed
	// to the project owner.
	CreateModification(ctx context.Context, actor *Actor, projectID int32, in CreateModificationInput) (*domain.Modification, error)
	UpdateModification(ctx context.Context, actor Actor, modificationID int32, in UpdateModificationInput) (*domain.Modification, error)
	DeleteModification(ctx context.Context, actor Actor, modificationID int32) error
}

type CreateProjectFileInput struct {
	FileURL  string
	FileName string
	FileType string
	FileSize int64
}

type UpdateProjectFileInput struct {
	FileURL  *string
	FileName *string
	FileType *string
	FileSize *int64
}

type ProjectFileService interface {
	CreateFile(ctx context.Context, actor *Actor, projectID int32, in CreateProjectFileInput) (*domain.ProjectFile, error)
	ListFiles(ctx context.Context, actor *Actor, projectID int32, uploadedBy domain.FileUploadedBy) ([]domain.ProjectFile, error)
	UpdateFile(ctx context.Context, actor Actor, fileID int32, in UpdateProjectFileInput) (*domain.ProjectFile, error)
	DeleteFile(ctx context.Context, actor Actor, fileID int32) error
}

type NotificationService interface {
	Subscribe(ctx context.Context, actor Actor, fcmToken string) error
	Unsubscribe(ctx context.Context, fcmToken string) error
	ListLogs(ctx context.Context, actor Actor, read *bool, limit int32) ([]domain.NotificationLog, error)
	MarkRead(ctx context.Context, actor Actor, logID int32) error
	MarkAllRead(ctx context.Context, actor Actor) error
	ClearLogs(ctx context.Context, actor Actor) error

	// NotifyAdmins fans a notification out to every admin: a log row each,
	// a push to their registered devices, and an email. Failures are logged
	// and never propagated.
	NotifyAdmins(ctx context.Context, title, body string, data map[string]string)
}

// EmailService sends transactional mail.
type EmailService interface {
	Send(to, toName, subject, plainText, htmlContent string) error
}

// PushSender delivers push notifications to device tokens. It returns the
// tokens the provider reported as dead so callers can prune them.
type PushSender interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (invalid []string, err error)
}
