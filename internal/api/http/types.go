package http

import (
	"time"

	"invare-backend/internal/domain"
	"invare-backend/internal/service"
)

type registerAdminRequest struct {
	SetupKey    string `json:"setup_key" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,max=20"`
	CompanyName string `json:"company_name" validate:"max=100"`
	Password    string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type updateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=100"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type loginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type createUserRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,max=20"`
	CompanyName string `json:"company_name" validate:"max=100"`
	Role        string `json:"role" validate:"omitempty,oneof=admin employee client"`
	Password    string `json:"password" validate:"omitempty,min=8"`
}

type updateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=100"`
	Role        *string `json:"role" validate:"omitempty,oneof=admin employee client"`
}

type createProjectRequest struct {
	Name              domain.LocalizedText `json:"name"`
	Description       domain.LocalizedText `json:"description"`
	Logo              string               `json:"logo" validate:"omitempty,url"`
	UserID            int32                `json:"user_id" validate:"required"`
	TotalCost         float64              `json:"total_cost" validate:"gte=0"`
	Phases            []domain.Phase       `json:"phases"`
	StartDate         *time.Time           `json:"start_date"`
	EmployeeIDs       []int32              `json:"employees"`
	WhatsappGroupLink string               `json:"whatsapp_group_link" validate:"omitempty,url"`
	ProjectURL        string               `json:"project_url" validate:"omitempty,url"`
}

func (r createProjectRequest) toInput() service.CreateProjectInput {
	return service.CreateProjectInput{
		Name:              r.Name,
		Description:       r.Description,
		Logo:              r.Logo,
		UserID:            r.UserID,
		TotalCost:         r.TotalCost,
		Phases:            r.Phases,
		StartDate:         r.StartDate,
		EmployeeIDs:       r.EmployeeIDs,
		WhatsappGroupLink: r.WhatsappGroupLink,
		ProjectURL:        r.ProjectURL,
	}
}

type updateProjectRequest struct {
	Name                 *domain.LocalizedText `json:"name"`
	Description          *domain.LocalizedText `json:"description"`
	Logo                 *string               `json:"logo" validate:"omitempty,url"`
	UserID               *int32                `json:"user_id"`
	TotalCost            *float64              `json:"total_cost" validate:"omitempty,gte=0"`
	Phases               *[]domain.Phase       `json:"phases"`
	StartDate            *time.Time            `json:"start_date"`
	Progress             *int32                `json:"progress" validate:"omitempty,gte=0,lte=100"`
	ProgressType         *string               `json:"progress_type" validate:"omitempty,oneof=project modification"`
	ActiveModificationID *int32                `json:"active_modification_id"`
	EmployeeIDs          *[]int32              `json:"employees"`
	WhatsappGroupLink    *string               `json:"whatsapp_group_link"`
	ProjectURL           *string               `json:"project_url"`
}

func (r updateProjectRequest) toInput() service.UpdateProjectInput {
	in := service.UpdateProjectInput{
		Name:                 r.Name,
		Description:          r.Description,
		Logo:                 r.Logo,
		UserID:               r.UserID,
		TotalCost:            r.TotalCost,
		Phases:               r.Phases,
		StartDate:            r.StartDate,
		Progress:             r.Progress,
		ActiveModificationID: r.ActiveModificationID,
		EmployeeIDs:          r.EmployeeIDs,
		WhatsappGroupLink:    r.WhatsappGroupLink,
		ProjectURL:           r.ProjectURL,
	}
	if r.ProgressType != nil {
		pt := domain.ProgressType(*r.ProgressType)
		in.ProgressType = &pt
	}
	return in
}

type createPaymentRequest struct {
	Title       domain.LocalizedText `json:"title"`
	Description domain.LocalizedText `json:"description"`
	Amount      float64              `json:"amount" validate:"gte=0"`
	DueDate     time.Time            `json:"due_date" validate:"required"`
	Status      string               `json:"status" validate:"omitempty,oneof=due due_soon paid upcoming"`
}

func (r createPaymentRequest) toInput() service.CreatePaymentInput {
	return service.CreatePaymentInput{
		Title:       r.Title,
		Description: r.Description,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
		Status:      domain.PaymentStatus(r.Status),
	}
}

type updatePaymentRequest struct {
	Title       *domain.LocalizedText `json:"title"`
	Description *domain.LocalizedText `json:"description"`
	Amount      *float64              `json:"amount" validate:"omitempty,gte=0"`
	DueDate     *time.Time            `json:"due_date"`
	Status      *string               `json:"status" validate:"omitempty,oneof=due due_soon paid upcoming"`
}

func (r updatePaymentRequest) toInput() service.UpdatePaymentInput {
	in := service.UpdatePaymentInput{
		Title:       r.Title,
		Description: r.Description,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
	}
	if r.Status != nil {
		s := domain.PaymentStatus(*r.Status)
		in.Status = &s
	}
	return in
}

type createModificationRequest struct {
	Title         string                    `json:"title" validate:"required,max=200"`
	Description   string                    `json:"description"`
	Priority      string                    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	AttachedFiles []domain.ModificationFile `json:"attached_files"`
}

func (r createModificationRequest) toInput() service.CreateModificationInput {
	return service.CreateModificationInput{
		Title:         r.Title,
		Description:   r.Description,
		Priority:      domain.ModificationPriority(r.Priority),
		AttachedFiles: r.AttachedFiles,
	}
}

type updateModificationRequest struct {
	Title              *string                    `json:"title" validate:"omitempty,max=200"`
	Description        *string                    `json:"description"`
	Priority           *string                    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Status             *string                    `json:"status" validate:"omitempty,oneof=pending accepted rejected completed needs_extra_payment"`
	ExtraPaymentAmount *float64                   `json:"extra_payment_amount" validate:"omitempty,gte=0"`
	CostAccepted       *bool                      `json:"cost_accepted"`
	AttachedFiles      *[]domain.ModificationFile `json:"attached_files"`
}

func (r updateModificationRequest) toInput() service.UpdateModificationInput {
	in := service.UpdateModificationInput{
		Title:              r.Title,
		Description:        r.Description,
		ExtraPaymentAmount: r.ExtraPaymentAmount,
		CostAccepted:       r.CostAccepted,
		AttachedFiles:      r.AttachedFiles,
	}
	if r.Priority != nil {
		p := domain.ModificationPriority(*r.Priority)
		in.Priority = &p
	}
	if r.Status != nil {
		s := domain.ModificationStatus(*r.Status)
		in.Status = &s
	}
	return in
}

type createProjectFileRequest struct {
	FileURL  string `json:"file_url" validate:"required,url"`
	FileName string `json:"file_name" validate:"required,max=255"`
	FileType string `json:"file_type" validate:"max=100"`
	FileSize int64  `json:"file_size" validate:"gte=0"`
}

func (r createProjectFileRequest) toInput() service.CreateProjectFileInput {
	return service.CreateProjectFileInput{
		FileURL:  r.FileURL,
		FileName: r.FileName,
		FileType: r.FileType,
		FileSize: r.FileSize,
	}
}

type updateProjectFileRequest struct {
	FileURL  *string `json:"file_url" validate:"omitempty,url"`
	FileName *string `json:"file_name" validate:"omitempty,max=255"`
	FileType *string `json:"file_type" validate:"omitempty,max=100"`
	FileSize *int64  `json:"file_size" validate:"omitempty,gte=0"`
}

func (r updateProjectFileRequest) toInput() service.UpdateProjectFileInput {
	return service.UpdateProjectFileInput{
		FileURL:  r.FileURL,
		FileName: r.FileName,
		FileType: r.FileType,
		FileSize: r.FileSize,
	}
}

type pushTokenRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
}
