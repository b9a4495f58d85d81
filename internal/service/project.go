package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/logger"
	"invare-backend/internal/repository"
)

const (
	portalCodeLength   = 8
	portalCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	portalCodeAttempts = 10
)

type projectService struct {
	projectRepo repository.ProjectRepository
	paymentRepo repository.PaymentRepository
	modRepo     repository.ModificationRepository
	userRepo    repository.UserRepository
	notifier    NotificationService
	enforceFlow bool
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	paymentRepo repository.PaymentRepository,
	modRepo repository.ModificationRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	enforceModificationFlow bool,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		paymentRepo: paymentRepo,
		modRepo:     modRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		enforceFlow: enforceModificationFlow,
	}
}

func (s *projectService) CreateProject(ctx context.Context, actor Actor, in CreateProjectInput) (*domain.Project, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can create projects")
	}
	if in.Name.IsZero() {
		return nil, apperr.BadRequest("project name is required")
	}
	if in.TotalCost < 0 {
		return nil, apperr.BadRequest("total cost cannot be negative")
	}
	if len(in.Phases) == 0 {
		return nil, apperr.BadRequest("at least one phase is required")
	}
	if err := validatePhases(in.Phases); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.BadRequest("client does not exist")
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	for i := range in.Phases {
		if in.Phases[i].Status == "" {
			in.Phases[i].Status = domain.PhaseStatusUpcoming
		}
	}

	project := &domain.Project{
		Name:              in.Name,
		Description:       in.Description,
		Logo:              in.Logo,
		UserID:            owner.ID,
		TotalCost:         in.TotalCost,
		Phases:            in.Phases,
		StartDate:         in.StartDate,
		Progress:          0,
		ProgressType:      domain.ProgressTypeProject,
		EmployeeIDs:       in.EmployeeIDs,
		WhatsappGroupLink: in.WhatsappGroupLink,
		ProjectURL:        in.ProjectURL,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	project.Client = owner
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, actor Actor, in ListProjectsInput) ([]domain.Project, int32, error) {
	filter := repository.ProjectFilter{
		Search: in.Search,
		Page:   in.Page,
		Limit:  in.Limit,
	}
	switch actor.Role {
	case domain.UserRoleAdmin:
		filter.UserID = in.UserID
	case domain.UserRoleEmployee:
		filter.EmployeeID = actor.ID
		filter.UserID = in.UserID
	default:
		// Clients are always scoped to their own projects; a supplied owner
		// filter cannot widen that.
		filter.UserID = actor.ID
	}

	// A search should also hit client names and companies, which live on the
	// users table. Resolve matching owners first and widen the query.
	if in.Search != "" && actor.Role != domain.UserRoleClient {
		clients, _, err := s.userRepo.List(ctx, in.Search, domain.UserRoleClient, 1, 100)
		if err != nil {
			return nil, 0, fmt.Errorf("search clients: %w", err)
		}
		for _, c := range clients {
			filter.OwnerIDs = append(filter.OwnerIDs, c.ID)
		}
	}

	projects, total, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	for i := range projects {
		client, err := s.userRepo.GetByID(ctx, projects[i].UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, 0, fmt.Errorf("get client: %w", err)
		}
		projects[i].Client = client
	}
	return projects, total, nil
}

func (s *projectService) GetProject(ctx context.Context, actor Actor, id int32) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := authorizeProjectAccess(actor, project); err != nil {
		return nil, err
	}
	if err := s.populateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, actor Actor, id int32, in UpdateProjectInput) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	// Authorization is evaluated against the project as it stands, not as
	// the patch would leave it.
	if !actor.IsStaff() {
		return nil, apperr.Forbidden("only staff can update projects")
	}
	if err := authorizeProjectAccess(actor, project); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if in.Name.IsZero() {
			return nil, apperr.BadRequest("project name cannot be empty")
		}
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Logo != nil {
		project.Logo = *in.Logo
	}
	if in.UserID != nil && *in.UserID != project.UserID {
		if !actor.IsAdmin() {
			return nil, apperr.Forbidden("only admins can reassign a project")
		}
		if _, err := s.userRepo.GetByID(ctx, *in.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.BadRequest("client does not exist")
			}
			return nil, fmt.Errorf("get client: %w", err)
		}
		project.UserID = *in.UserID
	}
	if in.TotalCost != nil {
		if *in.TotalCost < 0 {
			return nil, apperr.BadRequest("total cost cannot be negative")
		}
		project.TotalCost = *in.TotalCost
	}
	if in.Phases != nil {
		if err := validatePhases(*in.Phases); err != nil {
			return nil, err
		}
		project.Phases = *in.Phases
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, apperr.BadRequest("progress must be between 0 and 100")
		}
		project.Progress = *in.Progress
	}
	if in.ProgressType != nil {
		project.ProgressType = *in.ProgressType
	}
	if in.ActiveModificationID != nil {
		if *in.ActiveModificationID == 0 {
			project.ActiveModificationID = nil
		} else {
			if !containsID(project.ModificationIDs, *in.ActiveModificationID) {
				return nil, apperr.BadRequest("active modification does not belong to this project")
			}
			project.ActiveModificationID = in.ActiveModificationID
		}
	}
	if in.EmployeeIDs != nil {
		if !actor.IsAdmin() {
			return nil, apperr.Forbidden("only admins can assign employees")
		}
		project.EmployeeIDs = *in.EmployeeIDs
	}
	if in.WhatsappGroupLink != nil {
		project.WhatsappGroupLink = *in.WhatsappGroupLink
	}
	if in.ProjectURL != nil {
		project.ProjectURL = *in.ProjectURL
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if err := s.populateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes the project and cascades to its payments and
// modifications. Project files survive on purpose: they reference external
// storage the delete must not orphan silently.
func (s *projectService) DeleteProject(ctx context.Context, actor Actor, id int32) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("only admins can delete projects")
	}
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("project not found")
		}
		return fmt.Errorf("get project: %w", err)
	}

	if err := s.paymentRepo.DeleteByProject(ctx, id); err != nil {
		return fmt.Errorf("delete payments: %w", err)
	}
	if err := s.modRepo.DeleteByProject(ctx, id); err != nil {
		return fmt.Errorf("delete modifications: %w", err)
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (s *projectService) GeneratePortalCode(ctx context.Context, actor Actor, projectID int32) (*domain.Project, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can generate portal codes")
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	for attempt := 0; attempt < portalCodeAttempts; attempt++ {
		code, err := generatePortalCode()
		if err != nil {
			return nil, fmt.Errorf("generate portal code: %w", err)
		}
		exists, err := s.projectRepo.PortalCodeExists(ctx, code, project.ID)
		if err != nil {
			return nil, fmt.Errorf("check portal code: %w", err)
		}
		if exists {
			continue
		}
		project.PortalCode = code
		if err := s.projectRepo.Update(ctx, project); err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
		return project, nil
	}
	return nil, fmt.Errorf("could not find a unique portal code after %d attempts", portalCodeAttempts)
}

func (s *projectService) GetProjectByPortalCode(ctx context.Context, code string) (*domain.Project, error) {
	if code == "" {
		return nil, apperr.BadRequest("portal code is required")
	}
	project, err := s.projectRepo.GetByPortalCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := s.populateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) CreatePayment(ctx context.Context, actor Actor, projectID int32, in CreatePaymentInput) (*domain.Payment, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can manage payments")
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if in.Title.IsZero() {
		return nil, apperr.BadRequest("payment title is required")
	}
	if in.Amount < 0 {
		return nil, apperr.BadRequest("amount cannot be negative")
	}
	if in.DueDate.IsZero() {
		return nil, apperr.BadRequest("due date is required")
	}

	status := in.Status
	if status == "" {
		status = domain.PaymentStatusUpcoming
	}
	payment := &domain.Payment{
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   project.ID,
		UserID:      project.UserID,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Status:      status,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	if err := s.projectRepo.AddPayment(ctx, project.ID, payment.ID); err != nil {
		// The payment row exists but the project does not reference it.
		// Surface the error; the write is not rolled back.
		return nil, fmt.Errorf("link payment to project: %w", err)
	}
	return payment, nil
}

func (s *projectService) UpdatePayment(ctx context.Context, actor Actor, paymentID int32, in UpdatePaymentInput) (*domain.Payment, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can manage payments")
	}
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("payment not found")
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	if in.Title != nil {
		if in.Title.IsZero() {
			return nil, apperr.BadRequest("payment title cannot be empty")
		}
		payment.Title = *in.Title
	}
	if in.Description != nil {
		payment.Description = *in.Description
	}
	if in.Amount != nil {
		if *in.Amount < 0 {
			return nil, apperr.BadRequest("amount cannot be negative")
		}
		payment.Amount = *in.Amount
	}
	if in.DueDate != nil {
		payment.DueDate = *in.DueDate
	}
	if in.Status != nil {
		payment.Status = *in.Status
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return payment, nil
}

func (s *projectService) DeletePayment(ctx context.Context, actor Actor, paymentID int32) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("only admins can manage payments")
	}
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("payment not found")
		}
		return fmt.Errorf("get payment: %w", err)
	}
	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if err := s.projectRepo.RemovePayment(ctx, payment.ProjectID, paymentID); err != nil {
		return fmt.Errorf("unlink payment from project: %w", err)
	}
	return nil
}

func (s *projectService) CreateModification(ctx context.Context, actor *Actor, projectID int32, in CreateModificationInput) (*domain.Modification, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if in.Title == "" {
		return nil, apperr.BadRequest("modification title is required")
	}

	// An authenticated caller must be allowed on the project and the request
	// is attributed to them. A portal caller has no identity, so the request
	// falls back to the project owner.
	var requesterID int32
	if actor != nil {
		if err := authorizeProjectAccess(*actor, project); err != nil {
			return nil, err
		}
		requesterID = actor.ID
	} else {
		if project.UserID == 0 {
			return nil, apperr.BadRequest("cannot determine the requesting user")
		}
		requesterID = project.UserID
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.ModificationPriorityMedium
	}
	mod := &domain.Modification{
		Title:         in.Title,
		Description:   in.Description,
		Priority:      priority,
		ProjectID:     project.ID,
		UserID:        requesterID,
		Status:        domain.ModificationStatusPending,
		AttachedFiles: in.AttachedFiles,
	}
	if err := s.modRepo.Create(ctx, mod); err != nil {
		return nil, fmt.Errorf("create modification: %w", err)
	}
	if err := s.projectRepo.AddModification(ctx, project.ID, mod.ID); err != nil {
		return nil, fmt.Errorf("link modification to project: %w", err)
	}

	s.notifier.NotifyAdmins(ctx,
		"New modification request",
		fmt.Sprintf("A modification %q was requested on project %q.", mod.Title, project.Name.En),
		map[string]string{
			"type":            "modification_created",
			"project_id":      fmt.Sprint(project.ID),
			"modification_id": fmt.Sprint(mod.ID),
		})
	return mod, nil
}

func (s *projectService) UpdateModification(ctx context.Context, actor Actor, modificationID int32, in UpdateModificationInput) (*domain.Modification, error) {
	mod, err := s.modRepo.GetByID(ctx, modificationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("modification not found")
		}
		return nil, fmt.Errorf("get modification: %w", err)
	}
	project, err := s.projectRepo.GetByID(ctx, mod.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := authorizeProjectAccess(actor, project); err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status != mod.Status {
		// Status decisions belong to staff; the client only accepts costs.
		if !actor.IsStaff() {
			return nil, apperr.Forbidden("only staff can change a modification's status")
		}
		if s.enforceFlow && !mod.Status.CanTransition(*in.Status) {
			return nil, apperr.BadRequest(fmt.Sprintf("cannot move a %s modification to %s", mod.Status, *in.Status))
		}
		mod.Status = *in.Status
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperr.BadRequest("modification title cannot be empty")
		}
		mod.Title = *in.Title
	}
	if in.Description != nil {
		mod.Description = *in.Description
	}
	if in.Priority != nil {
		mod.Priority = *in.Priority
	}
	if in.ExtraPaymentAmount != nil {
		if !actor.IsStaff() {
			return nil, apperr.Forbidden("only staff can set an extra payment amount")
		}
		if *in.ExtraPaymentAmount < 0 {
			return nil, apperr.BadRequest("extra payment amount cannot be negative")
		}
		mod.ExtraPaymentAmount = *in.ExtraPaymentAmount
	}
	if in.CostAccepted != nil {
		mod.CostAccepted = *in.CostAccepted
	}
	if in.AttachedFiles != nil {
		mod.AttachedFiles = *in.AttachedFiles
	}

	if err := s.modRepo.Update(ctx, mod); err != nil {
		return nil, fmt.Errorf("update modification: %w", err)
	}
	return mod, nil
}

func (s *projectService) DeleteModification(ctx context.Context, actor Actor, modificationID int32) error {
	mod, err := s.modRepo.GetByID(ctx, modificationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("modification not found")
		}
		return fmt.Errorf("get modification: %w", err)
	}
	project, err := s.projectRepo.GetByID(ctx, mod.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("project not found")
		}
		return fmt.Errorf("get project: %w", err)
	}
	if !actor.IsAdmin() && actor.ID != mod.UserID {
		return apperr.Forbidden("you cannot delete this modification")
	}

	if err := s.modRepo.Delete(ctx, modificationID); err != nil {
		return fmt.Errorf("delete modification: %w", err)
	}
	if err := s.projectRepo.RemoveModification(ctx, project.ID, modificationID); err != nil {
		return fmt.Errorf("unlink modification from project: %w", err)
	}
	if project.ActiveModificationID != nil && *project.ActiveModificationID == modificationID {
		project.ActiveModificationID = nil
		if err := s.projectRepo.Update(ctx, project); err != nil {
			logger.Error("failed to clear active modification", "project_id", project.ID, "error", err)
		}
	}
	return nil
}

// populateProject fills the fetch-time relations: the owning client, the
// payment and modification children, assigned employees, and the active
// modification.
func (s *projectService) populateProject(ctx context.Context, project *domain.Project) error {
	client, err := s.userRepo.GetByID(ctx, project.UserID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("get client: %w", err)
	}
	project.Client = client

	payments, err := s.paymentRepo.ListByIDs(ctx, project.PaymentIDs)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}
	project.Payments = payments

	mods, err := s.modRepo.ListByIDs(ctx, project.ModificationIDs)
	if err != nil {
		return fmt.Errorf("list modifications: %w", err)
	}
	project.Modifications = mods

	if project.ActiveModificationID != nil {
		for i := range mods {
			if mods[i].ID == *project.ActiveModificationID {
				project.ActiveModification = &mods[i]
				break
			}
		}
	}

	for _, id := range project.EmployeeIDs {
		employee, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return fmt.Errorf("get employee: %w", err)
		}
		project.Employees = append(project.Employees, *employee)
	}
	return nil
}

// validatePhases guards the embedded phase list on both the create and the
// update path. An empty status is allowed on input and defaulted later.
func validatePhases(phases []domain.Phase) error {
	for i, phase := range phases {
		if phase.Progress < 0 || phase.Progress > 100 {
			return apperr.BadRequest(fmt.Sprintf("phase %d: progress must be between 0 and 100", i+1))
		}
		switch phase.Status {
		case "", domain.PhaseStatusUpcoming, domain.PhaseStatusInProgress, domain.PhaseStatusCompleted:
		default:
			return apperr.BadRequest(fmt.Sprintf("phase %d: unknown status %q", i+1, phase.Status))
		}
	}
	return nil
}

func containsID(ids []int32, id int32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func generatePortalCode() (string, error) {
	code := make([]byte, portalCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(portalCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = portalCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
