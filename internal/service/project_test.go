package service_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/repository"
	"invare-backend/internal/service"
)

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Subscribe(ctx context.Context, actor service.Actor, fcmToken string) error {
	args := m.Called(ctx, actor, fcmToken)
	return args.Error(0)
}
func (m *MockNotifier) Unsubscribe(ctx context.Context, fcmToken string) error {
	args := m.Called(ctx, fcmToken)
	return args.Error(0)
}
func (m *MockNotifier) ListLogs(ctx context.Context, actor service.Actor, read *bool, limit int32) ([]domain.NotificationLog, error) {
	args := m.Called(ctx, actor, read, limit)
	var logs []domain.NotificationLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.NotificationLog)
	}
	return logs, args.Error(1)
}
func (m *MockNotifier) MarkRead(ctx context.Context, actor service.Actor, logID int32) error {
	args := m.Called(ctx, actor, logID)
	return args.Error(0)
}
func (m *MockNotifier) MarkAllRead(ctx context.Context, actor service.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}
func (m *MockNotifier) ClearLogs(ctx context.Context, actor service.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}
func (m *MockNotifier) NotifyAdmins(ctx context.Context, title, body string, data map[string]string) {
	m.Called(ctx, title, body, data)
}

type projectFixture struct {
	projectRepo *MockProjectRepo
	paymentRepo *MockPaymentRepo
	modRepo     *MockModificationRepo
	userRepo    *MockUserRepo
	notifier    *MockNotifier
	svc         service.ProjectService
}

func newProjectFixture(enforceFlow bool) *projectFixture {
	f := &projectFixture{
		projectRepo: new(MockProjectRepo),
		paymentRepo: new(MockPaymentRepo),
		modRepo:     new(MockModificationRepo),
		userRepo:    new(MockUserRepo),
		notifier:    new(MockNotifier),
	}
	f.svc = service.NewProjectService(f.projectRepo, f.paymentRepo, f.modRepo, f.userRepo, f.notifier, enforceFlow)
	return f
}

var (
	adminActor    = service.Actor{ID: 1, Role: domain.UserRoleAdmin}
	employeeActor = service.Actor{ID: 2, Role: domain.UserRoleEmployee}
	clientActor   = service.Actor{ID: 3, Role: domain.UserRoleClient}
)

func sampleProject() *domain.Project {
	return &domain.Project{
		ID:              10,
		Name:            domain.LocalizedText{En: "Website", Ar: "موقع"},
		UserID:          3,
		EmployeeIDs:     []int32{2},
		PaymentIDs:      []int32{100},
		ModificationIDs: []int32{200},
	}
}

func expectPopulate(f *projectFixture, p *domain.Project) {
	ctx := context.Background()
	f.userRepo.On("GetByID", ctx, p.UserID).Return(&domain.User{ID: p.UserID, Role: domain.UserRoleClient}, nil)
	f.paymentRepo.On("ListByIDs", ctx, p.PaymentIDs).Return([]domain.Payment{{ID: 100}}, nil)
	f.modRepo.On("ListByIDs", ctx, p.ModificationIDs).Return([]domain.Modification{{ID: 200}}, nil)
	for _, id := range p.EmployeeIDs {
		f.userRepo.On("GetByID", ctx, id).Return(&domain.User{ID: id, Role: domain.UserRoleEmployee}, nil)
	}
}

func TestProjectService_GetProject_Access(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminSeesAny", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		expectPopulate(f, p)

		got, err := f.svc.GetProject(ctx, adminActor, 10)
		assert.NoError(t, err)
		assert.Len(t, got.Payments, 1)
		assert.Len(t, got.Modifications, 1)
		assert.NotNil(t, got.Client)
	})

	t.Run("AssignedEmployeeAllowed", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		expectPopulate(f, p)

		_, err := f.svc.GetProject(ctx, employeeActor, 10)
		assert.NoError(t, err)
	})

	t.Run("UnassignedEmployeeForbidden", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		p.EmployeeIDs = []int32{99}
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)

		_, err := f.svc.GetProject(ctx, employeeActor, 10)
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})

	t.Run("OwningClientAllowed", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		expectPopulate(f, p)

		_, err := f.svc.GetProject(ctx, clientActor, 10)
		assert.NoError(t, err)
	})

	t.Run("OtherClientForbidden", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		p.UserID = 77
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)

		_, err := f.svc.GetProject(ctx, clientActor, 10)
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})

	t.Run("MissingProjectNotFound", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("GetByID", ctx, int32(404)).Return(nil, sql.ErrNoRows)

		_, err := f.svc.GetProject(ctx, adminActor, 404)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsApplied", func(t *testing.T) {
		f := newProjectFixture(false)
		f.userRepo.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Role: domain.UserRoleClient}, nil)
		f.projectRepo.On("Create", ctx, mock.AnythingOfType("*domain.Project")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Project).ID = 11
		}).Return(nil)

		project, err := f.svc.CreateProject(ctx, adminActor, service.CreateProjectInput{
			Name:   domain.LocalizedText{En: "New"},
			UserID: 3,
			Phases: []domain.Phase{{Title: domain.LocalizedText{En: "Design"}, Duration: 5}},
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(0), project.Progress)
		assert.Equal(t, domain.ProgressTypeProject, project.ProgressType)
		assert.Equal(t, domain.PhaseStatusUpcoming, project.Phases[0].Status)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.CreateProject(ctx, employeeActor, service.CreateProjectInput{
			Name: domain.LocalizedText{En: "x"}, UserID: 3,
		})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})

	t.Run("UnknownClientRejected", func(t *testing.T) {
		f := newProjectFixture(false)
		f.userRepo.On("GetByID", ctx, int32(404)).Return(nil, sql.ErrNoRows)

		_, err := f.svc.CreateProject(ctx, adminActor, service.CreateProjectInput{
			Name:   domain.LocalizedText{En: "x"},
			UserID: 404,
			Phases: []domain.Phase{{Title: domain.LocalizedText{En: "Design"}}},
		})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 400, e.Status)
	})

	t.Run("EmptyPhaseListRejected", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.CreateProject(ctx, adminActor, service.CreateProjectInput{
			Name: domain.LocalizedText{En: "x"}, UserID: 3,
		})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 400, e.Status)
	})

	t.Run("PhaseProgressOutOfRangeRejected", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.CreateProject(ctx, adminActor, service.CreateProjectInput{
			Name: domain.LocalizedText{En: "x"}, UserID: 3,
			Phases: []domain.Phase{{Title: domain.LocalizedText{En: "Design"}, Progress: 500}},
		})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 400, e.Status)
	})

	t.Run("UnknownPhaseStatusRejected", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.CreateProject(ctx, adminActor, service.CreateProjectInput{
			Name: domain.LocalizedText{En: "x"}, UserID: 3,
			Phases: []domain.Phase{{Title: domain.LocalizedText{En: "Design"}, Status: "bogus"}},
		})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 400, e.Status)
	})
}

func TestProjectService_ListProjects_RoleScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("EmployeeRestrictedInQuery", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("List", ctx, mock.MatchedBy(func(filter repository.ProjectFilter) bool {
			return filter.EmployeeID == employeeActor.ID && filter.UserID == 0
		})).Return([]domain.Project{}, int32(0), nil)

		_, _, err := f.svc.ListProjects(ctx, employeeActor, service.ListProjectsInput{})
		assert.NoError(t, err)
		f.projectRepo.AssertExpectations(t)
	})

	t.Run("ClientRestrictedToOwn", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("List", ctx, mock.MatchedBy(func(filter repository.ProjectFilter) bool {
			return filter.UserID == clientActor.ID && filter.EmployeeID == 0
		})).Return([]domain.Project{}, int32(0), nil)

		_, _, err := f.svc.ListProjects(ctx, clientActor, service.ListProjectsInput{})
		assert.NoError(t, err)
		f.projectRepo.AssertExpectations(t)
	})

	t.Run("OwnerFilterAppliedForStaff", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("List", ctx, mock.MatchedBy(func(filter repository.ProjectFilter) bool {
			return filter.UserID == 42
		})).Return([]domain.Project{}, int32(0), nil)

		_, _, err := f.svc.ListProjects(ctx, adminActor, service.ListProjectsInput{UserID: 42})
		assert.NoError(t, err)
		f.projectRepo.AssertExpectations(t)
	})

	t.Run("ClientCannotWidenScopeWithOwnerFilter", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("List", ctx, mock.MatchedBy(func(filter repository.ProjectFilter) bool {
			return filter.UserID == clientActor.ID
		})).Return([]domain.Project{}, int32(0), nil)

		_, _, err := f.svc.ListProjects(ctx, clientActor, service.ListProjectsInput{UserID: 42})
		assert.NoError(t, err)
		f.projectRepo.AssertExpectations(t)
	})

	t.Run("SearchWidensToMatchingClients", func(t *testing.T) {
		f := newProjectFixture(false)
		f.userRepo.On("List", ctx, "acme", domain.UserRoleClient, int32(1), int32(100)).
			Return([]domain.User{{ID: 42}}, int32(1), nil)
		f.projectRepo.On("List", ctx, mock.MatchedBy(func(filter repository.ProjectFilter) bool {
			return filter.Search == "acme" && len(filter.OwnerIDs) == 1 && filter.OwnerIDs[0] == 42
		})).Return([]domain.Project{}, int32(0), nil)

		_, _, err := f.svc.ListProjects(ctx, adminActor, service.ListProjectsInput{Search: "acme"})
		assert.NoError(t, err)
		f.projectRepo.AssertExpectations(t)
	})
}

func TestProjectService_DeleteProject_Cascade(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesPaymentsAndModifications", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)
		f.paymentRepo.On("DeleteByProject", ctx, int32(10)).Return(nil)
		f.modRepo.On("DeleteByProject", ctx, int32(10)).Return(nil)
		f.projectRepo.On("Delete", ctx, int32(10)).Return(nil)

		err := f.svc.DeleteProject(ctx, adminActor, 10)
		assert.NoError(t, err)
		f.paymentRepo.AssertExpectations(t)
		f.modRepo.AssertExpectations(t)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		f := newProjectFixture(false)
		err := f.svc.DeleteProject(ctx, employeeActor, 10)
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})
}

func TestProjectService_GeneratePortalCode(t *testing.T) {
	ctx := context.Background()
	codePattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	t.Run("GeneratesWellFormedCode", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		f.projectRepo.On("PortalCodeExists", ctx, mock.AnythingOfType("string"), int32(10)).Return(false, nil)
		f.projectRepo.On("Update", ctx, p).Return(nil)

		got, err := f.svc.GeneratePortalCode(ctx, adminActor, 10)
		assert.NoError(t, err)
		assert.Regexp(t, codePattern, got.PortalCode)
	})

	t.Run("RetriesOnCollision", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		f.projectRepo.On("PortalCodeExists", ctx, mock.AnythingOfType("string"), int32(10)).Return(true, nil).Once()
		f.projectRepo.On("PortalCodeExists", ctx, mock.AnythingOfType("string"), int32(10)).Return(false, nil).Once()
		f.projectRepo.On("Update", ctx, p).Return(nil)

		got, err := f.svc.GeneratePortalCode(ctx, adminActor, 10)
		assert.NoError(t, err)
		assert.Regexp(t, codePattern, got.PortalCode)
		f.projectRepo.AssertExpectations(t)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.GeneratePortalCode(ctx, clientActor, 10)
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})
}

func TestProjectService_Payments(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateLinksBackReference", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Payment).ID = 101
		}).Return(nil)
		f.projectRepo.On("AddPayment", ctx, int32(10), int32(101)).Return(nil)

		payment, err := f.svc.CreatePayment(ctx, adminActor, 10, service.CreatePaymentInput{
			Title:   domain.LocalizedText{En: "Deposit"},
			Amount:  500,
			DueDate: mustDate(t, "2026-10-01"),
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusUpcoming, payment.Status)
		assert.Equal(t, p.UserID, payment.UserID)
		f.projectRepo.AssertCalled(t, "AddPayment", ctx, int32(10), int32(101))
	})

	t.Run("DeleteUnlinksBackReference", func(t *testing.T) {
		f := newProjectFixture(false)
		f.paymentRepo.On("GetByID", ctx, int32(101)).Return(&domain.Payment{ID: 101, ProjectID: 10}, nil)
		f.paymentRepo.On("Delete", ctx, int32(101)).Return(nil)
		f.projectRepo.On("RemovePayment", ctx, int32(10), int32(101)).Return(nil)

		err := f.svc.DeletePayment(ctx, adminActor, 101)
		assert.NoError(t, err)
		f.projectRepo.AssertCalled(t, "RemovePayment", ctx, int32(10), int32(101))
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		f := newProjectFixture(false)
		_, err := f.svc.CreatePayment(ctx, employeeActor, 10, service.CreatePaymentInput{})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})
}

func TestProjectService_CreateModification(t *testing.T) {
	ctx := context.Background()

	t.Run("PortalRequestFallsBackToOwner", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		f.modRepo.On("Create", ctx, mock.AnythingOfType("*domain.Modification")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Modification).ID = 201
		}).Return(nil)
		f.projectRepo.On("AddModification", ctx, int32(10), int32(201)).Return(nil)
		f.notifier.On("NotifyAdmins", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return()

		mod, err := f.svc.CreateModification(ctx, nil, 10, service.CreateModificationInput{Title: "Change colors"})
		assert.NoError(t, err)
		assert.Equal(t, p.UserID, mod.UserID)
		assert.Equal(t, domain.ModificationStatusPending, mod.Status)
		assert.Equal(t, domain.ModificationPriorityMedium, mod.Priority)
		f.notifier.AssertCalled(t, "NotifyAdmins", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything)
	})

	t.Run("AuthenticatedRequestAttributedToActor", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		f.modRepo.On("Create", ctx, mock.AnythingOfType("*domain.Modification")).Return(nil)
		f.projectRepo.On("AddModification", ctx, int32(10), int32(0)).Return(nil)
		f.notifier.On("NotifyAdmins", ctx, mock.Anything, mock.Anything, mock.Anything).Return()

		actor := clientActor
		mod, err := f.svc.CreateModification(ctx, &actor, 10, service.CreateModificationInput{Title: "t"})
		assert.NoError(t, err)
		assert.Equal(t, clientActor.ID, mod.UserID)
	})

	t.Run("UnassignedEmployeeForbidden", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		p.EmployeeIDs = nil
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)

		actor := employeeActor
		_, err := f.svc.CreateModification(ctx, &actor, 10, service.CreateModificationInput{Title: "t"})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})
}

func TestProjectService_UpdateModification_Flow(t *testing.T) {
	ctx := context.Background()
	pendingMod := func() *domain.Modification {
		return &domain.Modification{ID: 200, ProjectID: 10, UserID: 3, Status: domain.ModificationStatusPending}
	}

	t.Run("EnforcedFlowRejectsIllegalTransition", func(t *testing.T) {
		f := newProjectFixture(true)
		f.modRepo.On("GetByID", ctx, int32(200)).Return(pendingMod(), nil)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)

		status := domain.ModificationStatusCompleted
		_, err := f.svc.UpdateModification(ctx, adminActor, 200, service.UpdateModificationInput{Status: &status})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 400, e.Status)
	})

	t.Run("UnenforcedFlowAllowsAnyStatus", func(t *testing.T) {
		f := newProjectFixture(false)
		f.modRepo.On("GetByID", ctx, int32(200)).Return(pendingMod(), nil)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)
		f.modRepo.On("Update", ctx, mock.AnythingOfType("*domain.Modification")).Return(nil)

		status := domain.ModificationStatusCompleted
		mod, err := f.svc.UpdateModification(ctx, adminActor, 200, service.UpdateModificationInput{Status: &status})
		assert.NoError(t, err)
		assert.Equal(t, domain.ModificationStatusCompleted, mod.Status)
	})

	t.Run("ClientCannotChangeStatus", func(t *testing.T) {
		f := newProjectFixture(false)
		f.modRepo.On("GetByID", ctx, int32(200)).Return(pendingMod(), nil)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)

		status := domain.ModificationStatusAccepted
		_, err := f.svc.UpdateModification(ctx, clientActor, 200, service.UpdateModificationInput{Status: &status})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})

	t.Run("ClientCanAcceptCost", func(t *testing.T) {
		f := newProjectFixture(true)
		f.modRepo.On("GetByID", ctx, int32(200)).Return(pendingMod(), nil)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)
		f.modRepo.On("Update", ctx, mock.AnythingOfType("*domain.Modification")).Return(nil)

		accepted := true
		mod, err := f.svc.UpdateModification(ctx, clientActor, 200, service.UpdateModificationInput{CostAccepted: &accepted})
		assert.NoError(t, err)
		assert.True(t, mod.CostAccepted)
	})
}

func TestProjectService_DeleteModification(t *testing.T) {
	ctx := context.Background()

	t.Run("ClearsActiveModification", func(t *testing.T) {
		f := newProjectFixture(false)
		p := sampleProject()
		active := int32(200)
		p.ActiveModificationID = &active
		f.modRepo.On("GetByID", ctx, int32(200)).Return(&domain.Modification{ID: 200, ProjectID: 10, UserID: 3}, nil)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(p, nil)
		f.modRepo.On("Delete", ctx, int32(200)).Return(nil)
		f.projectRepo.On("RemoveModification", ctx, int32(10), int32(200)).Return(nil)
		f.projectRepo.On("Update", ctx, p).Return(nil)

		err := f.svc.DeleteModification(ctx, adminActor, 200)
		assert.NoError(t, err)
		assert.Nil(t, p.ActiveModificationID)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		f := newProjectFixture(false)
		f.modRepo.On("GetByID", ctx, int32(200)).Return(&domain.Modification{ID: 200, ProjectID: 10, UserID: 77}, nil)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)

		err := f.svc.DeleteModification(ctx, clientActor, 200)
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})
}

func TestProjectService_UpdateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("ActiveModificationMustBelongToProject", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)

		bogus := int32(999)
		_, err := f.svc.UpdateProject(ctx, adminActor, 10, service.UpdateProjectInput{ActiveModificationID: &bogus})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 400, e.Status)
	})

	t.Run("ClientCannotUpdate", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)

		_, err := f.svc.UpdateProject(ctx, clientActor, 10, service.UpdateProjectInput{})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})

	t.Run("PhaseProgressOutOfRangeRejected", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)

		phases := []domain.Phase{{Title: domain.LocalizedText{En: "Design"}, Progress: 101}}
		_, err := f.svc.UpdateProject(ctx, adminActor, 10, service.UpdateProjectInput{Phases: &phases})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 400, e.Status)
	})

	t.Run("UnknownPhaseStatusRejected", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)

		phases := []domain.Phase{{Title: domain.LocalizedText{En: "Design"}, Status: "paused"}}
		_, err := f.svc.UpdateProject(ctx, adminActor, 10, service.UpdateProjectInput{Phases: &phases})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 400, e.Status)
	})

	t.Run("EmployeeCannotReassignEmployees", func(t *testing.T) {
		f := newProjectFixture(false)
		f.projectRepo.On("GetByID", ctx, int32(10)).Return(sampleProject(), nil)

		employees := []int32{2, 5}
		_, err := f.svc.UpdateProject(ctx, employeeActor, 10, service.UpdateProjectInput{EmployeeIDs: &employees})
		e, ok := apperr.From(err)
		assert.True(t, ok)
		assert.Equal(t, 403, e.Status)
	})
}
