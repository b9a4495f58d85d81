package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"invare-backend/internal/domain"
	"invare-backend/internal/repository"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return d
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByRawLoginCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) EmailExists(ctx context.Context, email string, excludeID int32) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) PhoneExists(ctx context.Context, phone string, excludeID int32) (bool, error) {
	args := m.Called(ctx, phone, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) RawLoginCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context, search string, role domain.UserRole, page, limit int32) ([]domain.User, int32, error) {
	args := m.Called(ctx, search, role, page, limit)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Get(1).(int32), args.Error(2)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) GetByPortalCode(ctx context.Context, code string) (*domain.Project, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}
func (m *MockProjectRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProjectRepo) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, int32, error) {
	args := m.Called(ctx, filter)
	var projects []domain.Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]domain.Project)
	}
	return projects, args.Get(1).(int32), args.Error(2)
}
func (m *MockProjectRepo) PortalCodeExists(ctx context.Context, code string, excludeID int32) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockProjectRepo) AddPayment(ctx context.Context, projectID, paymentID int32) error {
	args := m.Called(ctx, projectID, paymentID)
	return args.Error(0)
}
func (m *MockProjectRepo) RemovePayment(ctx context.Context, projectID, paymentID int32) error {
	args := m.Called(ctx, projectID, paymentID)
	return args.Error(0)
}
func (m *MockProjectRepo) AddModification(ctx context.Context, projectID, modificationID int32) error {
	args := m.Called(ctx, projectID, modificationID)
	return args.Error(0)
}
func (m *MockProjectRepo) RemoveModification(ctx context.Context, projectID, modificationID int32) error {
	args := m.Called(ctx, projectID, modificationID)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByIDs(ctx context.Context, ids []int32) ([]domain.Payment, error) {
	args := m.Called(ctx, ids)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) DeleteByProject(ctx context.Context, projectID int32) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// MockModificationRepo
type MockModificationRepo struct {
	mock.Mock
}

func (m *MockModificationRepo) Create(ctx context.Context, mod *domain.Modification) error {
	args := m.Called(ctx, mod)
	return args.Error(0)
}
func (m *MockModificationRepo) GetByID(ctx context.Context, id int32) (*domain.Modification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Modification), args.Error(1)
}
func (m *MockModificationRepo) ListByIDs(ctx context.Context, ids []int32) ([]domain.Modification, error) {
	args := m.Called(ctx, ids)
	var mods []domain.Modification
	if args.Get(0) != nil {
		mods = args.Get(0).([]domain.Modification)
	}
	return mods, args.Error(1)
}
func (m *MockModificationRepo) Update(ctx context.Context, mod *domain.Modification) error {
	args := m.Called(ctx, mod)
	return args.Error(0)
}
func (m *MockModificationRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockModificationRepo) DeleteByProject(ctx context.Context, projectID int32) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// MockProjectFileRepo
type MockProjectFileRepo struct {
	mock.Mock
}

func (m *MockProjectFileRepo) Create(ctx context.Context, file *domain.ProjectFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}
func (m *MockProjectFileRepo) GetByID(ctx context.Context, id int32) (*domain.ProjectFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectFile), args.Error(1)
}
func (m *MockProjectFileRepo) ListByProject(ctx context.Context, projectID int32, uploadedBy domain.FileUploadedBy) ([]domain.ProjectFile, error) {
	args := m.Called(ctx, projectID, uploadedBy)
	var files []domain.ProjectFile
	if args.Get(0) != nil {
		files = args.Get(0).([]domain.ProjectFile)
	}
	return files, args.Error(1)
}
func (m *MockProjectFileRepo) Update(ctx context.Context, file *domain.ProjectFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}
func (m *MockProjectFileRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) UpsertToken(ctx context.Context, token *domain.PushToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockNotificationRepo) DeleteToken(ctx context.Context, fcmToken string) error {
	args := m.Called(ctx, fcmToken)
	return args.Error(0)
}
func (m *MockNotificationRepo) DeleteTokens(ctx context.Context, fcmTokens []string) error {
	args := m.Called(ctx, fcmTokens)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListTokens(ctx context.Context, userID int32, role domain.UserRole) ([]string, error) {
	args := m.Called(ctx, userID, role)
	var tokens []string
	if args.Get(0) != nil {
		tokens = args.Get(0).([]string)
	}
	return tokens, args.Error(1)
}
func (m *MockNotificationRepo) CreateLog(ctx context.Context, log *domain.NotificationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListLogs(ctx context.Context, userID int32, read *bool, limit int32) ([]domain.NotificationLog, error) {
	args := m.Called(ctx, userID, read, limit)
	var logs []domain.NotificationLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.NotificationLog)
	}
	return logs, args.Error(1)
}
func (m *MockNotificationRepo) MarkLogRead(ctx context.Context, logID, userID int32) error {
	args := m.Called(ctx, logID, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkAllLogsRead(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) ClearLogs(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(to, toName, subject, plainText, htmlContent string) error {
	args := m.Called(to, toName, subject, plainText, htmlContent)
	return args.Error(0)
}

// MockPushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error) {
	args := m.Called(ctx, tokens, title, body, data)
	var invalid []string
	if args.Get(0) != nil {
		invalid = args.Get(0).([]string)
	}
	return invalid, args.Error(1)
}
