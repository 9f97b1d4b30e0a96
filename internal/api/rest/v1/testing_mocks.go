//go:build unit
// +build unit

package v1

import (
	"context"
	"io"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"
	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"github.com/rpsg-tech/clm-sub005/internal/domain/auth"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, creds *auth.Credentials, ipAddress string) (*auth.Session, error) {
	args := m.Called(ctx, creds, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, actor identity.Actor) (*users.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// Resolve returns the configured actor. A func(identity.Actor) (identity.Actor, error)
// return value is called with the incoming actor instead.
func (m *MockAuthService) Resolve(ctx context.Context, actor identity.Actor) (identity.Actor, error) {
	args := m.Called(ctx, actor)
	if fn, ok := args.Get(0).(func(identity.Actor) (identity.Actor, error)); ok {
		return fn(actor)
	}
	return args.Get(0).(identity.Actor), args.Error(1)
}

// PassThroughSessions returns a MockAuthService whose Resolve accepts every actor unchanged
func PassThroughSessions() *MockAuthService {
	m := new(MockAuthService)
	m.On("Resolve", mock.Anything, mock.Anything).Return(func(actor identity.Actor) (identity.Actor, error) {
		return actor, nil
	}, nil)
	return m
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(user *users.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Parse(token string) (*identity.Actor, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Actor), args.Error(1)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, actor identity.Actor, input *users.UserInput) (*users.User, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, actor identity.Actor, query *users.UserQuery) ([]*users.User, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*users.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, actor identity.Actor, userID string) (*users.User, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) UpdateRole(ctx context.Context, actor identity.Actor, userID, role string) (*users.User, error) {
	args := m.Called(ctx, actor, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) Deactivate(ctx context.Context, actor identity.Actor, userID string) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

// MockTemplateService is a mock implementation of TemplateService
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) Create(ctx context.Context, actor identity.Actor, input *templates.TemplateInput) (*templates.Template, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templates.Template), args.Error(1)
}

func (m *MockTemplateService) List(ctx context.Context, actor identity.Actor, query *templates.TemplateQuery) ([]*templates.Template, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*templates.Template), args.Error(1)
}

func (m *MockTemplateService) GetByID(ctx context.Context, actor identity.Actor, templateID string) (*templates.Template, error) {
	args := m.Called(ctx, actor, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templates.Template), args.Error(1)
}

func (m *MockTemplateService) Update(ctx context.Context, actor identity.Actor, templateID string, input *templates.TemplateInput) (*templates.Template, error) {
	args := m.Called(ctx, actor, templateID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templates.Template), args.Error(1)
}

func (m *MockTemplateService) DeleteByID(ctx context.Context, actor identity.Actor, templateID string) error {
	args := m.Called(ctx, actor, templateID)
	return args.Error(0)
}

// MockContractService is a mock implementation of ContractService
type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) Create(ctx context.Context, actor identity.Actor, input *contracts.ContractInput) (*contracts.Contract, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.Contract), args.Error(1)
}

func (m *MockContractService) List(ctx context.Context, actor identity.Actor, query *contracts.ContractQuery) ([]*contracts.Contract, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*contracts.Contract), args.Error(1)
}

func (m *MockContractService) GetByID(ctx context.Context, actor identity.Actor, contractID string) (*contracts.Contract, error) {
	args := m.Called(ctx, actor, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.Contract), args.Error(1)
}

func (m *MockContractService) Update(ctx context.Context, actor identity.Actor, contractID string, update *contracts.ContractUpdate) (*contracts.Contract, error) {
	args := m.Called(ctx, actor, contractID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.Contract), args.Error(1)
}

func (m *MockContractService) Transition(ctx context.Context, actor identity.Actor, contractID, status string) (*contracts.Contract, error) {
	args := m.Called(ctx, actor, contractID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.Contract), args.Error(1)
}

func (m *MockContractService) DeleteByID(ctx context.Context, actor identity.Actor, contractID string) error {
	args := m.Called(ctx, actor, contractID)
	return args.Error(0)
}

// MockVersionService is a mock implementation of VersionService
type MockVersionService struct {
	mock.Mock
}

func (m *MockVersionService) List(ctx context.Context, actor identity.Actor, contractID string) ([]*versions.ContractVersion, error) {
	args := m.Called(ctx, actor, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*versions.ContractVersion), args.Error(1)
}

func (m *MockVersionService) Get(ctx context.Context, actor identity.Actor, contractID string, number int) (*versions.ContractVersion, error) {
	args := m.Called(ctx, actor, contractID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*versions.ContractVersion), args.Error(1)
}

func (m *MockVersionService) Restore(ctx context.Context, actor identity.Actor, contractID string, number int) (*versions.ContractVersion, error) {
	args := m.Called(ctx, actor, contractID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*versions.ContractVersion), args.Error(1)
}

func (m *MockVersionService) Diff(ctx context.Context, actor identity.Actor, contractID string, from, to int) ([]versions.FieldChange, error) {
	args := m.Called(ctx, actor, contractID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]versions.FieldChange), args.Error(1)
}

// MockApprovalService is a mock implementation of ApprovalService
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) Submit(ctx context.Context, actor identity.Actor, contractID string, input *approvals.SubmitInput) ([]*approvals.Approval, error) {
	args := m.Called(ctx, actor, contractID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*approvals.Approval), args.Error(1)
}

func (m *MockApprovalService) Decide(ctx context.Context, actor identity.Actor, approvalID string, input *approvals.DecisionInput) (*approvals.Approval, error) {
	args := m.Called(ctx, actor, approvalID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*approvals.Approval), args.Error(1)
}

func (m *MockApprovalService) ListForContract(ctx context.Context, actor identity.Actor, contractID string) ([]*approvals.Approval, error) {
	args := m.Called(ctx, actor, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*approvals.Approval), args.Error(1)
}

func (m *MockApprovalService) ListPending(ctx context.Context, actor identity.Actor) ([]*approvals.Approval, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*approvals.Approval), args.Error(1)
}

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) List(ctx context.Context, actor identity.Actor, query *audit.AuditLogQuery) ([]*audit.AuditLog, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.AuditLog), args.Error(1)
}

func (m *MockAuditService) Export(ctx context.Context, actor identity.Actor, query *audit.AuditLogQuery, w io.Writer) error {
	args := m.Called(ctx, actor, query, w)
	if payload, ok := args.Get(0).([]byte); ok {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return args.Error(1)
}
