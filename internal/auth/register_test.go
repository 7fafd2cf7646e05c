package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/internal/users"
	"github.com/farmtrackhq/farmtrack-backend/pkg/config"
	pkgmodels "github.com/farmtrackhq/farmtrack-backend/pkg/db/models"
	pkgerrors "github.com/farmtrackhq/farmtrack-backend/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepository struct {
	data      map[string]*pkgmodels.User
	created   *pkgmodels.User
	createErr error
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{data: map[string]*pkgmodels.User{}}
}

func (s *stubUserRepository) FindByUsername(ctx context.Context, username string) (*pkgmodels.User, error) {
	if user, ok := s.data[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) Create(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := &pkgmodels.User{
		ID:           uuid.New(),
		Username:     dto.Username,
		PasswordHash: dto.PasswordHash,
	}
	s.data[dto.Username] = user
	s.created = user
	return user, nil
}

type registerTestSetup struct {
	service  RegisterService
	userRepo *stubUserRepository
}

func newRegisterTestSetup(t *testing.T) *registerTestSetup {
	t.Helper()
	userRepo := newStubUserRepository()
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) RegisterUserRepository {
			return userRepo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return &registerTestSetup{
		service:  svc,
		userRepo: userRepo,
	}
}

func sampleRegisterRequest(username string) RegisterRequest {
	return RegisterRequest{
		Username:        username,
		Password:        "Secret123!",
		ConfirmPassword: "Secret123!",
	}
}

func TestRegisterCreatesUser(t *testing.T) {
	setup := newRegisterTestSetup(t)
	req := sampleRegisterRequest("jamie_rivera")

	dto, err := setup.service.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if setup.userRepo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if dto == nil || dto.Username != "jamie_rivera" {
		t.Fatalf("unexpected register result: %+v", dto)
	}
	if setup.userRepo.created.PasswordHash == req.Password {
		t.Fatalf("password stored without hashing")
	}
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	setup := newRegisterTestSetup(t)
	setup.userRepo.data["jamie_rivera"] = &pkgmodels.User{
		ID:       uuid.New(),
		Username: "jamie_rivera",
	}

	_, err := setup.service.Register(context.Background(), sampleRegisterRequest("jamie_rivera"))
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if setup.userRepo.created != nil {
		t.Fatalf("expected no user creation")
	}
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	setup := newRegisterTestSetup(t)
	req := sampleRegisterRequest("jamie_rivera")
	req.ConfirmPassword = "Different123!"

	_, err := setup.service.Register(context.Background(), req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
