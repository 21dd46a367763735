package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"go-backoffice/internal/auth"
	autherrors "go-backoffice/internal/auth/errors"
	"go-backoffice/internal/domain"
	"go-backoffice/internal/employee"
	employeeerrors "go-backoffice/internal/employee/errors"
)

type fakeAuthRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, errors.New("not found")
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

type fakeRBACService struct {
	loadCompanyPolicyFn func(companyID string) error
	enforceFn           func(req domain.EnforceRequest) (bool, error)
}

func (f *fakeRBACService) LoadCompanyPolicy(companyID string) error {
	if f.loadCompanyPolicyFn != nil {
		return f.loadCompanyPolicyFn(companyID)
	}
	return nil
}

func (f *fakeRBACService) Enforce(req domain.EnforceRequest) (bool, error) {
	if f.enforceFn != nil {
		return f.enforceFn(req)
	}
	return true, nil
}

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindOptionsByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return nil, errors.New("not found")
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, companyID, id string) error    { return nil }

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()

	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	userID := uuid.New()
	companyID := uuid.New()
	employeeID := uuid.New()
	mockUser := &auth.User{
		ID:         userID,
		EmployeeID: &employeeID,
		CompanyID:  companyID,
		Email:      "admin@example.com",
		Password:   string(pw),
		Role:       "HR",
	}

	t.Run("success", func(t *testing.T) {
		loaded := ""
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, mockUser.Email, email)
				return mockUser, nil
			},
		}
		rbacSvc := &fakeRBACService{
			loadCompanyPolicyFn: func(cid string) error {
				loaded = cid
				return nil
			},
		}

		service := auth.NewService(repo, rbacSvc, &fakeEmployeeRepo{})

		token, refreshToken, resp, err := service.Login(ctx, mockUser.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, mockUser.Email, resp.Email)
		assert.Equal(t, companyID.String(), resp.CompanyID)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
		assert.Equal(t, companyID.String(), loaded)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return mockUser, nil
			},
		}
		service := auth.NewService(repo, &fakeRBACService{}, &fakeEmployeeRepo{})

		_, _, _, err := service.Login(ctx, mockUser.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		service := auth.NewService(&fakeAuthRepository{}, &fakeRBACService{}, &fakeEmployeeRepo{})

		_, _, _, err := service.Login(ctx, "nobody@example.com", password)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		cID := uuid.New()
		eID := uuid.New()

		req := auth.RegisterRequest{
			CompanyID:  cID.String(),
			EmployeeID: eID.String(),
			Email:      "user@example.com",
			Name:       "John Doe",
			Password:   "password123",
		}

		emplRepo := &fakeEmployeeRepo{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				assert.Equal(t, eID.String(), id)
				return &employee.Employee{
					ID:        eID,
					CompanyID: cID,
					FullName:  "John Doe",
				}, nil
			},
		}

		var createdUser *auth.User
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				createdUser = user
				return nil
			},
		}

		service := auth.NewService(repo, &fakeRBACService{}, emplRepo)

		resp, err := service.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, req.Email, resp.Email)
		assert.Equal(t, cID.String(), resp.CompanyID)
		assert.NotNil(t, createdUser)
		assert.NotEqual(t, req.Password, createdUser.Password)
	})

	t.Run("employee not found", func(t *testing.T) {
		req := auth.RegisterRequest{
			CompanyID:  uuid.New().String(),
			EmployeeID: uuid.New().String(),
			Email:      "user@example.com",
			Password:   "password123",
		}

		service := auth.NewService(&fakeAuthRepository{}, &fakeRBACService{}, &fakeEmployeeRepo{})

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		cID := uuid.New()
		eID := uuid.New()
		req := auth.RegisterRequest{
			CompanyID:  cID.String(),
			EmployeeID: eID.String(),
			Email:      "duplicate@example.com",
			Password:   "password123",
		}

		emplRepo := &fakeEmployeeRepo{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return &employee.Employee{ID: eID, CompanyID: cID}, nil
			},
		}
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				return errors.New("duplicate key error")
			},
		}

		service := auth.NewService(repo, &fakeRBACService{}, emplRepo)

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}
