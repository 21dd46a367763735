package employee_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-backoffice/internal/employee"
	employeeerrors "go-backoffice/internal/employee/errors"
	"go-backoffice/internal/messaging/kafka"
)

type fakeEmployeeRepository struct {
	withTxFn               func(tx *sql.Tx) employee.Repository
	createFn               func(ctx context.Context, empl *employee.Employee) error
	findAllByCompanyFn     func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findOptionsByCompanyFn func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*employee.Employee, error)
	findByIDFn             func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn               func(ctx context.Context, empl *employee.Employee) error
	deleteFn               func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindOptionsByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findOptionsByCompanyFn != nil {
		return f.findOptionsByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, companyID, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, companyID, counterType)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success with auto-generated employee number", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		var created *employee.Employee
		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, empl *employee.Employee) error {
				created = empl
				return nil
			},
		}
		counterRepo := &fakeCounterRepository{
			getNextValueFn: func(ctx context.Context, gotCompany, counterType string) (int64, error) {
				assert.Equal(t, companyID, gotCompany)
				assert.Equal(t, "employee_number", counterType)
				return 7, nil
			},
		}
		var queued *kafka.OutboxEvent
		outbox := &fakeOutboxRepository{
			createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
				queued = &event
				return nil
			},
		}

		svc := employee.NewServiceWithOutbox(db, repo, counterRepo, outbox, nil)

		resp, err := svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName: "Jane Smith",
			Email:    "jane@example.com",
			HireDate: "2026-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000007", resp.EmployeeNumber)
		assert.Equal(t, "active", resp.EmploymentStatus)
		assert.NotNil(t, created)
		assert.NotNil(t, queued)
		assert.Equal(t, "employee", queued.AggregateType)
		assert.Equal(t, kafka.OutboxStatusPending, queued.Status)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid hire date", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := employee.NewService(db, &fakeEmployeeRepository{}, &fakeCounterRepository{}, nil)

		_, err = svc.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName: "Jane Smith",
			Email:    "jane@example.com",
			HireDate: "15-01-2026",
		})

		assert.Error(t, err)
	})

	t.Run("invalid company id", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := employee.NewService(db, &fakeEmployeeRepository{}, &fakeCounterRepository{}, nil)

		_, err = svc.Create(ctx, "not-a-uuid", employee.CreateEmployeeRequest{
			FullName: "Jane Smith",
			Email:    "jane@example.com",
			HireDate: "2026-01-15",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidCompanyID)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("not found maps to app error", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, gotCompany, id string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := employee.NewService(db, repo, &fakeCounterRepository{}, nil)

		_, err = svc.GetByID(ctx, companyID, uuid.New().String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("success", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		repo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, gotCompany, gotID string) (*employee.Employee, error) {
				return &employee.Employee{
					ID:        id,
					CompanyID: uuid.MustParse(companyID),
					FullName:  "John Doe",
					Email:     "john@example.com",
				}, nil
			},
		}
		svc := employee.NewService(db, repo, &fakeCounterRepository{}, nil)

		resp, err := svc.GetByID(ctx, companyID, id.String())
		assert.NoError(t, err)
		assert.Equal(t, "John Doe", resp.FullName)
		assert.Equal(t, companyID, resp.CompanyID)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	calls := 0
	repo := &fakeEmployeeRepository{
		findOptionsByCompanyFn: func(ctx context.Context, gotCompany string) ([]employee.Employee, error) {
			calls++
			return []employee.Employee{
				{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), FullName: "A"},
				{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), FullName: "B"},
			}, nil
		},
	}
	svc := employee.NewService(db, repo, &fakeCounterRepository{}, nil)

	resp, err := svc.GetOptions(ctx, companyID)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, 1, calls)
}
