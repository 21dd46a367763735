package timesheet

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"go-backoffice/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Entry) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Entry, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Entry, error)
	FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Entry, error)
	FindByCompanyAndPeriod(ctx context.Context, companyID string, from, to time.Time) ([]Entry, error)
	Update(ctx context.Context, e *Entry) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction so its queries
// commit or roll back together with the rest of the unit of work.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Entry, error) {
	var e Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&e).Error
	return &e, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		Order("work_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("work_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByCompanyAndPeriod(ctx context.Context, companyID string, from, to time.Time) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		Where("work_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("employee_id, work_date").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Save(e).Error
}
