package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveApplication) error
	FindAllByCompany(ctx context.Context, companyID string, leaveType *LeaveType) ([]LeaveApplication, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApplication, error)
	Update(ctx context.Context, l *LeaveApplication) error
	Delete(ctx context.Context, companyID, id string) error
	CreateOrder(ctx context.Context, o *LeaveOrder) error
	UpdateOrder(ctx context.Context, o *LeaveOrder) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	ListElapsedActive(ctx context.Context, before time.Time, limit int) ([]LeaveApplication, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction, the same way
// gorm's own Begin swaps the session ConnPool. Every query issued through the
// returned repository joins that transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, l *LeaveApplication) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, leaveType *LeaveType) ([]LeaveApplication, error) {
	q := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Employee").
		Where("company_id = ?", companyID)
	if leaveType != nil {
		q = q.Where("leave_type = ?", *leaveType)
	}

	var apps []LeaveApplication
	err := q.Order("start_date DESC").Find(&apps).Error
	return apps, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Employee").
		Where("company_id = ?", companyID).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveApplication) error {
	return r.db.WithContext(ctx).Omit("Order", "Employee").Save(l).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&LeaveApplication{}, "id = ?", id).Error
}

func (r *repository) CreateOrder(ctx context.Context, o *LeaveOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) UpdateOrder(ctx context.Context, o *LeaveOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveApplication{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusCancelled).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) ListElapsedActive(ctx context.Context, before time.Time, limit int) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Where("end_date < ?", before).
		Order("end_date ASC").
		Limit(limit).
		Find(&apps).Error
	return apps, err
}
