package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-backoffice/internal/employee"
)

// LeaveType tags the three application variants. Immutable after creation.
type LeaveType string

const (
	LeaveTypeAnnual  LeaveType = "annual"
	LeaveTypeUnpaid  LeaveType = "unpaid"
	LeaveTypeMedical LeaveType = "medical"
)

func ParseLeaveType(v string) (LeaveType, bool) {
	switch LeaveType(v) {
	case LeaveTypeAnnual, LeaveTypeUnpaid, LeaveTypeMedical:
		return LeaveType(v), true
	}
	return "", false
}

// ReviewStatus is the adjudication outcome recorded on the application document.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
	ReviewStatusRevision ReviewStatus = "revision"
)

// ApprovalResolution is advisory text attached to a generated unpaid-leave
// application document. Optional before submission.
type ApprovalResolution string

const (
	ResolutionApproved    ApprovalResolution = "approved"
	ResolutionRecommend   ApprovalResolution = "recommend"
	ResolutionNoObjection ApprovalResolution = "no_objection"
)

func ParseApprovalResolution(v string) (ApprovalResolution, bool) {
	switch ApprovalResolution(v) {
	case ResolutionApproved, ResolutionRecommend, ResolutionNoObjection:
		return ApprovalResolution(v), true
	}
	return "", false
}

// LeaveApplication is the shared envelope for all three leave variants.
// Subtype-only columns stay NULL for the variants that do not use them.
type LeaveApplication struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_apps_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_apps_employee"`
	Employee   *employee.Employee

	LeaveType LeaveType `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	DaysCount int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status      Status `gorm:"type:varchar(20);not null;default:'app_pending';index:idx_leave_apps_company_status"`
	IsCompleted bool   `gorm:"not null;default:false"`

	ApplicationPDFURL       *string
	ApplicationUploadedAt   *time.Time
	ApplicationReviewStatus *ReviewStatus `gorm:"type:varchar(20)"`
	ApplicationReviewNote   *string       `gorm:"type:text"`
	ApplicationReviewedAt   *time.Time
	ApplicationReviewedBy   *uuid.UUID `gorm:"type:uuid"`

	Order *LeaveOrder `gorm:"foreignKey:LeaveID"`

	// unpaid only
	ApprovalResolution *ApprovalResolution `gorm:"type:varchar(20)"`

	// medical only
	Diagnosis             *string `gorm:"type:text"`
	CertificateRequired   bool    `gorm:"not null;default:true"`
	CertificatePDFURL     *string
	CertificateUploadedAt *time.Time

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_apps_deleted_at"`
}

func (LeaveApplication) TableName() string { return "leave_applications" }

// LeaveOrder is the formal approval order generated after application approval.
// Its upload state lives here, not on the leave record.
type LeaveOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Number     string    `gorm:"type:varchar(40);not null"`
	PDFURL     *string
	UploadedAt *time.Time
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (LeaveOrder) TableName() string { return "leave_orders" }
