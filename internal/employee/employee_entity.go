package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"type:uuid;index"`
	EmployeeNumber   string    `gorm:"type:varchar(30);uniqueIndex:uq_employee_number"`
	FullName         string
	Email            string `gorm:"uniqueIndex:uq_employee_email"`
	Phone            string
	JobTitle         string
	HireDate         time.Time
	EmploymentStatus string `gorm:"type:varchar(30);default:'active'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
