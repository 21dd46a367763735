package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	JobTitle         string `json:"job_title"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmployeeNumber   string `json:"employee_number"`
	EmploymentStatus string `json:"employment_status"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	JobTitle         string `json:"job_title"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmployeeNumber   string `json:"employee_number"`
	EmploymentStatus string `json:"employment_status"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	JobTitle         string `json:"job_title,omitempty"`
	HireDate         string `json:"hire_date"`
	EmployeeNumber   string `json:"employee_number"`
	EmploymentStatus string `json:"employment_status"`
	CompanyID        string `json:"company_id"`
}
