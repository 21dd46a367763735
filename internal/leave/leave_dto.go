package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`

	// unpaid only
	ApprovalResolution *string `json:"approval_resolution"`

	// medical only
	Diagnosis           *string `json:"diagnosis"`
	CertificateRequired *bool   `json:"certificate_required"`
}

// UpdateLeaveRequest edits dates/reason/resolution/diagnosis. Permitted only
// while the record is still in its edit window.
type UpdateLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`

	ApprovalResolution *string `json:"approval_resolution"`

	Diagnosis           *string `json:"diagnosis"`
	CertificateRequired *bool   `json:"certificate_required"`
}

type ReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve revision reject"`
	Note     string `json:"note"`
}

type OrderResponse struct {
	ID         string  `json:"id"`
	Number     string  `json:"number"`
	PDFURL     *string `json:"pdf_url,omitempty"`
	UploadedAt *string `json:"uploaded_at,omitempty"`
}

type LeaveResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DaysCount    int    `json:"days_count"`
	Reason       string `json:"reason,omitempty"`
	Status       string `json:"status"`
	IsCompleted  bool   `json:"is_completed"`
	Editable     bool   `json:"editable"`

	ApplicationPDFURL       *string `json:"application_pdf_url,omitempty"`
	ApplicationUploadedAt   *string `json:"application_uploaded_at,omitempty"`
	ApplicationReviewStatus *string `json:"application_review_status,omitempty"`
	ApplicationReviewNote   *string `json:"application_review_note,omitempty"`
	ApplicationReviewedAt   *string `json:"application_reviewed_at,omitempty"`
	ApplicationReviewedBy   *string `json:"application_reviewed_by,omitempty"`

	Order *OrderResponse `json:"order,omitempty"`

	ApprovalResolution *string `json:"approval_resolution,omitempty"`

	Diagnosis             *string `json:"diagnosis,omitempty"`
	CertificateRequired   *bool   `json:"certificate_required,omitempty"`
	CertificatePDFURL     *string `json:"certificate_pdf_url,omitempty"`
	CertificateUploadedAt *string `json:"certificate_uploaded_at,omitempty"`

	CreatedBy string `json:"created_by"`
}
