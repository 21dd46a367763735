package timesheet

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Source    string   `json:"source"`
	Notes     *string  `json:"notes"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
}

type EntryResponse struct {
	ID           string   `json:"id"`
	CompanyID    string   `json:"company_id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name,omitempty"`
	WorkDate     string   `json:"work_date"`
	ClockIn      string   `json:"clock_in"`
	ClockOut     *string  `json:"clock_out,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Status       string   `json:"status"`
	Source       string   `json:"source"`
	Notes        *string  `json:"notes,omitempty"`
}

// PeriodSummaryResponse aggregates one employee's entries inside a reporting
// period. WorkedMinutes only counts entries that have a clock-out.
type PeriodSummaryResponse struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	DaysPresent   int    `json:"days_present"`
	DaysLate      int    `json:"days_late"`
	OpenEntries   int    `json:"open_entries"`
	WorkedMinutes int64  `json:"worked_minutes"`
}
