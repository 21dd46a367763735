package leave

import (
	"strings"
	"time"

	"go-backoffice/internal/shared/apperror"
)

const dateLayout = "2006-01-02"

// FieldError is a validation failure scoped to a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// FieldViolations lets the HTTP layer surface each failure against its field.
func (e FieldErrors) FieldViolations() []apperror.FieldViolation {
	out := make([]apperror.FieldViolation, len(e))
	for i, fe := range e {
		out[i] = apperror.FieldViolation{Field: fe.Field, Message: fe.Message}
	}
	return out
}

// FieldInput carries the raw create/edit fields prior to any remote call.
// Dates are YYYY-MM-DD strings; empty means absent.
type FieldInput struct {
	LeaveType LeaveType
	StartDate string
	EndDate   string
	Reason    string
}

// ValidateCreate applies the creation schema for the given subtype. The
// start-date floor (today or later) applies on create only.
func ValidateCreate(in FieldInput, today time.Time) FieldErrors {
	return validate(in, &today)
}

// ValidateEdit applies the edit schema: same rules as create minus the
// start-date floor, so already-past records can be corrected.
func ValidateEdit(in FieldInput) FieldErrors {
	return validate(in, nil)
}

func validate(in FieldInput, floor *time.Time) FieldErrors {
	var errs FieldErrors

	start, startOK := checkDate(&errs, "start_date", in.StartDate)
	end, endOK := checkDate(&errs, "end_date", in.EndDate)

	if startOK && floor != nil {
		day := floor.Truncate(24 * time.Hour)
		if start.Before(day) {
			errs = append(errs, FieldError{Field: "start_date", Message: "must be today or later"})
		}
	}

	// Cross-field rule only once both dates parsed.
	if startOK && endOK && !end.After(start) {
		errs = append(errs, FieldError{Field: "end_date", Message: "must be after start_date"})
	}

	if in.LeaveType == LeaveTypeUnpaid && strings.TrimSpace(in.Reason) == "" {
		errs = append(errs, FieldError{Field: "reason", Message: "is required for unpaid leave"})
	}

	return errs
}

func checkDate(errs *FieldErrors, field, value string) (time.Time, bool) {
	if value == "" {
		*errs = append(*errs, FieldError{Field: field, Message: "is required"})
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		*errs = append(*errs, FieldError{Field: field, Message: "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
