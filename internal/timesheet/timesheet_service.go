package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/shared/apperror"
)

const (
	statusPresent = "present"
	statusLate    = "late"

	sourceManual = "manual"

	// Clock-ins after this time of day are marked late.
	lateHour   = 9
	lateMinute = 15
)

var (
	ErrAlreadyClockedIn  = apperror.New(apperror.CodeConflict, "already clocked in today", http.StatusConflict)
	ErrAlreadyClockedOut = apperror.New(apperror.CodeConflict, "already clocked out today", http.StatusConflict)
	ErrNoOpenEntry       = apperror.New(apperror.CodeNotFound, "no clock-in found for today", http.StatusNotFound)
	ErrInvalidPeriod     = apperror.New(apperror.CodeInvalidInput, "period start must not be after period end", http.StatusBadRequest)
)

type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (EntryResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (EntryResponse, error)
	GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]EntryResponse, error)
	PeriodSummary(ctx context.Context, companyID string, from, to time.Time) ([]PeriodSummaryResponse, error)
	ExportPeriod(ctx context.Context, companyID string, from, to time.Time) ([]byte, string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (EntryResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return EntryResponse{}, apperror.New(apperror.CodeInvalidInput, "invalid company id", http.StatusBadRequest)
	}
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return EntryResponse{}, apperror.New(apperror.CodeInvalidInput, "invalid employee id", http.StatusBadRequest)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EntryResponse{}, err
	}
	if err == nil && existing != nil {
		return EntryResponse{}, ErrAlreadyClockedIn
	}

	status := statusPresent
	if now.Hour() > lateHour || (now.Hour() == lateHour && now.Minute() > lateMinute) {
		status = statusLate
	}

	source := req.Source
	if source == "" {
		source = sourceManual
	}

	row := &Entry{
		ID:         uuid.New(),
		CompanyID:  cid,
		EmployeeID: eid,
		WorkDate:   today,
		ClockIn:    now,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Status:     status,
		Source:     source,
		Notes:      req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return EntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	s.logger.Info("clock in recorded",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (EntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntryResponse{}, ErrNoOpenEntry
		}
		return EntryResponse{}, err
	}
	if row.ClockOut != nil {
		return EntryResponse{}, ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return EntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	s.logger.Info("clock out recorded",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]EntryResponse, error) {
	var (
		rows []Entry
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, apperror.New(apperror.CodeInvalidInput, "invalid actor id", http.StatusBadRequest)
		}
		rows, err = s.repo.FindAllByCompanyAndEmployee(ctx, companyID, actorID)
	}
	if err != nil {
		return nil, err
	}
	res := make([]EntryResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) PeriodSummary(ctx context.Context, companyID string, from, to time.Time) ([]PeriodSummaryResponse, error) {
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}
	rows, err := s.repo.FindByCompanyAndPeriod(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]*PeriodSummaryResponse)
	for _, r := range rows {
		key := r.EmployeeID.String()
		sum, ok := byEmployee[key]
		if !ok {
			sum = &PeriodSummaryResponse{EmployeeID: key}
			if r.Employee != nil {
				sum.EmployeeName = r.Employee.FullName
			}
			byEmployee[key] = sum
		}
		sum.DaysPresent++
		if r.Status == statusLate {
			sum.DaysLate++
		}
		if r.ClockOut == nil {
			sum.OpenEntries++
			continue
		}
		sum.WorkedMinutes += int64(r.ClockOut.Sub(r.ClockIn) / time.Minute)
	}

	res := make([]PeriodSummaryResponse, 0, len(byEmployee))
	for _, sum := range byEmployee {
		res = append(res, *sum)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].EmployeeID < res[j].EmployeeID })
	return res, nil
}

// ExportPeriod renders every entry in the period plus a per-employee summary
// sheet as an xlsx workbook.
func (s *service) ExportPeriod(ctx context.Context, companyID string, from, to time.Time) ([]byte, string, error) {
	if from.After(to) {
		return nil, "", ErrInvalidPeriod
	}
	rows, err := s.repo.FindByCompanyAndPeriod(ctx, companyID, from, to)
	if err != nil {
		return nil, "", err
	}
	summaries, err := s.PeriodSummary(ctx, companyID, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	entrySheet := "Entries"
	if err := f.SetSheetName("Sheet1", entrySheet); err != nil {
		return nil, "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}

	entryHeaders := []string{"Employee", "Date", "Clock In", "Clock Out", "Status", "Source", "Notes"}
	writeHeader(f, entrySheet, entryHeaders, headerStyle)
	for i, r := range rows {
		name := r.EmployeeID.String()
		if r.Employee != nil && r.Employee.FullName != "" {
			name = r.Employee.FullName
		}
		clockOut := ""
		if r.ClockOut != nil {
			clockOut = r.ClockOut.Format(time.RFC3339)
		}
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		writeRow(f, entrySheet, i+2, []any{
			name,
			r.WorkDate.Format("2006-01-02"),
			r.ClockIn.Format(time.RFC3339),
			clockOut,
			r.Status,
			r.Source,
			notes,
		})
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, "", err
	}
	summaryHeaders := []string{"Employee", "Days Present", "Days Late", "Open Entries", "Worked Minutes"}
	writeHeader(f, summarySheet, summaryHeaders, headerStyle)
	for i, sum := range summaries {
		name := sum.EmployeeName
		if name == "" {
			name = sum.EmployeeID
		}
		writeRow(f, summarySheet, i+2, []any{
			name,
			sum.DaysPresent,
			sum.DaysLate,
			sum.OpenEntries,
			sum.WorkedMinutes,
		})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("timesheet_%s_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func mapToResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:         e.ID.String(),
		CompanyID:  e.CompanyID.String(),
		EmployeeID: e.EmployeeID.String(),
		WorkDate:   e.WorkDate.Format("2006-01-02"),
		ClockIn:    e.ClockIn.Format(time.RFC3339),
		Latitude:   e.Latitude,
		Longitude:  e.Longitude,
		Status:     e.Status,
		Source:     e.Source,
		Notes:      e.Notes,
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
	}
	if e.ClockOut != nil {
		v := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
