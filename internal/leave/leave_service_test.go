package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-backoffice/internal/events"
	leaveerrors "go-backoffice/internal/leave/errors"
	"go-backoffice/internal/messaging/kafka"
)

type fakeRepo struct {
	withTxFn      func(tx *sql.Tx) Repository
	createFn      func(ctx context.Context, l *LeaveApplication) error
	findAllFn     func(ctx context.Context, companyID string, leaveType *LeaveType) ([]LeaveApplication, error)
	findByIDFn    func(ctx context.Context, companyID, id string) (*LeaveApplication, error)
	updateFn      func(ctx context.Context, l *LeaveApplication) error
	deleteFn      func(ctx context.Context, companyID, id string) error
	createOrderFn func(ctx context.Context, o *LeaveOrder) error
	updateOrderFn func(ctx context.Context, o *LeaveOrder) error
	belongsFn     func(ctx context.Context, companyID, employeeID string) (bool, error)
	overlapFn     func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	listElapsedFn func(ctx context.Context, before time.Time, limit int) ([]LeaveApplication, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepo) Create(ctx context.Context, l *LeaveApplication) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, leaveType *LeaveType) ([]LeaveApplication, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, companyID, leaveType)
	}
	return nil, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApplication, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Update(ctx context.Context, l *LeaveApplication) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeRepo) CreateOrder(ctx context.Context, o *LeaveOrder) error {
	if f.createOrderFn != nil {
		return f.createOrderFn(ctx, o)
	}
	return nil
}

func (f *fakeRepo) UpdateOrder(ctx context.Context, o *LeaveOrder) error {
	if f.updateOrderFn != nil {
		return f.updateOrderFn(ctx, o)
	}
	return nil
}

func (f *fakeRepo) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.belongsFn != nil {
		return f.belongsFn(ctx, companyID, employeeID)
	}
	return true, nil
}

func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.overlapFn != nil {
		return f.overlapFn(ctx, companyID, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

func (f *fakeRepo) ListElapsedActive(ctx context.Context, before time.Time, limit int) ([]LeaveApplication, error) {
	if f.listElapsedFn != nil {
		return f.listElapsedFn(ctx, before, limit)
	}
	return nil, nil
}

type fakeCounterRepo struct {
	nextFn func(ctx context.Context, companyID string, counterType string) (int64, error)
}

func (f *fakeCounterRepo) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	if f.nextFn != nil {
		return f.nextFn(ctx, companyID, counterType)
	}
	return 1, nil
}

type fakeOutboxRepo struct {
	events   []kafka.OutboxEvent
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fakeFileStore struct {
	saved  map[string][]byte
	saveFn func(ctx context.Context, key string, data []byte) (string, error)
}

func (f *fakeFileStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	if f.saveFn != nil {
		return f.saveFn(ctx, key, data)
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[key] = data
	return "/files/" + key, nil
}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func pdfUpload(size int) FileUpload {
	return FileUpload{
		Filename:    "document.pdf",
		ContentType: "application/pdf",
		Size:        int64(size),
		Data:        make([]byte, size),
	}
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(dateLayout)
}

func sampleLeave(leaveType LeaveType, status Status) *LeaveApplication {
	return &LeaveApplication{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		EmployeeID: uuid.New(),
		LeaveType:  leaveType,
		StartDate:  time.Now().UTC().AddDate(0, 0, 3),
		EndDate:    time.Now().UTC().AddDate(0, 0, 7),
		DaysCount:  5,
		Status:     status,
		CreatedBy:  uuid.New(),
	}
}

func TestService_Create_Annual(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var persisted *LeaveApplication
	repo := &fakeRepo{
		createFn: func(_ context.Context, l *LeaveApplication) error {
			persisted = l
			return nil
		},
	}
	outbox := &fakeOutboxRepo{}
	svc := NewServiceWithOutbox(db, repo, &fakeFileStore{}, &fakeCounterRepo{}, outbox)

	companyID := uuid.NewString()

	resp, err := svc.Create(context.Background(), companyID, uuid.NewString(), LeaveTypeAnnual, CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		StartDate:  futureDate(3),
		EndDate:    futureDate(5),
		Reason:     "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, string(StatusAppPending), resp.Status)
	assert.Equal(t, 3, resp.DaysCount)
	assert.True(t, resp.Editable)
	require.NotNil(t, persisted)
	assert.Equal(t, companyID, persisted.CompanyID.String())

	require.Len(t, outbox.events, 1)
	ev := outbox.events[0]
	assert.Equal(t, events.LeaveStatusChangedTopic, ev.Topic)
	assert.Equal(t, "leave.status_changed", ev.EventType)
	assert.Equal(t, persisted.ID.String(), ev.AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.Contains(t, string(ev.Payload), `"to_status":"app_pending"`)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_UnpaidRequiresReason(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, &fakeRepo{}, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), LeaveTypeUnpaid, CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		StartDate:  futureDate(3),
		EndDate:    futureDate(5),
		Reason:     "   ",
	})

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "reason", fieldErrs[0].Field)
}

func TestService_Create_Overlap(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		overlapFn: func(context.Context, string, string, time.Time, time.Time, *string) (bool, error) {
			return true, nil
		},
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), LeaveTypeAnnual, CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		StartDate:  futureDate(3),
		EndDate:    futureDate(5),
	})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_EmployeeNotInCompany(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		belongsFn: func(context.Context, string, string) (bool, error) { return false, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), LeaveTypeAnnual, CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		StartDate:  futureDate(3),
		EndDate:    futureDate(5),
	})
	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCompany)
}

func TestService_Create_InvalidIDs(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, &fakeRepo{}, &fakeFileStore{}, &fakeCounterRepo{})
	ctx := context.Background()

	req := CreateLeaveRequest{EmployeeID: uuid.NewString(), StartDate: futureDate(3), EndDate: futureDate(5)}

	_, err := svc.Create(ctx, "not-a-uuid", uuid.NewString(), LeaveTypeAnnual, req)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidCompanyID)

	_, err = svc.Create(ctx, uuid.NewString(), "not-a-uuid", LeaveTypeAnnual, req)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidActorID)

	req.EmployeeID = "not-a-uuid"
	_, err = svc.Create(ctx, uuid.NewString(), uuid.NewString(), LeaveTypeAnnual, req)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
}

func TestService_UploadApplication(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeAnnual, StatusAppPending)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	files := &fakeFileStore{}
	outbox := &fakeOutboxRepo{}
	svc := NewServiceWithOutbox(db, repo, files, &fakeCounterRepo{}, outbox)

	resp, err := svc.UploadApplication(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), pdfUpload(128))
	require.NoError(t, err)

	assert.Equal(t, string(StatusAppReview), resp.Status)
	require.NotNil(t, resp.ApplicationReviewStatus)
	assert.Equal(t, string(ReviewStatusPending), *resp.ApplicationReviewStatus)
	assert.Contains(t, files.saved, fmt.Sprintf("leave/%s/application.pdf", l.ID))

	require.Len(t, outbox.events, 1)
	assert.Contains(t, string(outbox.events[0].Payload), `"from_status":"app_pending"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UploadApplication_RejectsNonPDF(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, &fakeRepo{}, &fakeFileStore{}, &fakeCounterRepo{})

	file := FileUpload{Filename: "document.docx", ContentType: "application/msword", Size: 10, Data: make([]byte, 10)}
	_, err := svc.UploadApplication(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString(), file)
	assert.ErrorIs(t, err, leaveerrors.ErrFileNotPDF)
}

func TestService_UploadApplication_RejectsOversized(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, &fakeRepo{}, &fakeFileStore{}, &fakeCounterRepo{})

	file := FileUpload{Filename: "document.pdf", ContentType: "application/pdf", Size: maxUploadSize + 1, Data: []byte("pdf")}
	_, err := svc.UploadApplication(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString(), file)
	assert.ErrorIs(t, err, leaveerrors.ErrFileTooLarge)
}

func TestService_Review_Approve(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeAnnual, StatusAppReview)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	reviewer := uuid.NewString()
	resp, err := svc.Review(context.Background(), l.CompanyID.String(), reviewer, l.ID.String(), DecisionApprove, "looks fine")
	require.NoError(t, err)

	assert.Equal(t, string(StatusAppApproved), resp.Status)
	require.NotNil(t, resp.ApplicationReviewStatus)
	assert.Equal(t, string(ReviewStatusApproved), *resp.ApplicationReviewStatus)
	// The note only matters when something is sent back.
	assert.Nil(t, resp.ApplicationReviewNote)
	require.NotNil(t, resp.ApplicationReviewedBy)
	assert.Equal(t, reviewer, *resp.ApplicationReviewedBy)
}

func TestService_Review_Revision(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeAnnual, StatusAppReview)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	resp, err := svc.Review(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), DecisionRevision, "dates clash with roster")
	require.NoError(t, err)

	assert.Equal(t, string(StatusAppPending), resp.Status)
	require.NotNil(t, resp.ApplicationReviewStatus)
	assert.Equal(t, string(ReviewStatusRevision), *resp.ApplicationReviewStatus)
	require.NotNil(t, resp.ApplicationReviewNote)
	assert.Equal(t, "dates clash with roster", *resp.ApplicationReviewNote)
}

func TestService_Review_Reject(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeAnnual, StatusAppReview)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	resp, err := svc.Review(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), DecisionReject, "")
	require.NoError(t, err)
	assert.Equal(t, string(StatusCancelled), resp.Status)
}

func TestService_Review_WrongState(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	l := sampleLeave(LeaveTypeAnnual, StatusAppPending)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.Review(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), DecisionApprove, "")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
}

func TestService_Review_InvalidDecision(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, &fakeRepo{}, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.Review(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString(), ReviewDecision("escalate"), "")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDecision)
}

func TestService_Update_BlockedAfterReview(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	l := sampleLeave(LeaveTypeAnnual, StatusAppReview)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.Update(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), UpdateLeaveRequest{
		StartDate: futureDate(3),
		EndDate:   futureDate(5),
	})
	assert.ErrorIs(t, err, leaveerrors.ErrNotEditable)
}

func TestService_Update_PastDatesAllowed(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeAnnual, StatusAppPending)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	resp, err := svc.Update(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), UpdateLeaveRequest{
		StartDate: "2024-01-08",
		EndDate:   "2024-01-12",
		Reason:    "corrected period",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", resp.StartDate)
	assert.Equal(t, 5, resp.DaysCount)
}

func TestService_Delete_BlockedAfterReview(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	l := sampleLeave(LeaveTypeAnnual, StatusActive)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	err := svc.Delete(context.Background(), l.CompanyID.String(), l.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrNotEditable)
}

func TestService_CreateOrder(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeAnnual, StatusAppApproved)
	var created *LeaveOrder
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
		createOrderFn: func(_ context.Context, o *LeaveOrder) error {
			created = o
			return nil
		},
	}
	counters := &fakeCounterRepo{
		nextFn: func(_ context.Context, _ string, counterType string) (int64, error) {
			assert.Equal(t, "leave_order", counterType)
			return 7, nil
		},
	}
	svc := NewService(db, repo, &fakeFileStore{}, counters)

	resp, err := svc.CreateOrder(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String())
	require.NoError(t, err)

	assert.Equal(t, string(StatusOrderPending), resp.Status)
	require.NotNil(t, created)
	assert.Equal(t, fmt.Sprintf("LO-%d-0007", time.Now().UTC().Year()), created.Number)
	require.NotNil(t, resp.Order)
	assert.Equal(t, created.Number, resp.Order.Number)
}

func TestService_CreateOrder_AlreadyExists(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	l := sampleLeave(LeaveTypeAnnual, StatusAppApproved)
	l.Order = &LeaveOrder{ID: uuid.New(), LeaveID: l.ID, Number: "LO-2025-0001", CreatedBy: l.CreatedBy}
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.CreateOrder(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrOrderExists)
}

func TestService_UploadOrder_MedicalCreatesOrderOnTheFly(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeMedical, StatusOrderPending)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	files := &fakeFileStore{}
	svc := NewService(db, repo, files, &fakeCounterRepo{})

	resp, err := svc.UploadOrder(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), pdfUpload(64))
	require.NoError(t, err)

	assert.Equal(t, string(StatusOrderUploaded), resp.Status)
	require.NotNil(t, resp.Order)
	require.NotNil(t, resp.Order.PDFURL)
	assert.Contains(t, files.saved, fmt.Sprintf("leave/%s/order.pdf", l.ID))
}

func TestService_UploadOrder_MissingOrder(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	l := sampleLeave(LeaveTypeAnnual, StatusOrderPending)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.UploadOrder(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), pdfUpload(64))
	assert.ErrorIs(t, err, leaveerrors.ErrOrderMissing)
}

func TestService_Complete(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeAnnual, StatusOrderUploaded)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	resp, err := svc.Complete(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String())
	require.NoError(t, err)
	assert.Equal(t, string(StatusActive), resp.Status)
}

func TestService_UploadCertificate(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	l := sampleLeave(LeaveTypeMedical, StatusActive)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	files := &fakeFileStore{}
	svc := NewService(db, repo, files, &fakeCounterRepo{})

	resp, err := svc.UploadCertificate(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), pdfUpload(64))
	require.NoError(t, err)

	// The certificate never moves the status; it only attaches evidence.
	assert.Equal(t, string(StatusActive), resp.Status)
	require.NotNil(t, resp.CertificatePDFURL)
	assert.Contains(t, files.saved, fmt.Sprintf("leave/%s/certificate.pdf", l.ID))
}

func TestService_UploadCertificate_NonMedical(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	l := sampleLeave(LeaveTypeAnnual, StatusActive)
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.UploadCertificate(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), pdfUpload(64))
	assert.ErrorIs(t, err, leaveerrors.ErrCertificateNotApplicable)
}

func TestService_UploadCertificate_AlreadyUploaded(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	l := sampleLeave(LeaveTypeMedical, StatusActive)
	url := "/files/leave/x/certificate.pdf"
	l.CertificatePDFURL = &url
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.UploadCertificate(context.Background(), l.CompanyID.String(), uuid.NewString(), l.ID.String(), pdfUpload(64))
	assert.ErrorIs(t, err, leaveerrors.ErrCertificateExists)
}

func TestService_ApplicationDocument(t *testing.T) {
	db, _ := newTestDB(t)

	l := sampleLeave(LeaveTypeUnpaid, StatusAppPending)
	l.Reason = "sabbatical"
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	pdf, filename, err := svc.ApplicationDocument(context.Background(), l.CompanyID.String(), l.ID.String())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("leave-application-%s.pdf", l.ID), filename)
	require.True(t, len(pdf) > 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestService_ApplicationDocument_SignedCopyBlocks(t *testing.T) {
	db, _ := newTestDB(t)

	l := sampleLeave(LeaveTypeAnnual, StatusAppReview)
	url := "/files/leave/x/application.pdf"
	pending := ReviewStatusPending
	l.ApplicationPDFURL = &url
	l.ApplicationReviewStatus = &pending
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, _, err := svc.ApplicationDocument(context.Background(), l.CompanyID.String(), l.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)

	// Sent back for revision: the signed copy is stale, regeneration reopens.
	revision := ReviewStatusRevision
	l.Status = StatusAppPending
	l.ApplicationReviewStatus = &revision

	_, _, err = svc.ApplicationDocument(context.Background(), l.CompanyID.String(), l.ID.String())
	assert.NoError(t, err)
}

func TestService_OrderDocument_BlockedOnceUploaded(t *testing.T) {
	db, _ := newTestDB(t)

	l := sampleLeave(LeaveTypeAnnual, StatusOrderUploaded)
	url := "/files/leave/x/order.pdf"
	l.Order = &LeaveOrder{ID: uuid.New(), LeaveID: l.ID, Number: "LO-2025-0004", PDFURL: &url, CreatedBy: l.CreatedBy}
	repo := &fakeRepo{
		findByIDFn: func(context.Context, string, string) (*LeaveApplication, error) { return l, nil },
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	_, _, err := svc.OrderDocument(context.Background(), l.CompanyID.String(), l.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
}

func TestService_CompleteElapsed(t *testing.T) {
	db, mock := newTestDB(t)
	// One transaction per elapsed record.
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	a := sampleLeave(LeaveTypeAnnual, StatusActive)
	b := sampleLeave(LeaveTypeMedical, StatusActive)
	byID := map[string]*LeaveApplication{
		a.ID.String(): a,
		b.ID.String(): b,
	}

	repo := &fakeRepo{
		listElapsedFn: func(_ context.Context, _ time.Time, limit int) ([]LeaveApplication, error) {
			assert.Equal(t, 100, limit)
			return []LeaveApplication{*a, *b}, nil
		},
		findByIDFn: func(_ context.Context, _ string, id string) (*LeaveApplication, error) {
			l, ok := byID[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return l, nil
		},
	}
	outbox := &fakeOutboxRepo{}
	svc := NewServiceWithOutbox(db, repo, &fakeFileStore{}, &fakeCounterRepo{}, outbox)

	done, err := svc.CompleteElapsed(context.Background(), time.Now().UTC(), 100)
	require.NoError(t, err)
	assert.Equal(t, 2, done)

	assert.Equal(t, StatusCompleted, a.Status)
	assert.True(t, a.IsCompleted)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.True(t, b.IsCompleted)

	require.Len(t, outbox.events, 2)
	assert.Contains(t, string(outbox.events[0].Payload), `"to_status":"completed"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CompleteElapsed_SkipsFailures(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	broken := sampleLeave(LeaveTypeAnnual, StatusActive)
	fine := sampleLeave(LeaveTypeAnnual, StatusActive)

	repo := &fakeRepo{
		listElapsedFn: func(context.Context, time.Time, int) ([]LeaveApplication, error) {
			return []LeaveApplication{*broken, *fine}, nil
		},
		findByIDFn: func(_ context.Context, _ string, id string) (*LeaveApplication, error) {
			if id == broken.ID.String() {
				return nil, errors.New("connection reset")
			}
			return fine, nil
		},
	}
	svc := NewService(db, repo, &fakeFileStore{}, &fakeCounterRepo{})

	done, err := svc.CompleteElapsed(context.Background(), time.Now().UTC(), 50)
	require.NoError(t, err)
	assert.Equal(t, 1, done)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, &fakeRepo{}, &fakeFileStore{}, &fakeCounterRepo{})

	_, err := svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}
