package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/events"
	leaveerrors "go-backoffice/internal/leave/errors"
	"go-backoffice/internal/messaging/kafka"
	"go-backoffice/internal/shared/contextutil"
	"go-backoffice/internal/shared/counter"
	"go-backoffice/internal/shared/storage"
)

// Upload limit enforced before anything touches the store.
const maxUploadSize = 10 << 20

// FileUpload is a single PDF received from the uploader component.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

type Service interface {
	Create(ctx context.Context, companyID, actorID string, leaveType LeaveType, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string, leaveType *LeaveType) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	Actions(ctx context.Context, companyID, id string, busy BusyFlags) ([]ActionItem, error)

	ApplicationDocument(ctx context.Context, companyID, id string) ([]byte, string, error)
	UploadApplication(ctx context.Context, companyID, actorID, id string, file FileUpload) (LeaveResponse, error)
	Review(ctx context.Context, companyID, actorID, id string, decision ReviewDecision, note string) (LeaveResponse, error)

	CreateOrder(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	OrderDocument(ctx context.Context, companyID, id string) ([]byte, string, error)
	UploadOrder(ctx context.Context, companyID, actorID, id string, file FileUpload) (LeaveResponse, error)

	UploadCertificate(ctx context.Context, companyID, actorID, id string, file FileUpload) (LeaveResponse, error)
	Complete(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)

	CompleteElapsed(ctx context.Context, now time.Time, limit int) (int, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	files    storage.FileStore
	counters counter.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, files storage.FileStore, counters counter.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, files, counters, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	files storage.FileStore,
	counters counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		files:    files,
		counters: counters,
		outbox:   outboxRepo,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, leaveType LeaveType, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("leave_type", string(leaveType)),
		zap.String("employee_id", req.EmployeeID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	if errs := ValidateCreate(FieldInput{
		LeaveType: leaveType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}, time.Now().UTC()); len(errs) > 0 {
		s.logger.Warn("create leave validation failed", zap.Error(errs))
		return LeaveResponse{}, errs
	}
	startDate, _ := time.Parse(dateLayout, req.StartDate)
	endDate, _ := time.Parse(dateLayout, req.EndDate)

	var resolution *ApprovalResolution
	if leaveType == LeaveTypeUnpaid && req.ApprovalResolution != nil && *req.ApprovalResolution != "" {
		r, ok := ParseApprovalResolution(*req.ApprovalResolution)
		if !ok {
			return LeaveResponse{}, leaveerrors.ErrInvalidResolution
		}
		resolution = &r
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave employee company check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveApplication{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		DaysCount:  daysBetween(startDate, endDate),
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusAppPending,
		CreatedBy:  createdByUUID,
	}
	switch leaveType {
	case LeaveTypeUnpaid:
		l.ApprovalResolution = resolution
	case LeaveTypeMedical:
		l.Diagnosis = req.Diagnosis
		l.CertificateRequired = true
		if req.CertificateRequired != nil {
			l.CertificateRequired = *req.CertificateRequired
		}
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.queueStatusEvent(ctx, tx, l, "", StatusAppPending, actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("leave_type", string(leaveType)),
		zap.String("company_id", companyID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, leaveType *LeaveType) ([]LeaveResponse, error) {
	apps, err := s.repo.FindAllByCompany(ctx, companyID, leaveType)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(apps), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.find(ctx, qtx, companyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !EditAllowed(l.Status) {
		return LeaveResponse{}, leaveerrors.ErrNotEditable
	}

	if errs := ValidateEdit(FieldInput{
		LeaveType: l.LeaveType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}); len(errs) > 0 {
		s.logger.Warn("update leave validation failed", zap.Error(errs))
		return LeaveResponse{}, errs
	}
	startDate, _ := time.Parse(dateLayout, req.StartDate)
	endDate, _ := time.Parse(dateLayout, req.EndDate)

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, l.EmployeeID.String(), startDate, endDate, &id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l.StartDate = startDate
	l.EndDate = endDate
	l.DaysCount = daysBetween(startDate, endDate)
	l.Reason = strings.TrimSpace(req.Reason)

	switch l.LeaveType {
	case LeaveTypeUnpaid:
		l.ApprovalResolution = nil
		if req.ApprovalResolution != nil && *req.ApprovalResolution != "" {
			r, ok := ParseApprovalResolution(*req.ApprovalResolution)
			if !ok {
				return LeaveResponse{}, leaveerrors.ErrInvalidResolution
			}
			l.ApprovalResolution = &r
		}
	case LeaveTypeMedical:
		l.Diagnosis = req.Diagnosis
		if req.CertificateRequired != nil {
			l.CertificateRequired = *req.CertificateRequired
		}
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.find(ctx, qtx, companyID, id)
	if err != nil {
		return err
	}
	// Deletion mirrors the edit window: forbidden once review has started.
	if !EditAllowed(l.Status) {
		return leaveerrors.ErrNotEditable
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Actions(ctx context.Context, companyID, id string, busy BusyFlags) ([]ActionItem, error) {
	l, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return nil, err
	}
	return ResolveActions(ActionInputFor(l), busy), nil
}

func (s *service) ApplicationDocument(ctx context.Context, companyID, id string) ([]byte, string, error) {
	l, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return nil, "", err
	}

	in := ActionInputFor(l)
	switch l.Status {
	case StatusAppPending, StatusAppReview, StatusAppApproved:
	default:
		return nil, "", leaveerrors.ErrInvalidStatusTransition
	}
	// A signed copy blocks regeneration unless it was sent back for revision.
	if in.HasSignedApplication && in.ReviewStatus != ReviewStatusRevision {
		return nil, "", leaveerrors.ErrInvalidStatusTransition
	}

	pdf, err := buildDocumentPDF(applicationDocumentLines(l))
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("leave-application-%s.pdf", l.ID), nil
}

func (s *service) UploadApplication(ctx context.Context, companyID, actorID, id string, file FileUpload) (LeaveResponse, error) {
	if err := validateUpload(file); err != nil {
		return LeaveResponse{}, err
	}

	return s.transition(ctx, companyID, actorID, id, TriggerUploadApplication, func(ctx context.Context, l *LeaveApplication, qtx Repository) error {
		url, err := s.files.Save(ctx, fmt.Sprintf("leave/%s/application.pdf", l.ID), file.Data)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		pending := ReviewStatusPending
		l.ApplicationPDFURL = &url
		l.ApplicationUploadedAt = &now
		l.ApplicationReviewStatus = &pending
		return nil
	})
}

func (s *service) Review(ctx context.Context, companyID, actorID, id string, decision ReviewDecision, note string) (LeaveResponse, error) {
	reviewer, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, ok := ParseReviewDecision(string(decision)); !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}
	// The note never gates the transition; it is advisory and valid empty.
	if decision == DecisionApprove {
		note = ""
	}

	return s.transition(ctx, companyID, actorID, id, decision.trigger(), nil, func(l *LeaveApplication) {
		stampReview(l, decision, note, reviewer, time.Now().UTC())
	})
}

func (s *service) CreateOrder(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	creator, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	return s.transition(ctx, companyID, actorID, id, TriggerCreateOrder, func(ctx context.Context, l *LeaveApplication, qtx Repository) error {
		if l.Order != nil {
			return leaveerrors.ErrOrderExists
		}
		order, err := s.newOrder(ctx, companyID, l.ID, creator)
		if err != nil {
			return err
		}
		if err := qtx.CreateOrder(ctx, order); err != nil {
			return err
		}
		l.Order = order
		return nil
	})
}

// newOrder allocates the next per-company order number. The counter lives
// outside the surrounding transaction, so numbers may have gaps but never
// collide.
func (s *service) newOrder(ctx context.Context, companyID string, leaveID, creator uuid.UUID) (*LeaveOrder, error) {
	seq, err := s.counters.GetNextValue(ctx, companyID, "leave_order")
	if err != nil {
		return nil, err
	}
	return &LeaveOrder{
		ID:        uuid.New(),
		LeaveID:   leaveID,
		Number:    fmt.Sprintf("LO-%d-%04d", time.Now().UTC().Year(), seq),
		CreatedBy: creator,
	}, nil
}

func (s *service) OrderDocument(ctx context.Context, companyID, id string) ([]byte, string, error) {
	l, err := s.find(ctx, s.repo, companyID, id)
	if err != nil {
		return nil, "", err
	}

	switch l.Status {
	case StatusOrderPending, StatusOrderUploaded, StatusActive:
	default:
		return nil, "", leaveerrors.ErrInvalidStatusTransition
	}
	if ActionInputFor(l).HasOrderPDF {
		return nil, "", leaveerrors.ErrInvalidStatusTransition
	}

	pdf, err := buildDocumentPDF(orderDocumentLines(l))
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("leave-order-%s.pdf", l.ID), nil
}

func (s *service) UploadOrder(ctx context.Context, companyID, actorID, id string, file FileUpload) (LeaveResponse, error) {
	creator, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if err := validateUpload(file); err != nil {
		return LeaveResponse{}, err
	}

	return s.transition(ctx, companyID, actorID, id, TriggerUploadOrder, func(ctx context.Context, l *LeaveApplication, qtx Repository) error {
		if l.Order == nil {
			// Medical orders may be issued externally; the upload creates the
			// sub-record on the fly. Everyone else must create the order first
			// so the upload has an id to address.
			if l.LeaveType != LeaveTypeMedical {
				return leaveerrors.ErrOrderMissing
			}
			order, err := s.newOrder(ctx, companyID, l.ID, creator)
			if err != nil {
				return err
			}
			if err := qtx.CreateOrder(ctx, order); err != nil {
				return err
			}
			l.Order = order
		}

		url, err := s.files.Save(ctx, fmt.Sprintf("leave/%s/order.pdf", l.ID), file.Data)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		l.Order.PDFURL = &url
		l.Order.UploadedAt = &now
		return qtx.UpdateOrder(ctx, l.Order)
	})
}

func (s *service) UploadCertificate(ctx context.Context, companyID, actorID, id string, file FileUpload) (LeaveResponse, error) {
	if err := validateUpload(file); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.find(ctx, qtx, companyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.LeaveType != LeaveTypeMedical {
		return LeaveResponse{}, leaveerrors.ErrCertificateNotApplicable
	}
	switch l.Status {
	case StatusOrderUploaded, StatusActive:
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if l.CertificatePDFURL != nil && *l.CertificatePDFURL != "" {
		return LeaveResponse{}, leaveerrors.ErrCertificateExists
	}

	url, err := s.files.Save(ctx, fmt.Sprintf("leave/%s/certificate.pdf", l.ID), file.Data)
	if err != nil {
		return LeaveResponse{}, err
	}
	now := time.Now().UTC()
	l.CertificatePDFURL = &url
	l.CertificateUploadedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("upload certificate persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}
	s.logger.Info("upload certificate success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) Complete(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, companyID, actorID, id, TriggerComplete, nil)
}

// CompleteElapsed moves active leaves whose end date has passed to completed.
// Called from the scheduler, never from a client action.
func (s *service) CompleteElapsed(ctx context.Context, now time.Time, limit int) (int, error) {
	apps, err := s.repo.ListElapsedActive(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	done := 0
	for i := range apps {
		l := &apps[i]
		if _, err := s.transition(ctx, l.CompanyID.String(), "", l.ID.String(), TriggerExpire, func(ctx context.Context, l *LeaveApplication, qtx Repository) error {
			l.IsCompleted = true
			return nil
		}); err != nil {
			s.logger.Error("complete elapsed leave failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			continue
		}
		done++
	}
	return done, nil
}

// transition is the single write path for every state change: load, guard
// against the transition table, run the side effect, persist, queue the outbox
// event, commit. Nothing is applied unless the whole transaction commits.
func (s *service) transition(
	ctx context.Context,
	companyID, actorID, id string,
	trigger Trigger,
	effect func(ctx context.Context, l *LeaveApplication, qtx Repository) error,
	mutators ...func(l *LeaveApplication),
) (LeaveResponse, error) {
	s.logger.Debug("leave transition requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("trigger", string(trigger)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave transition begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.find(ctx, qtx, companyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	from := l.Status
	next, ok := NextStatus(from, trigger)
	if !ok {
		s.logger.Warn("leave transition rejected",
			zap.String("leave_id", id),
			zap.String("from_status", string(from)),
			zap.String("trigger", string(trigger)),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if effect != nil {
		if err := effect(ctx, l, qtx); err != nil {
			return LeaveResponse{}, err
		}
	}
	l.Status = next
	for _, m := range mutators {
		m(l)
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("leave transition persist failed",
			zap.String("leave_id", id),
			zap.String("trigger", string(trigger)),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.queueStatusEvent(ctx, tx, l, from, next, actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave transition commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("leave transition success",
		zap.String("leave_id", id),
		zap.String("from_status", string(from)),
		zap.String("to_status", string(next)),
	)

	return mapToResponse(*l), nil
}

func (s *service) queueStatusEvent(ctx context.Context, tx *sql.Tx, l *LeaveApplication, from, to Status, actorID string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveStatusChangedEvent{
		EventType:  "leave.status_changed",
		LeaveID:    l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  string(l.LeaveType),
		FromStatus: string(from),
		ToStatus:   string(to),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_application",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) find(ctx context.Context, repo Repository, companyID, id string) (*LeaveApplication, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, leaveerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}

	l, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func validateUpload(file FileUpload) error {
	if len(file.Data) == 0 {
		return leaveerrors.ErrFileRequired
	}
	if file.Size > maxUploadSize || int64(len(file.Data)) > maxUploadSize {
		return leaveerrors.ErrFileTooLarge
	}
	isPDF := strings.EqualFold(file.ContentType, "application/pdf") ||
		strings.HasSuffix(strings.ToLower(file.Filename), ".pdf")
	if !isPDF {
		return leaveerrors.ErrFileNotPDF
	}
	return nil
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func mapToResponse(l LeaveApplication) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		CompanyID:   l.CompanyID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveType:   string(l.LeaveType),
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		DaysCount:   l.DaysCount,
		Reason:      l.Reason,
		Status:      string(l.Status),
		IsCompleted: l.IsCompleted,
		Editable:    EditAllowed(l.Status),
		CreatedBy:   l.CreatedBy.String(),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}

	resp.ApplicationPDFURL = l.ApplicationPDFURL
	if l.ApplicationUploadedAt != nil {
		v := l.ApplicationUploadedAt.Format(time.RFC3339)
		resp.ApplicationUploadedAt = &v
	}
	if l.ApplicationReviewStatus != nil {
		v := string(*l.ApplicationReviewStatus)
		resp.ApplicationReviewStatus = &v
	}
	resp.ApplicationReviewNote = l.ApplicationReviewNote
	if l.ApplicationReviewedAt != nil {
		v := l.ApplicationReviewedAt.Format(time.RFC3339)
		resp.ApplicationReviewedAt = &v
	}
	if l.ApplicationReviewedBy != nil {
		v := l.ApplicationReviewedBy.String()
		resp.ApplicationReviewedBy = &v
	}

	if l.Order != nil {
		o := &OrderResponse{
			ID:     l.Order.ID.String(),
			Number: l.Order.Number,
			PDFURL: l.Order.PDFURL,
		}
		if l.Order.UploadedAt != nil {
			v := l.Order.UploadedAt.Format(time.RFC3339)
			o.UploadedAt = &v
		}
		resp.Order = o
	}

	switch l.LeaveType {
	case LeaveTypeUnpaid:
		if l.ApprovalResolution != nil {
			v := string(*l.ApprovalResolution)
			resp.ApprovalResolution = &v
		}
	case LeaveTypeMedical:
		resp.Diagnosis = l.Diagnosis
		required := l.CertificateRequired
		resp.CertificateRequired = &required
		resp.CertificatePDFURL = l.CertificatePDFURL
		if l.CertificateUploadedAt != nil {
			v := l.CertificateUploadedAt.Format(time.RFC3339)
			resp.CertificateUploadedAt = &v
		}
	}

	return resp
}

func mapToListResponse(apps []LeaveApplication) []LeaveResponse {
	resp := make([]LeaveResponse, len(apps))
	for i, l := range apps {
		resp[i] = mapToResponse(l)
	}
	return resp
}
