package leaveerrors

import (
	"net/http"

	"go-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave type must be one of annual, unpaid, medical",
		http.StatusBadRequest,
	)
	ErrInvalidResolution = apperror.New(
		apperror.CodeInvalidInput,
		"approval_resolution must be one of approved, recommend, no_objection",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be one of approve, revision, reject",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave application not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"action not permitted in current status",
		http.StatusConflict,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"record can no longer be edited or deleted once review has started",
		http.StatusConflict,
	)
	ErrOrderExists = apperror.New(
		apperror.CodeConflict,
		"order already exists for this leave application",
		http.StatusConflict,
	)
	ErrOrderMissing = apperror.New(
		apperror.CodeInvalidState,
		"order must be created before its signed copy can be uploaded",
		http.StatusConflict,
	)
	ErrCertificateNotApplicable = apperror.New(
		apperror.CodeInvalidState,
		"certificate upload applies to medical leave only",
		http.StatusBadRequest,
	)
	ErrCertificateExists = apperror.New(
		apperror.CodeConflict,
		"certificate already uploaded",
		http.StatusConflict,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a file is required",
		http.StatusBadRequest,
	)
	ErrFileNotPDF = apperror.New(
		apperror.CodeInvalidInput,
		"only PDF files are accepted",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"file exceeds the maximum allowed size",
		http.StatusRequestEntityTooLarge,
	)
	ErrOperationInFlight = apperror.New(
		apperror.CodeConflict,
		"the same operation is already in progress for this record",
		http.StatusConflict,
	)
)
