package leave

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-backoffice/internal/shared/apperror"
	"go-backoffice/internal/shared/response"

	leaveerrors "go-backoffice/internal/leave/errors"
)

const leaveTypeKey = "leave_type_validated"

type Handler struct {
	service Service
	busy    BusyTracker
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, busy BusyTracker, logger ...*zap.Logger) *Handler {
	return NewHandlerWithRedis(service, busy, nil, logger...)
}

// NewHandlerWithRedis additionally enables Idempotency-Key replay on Create.
func NewHandlerWithRedis(service Service, busy BusyTracker, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	if busy == nil {
		busy = NoopBusyTracker{}
	}
	return &Handler{service: service, busy: busy, rdb: rdb, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

// LeaveTypeParam validates the :type segment once, so no handler ever branches
// on the subtype itself.
func LeaveTypeParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		lt, ok := ParseLeaveType(c.Param("type"))
		if !ok {
			e := leaveerrors.ErrInvalidLeaveType
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}
		c.Set(leaveTypeKey, string(lt))
		c.Next()
	}
}

func leaveTypeOf(c *gin.Context) LeaveType {
	return LeaveType(c.GetString(leaveTypeKey))
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// withBusy suppresses concurrent duplicate invocations of one action category
// on one record for the duration of fn.
func (h *Handler) withBusy(c *gin.Context, cat Category, fn func()) {
	id := c.Param("id")
	ok, err := h.busy.Acquire(c.Request.Context(), id, cat)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !ok {
		h.writeServiceError(c, leaveerrors.ErrOperationInFlight)
		return
	}
	defer func() {
		if err := h.busy.Release(c.Request.Context(), id, cat); err != nil {
			h.logger.Error("busy flag release failed",
				zap.String("leave_id", id),
				zap.String("category", string(cat)),
				zap.Error(err),
			)
		}
	}()
	fn()
}

func (h *Handler) Create(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, actorID, leaveTypeOf(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")
	lt := leaveTypeOf(c)

	resp, err := h.service.GetAll(c.Request.Context(), companyID, &lt)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), companyID, actorID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.service.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Actions(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	flags, err := h.busy.Flags(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Actions(c.Request.Context(), companyID, id, flags)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadApplication(c *gin.Context) {
	h.withBusy(c, CategoryDownloadApplication, func() {
		companyID := c.GetString("company_id")

		pdf, name, err := h.service.ApplicationDocument(c.Request.Context(), companyID, c.Param("id"))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	})
}

func (h *Handler) UploadApplication(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	file, err := readUpload(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.UploadApplication(c.Request.Context(), companyID, actorID, c.Param("id"), file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Review(c *gin.Context) {
	h.withBusy(c, CategoryReview, func() {
		companyID := c.GetString("company_id")
		actorID := getActorID(c)

		var req ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http review leave validation failed", zap.Error(err))
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}

		resp, err := h.service.Review(c.Request.Context(), companyID, actorID, c.Param("id"), ReviewDecision(req.Decision), req.Note)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}

		response.Success(c, http.StatusOK, resp, nil)
	})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	h.withBusy(c, CategoryCreateOrder, func() {
		companyID := c.GetString("company_id")
		actorID := getActorID(c)

		resp, err := h.service.CreateOrder(c.Request.Context(), companyID, actorID, c.Param("id"))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}

		response.Success(c, http.StatusCreated, resp, nil)
	})
}

func (h *Handler) DownloadOrder(c *gin.Context) {
	h.withBusy(c, CategoryDownloadOrder, func() {
		companyID := c.GetString("company_id")

		pdf, name, err := h.service.OrderDocument(c.Request.Context(), companyID, c.Param("id"))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	})
}

func (h *Handler) UploadOrder(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	file, err := readUpload(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.UploadOrder(c.Request.Context(), companyID, actorID, c.Param("id"), file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UploadCertificate(c *gin.Context) {
	h.withBusy(c, CategoryCertificate, func() {
		companyID := c.GetString("company_id")
		actorID := getActorID(c)

		file, err := readUpload(c)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}

		resp, err := h.service.UploadCertificate(c.Request.Context(), companyID, actorID, c.Param("id"), file)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}

		response.Success(c, http.StatusOK, resp, nil)
	})
}

func (h *Handler) Complete(c *gin.Context) {
	h.withBusy(c, CategoryComplete, func() {
		companyID := c.GetString("company_id")
		actorID := getActorID(c)

		resp, err := h.service.Complete(c.Request.Context(), companyID, actorID, c.Param("id"))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}

		response.Success(c, http.StatusOK, resp, nil)
	})
}

func readUpload(c *gin.Context) (FileUpload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return FileUpload{}, leaveerrors.ErrFileRequired
	}
	if fh.Size > maxUploadSize {
		return FileUpload{}, leaveerrors.ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return FileUpload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return FileUpload{}, err
	}

	return FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}, nil
}
