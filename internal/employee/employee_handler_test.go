package employee_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-backoffice/internal/employee"
	employeeerrors "go-backoffice/internal/employee/errors"
	"go-backoffice/internal/shared/apperror"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error)
	GetByIDFn    func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withCompany(companyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	}
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "John Doe", req.FullName)
				return employee.EmployeeResponse{
					ID:        uuid.New().String(),
					FullName:  req.FullName,
					Email:     req.Email,
					CompanyID: cid,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"full_name":"John Doe","email":"john@example.com","employee_number":"EMP-900","phone":"0812","hire_date":"2026-01-01","employment_status":"active"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "John Doe")
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeEmployeeService{}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"full_name":"HR","email":"hr@company.com","hire_date":"2026-01-02"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInternalError)
	})

	t.Run("duplicate employee number returns conflict", func(t *testing.T) {
		companyID := uuid.New().String()
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNumberAlreadyExists
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"full_name":"John Doe","email":"john2@example.com","employee_number":"EMP-900","hire_date":"2026-01-01"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, cid string) ([]employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				return []employee.EmployeeResponse{
					{ID: uuid.New().String(), FullName: "John Doe", Email: "john@example.com"},
					{ID: uuid.New().String(), FullName: "Jane Doe", Email: "jane@example.com"},
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees", nil)
		c.Set("company_id", companyID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "John Doe")
		assert.Contains(t, w.Body.String(), "Jane Doe")
	})

	t.Run("query filter narrows the list", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, cid string) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{
					{ID: "1", FullName: "Alice Smith", Email: "alice@example.com"},
					{ID: "2", FullName: "Bob Wilson", Email: "bob@example.com"},
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees?q=alice", nil)
		c.Set("company_id", uuid.New().String())

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Alice Smith")
		assert.NotContains(t, w.Body.String(), "Bob Wilson")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, cid string) ([]employee.EmployeeResponse, error) {
				return nil, errors.New("database error")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees", nil)
		c.Set("company_id", uuid.New().String())

		h.GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeEmployeeService{
			GetOptionsFn: func(ctx context.Context, cid string) ([]employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				return []employee.EmployeeResponse{
					{ID: uuid.New().String(), FullName: "Alice Smith", EmployeeNumber: "EMP-000001"},
					{ID: uuid.New().String(), FullName: "Bob Wilson", EmployeeNumber: "EMP-000002"},
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees/options", nil)
		c.Set("company_id", companyID)

		h.GetOptions(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Alice Smith")
		assert.Contains(t, w.Body.String(), "EMP-000002")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetOptionsFn: func(ctx context.Context, cid string) ([]employee.EmployeeResponse, error) {
				return nil, errors.New("redis connection failed")
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/employees/options", nil)
		c.Set("company_id", uuid.New().String())

		h.GetOptions(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		emplID := uuid.New().String()

		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, cid, id string) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, emplID, id)
				return employee.EmployeeResponse{
					ID:        id,
					FullName:  "HR",
					CompanyID: cid,
				}, nil
			},
		}

		r := setupRouter()
		r.Use(withCompany(companyID))

		h := employee.NewHandler(svc)
		r.GET("/employees/:id", h.GetById)

		req := httptest.NewRequest(http.MethodGet, "/employees/"+emplID, nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, cid, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		r := setupRouter()
		r.Use(withCompany(uuid.New().String()))

		h := employee.NewHandler(svc)
		r.GET("/employees/:id", h.GetById)

		req := httptest.NewRequest(http.MethodGet, "/employees/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeNotFound)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, cid, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, employeeID, id)
				return employee.EmployeeResponse{
					ID:        id,
					FullName:  req.FullName,
					Email:     req.Email,
					CompanyID: cid,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"full_name":"Finance Update","email":"finance@company.com","hire_date":"2026-01-03"}`
		req := httptest.NewRequest(http.MethodPut, "/employees/"+employeeID, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = []gin.Param{{Key: "id", Value: employeeID}}
		c.Set("company_id", companyID)

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Finance Update")
	})

	t.Run("validation error", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPut, "/employees/123", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = []gin.Param{{Key: "id", Value: "123"}}

		h.Update(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		emplID := uuid.New().String()

		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, cid, id string) error {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, emplID, id)
				return nil
			},
		}

		r := setupRouter()
		r.Use(withCompany(companyID))

		h := employee.NewHandler(svc)
		r.DELETE("/employees/:id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/employees/"+emplID, nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, cid, id string) error {
				return errors.New("failed")
			},
		}

		r := setupRouter()
		r.Use(withCompany(uuid.New().String()))

		h := employee.NewHandler(svc)
		r.DELETE("/employees/:id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/employees/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
