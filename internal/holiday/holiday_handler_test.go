package holiday_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-workschedule/internal/holiday"
	holidayerrors "go-workschedule/internal/holiday/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getAllFn              func(ctx context.Context, query holiday.ListHolidaysQuery) ([]holiday.HolidayResponse, error)
	createFn              func(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error)
	updateFn              func(ctx context.Context, id string, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error)
	deactivateFn          func(ctx context.Context, id string) error
	generateSubstitutesFn func(ctx context.Context, year int) (holiday.SubstituteGenerationResponse, error)
	validateYearFn        func(ctx context.Context, year int) (holiday.YearValidationResponse, error)
}

func (f *fakeService) GetAll(ctx context.Context, query holiday.ListHolidaysQuery) ([]holiday.HolidayResponse, error) {
	return f.getAllFn(ctx, query)
}

func (f *fakeService) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) Update(ctx context.Context, id string, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeService) Deactivate(ctx context.Context, id string) error {
	return f.deactivateFn(ctx, id)
}

func (f *fakeService) GenerateSubstitutes(ctx context.Context, year int) (holiday.SubstituteGenerationResponse, error) {
	return f.generateSubstitutesFn(ctx, year)
}

func (f *fakeService) ValidateYear(ctx context.Context, year int) (holiday.YearValidationResponse, error) {
	return f.validateYearFn(ctx, year)
}

func TestHandler_CreateAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
			assert.Equal(t, "2026-05-05", req.Date)
			return holiday.HolidayResponse{ID: uuid.New().String(), Date: req.Date, Name: req.Name, Year: req.Year, Status: holiday.StatusActive, IsActive: true}, nil
		},
		getAllFn: func(ctx context.Context, query holiday.ListHolidaysQuery) ([]holiday.HolidayResponse, error) {
			assert.Equal(t, "2026", query.Year)
			return []holiday.HolidayResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}

	h := holiday.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/holidays",
		strings.NewReader(`{"date":"2026-05-05","name":"어린이날","year":2026}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":true")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/holidays?year=2026", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestHandler_CreateDuplicateDate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
			return holiday.HolidayResponse{}, holidayerrors.ErrDuplicateDate
		},
	}

	h := holiday.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/holidays",
		strings.NewReader(`{"date":"2026-05-05","name":"어린이날","year":2026}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":false")
}

func TestHandler_DeleteAndValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New().String()

	svc := &fakeService{
		deactivateFn: func(ctx context.Context, targetID string) error {
			assert.Equal(t, id, targetID)
			return nil
		},
		validateYearFn: func(ctx context.Context, year int) (holiday.YearValidationResponse, error) {
			assert.Equal(t, 2026, year)
			return holiday.YearValidationResponse{Year: year, IsValid: true}, nil
		},
	}

	h := holiday.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/holidays/"+id, nil)
	h.Delete(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deactivated")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/holidays/validate?year=2026", nil)
	h.Validate(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"is_valid\":true")
}

func TestHandler_ValidateMissingYear(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := holiday.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/holidays/validate", nil)
	h.Validate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
