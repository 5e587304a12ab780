package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/catertrack/catertrack/internal/domain"
	"github.com/catertrack/catertrack/pkg/logger"
)

func newLeadMux(service domain.LeadServiceInterface) *http.ServeMux {
	mux := http.NewServeMux()
	NewLeadHandler(service, logger.NewLoggerWithLevel("disabled")).RegisterRoutes(mux, passthrough)
	return mux
}

func storedLead() *domain.Lead {
	return &domain.Lead{
		ID:        11,
		Name:      "Ana Silva",
		Phone:     "+351900000001",
		Stage:     domain.StageNew,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestLeadHandlerCreate(t *testing.T) {
	t.Run("201 on success", func(t *testing.T) {
		mockService := new(MockLeadService)
		mockService.On("CreateLead", mock.Anything, mock.MatchedBy(func(req *domain.CreateLeadRequest) bool {
			return req.Name == "Ana Silva" && req.Phone == "+351900000001"
		})).Return(storedLead(), nil)

		mux := newLeadMux(mockService)

		body := bytes.NewBufferString(`{"name":"Ana Silva","phone":"+351900000001"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", body)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var lead domain.Lead
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
		assert.Equal(t, int64(11), lead.ID)
		assert.Equal(t, domain.StageNew, lead.Stage)
	})

	t.Run("400 on malformed body", func(t *testing.T) {
		mux := newLeadMux(new(MockLeadService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", bytes.NewBufferString(`{`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("400 on missing phone", func(t *testing.T) {
		mux := newLeadMux(new(MockLeadService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", bytes.NewBufferString(`{"name":"Ana Silva"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("400 on duplicate phone", func(t *testing.T) {
		mockService := new(MockLeadService)
		mockService.On("CreateLead", mock.Anything, mock.Anything).
			Return(nil, &domain.ErrPhoneExists{Message: "phone number already registered"})

		mux := newLeadMux(mockService)

		body := bytes.NewBufferString(`{"name":"Ana Silva","phone":"+351900000001"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", body)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "phone number already registered")
	})
}

func TestLeadHandlerGet(t *testing.T) {
	t.Run("200 on success", func(t *testing.T) {
		mockService := new(MockLeadService)
		mockService.On("GetLeadByID", mock.Anything, int64(11)).Return(storedLead(), nil)

		mux := newLeadMux(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/11", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("404 on missing lead", func(t *testing.T) {
		mockService := new(MockLeadService)
		mockService.On("GetLeadByID", mock.Anything, int64(99)).
			Return(nil, &domain.ErrLeadNotFound{Message: "lead not found"})

		mux := newLeadMux(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/99", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("400 on non-numeric id", func(t *testing.T) {
		mux := newLeadMux(new(MockLeadService))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/abc", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLeadHandlerList(t *testing.T) {
	mockService := new(MockLeadService)
	mockService.On("ListLeads", mock.Anything, 5, 10).Return([]*domain.Lead{storedLead()}, nil)

	mux := newLeadMux(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?skip=5&limit=10", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var leads []*domain.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	assert.Len(t, leads, 1)
}

func TestLeadHandlerUpdate(t *testing.T) {
	t.Run("patch carries absent, null and value states", func(t *testing.T) {
		mockService := new(MockLeadService)
		mockService.On("UpdateLead", mock.Anything, int64(11), mock.MatchedBy(func(req *domain.UpdateLeadRequest) bool {
			return req.Stage.Set && req.Stage.Valid && req.Stage.Value == domain.StageContacted &&
				req.Notes.Set && !req.Notes.Valid &&
				!req.Name.Set
		})).Return(storedLead(), nil)

		mux := newLeadMux(mockService)

		body := bytes.NewBufferString(`{"stage":"Contacted","notes":null}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/leads/11", body)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("400 on clearing the name", func(t *testing.T) {
		mux := newLeadMux(new(MockLeadService))

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/leads/11", bytes.NewBufferString(`{"name":null}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("404 on missing lead", func(t *testing.T) {
		mockService := new(MockLeadService)
		mockService.On("UpdateLead", mock.Anything, int64(99), mock.Anything).
			Return(nil, &domain.ErrLeadNotFound{Message: "lead not found"})

		mux := newLeadMux(mockService)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/leads/99", bytes.NewBufferString(`{"stage":"Contacted"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLeadHandlerDelete(t *testing.T) {
	t.Run("200 returns the deleted lead", func(t *testing.T) {
		mockService := new(MockLeadService)
		mockService.On("DeleteLead", mock.Anything, int64(11)).Return(storedLead(), nil)

		mux := newLeadMux(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/leads/11", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var lead domain.Lead
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
		assert.Equal(t, "Ana Silva", lead.Name)
	})

	t.Run("404 on missing lead", func(t *testing.T) {
		mockService := new(MockLeadService)
		mockService.On("DeleteLead", mock.Anything, int64(99)).
			Return(nil, &domain.ErrLeadNotFound{Message: "lead not found"})

		mux := newLeadMux(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/leads/99", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
