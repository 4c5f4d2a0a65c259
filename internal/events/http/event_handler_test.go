package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	eventDomain "github.com/courtside/registration/internal/events/domain"
	"github.com/courtside/registration/internal/events/http/dto"
	"github.com/courtside/registration/internal/events/http/mocks"
)

func setupEventRouter(uc *mocks.MockEventUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := NewEventHandler(uc, logger)

	router.GET("/v1/events", handler.ListPublishedHandler)
	router.GET("/v1/events/:id", handler.GetHandler)
	router.GET("/v1/admin/events", handler.AdminListHandler)
	router.POST("/v1/admin/events", handler.CreateHandler)
	router.PUT("/v1/admin/events/:id", handler.UpdateHandler)
	router.PATCH("/v1/admin/events/:id/status", handler.UpdateStatusHandler)
	return router
}

func publishedEvent() *eventDomain.Event {
	now := time.Now().UTC()
	return &eventDomain.Event{
		ID:         uuid.Must(uuid.NewV7()),
		Name:       "Summer 3x3 Open",
		Location:   "Riverside Courts",
		StartsAt:   now.Add(72 * time.Hour),
		EndsAt:     now.Add(80 * time.Hour),
		PriceCents: 2500,
		Currency:   "eur",
		Status:     eventDomain.StatusPublished,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestEventHandler_ListPublishedHandler(t *testing.T) {
	uc := &mocks.MockEventUseCase{}
	uc.On("ListPublished", mock.Anything, 0, 50).
		Return([]*eventDomain.Event{publishedEvent()}, nil).Once()

	router := setupEventRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListEventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "published", resp.Data[0].Status)
	uc.AssertExpectations(t)
}

func TestEventHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := &mocks.MockEventUseCase{}
		event := publishedEvent()
		uc.On("Get", mock.Anything, event.ID).Return(event, nil).Once()

		router := setupEventRouter(uc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/events/"+event.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		router := setupEventRouter(&mocks.MockEventUseCase{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/events/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		uc := &mocks.MockEventUseCase{}
		eventID := uuid.Must(uuid.NewV7())
		uc.On("Get", mock.Anything, eventID).Return(nil, eventDomain.ErrEventNotFound).Once()

		router := setupEventRouter(uc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/events/"+eventID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		uc.AssertExpectations(t)
	})
}

func TestEventHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := &mocks.MockEventUseCase{}
		event := publishedEvent()
		event.Status = eventDomain.StatusDraft
		uc.On("Create", mock.Anything, mock.AnythingOfType("*domain.CreateEventInput")).
			Return(event, nil).Once()

		body, err := json.Marshal(dto.CreateEventRequest{
			Name:       "Summer 3x3 Open",
			Location:   "Riverside Courts",
			StartsAt:   time.Now().UTC().Add(72 * time.Hour),
			EndsAt:     time.Now().UTC().Add(80 * time.Hour),
			PriceCents: 2500,
			Currency:   "eur",
		})
		require.NoError(t, err)

		router := setupEventRouter(uc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		body, err := json.Marshal(dto.CreateEventRequest{
			Name:       "   ",
			Location:   "Riverside Courts",
			StartsAt:   time.Now().UTC().Add(72 * time.Hour),
			EndsAt:     time.Now().UTC().Add(80 * time.Hour),
			PriceCents: 2500,
			Currency:   "eur",
		})
		require.NoError(t, err)

		router := setupEventRouter(&mocks.MockEventUseCase{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_UppercaseCurrency", func(t *testing.T) {
		body, err := json.Marshal(dto.CreateEventRequest{
			Name:       "Summer 3x3 Open",
			Location:   "Riverside Courts",
			StartsAt:   time.Now().UTC().Add(72 * time.Hour),
			EndsAt:     time.Now().UTC().Add(80 * time.Hour),
			PriceCents: 2500,
			Currency:   "EUR",
		})
		require.NoError(t, err)

		router := setupEventRouter(&mocks.MockEventUseCase{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventHandler_UpdateStatusHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := &mocks.MockEventUseCase{}
		event := publishedEvent()
		uc.On("UpdateStatus", mock.Anything, event.ID, eventDomain.StatusClosed).
			Return(event, nil).Once()

		router := setupEventRouter(uc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/v1/admin/events/"+event.ID.String()+"/status",
			bytes.NewBufferString(`{"status":"closed"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Error_InvalidTransition", func(t *testing.T) {
		uc := &mocks.MockEventUseCase{}
		eventID := uuid.Must(uuid.NewV7())
		uc.On("UpdateStatus", mock.Anything, eventID, eventDomain.StatusPublished).
			Return(nil, eventDomain.ErrInvalidStatusTransition).Once()

		router := setupEventRouter(uc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/v1/admin/events/"+eventID.String()+"/status",
			bytes.NewBufferString(`{"status":"published"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		uc.AssertExpectations(t)
	})
}
