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

	authDomain "github.com/courtside/registration/internal/auth/domain"
	authHTTP "github.com/courtside/registration/internal/auth/http"
	eventDomain "github.com/courtside/registration/internal/events/domain"
	registrationDomain "github.com/courtside/registration/internal/registrations/domain"
	"github.com/courtside/registration/internal/registrations/http/dto"
	"github.com/courtside/registration/internal/registrations/http/mocks"
)

func setupRegistrationRouter(
	intentUC *mocks.MockIntentUseCase,
	adminUC *mocks.MockAdminUseCase,
	actor *authDomain.Actor,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if actor != nil {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(authHTTP.WithActor(c.Request.Context(), actor))
			c.Next()
		})
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := NewRegistrationHandler(intentUC, adminUC, logger)

	router.POST("/v1/registrations/free", handler.FreeRegistrationHandler)
	router.GET("/v1/admin/events/:id/registrations", handler.ListByEventHandler)
	router.POST("/v1/admin/events/:id/registrations/walkup", handler.WalkUpHandler)
	return router
}

func paidRegistration(eventID uuid.UUID) *registrationDomain.Registration {
	now := time.Now().UTC()
	return &registrationDomain.Registration{
		ID:            uuid.Must(uuid.NewV7()),
		EventID:       eventID,
		FullName:      "Dana Smith",
		Email:         "dana@example.com",
		PaymentStatus: registrationDomain.PaymentStatusPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestRegistrationHandler_FreeRegistrationHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		intentUC := &mocks.MockIntentUseCase{}
		eventID := uuid.Must(uuid.NewV7())
		intentUC.On("FinalizeFree", mock.Anything, eventID,
			mock.AnythingOfType("*domain.Contact")).
			Return(paidRegistration(eventID), nil).Once()

		router := setupRegistrationRouter(intentUC, &mocks.MockAdminUseCase{}, nil)
		body, _ := json.Marshal(map[string]string{
			"event_id":  eventID.String(),
			"full_name": "Dana Smith",
			"email":     "dana@example.com",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/free", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.RegistrationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "paid", resp.PaymentStatus)
		intentUC.AssertExpectations(t)
	})

	t.Run("Error_MissingFields", func(t *testing.T) {
		router := setupRegistrationRouter(&mocks.MockIntentUseCase{}, &mocks.MockAdminUseCase{}, nil)
		body, _ := json.Marshal(map[string]string{"email": "dana@example.com"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/free", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		router := setupRegistrationRouter(&mocks.MockIntentUseCase{}, &mocks.MockAdminUseCase{}, nil)
		body, _ := json.Marshal(map[string]string{
			"event_id":  uuid.Must(uuid.NewV7()).String(),
			"full_name": "Dana Smith",
			"email":     "not-an-email",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/free", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_PricedEvent", func(t *testing.T) {
		intentUC := &mocks.MockIntentUseCase{}
		eventID := uuid.Must(uuid.NewV7())
		intentUC.On("FinalizeFree", mock.Anything, eventID,
			mock.AnythingOfType("*domain.Contact")).
			Return(nil, registrationDomain.ErrEventNotFree).Once()

		router := setupRegistrationRouter(intentUC, &mocks.MockAdminUseCase{}, nil)
		body, _ := json.Marshal(map[string]string{
			"event_id":  eventID.String(),
			"full_name": "Dana Smith",
			"email":     "dana@example.com",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/free", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_RegistrationClosed", func(t *testing.T) {
		intentUC := &mocks.MockIntentUseCase{}
		eventID := uuid.Must(uuid.NewV7())
		intentUC.On("FinalizeFree", mock.Anything, eventID,
			mock.AnythingOfType("*domain.Contact")).
			Return(nil, eventDomain.ErrRegistrationClosed).Once()

		router := setupRegistrationRouter(intentUC, &mocks.MockAdminUseCase{}, nil)
		body, _ := json.Marshal(map[string]string{
			"event_id":  eventID.String(),
			"full_name": "Dana Smith",
			"email":     "dana@example.com",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/free", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRegistrationHandler_ListByEventHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		adminUC := &mocks.MockAdminUseCase{}
		eventID := uuid.Must(uuid.NewV7())
		adminUC.On("ListByEvent", mock.Anything, eventID, 0, 50).
			Return([]*registrationDomain.Registration{paidRegistration(eventID)}, nil).Once()

		router := setupRegistrationRouter(&mocks.MockIntentUseCase{}, adminUC, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/v1/admin/events/"+eventID.String()+"/registrations", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.ListRegistrationsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, eventID.String(), resp.Data[0].EventID)
		adminUC.AssertExpectations(t)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		router := setupRegistrationRouter(&mocks.MockIntentUseCase{}, &mocks.MockAdminUseCase{}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/events/not-a-uuid/registrations", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegistrationHandler_WalkUpHandler(t *testing.T) {
	actor := &authDomain.Actor{
		ID:   uuid.Must(uuid.NewV7()),
		Name: "desk-staff",
		Role: authDomain.RoleStaff,
	}

	t.Run("Success", func(t *testing.T) {
		adminUC := &mocks.MockAdminUseCase{}
		eventID := uuid.Must(uuid.NewV7())
		walkUp := paidRegistration(eventID)
		walkUp.PaymentStatus = registrationDomain.PaymentStatusWalkUp
		adminUC.On("MarkWalkUp", mock.Anything, eventID,
			mock.AnythingOfType("*domain.Contact"), "desk-staff").
			Return(walkUp, nil).Once()

		router := setupRegistrationRouter(&mocks.MockIntentUseCase{}, adminUC, actor)
		body, _ := json.Marshal(map[string]string{
			"full_name": "Dana Smith",
			"email":     "dana@example.com",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/v1/admin/events/"+eventID.String()+"/registrations/walkup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.RegistrationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "walk-up", resp.PaymentStatus)
		adminUC.AssertExpectations(t)
	})

	t.Run("Error_SoldOut", func(t *testing.T) {
		adminUC := &mocks.MockAdminUseCase{}
		eventID := uuid.Must(uuid.NewV7())
		adminUC.On("MarkWalkUp", mock.Anything, eventID,
			mock.AnythingOfType("*domain.Contact"), "desk-staff").
			Return(nil, registrationDomain.ErrSoldOut).Once()

		router := setupRegistrationRouter(&mocks.MockIntentUseCase{}, adminUC, actor)
		body, _ := json.Marshal(map[string]string{
			"full_name": "Dana Smith",
			"email":     "dana@example.com",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/v1/admin/events/"+eventID.String()+"/registrations/walkup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
