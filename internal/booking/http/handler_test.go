package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turfbook/ground-booking-backend/internal/booking"
	"github.com/turfbook/ground-booking-backend/internal/user"
)

const (
	testGroundID = "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	testUserID   = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
	testAdminID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testSlot     = "09:00 - 11:00"
)

// stubService scripts booking.Service responses per test.
type stubService struct {
	booking.Service

	bookedSlots []string
	createdWith *booking.CreateRequest
	createErr   error
	byUser      []*booking.Booking
}

func (s *stubService) BookedSlots(ctx context.Context, groundID string, date time.Time) ([]string, error) {
	return s.bookedSlots, nil
}

func (s *stubService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	s.createdWith = &req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &booking.Booking{
		ID:          "booking-1",
		GroundID:    req.GroundID,
		UserID:      req.UserID,
		Date:        booking.NormalizeDate(req.Date),
		TimeSlots:   req.TimeSlots,
		Status:      booking.StatusConfirmed,
		TotalAmount: 2000,
	}, nil
}

func (s *stubService) ListByUser(ctx context.Context, userID string) ([]*booking.Booking, error) {
	return s.byUser, nil
}

// stubUserService resolves roles for the permission checks.
type stubUserService struct {
	user.Service

	users map[string]*user.User
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func setupRouter(svc *stubService, asUser string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := &stubUserService{users: map[string]*user.User{
		testUserID:  {ID: testUserID, Role: user.RoleUser},
		testAdminID: {ID: testAdminID, Role: user.RoleAdmin},
	}}

	fakeAuth := func(c *gin.Context) {
		if asUser == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("userID", asUser)
	}
	fakeAdmin := func(c *gin.Context) {
		u, err := users.GetByID(c.Request.Context(), asUser)
		if err != nil || u.Role != user.RoleAdmin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
	}

	r := gin.New()
	api := r.Group("")
	RegisterRoutes(api, NewHandler(svc, users), fakeAuth, fakeAdmin)
	return r
}

func TestSlotsEndpoint(t *testing.T) {
	t.Run("returns booked slots", func(t *testing.T) {
		svc := &stubService{bookedSlots: []string{testSlot}}
		r := setupRouter(svc, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/bookings/slots?ground="+testGroundID+"&date=2026-09-10", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var slots []string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
		assert.Equal(t, []string{testSlot}, slots)
	})

	t.Run("empty day yields empty array not null", func(t *testing.T) {
		r := setupRouter(&stubService{}, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/bookings/slots?ground="+testGroundID+"&date=2026-09-10", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("missing parameters", func(t *testing.T) {
		r := setupRouter(&stubService{}, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/bookings/slots?ground="+testGroundID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		r := setupRouter(&stubService{}, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/bookings/slots?ground="+testGroundID+"&date=not-a-date", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateEndpoint(t *testing.T) {
	validBody := CreateBookingBody{
		GroundID:  testGroundID,
		Date:      "2026-09-10",
		TimeSlots: []string{testSlot},
	}

	t.Run("creates booking for authenticated user", func(t *testing.T) {
		svc := &stubService{}
		r := setupRouter(svc, testUserID)

		w := postJSON(r, "/bookings", validBody)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.createdWith)
		assert.Equal(t, testUserID, svc.createdWith.UserID)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "2026-09-10", resp.Date)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("requires authentication", func(t *testing.T) {
		r := setupRouter(&stubService{}, "")

		w := postJSON(r, "/bookings", validBody)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("conflict maps to 409 with slots", func(t *testing.T) {
		svc := &stubService{createErr: &booking.ConflictError{Slots: []string{testSlot}}}
		r := setupRouter(svc, testUserID)

		w := postJSON(r, "/bookings", validBody)

		require.Equal(t, http.StatusConflict, w.Code)
		var resp ConflictResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{testSlot}, resp.ConflictingSlots)
	})

	t.Run("domain errors keep their status", func(t *testing.T) {
		svc := &stubService{createErr: booking.ErrNonConsecutiveSlots}
		r := setupRouter(svc, testUserID)

		w := postJSON(r, "/bookings", validBody)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		r := setupRouter(&stubService{}, testUserID)

		w := postJSON(r, "/bookings", gin.H{"ground": "not-a-uuid", "date": "2026-09-10", "timeSlots": []string{testSlot}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListByUserPermissions(t *testing.T) {
	svc := &stubService{byUser: []*booking.Booking{{ID: "booking-1", UserID: testUserID}}}

	t.Run("own bookings allowed", func(t *testing.T) {
		r := setupRouter(svc, testUserID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/bookings/user/"+testUserID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("someone else's bookings forbidden", func(t *testing.T) {
		r := setupRouter(svc, testUserID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/bookings/user/"+testAdminID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin can read anyone's", func(t *testing.T) {
		r := setupRouter(svc, testAdminID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/bookings/user/"+testUserID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
