package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/models"
	"hotel-booking/repository"
	"hotel-booking/services"
	"hotel-booking/utils"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Error   string                `json:"error"`
	Details []services.FieldError `json:"details"`
}

func day(n int) string {
	return now.AddDate(0, 0, n).Format("2006-01-02")
}

func newTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryRepository) {
	t.Helper()
	return newTestRouterWithLogger(t, log.NewNopLogger())
}

func newTestRouterWithLogger(t *testing.T, logger log.Logger) (*gin.Engine, *repository.MemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository(
		models.Room{ID: "r1", Slug: "garden", Name: "Garden", NightlyRate: 100, Capacity: 2},
		models.Room{ID: "r2", Slug: "loft", Name: "Loft", NightlyRate: 180, Capacity: 4},
	)
	v := services.NewValidator(utils.FixedClock{T: now}, time.UTC, 90)
	availability := services.NewAvailabilityService(repo, v)
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	r := SetupRouter(Controllers{
		Rooms:        controllers.NewRoomController(services.NewRoomService(repo, v), logger),
		Availability: controllers.NewAvailabilityController(availability, logger),
		Reservations: controllers.NewReservationController(services.NewReservationService(repo, availability, v, logger), metrics, logger),
		Contact:      controllers.NewContactController(services.NewContactService(repo, v, logger), logger),
	}, nil, metrics, reg, logger)
	return r, repo
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func reservationBody(roomID string, in, out int) gin.H {
	return gin.H{
		"roomId":     roomID,
		"guestName":  "Jane Doe",
		"guestEmail": "jane@example.com",
		"checkIn":    day(in),
		"checkOut":   day(out),
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRooms(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/rooms?capacity=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(env.Data, &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, "loft", rooms[0].Slug)

	w, _ = do(t, r, http.MethodGet, "/api/rooms/r1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/rooms/slug/loft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var room models.Room
	require.NoError(t, json.Unmarshal(env.Data, &room))
	assert.Equal(t, "r2", room.ID)

	w, env = do(t, r, http.MethodGet, "/api/rooms/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Room not found", env.Error)

	w, env = do(t, r, http.MethodGet, "/api/rooms?minPrice=200&maxPrice=100", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "maxPrice", env.Details[0].Field)

	w, env = do(t, r, http.MethodGet, "/api/rooms?capacity=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "capacity", env.Details[0].Field)
}

func TestReservationLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/reservations", reservationBody("r1", 1, 5))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)
	var res models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 400.0, res.TotalPrice)
	assert.Equal(t, models.StatusConfirmed, res.Status)

	w, env = do(t, r, http.MethodPost, "/api/reservations", reservationBody("r1", 3, 4))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.ErrConflict.Error(), env.Error)

	w, _ = do(t, r, http.MethodGet, "/api/reservations/"+res.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/availability?roomId=r1&checkIn="+day(2)+"&checkOut="+day(3), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var quote services.Quote
	require.NoError(t, json.Unmarshal(env.Data, &quote))
	assert.False(t, quote.Available)

	w, env = do(t, r, http.MethodDelete, "/api/reservations/"+res.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, models.StatusCancelled, res.Status)

	w, env = do(t, r, http.MethodPost, "/api/reservations/"+res.ID+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.ErrAlreadyCancelled.Error(), env.Error)

	w, _ = do(t, r, http.MethodDelete, "/api/reservations/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/reservations?status=cancelled", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestCreateReservationValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/reservations", gin.H{
		"roomId":     "r1",
		"guestName":  "J",
		"guestEmail": "nope",
		"checkIn":    day(-1),
		"checkOut":   day(-2),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", env.Error)
	fields := map[string]bool{}
	for _, d := range env.Details {
		fields[d.Field] = true
	}
	assert.Equal(t, map[string]bool{"guestName": true, "guestEmail": true, "checkIn": true, "checkOut": true}, fields)

	w, _ = do(t, r, http.MethodPost, "/api/reservations", reservationBody("ghost", 1, 2))
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConcurrentCreateOverHTTP(t *testing.T) {
	r, repo := newTestRouter(t)

	const workers = 10
	codes := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			_ = json.NewEncoder(&buf).Encode(reservationBody("r2", 7, 9))
			req := httptest.NewRequest(http.MethodPost, "/api/reservations", &buf)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	counts := map[int]int{}
	for code := range codes {
		counts[code]++
	}
	assert.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusConflict: workers - 1}, counts)

	list, err := repo.ListReservations(context.Background(), repository.ReservationFilter{RoomID: "r2"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAvailableRoomsAndContact(t *testing.T) {
	r, repo := newTestRouter(t)

	w, _ := do(t, r, http.MethodPost, "/api/reservations", reservationBody("r1", 1, 3))
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/availability/rooms?checkIn="+day(2)+"&checkOut="+day(4), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		RoomIDs []string `json:"roomIds"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, []string{"r2"}, payload.RoomIDs)

	w, _ = do(t, r, http.MethodPost, "/api/contact", gin.H{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Parking",
		"message": "Is there parking on site?",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.ContactInquiries(), 1)

	w, env = do(t, r, http.MethodPost, "/api/contact", gin.H{"email": "ada@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Details)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/reservations", reservationBody("r1", 1, 2))
	do(t, r, http.MethodGet, "/api/rooms", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `hotel_reservations_total{operation="create",result="ok"} 1`)
	assert.Contains(t, body, `hotel_http_requests_total{code="200",method="GET",route="/api/rooms"} 1`)
}

func TestPanicIsRecoveredLoggedAndCounted(t *testing.T) {
	var logs bytes.Buffer
	r, _ := newTestRouterWithLogger(t, utils.NewLogger(&logs, "info"))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w, env := do(t, r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Error)
	assert.NotContains(t, w.Body.String(), "kaboom")

	assert.Contains(t, logs.String(), `msg="recovered from panic"`)
	assert.Contains(t, logs.String(), "path=/boom status=500")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mw := httptest.NewRecorder()
	r.ServeHTTP(mw, req)
	body := mw.Body.String()
	assert.Contains(t, body, "hotel_http_panics_recovered_total 1")
	assert.Contains(t, body, `hotel_http_requests_total{code="500",method="GET",route="/boom"} 1`)
	assert.Contains(t, body, `hotel_http_request_duration_seconds_count{method="GET",route="/boom"} 1`)
}
