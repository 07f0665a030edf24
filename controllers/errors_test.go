package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-booking/services"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ve := &services.ValidationError{}
	ve.Add("checkIn", "is required")

	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", ve, http.StatusBadRequest, "Validation failed"},
		{"not found", &services.NotFoundError{Resource: "Reservation", ID: "x"}, http.StatusNotFound, "Reservation not found"},
		{"wrapped conflict", fmt.Errorf("room r1: %w", services.ErrConflict), http.StatusConflict, services.ErrConflict.Error()},
		{"already cancelled", services.ErrAlreadyCancelled, http.StatusBadRequest, services.ErrAlreadyCancelled.Error()},
		{"internal", errors.New("dial tcp 10.0.0.1:3306: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)

			respondError(c, log.NewNopLogger(), tc.err)

			assert.Equal(t, tc.code, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["error"])
			assert.NotContains(t, w.Body.String(), "10.0.0.1")
		})
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "conflict", outcome(fmt.Errorf("x: %w", services.ErrConflict)))
	assert.Equal(t, "already_cancelled", outcome(services.ErrAlreadyCancelled))
	assert.Equal(t, "not_found", outcome(&services.NotFoundError{Resource: "Room"}))
	assert.Equal(t, "invalid", outcome(&services.ValidationError{}))
	assert.Equal(t, "error", outcome(errors.New("boom")))
}
