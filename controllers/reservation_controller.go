package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
	Metrics        *middleware.Metrics
	Logger         log.Logger
}

func NewReservationController(svc *services.ReservationService, metrics *middleware.Metrics, logger log.Logger) *ReservationController {
	return &ReservationController{ReservationSvc: svc, Metrics: metrics, Logger: nopIfNil(logger)}
}

// POST /api/reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var in services.CreateReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		rc.Metrics.Booking("create", "invalid")
		badPayload(c, err)
		return
	}

	res, err := rc.ReservationSvc.Create(c.Request.Context(), in)
	if err != nil {
		rc.Metrics.Booking("create", outcome(err))
		respondError(c, rc.Logger, err)
		return
	}
	rc.Metrics.Booking("create", "ok")
	utils.JSONSuccess(c, http.StatusCreated, res)
}

// GET /api/reservations?roomId=&email=&status=
func (rc *ReservationController) GetReservations(c *gin.Context) {
	var q services.ReservationQueryInput
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}

	list, err := rc.ReservationSvc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, rc.Logger, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/reservations/:id
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	res, err := rc.ReservationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, rc.Logger, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// DELETE /api/reservations/:id and POST /api/reservations/:id/cancel
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	res, err := rc.ReservationSvc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		rc.Metrics.Booking("cancel", outcome(err))
		respondError(c, rc.Logger, err)
		return
	}
	rc.Metrics.Booking("cancel", "ok")
	utils.JSONSuccess(c, http.StatusOK, res)
}

func outcome(err error) string {
	var ve *services.ValidationError
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &ve):
		return "invalid"
	case errors.As(err, &nf):
		return "not_found"
	case errors.Is(err, services.ErrConflict):
		return "conflict"
	case errors.Is(err, services.ErrAlreadyCancelled):
		return "already_cancelled"
	}
	return "error"
}
