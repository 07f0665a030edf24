package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"hotel-booking/services"
	"hotel-booking/utils"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
	Logger          log.Logger
}

func NewAvailabilityController(svc *services.AvailabilityService, logger log.Logger) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc, Logger: nopIfNil(logger)}
}

// GET /api/availability?roomId=&checkIn=&checkOut=
func (ac *AvailabilityController) CheckAvailability(c *gin.Context) {
	var q services.AvailabilityQueryInput
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}

	quote, err := ac.AvailabilitySvc.Quote(c.Request.Context(), q)
	if err != nil {
		respondError(c, ac.Logger, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}

// GET /api/availability/rooms?checkIn=&checkOut=&capacity=
func (ac *AvailabilityController) AvailableRooms(c *gin.Context) {
	var q services.StayQueryInput
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}

	ids, err := ac.AvailabilitySvc.AvailableRooms(c.Request.Context(), q)
	if err != nil {
		respondError(c, ac.Logger, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"checkIn":  q.CheckIn,
		"checkOut": q.CheckOut,
		"roomIds":  ids,
	})
}
