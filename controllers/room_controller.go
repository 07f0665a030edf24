package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"hotel-booking/services"
	"hotel-booking/utils"
)

type RoomController struct {
	RoomSvc *services.RoomService
	Logger  log.Logger
}

func NewRoomController(svc *services.RoomService, logger log.Logger) *RoomController {
	return &RoomController{RoomSvc: svc, Logger: nopIfNil(logger)}
}

// GET /api/rooms?capacity=&minPrice=&maxPrice=
func (rc *RoomController) GetRooms(c *gin.Context) {
	var q services.RoomQueryInput
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}

	rooms, err := rc.RoomSvc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, rc.Logger, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (rc *RoomController) GetRoomByID(c *gin.Context) {
	room, err := rc.RoomSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, rc.Logger, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// GET /api/rooms/slug/:slug
func (rc *RoomController) GetRoomBySlug(c *gin.Context) {
	room, err := rc.RoomSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, rc.Logger, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
