package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"hotel-booking/services"
	"hotel-booking/utils"
)

type ContactController struct {
	ContactSvc *services.ContactService
	Logger     log.Logger
}

func NewContactController(svc *services.ContactService, logger log.Logger) *ContactController {
	return &ContactController{ContactSvc: svc, Logger: nopIfNil(logger)}
}

// POST /api/contact
func (cc *ContactController) SubmitInquiry(c *gin.Context) {
	var in services.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, err)
		return
	}

	inquiry, err := cc.ContactSvc.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, cc.Logger, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"id":        inquiry.ID,
		"createdAt": inquiry.CreatedAt,
	})
}
