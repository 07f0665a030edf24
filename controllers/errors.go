package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotel-booking/services"
	"hotel-booking/utils"
)

// respondError maps service errors to status codes. Anything it does not
// recognize is logged and reported as a bare 500.
func respondError(c *gin.Context, logger log.Logger, err error) {
	var ve *services.ValidationError
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &ve):
		utils.JSONErrorDetails(c, http.StatusBadRequest, "Validation failed", ve.Fields)
	case errors.As(err, &nf):
		utils.JSONError(c, http.StatusNotFound, nf.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, services.ErrConflict.Error())
	case errors.Is(err, services.ErrAlreadyCancelled):
		utils.JSONError(c, http.StatusBadRequest, services.ErrAlreadyCancelled.Error())
	default:
		_ = c.Error(err)
		level.Error(logger).Log("msg", "request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func badPayload(c *gin.Context, err error) {
	utils.JSONErrorDetails(c, http.StatusBadRequest, "Invalid request payload", []services.FieldError{
		{Field: "body", Message: err.Error()},
	})
}

func nopIfNil(logger log.Logger) log.Logger {
	if logger == nil {
		return log.NewNopLogger()
	}
	return logger
}
