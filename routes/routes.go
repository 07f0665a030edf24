package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
)

type Controllers struct {
	Rooms        *controllers.RoomController
	Availability *controllers.AvailabilityController
	Reservations *controllers.ReservationController
	Contact      *controllers.ContactController
}

// MetricsHandler serves the registry in OpenMetrics format when asked.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// SetupRouter wires middleware and every API route.
func SetupRouter(
	ctl Controllers,
	origins []string,
	metrics *middleware.Metrics,
	reg *prometheus.Registry,
	logger log.Logger,
) *gin.Engine {
	r := gin.New()
	// Recovery runs innermost so logging and metrics see the 500.
	r.Use(middleware.Logger(logger), metrics.Instrument(), metrics.Recovery(logger))

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(MetricsHandler(reg)))

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.GET("/slug/:slug", ctl.Rooms.GetRoomBySlug)
			rooms.GET("/:id", ctl.Rooms.GetRoomByID)
		}

		availability := api.Group("/availability")
		{
			availability.GET("", ctl.Availability.CheckAvailability)
			availability.GET("/rooms", ctl.Availability.AvailableRooms)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", ctl.Reservations.GetReservations)
			reservations.POST("", ctl.Reservations.CreateReservation)
			reservations.GET("/:id", ctl.Reservations.GetReservationByID)
			reservations.DELETE("/:id", ctl.Reservations.CancelReservation)
			reservations.POST("/:id/cancel", ctl.Reservations.CancelReservation)
		}

		api.POST("/contact", ctl.Contact.SubmitInquiry)
	}

	return r
}
