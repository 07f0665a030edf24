package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/models"
	"hotel-booking/repository"
	"hotel-booking/routes"
	"hotel-booking/services"
	"hotel-booking/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := utils.NewLogger(os.Stderr, cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	repo, err := openRepository(cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "storage init failed", "driver", cfg.Storage, "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "storage ready", "driver", cfg.Storage)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	validator := services.NewValidator(utils.SystemClock{}, cfg.Location(), cfg.MaxStayNights)
	availabilityService := services.NewAvailabilityService(repo, validator)
	reservationService := services.NewReservationService(repo, availabilityService, validator, logger)
	roomService := services.NewRoomService(repo, validator)
	contactService := services.NewContactService(repo, validator, logger)

	router := routes.SetupRouter(routes.Controllers{
		Rooms:        controllers.NewRoomController(roomService, logger),
		Availability: controllers.NewAvailabilityController(availabilityService, logger),
		Reservations: controllers.NewReservationController(reservationService, metrics, logger),
		Contact:      controllers.NewContactController(contactService, logger),
	}, cfg.Origins(), metrics, reg, logger)

	g := &run.Group{}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	g.Add(func() error {
		level.Info(logger).Log("msg", "starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			level.Error(logger).Log("msg", "API server forced to shutdown", "err", err)
		}
	})

	if cfg.MetricsPort != "" && cfg.MetricsPort != cfg.Port {
		metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, ReadHeaderTimeout: 5 * time.Second}
		g.Add(func() error {
			m := http.NewServeMux()
			m.Handle("/metrics", routes.MetricsHandler(reg))
			metricsSrv.Handler = m
			level.Info(logger).Log("msg", "starting metrics server", "addr", metricsSrv.Addr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(error) {
			if err := metricsSrv.Close(); err != nil {
				level.Error(logger).Log("msg", "failed to stop metrics server", "err", err)
			}
		})
	}

	g.Add(run.SignalHandler(context.Background(), syscall.SIGINT, syscall.SIGTERM))

	if err := g.Run(); err != nil {
		var sig run.SignalError
		if errors.As(err, &sig) {
			level.Info(logger).Log("msg", "shutdown complete", "signal", sig.Signal)
			return
		}
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func openRepository(cfg *config.Config, logger log.Logger) (repository.Repository, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		var rooms []models.Room
		if cfg.Database.Seed {
			rooms = repository.DefaultRooms()
		}
		return repository.NewMemoryRepository(rooms...), nil
	default:
		db, err := config.ConnectDatabase(cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return repository.NewGormRepository(db), nil
	}
}
