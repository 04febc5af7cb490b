package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/config"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/database"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/handler"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/middleware"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/repository"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/router"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
	"github.com/Yossy-AC/juku-seiseki-admin/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Class{}, &models.Student{}, &models.Grade{}, &models.Attendance{}, &models.ImportLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	classRepo := repository.NewClassRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	importLogRepo := repository.NewImportLogRepository(db)

	sessionService := service.NewSessionService(redisClient, cfg.SessionSecret, cfg.SessionTTL, cfg.AdminPassword, cfg.AdminPasswordHash, logger)
	studentService := service.NewStudentService(studentRepo, validate, logger)
	classService := service.NewClassService(classRepo, studentRepo, logger)
	gradeService := service.NewGradeService(gradeRepo, studentRepo, attendanceRepo, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, validate, logger)
	parser := service.NewCSVParser(logger)
	importService := service.NewImportService(db, studentRepo, gradeRepo, importLogRepo, parser, redisClient, cfg.PreviewTTL, cfg.DefaultClassID, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		Views:        web.Engine(),
		ErrorHandler: handler.ErrorHandler(logger),
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, router.Dependencies{
		Config:     cfg,
		Sessions:   sessionService,
		Pages:      handler.NewPageHandler(sessionService, logger),
		Auth:       handler.NewAuthHandler(sessionService, logger),
		Students:   handler.NewStudentHandler(studentService, logger),
		Classes:    handler.NewClassHandler(classService, logger),
		Grades:     handler.NewGradeHandler(gradeService, logger),
		Attendance: handler.NewAttendanceHandler(attendanceService, logger),
		Uploads:    handler.NewUploadHandler(importService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
