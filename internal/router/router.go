// Package router wires handlers onto the Fiber application.
package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/config"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/handler"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/middleware"
	"github.com/Yossy-AC/juku-seiseki-admin/internal/service"
	"github.com/Yossy-AC/juku-seiseki-admin/web"
)

// Dependencies carries everything the route table needs.
type Dependencies struct {
	Config config.Config

	Sessions service.SessionService

	Pages      *handler.PageHandler
	Auth       *handler.AuthHandler
	Students   *handler.StudentHandler
	Classes    *handler.ClassHandler
	Grades     *handler.GradeHandler
	Attendance *handler.AttendanceHandler
	Uploads    *handler.UploadHandler
}

// Register attaches all routes. Fragment endpoints live under /api behind the
// session guard; page shells use the redirecting page guard.
func Register(app *fiber.App, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(deps.Config))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))

	deps.Pages.Register(app, middleware.RequireAdminPage(deps.Sessions))
	deps.Auth.Register(app.Group("/auth"))

	api := app.Group("/api", middleware.RequireAdmin(deps.Sessions))
	deps.Students.Register(api.Group("/students"))
	deps.Classes.Register(api.Group("/classes"))
	deps.Grades.Register(api.Group("/grades"))
	deps.Attendance.Register(api.Group("/attendance"))
	deps.Uploads.Register(api.Group("/upload"))
}
