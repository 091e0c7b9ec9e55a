package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"courtbook/internal/delivery/http/controllers"
	"courtbook/internal/delivery/http/middleware"
	"courtbook/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Everything except auth and swagger requires a bearer token.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	groupController *controllers.GroupController,
	playerController *controllers.PlayerController,
	bookingController *controllers.BookingController,
	lessonController *controllers.LessonController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Groups
	mux.HandleFunc("GET /groups", auth(groupController.List))
	mux.HandleFunc("POST /groups", auth(groupController.Create))

	// Players
	mux.HandleFunc("GET /players", auth(playerController.List))

	// Bookings
	mux.HandleFunc("POST /bookings/validate", auth(bookingController.Validate))

	// Lessons
	mux.HandleFunc("POST /lessons", auth(lessonController.Create))
	mux.HandleFunc("GET /lessons", auth(lessonController.List))
	mux.HandleFunc("GET /lessons/{lessonID}", auth(lessonController.Get))
	mux.HandleFunc("GET /lessons/{lessonID}/confirmation", auth(lessonController.Confirmation))
	mux.HandleFunc("GET /lessons/{lessonID}/calendar.ics", auth(lessonController.CalendarFile))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
