package main

import (
	"crudkit/internal/config"
	"crudkit/internal/domain/sqlite"
	"crudkit/internal/domain/sqlite/repository"
	"crudkit/internal/http/controller"
	"crudkit/internal/http/handler"
	appmiddleware "crudkit/internal/http/middleware"
	"crudkit/internal/i18n"
	"crudkit/internal/security"
	"crudkit/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	validate := validator.New()

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		panic(err)
	}

	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	messages := i18n.NewSource()

	// Getting repos
	userRepo := repository.NewUserRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, hasher)

	// Getting controllers and handlers
	userController := controller.NewUserController(userService, messages)
	userRoutes := handler.NewUserDefault(userController, validate, hasher)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(appmiddleware.NewPrincipal(&appmiddleware.PrincipalConfig{Users: userRepo}))

	// Users
	e.GET("/api/users", userRoutes.GetUsers)
	e.GET("/api/users/find", userRoutes.FindUser)
	e.GET("/api/users/:id", userRoutes.GetUser)
	e.POST("/api/users", userRoutes.CreateUser)
	e.PUT("/api/users/:id", userRoutes.UpdateUser)
	e.PUT("/api/users/:id/enabled", userRoutes.SetEnabled)
	e.PUT("/api/users/:id/verified", userRoutes.SetVerified)
	e.PUT("/api/users/:id/password", userRoutes.SetPassword)
	e.DELETE("/api/users/:id", userRoutes.DeleteUser)
	e.DELETE("/api/users", userRoutes.DeleteUsers)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(cfg.Address); err != nil {
		panic(err)
	}
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
