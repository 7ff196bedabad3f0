package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/FredrikEglese/learnApi/docs" // swagger docs

	"github.com/FredrikEglese/learnApi/internal/cache"
	"github.com/FredrikEglese/learnApi/internal/config"
	"github.com/FredrikEglese/learnApi/internal/db"
	"github.com/FredrikEglese/learnApi/internal/geocoder"
	"github.com/FredrikEglese/learnApi/internal/handler"
	"github.com/FredrikEglese/learnApi/internal/models"
	"github.com/FredrikEglese/learnApi/internal/repository"
	"github.com/FredrikEglese/learnApi/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title DevCamp Bootcamp Directory API
// @version 1.0
// @description Directorio de bootcamps: bootcamps, cursos y usuarios
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db.EnsureIndexes(ctx)
	cancel()

	// repos
	userRepo := repository.NewUserRepository()
	bootcampRepo := repository.NewBootcampRepository()
	courseRepo := repository.NewCourseRepository()

	// geocoder con cache en Redis
	geo := geocoder.NewCached(geocoder.NewClient(cfg.GeocoderURL, cfg.GeocoderAPIKey))

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpire)
	bootcampSvc := service.NewBootcampService(bootcampRepo, courseRepo, geo, cfg.GeocodeFailOpen)
	courseSvc := service.NewCourseService(courseRepo, bootcampRepo)
	userSvc := service.NewUserService(userRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc, cfg.CookieExpireDays, cfg.IsProduction())
	bootcampH := handler.NewBootcampHandler(bootcampSvc)
	courseH := handler.NewCourseHandler(courseSvc)
	userH := handler.NewUserHandler(userSvc)

	authMw := handler.Auth(cfg.JWTSecret, userRepo)
	publisherOrAdmin := handler.RequireRoles(models.RolePublisher, models.RoleAdmin)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		// =============
		// Auth
		// =============
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Get("/auth/me", authH.Me)
		})

		// =============
		// Bootcamps
		// =============
		r.Route("/bootcamps", func(r chi.Router) {
			r.Get("/", bootcampH.List)
			r.With(authMw, publisherOrAdmin).Post("/", bootcampH.Create)
			r.Get("/radius/{postcode}/{distance}", bootcampH.WithinRadius)

			r.Route("/{bootcampId}", func(r chi.Router) {
				r.Get("/", bootcampH.Get)
				r.Get("/courses", courseH.ListByBootcamp)

				r.Group(func(r chi.Router) {
					r.Use(authMw, publisherOrAdmin)
					r.Put("/", bootcampH.Update)
					r.Delete("/", bootcampH.Delete)
					r.Post("/courses", courseH.Create)
				})
			})
		})

		// =============
		// Courses
		// =============
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", courseH.List)
			r.Get("/{id}", courseH.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMw, publisherOrAdmin)
				r.Put("/{id}", courseH.Update)
				r.Delete("/{id}", courseH.Delete)
			})
		})

		// =============
		// Users (solo ADMIN)
		// =============
		r.Route("/users", func(r chi.Router) {
			r.Use(authMw, handler.RequireRoles(models.RoleAdmin))
			r.Get("/", userH.List)
			r.Post("/", userH.Create)
			r.Get("/{id}", userH.Get)
			r.Put("/{id}", userH.Update)
			r.Delete("/{id}", userH.Delete)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s (%s)", cfg.HTTPPort, cfg.Env)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
