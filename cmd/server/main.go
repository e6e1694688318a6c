package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"quizapp/internal/auth"
	"quizapp/internal/config"
	"quizapp/internal/models"
	"quizapp/internal/quiz"
	"quizapp/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found")
	}

	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := db.AutoMigrate(&models.User{}, &models.Quiz{}, &models.Question{}); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	userRepo := auth.NewRepository(db)
	quizRepo := quiz.NewRepository(db)

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := auth.NewService(userRepo, tokens)
	quizService := quiz.NewService(quizRepo)

	authHandler := auth.NewHandler(authService)
	quizHandler := quiz.NewHandler(quizService)

	if admins, err := userRepo.CountByRole(models.RoleAdmin); err == nil && admins == 0 {
		logrus.Warn("no admin user registered; quiz creation will be unavailable")
	}

	router := mux.NewRouter()

	// Auth routes, no token required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Quiz routes, token required
	quizRouter := router.PathPrefix("/api/quiz").Subrouter()
	quizRouter.Use(auth.JWTMiddleware(tokens))

	quizRouter.HandleFunc("/list", quizHandler.ListQuizzes).Methods("GET", "OPTIONS")
	quizRouter.HandleFunc("/create-full", quizHandler.CreateFullQuiz).Methods("POST", "OPTIONS")
	quizRouter.HandleFunc("/get/{id}", quizHandler.GetQuizQuestions).Methods("GET", "OPTIONS")
	quizRouter.HandleFunc("/submit/{id}", quizHandler.SubmitQuiz).Methods("POST", "OPTIONS")

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}

	logrus.Info("server shutdown gracefully")
}
