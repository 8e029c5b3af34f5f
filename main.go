package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/graph-gophers/graphql-go"

	"github.com/collabnest/collabnest-api/internal/api"
	"github.com/collabnest/collabnest-api/internal/auth"
	"github.com/collabnest/collabnest-api/internal/config"
	"github.com/collabnest/collabnest-api/internal/database"
	"github.com/collabnest/collabnest-api/internal/graph"
	"github.com/collabnest/collabnest-api/internal/logger"
	"github.com/collabnest/collabnest-api/internal/mailer"
	"github.com/collabnest/collabnest-api/internal/repository"
	"github.com/collabnest/collabnest-api/internal/usecase"
)

func main() {
	log := logger.New()

	cfg := config.Load(&log)

	ctx := context.Background()

	client, db := database.Connect(ctx, &log, cfg.MongoURI, cfg.MongoDatabase)
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	// Repositories
	userRepo := repository.NewUserMongoRepository(ctx, &log, db)
	projectRepo := repository.NewProjectMongoRepository(ctx, &log, db)

	// Usecases
	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)
	smtpMailer := mailer.NewMailer(&log)

	userUsecase := usecase.NewUserUsecase(userRepo, &log)
	projectUsecase := usecase.NewProjectUsecase(projectRepo, userRepo, &log)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, jwtAuth, smtpMailer, cfg)

	// GraphQL schema and HTTP surface
	resolver := graph.NewResolver(userUsecase, projectUsecase, passwordResetUsecase)
	schema := graphql.MustParseSchema(graph.Schema, resolver)

	router := api.NewRouter(&log, cfg.CORSAllowedOrigin, schema)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
