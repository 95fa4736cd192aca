package main

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/flashycardy/internal/api"
	"github.com/vytor/flashycardy/internal/auth"
	"github.com/vytor/flashycardy/internal/config"
	"github.com/vytor/flashycardy/internal/db"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/repository/sqlite"
	"github.com/vytor/flashycardy/internal/services"
	"github.com/vytor/flashycardy/internal/study"
	"github.com/vytor/flashycardy/web"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FlashyCardy Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_ttl=%s", cfg.SessionTTL)
	log.Debug("secure_cookies=%t", cfg.SecureCookies)
	log.Debug("bcrypt_cost=%d", cfg.BcryptCost)
	log.Debug("study_session_ttl=%s", cfg.StudySessionTTL)
	log.Debug("study_session_limit=%d", cfg.StudySessionLimit)
	log.Debug("cors_allowed_origins=%v", cfg.CORSAllowedOrigins)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates(web.Files)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	static, err := fs.Sub(web.Files, "static")
	if err != nil {
		log.Error("failed to load static assets: %v", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)

	tokens := auth.NewTokens(cfg.SessionSecret, cfg.SessionTTL)
	studyStore := study.NewStore(cfg.StudySessionLimit, cfg.StudySessionTTL)

	srv := &api.Server{
		AuthService:        services.NewAuthService(userRepo, cfg.BcryptCost),
		DeckService:        services.NewDeckService(deckRepo, cardRepo),
		CardService:        services.NewCardService(deckRepo, cardRepo),
		StudyService:       services.NewStudyService(deckRepo, cardRepo, studyStore),
		Auth:               tokens,
		Tokens:             tokens,
		DB:                 database,
		Templates:          tmpl,
		Static:             static,
		SecureCookies:      cfg.SecureCookies,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}
	log.Debug("dropping %d live study sessions", studyStore.Len())

	log.Info("===========================================")
	log.Info("FlashyCardy Server Stopped")
	log.Info("===========================================")
}
