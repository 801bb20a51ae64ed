package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httprouter "github.com/mforoutan/nak-tender-manager-sub001/internal/api/http/router"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/config"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/otp"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/repository/postgres"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/server"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/service"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/sms"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/token"

	httpctx "github.com/mforoutan/nak-tender-manager-sub001/internal/api/http/context"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/api/http/handler"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	if cfg.Production() && len(cfg.Session.Secret) < token.MinSecretLen {
		logger.Fatal("refusing to start: production requires a session secret of at least 32 bytes")
	}
	if cfg.Session.Secret == "" {
		logger.Warn("no session secret configured, using the fixed development key")
	}

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	factRepo := postgres.NewFactRepository(db)
	tokenManager := token.NewJWTWithTTL(cfg.Session.Secret, time.Duration(cfg.Session.TTLDays)*24*time.Hour)

	otpStore := otp.NewMemory(time.Duration(cfg.OTP.SweepIntervalSeconds)*time.Second, logger)
	defer otpStore.Close()

	var smsSender model.SMSSender
	if cfg.SMS.GatewayURL != "" {
		smsSender = sms.NewGatewaySender(cfg.SMS.GatewayURL, cfg.SMS.APIKey, cfg.SMS.Sender, logger)
	} else {
		smsSender = sms.NewLogSender(logger)
	}

	authService := service.NewAuth(userRepo, factRepo, logger)
	otpService := service.NewOTP(otpStore, userRepo, smsSender, logger)
	ctxMgr := httpctx.NewManager()

	cookie := handler.CookieSettings{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Production(),
		MaxAge: time.Duration(cfg.Session.TTLDays) * 24 * time.Hour,
	}

	r := httprouter.New(authService, otpService, db, tokenManager, ctxMgr, cookie, !cfg.Production(), logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
