package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodforall/internal/db"
	"foodforall/internal/server"
	"foodforall/internal/storage"
	"foodforall/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	var uploads storage.Store
	switch config.StorageBackend {
	case "s3":
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}
		uploads = storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.S3Bucket)
	case "local":
		uploads, err = storage.NewLocalStorage(config.UploadDir)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown storage backend %q", config.StorageBackend)
	}

	userRepo := store.NewUserRepository(pool)
	donationRepo := store.NewDonationRepository(pool)
	requestRepo := store.NewRequestRepository(pool)
	feedbackRepo := store.NewFeedbackRepository(pool)
	referralRepo := store.NewReferralRepository(pool)
	leaderboardRepo := store.NewLeaderboardRepository(pool)

	srv, err := server.New(
		config,
		logger,
		pool,
		uploads,
		userRepo,
		donationRepo,
		requestRepo,
		feedbackRepo,
		referralRepo,
		leaderboardRepo,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
