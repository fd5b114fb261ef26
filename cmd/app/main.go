package main

import (
	"DietApp/internal/config"
	"DietApp/pkg/log"
	"DietApp/pkg/pose"
	"DietApp/pkg/redis"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	envErr := config.LoadEnv()

	logger := log.NewLogger()
	if envErr != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", envErr)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()
	poseDetector := pose.New(logger)

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithS3Client(),
		config.WithPoseDetector(poseDetector),
		config.WithDietGenerator(),
		config.WithUtils(),
		config.WithMiddleware(),
		config.WithEstimator(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
