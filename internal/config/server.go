package config

import (
	"DietApp/database/postgres"
	analysisHandler "DietApp/internal/api/analysis/handler"
	analysisRepository "DietApp/internal/api/analysis/repository"
	analysisService "DietApp/internal/api/analysis/service"
	dietHandler "DietApp/internal/api/diet/handler"
	dietRepository "DietApp/internal/api/diet/repository"
	dietService "DietApp/internal/api/diet/service"
	"DietApp/internal/middleware"
	"DietApp/pkg/gemini"
	"DietApp/pkg/openai"
	"DietApp/pkg/pose"
	"DietApp/pkg/redis"
	"DietApp/pkg/s3"
	"DietApp/pkg/somatotype"
	"DietApp/pkg/utils"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
	"strings"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine        *fiber.App
	db            *sqlx.DB
	log           *logrus.Logger
	middleware    middleware.Middleware
	validator     *validator.Validate
	utils         utils.IUtils
	handlers      []handler
	redisServer   redis.IRedis
	s3Client      s3.ItfS3
	poseDetector  pose.IDetector
	dietGenerator dietService.Generator
	estimator     *somatotype.Estimator
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithS3Client enables photo archiving. A missing bucket leaves it disabled.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if errors.Is(err, s3.ErrBucketNotConfigured) {
			if s.log != nil {
				s.log.Warn("AWS_BUCKET_NAME not set, analysis photos will not be archived")
			}
			return nil
		}
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithPoseDetector(detector pose.IDetector) ServerOption {
	return func(s *Server) error {
		s.poseDetector = detector
		return nil
	}
}

// WithDietGenerator picks the plan generator from DIET_PROVIDER (gemini or openai).
func WithDietGenerator() ServerOption {
	return func(s *Server) error {
		provider := strings.ToLower(strings.TrimSpace(os.Getenv("DIET_PROVIDER")))

		var (
			generator dietService.Generator
			err       error
		)
		switch provider {
		case "", "gemini":
			generator, err = gemini.NewGeminiClient()
		case "openai":
			generator, err = openai.NewChatGPT()
		default:
			return fmt.Errorf("unknown DIET_PROVIDER %q", provider)
		}

		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create diet generator: %v", err)
			}
			return fmt.Errorf("failed to create diet generator: %w", err)
		}

		s.dietGenerator = generator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.utils == nil {
			s.utils = utils.New()
		}
		s.middleware = middleware.New(s.log, s.utils, middleware.Config{
			RateLimit: 1,
			Burst:     5,
		})
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		if s.utils == nil {
			s.utils = utils.New()
		}
		return nil
	}
}

// WithEstimator reads the mesomorphy calibration constant from SOMATOTYPE_MESO_SCALE.
func WithEstimator() ServerOption {
	return func(s *Server) error {
		s.estimator = somatotype.NewEstimator(envFloat("SOMATOTYPE_MESO_SCALE", somatotype.DefaultMesoScale))
		return nil
	}
}

func (s *Server) RegisterHandler() {
	if s.estimator == nil {
		s.estimator = somatotype.NewEstimator(somatotype.DefaultMesoScale)
	}

	// Analysis Domain
	analysisRepo := analysisRepository.New(s.db, s.log)
	analysisServices := analysisService.NewAnalysisService(s.log, analysisRepo, s.poseDetector, s.estimator, s.s3Client, s.utils)
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices, s.utils)

	// Diet Domain
	generateTimeout := envDuration("DIET_TIMEOUT_SECONDS", time.Second, 60*time.Second)
	dietRepo := dietRepository.New(s.db, s.log)
	dietServices := dietService.NewDietService(s.log, dietRepo, analysisServices, s.dietGenerator, s.redisServer, s.utils, dietService.Config{
		GenerateTimeout: generateTimeout,
		CacheTTL:        envDuration("DIET_CACHE_TTL_HOURS", time.Hour, 24*time.Hour),
	})
	dietHandlers := dietHandler.New(s.log, s.validator, s.middleware, dietServices, s.utils, generateTimeout+30*time.Second)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, analysisHandlers, dietHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggerMiddleware())

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests and releases long-lived clients.
func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	if s.poseDetector != nil {
		s.poseDetector.Close()
	}
	if closer, ok := s.dietGenerator.(interface{ Close() }); ok {
		closer.Close()
	}
	if s.db != nil {
		if dbErr := s.db.Close(); dbErr != nil {
			err = errors.Join(err, dbErr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		poseConnected := s.poseDetector != nil && s.poseDetector.IsConnected()
		return ctx.JSON(fiber.Map{
			"status":             "Diet App API running",
			"pose_service_ready": poseConnected,
			"photo_archive":      s.s3Client != nil,
		})
	})
}
