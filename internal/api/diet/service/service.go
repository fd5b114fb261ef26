package dietService

import (
	"DietApp/internal/api/diet"
	analysisService "DietApp/internal/api/analysis/service"
	dietRepository "DietApp/internal/api/diet/repository"
	"DietApp/internal/entity"
	"DietApp/pkg/redis"
	"DietApp/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

// Generator turns a prompt into raw model output.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Provider() string
}

type IDietService interface {
	GenerateFromMeasurements(ctx context.Context, req diet.GenerateDietRequest) (diet.DietResponse, error)
	GenerateFromPhoto(ctx context.Context, req diet.GenerateDietPhotoRequest, image []byte, contentType string) (diet.DietResponse, error)
	GetPlan(ctx context.Context, id string) (entity.DietPlanRecord, error)
}

type Config struct {
	GenerateTimeout time.Duration
	CacheTTL        time.Duration
}

type dietService struct {
	log             *logrus.Logger
	dietRepository  dietRepository.Repository
	analysisService analysisService.IAnalysisService
	generator       Generator
	cache           redis.IRedis
	utils           utils.IUtils
	cfg             Config
}

// NewDietService wires the diet pipeline. cache may be nil to disable plan caching.
func NewDietService(
	log *logrus.Logger,
	dr dietRepository.Repository,
	as analysisService.IAnalysisService,
	generator Generator,
	cache redis.IRedis,
	utils utils.IUtils,
	cfg Config,
) IDietService {
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}

	return &dietService{
		log:             log,
		dietRepository:  dr,
		analysisService: as,
		generator:       generator,
		cache:           cache,
		utils:           utils,
		cfg:             cfg,
	}
}
