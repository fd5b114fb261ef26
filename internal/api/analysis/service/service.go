package analysisService

import (
	"DietApp/internal/api/analysis"
	analysisRepository "DietApp/internal/api/analysis/repository"
	"DietApp/internal/entity"
	"DietApp/pkg/pose"
	"DietApp/pkg/s3"
	"DietApp/pkg/somatotype"
	"DietApp/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAnalysisService interface {
	AnalyzeManual(ctx context.Context, req analysis.SomatotypeRequest) (entity.BodyAnalysis, error)
	AnalyzePhoto(ctx context.Context, req analysis.PhotoAnalysisRequest, image []byte, contentType string) (entity.BodyAnalysis, error)
	GetAnalysis(ctx context.Context, id string) (entity.BodyAnalysis, error)
	ListAnalyses(ctx context.Context, limit int) ([]entity.BodyAnalysis, error)
	InspectFrame(ctx context.Context, frame []byte, heightCm float64) entity.FrameInspection

	// ScoreManual and ScorePhoto run the pipeline without persisting anything.
	ScoreManual(ctx context.Context, req analysis.SomatotypeRequest) (entity.BodyAnalysis, error)
	ScorePhoto(ctx context.Context, req analysis.PhotoAnalysisRequest, image []byte) (entity.BodyAnalysis, error)

	// ArchivePhoto returns the stored location, or "" when archiving is
	// disabled or fails.
	ArchivePhoto(ctx context.Context, id string, image []byte, contentType string) string
	DeletePhoto(ctx context.Context, location string)
}

type analysisService struct {
	log                *logrus.Logger
	analysisRepository analysisRepository.Repository
	detector           pose.IDetector
	estimator          *somatotype.Estimator
	s3                 s3.ItfS3
	utils              utils.IUtils
}

// NewAnalysisService wires the analysis pipeline. s3Client may be nil, in which
// case photos are not archived.
func NewAnalysisService(
	log *logrus.Logger,
	ar analysisRepository.Repository,
	detector pose.IDetector,
	estimator *somatotype.Estimator,
	s3Client s3.ItfS3,
	utils utils.IUtils,
) IAnalysisService {
	return &analysisService{
		log:                log,
		analysisRepository: ar,
		detector:           detector,
		estimator:          estimator,
		s3:                 s3Client,
		utils:              utils,
	}
}
