package analysisService

import (
	"DietApp/internal/api/analysis"
	"DietApp/internal/entity"
	contextPkg "DietApp/pkg/context"
	"DietApp/pkg/somatotype"
	"DietApp/pkg/utils"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

const maxListLimit = 100

func (s *analysisService) AnalyzeManual(ctx context.Context, req analysis.SomatotypeRequest) (entity.BodyAnalysis, error) {
	requestID := contextPkg.GetRequestID(ctx)

	a, err := s.ScoreManual(ctx, req)
	if err != nil {
		return entity.BodyAnalysis{}, err
	}

	if err := s.save(ctx, &a); err != nil {
		return entity.BodyAnalysis{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         a.ID,
		"dominant":   a.Dominant,
	}).Info("Manual analysis completed")

	return a, nil
}

func (s *analysisService) AnalyzePhoto(ctx context.Context, req analysis.PhotoAnalysisRequest, image []byte, contentType string) (entity.BodyAnalysis, error) {
	requestID := contextPkg.GetRequestID(ctx)

	a, err := s.ScorePhoto(ctx, req, image)
	if err != nil {
		return entity.BodyAnalysis{}, err
	}

	id, err := s.newID(ctx)
	if err != nil {
		return entity.BodyAnalysis{}, err
	}
	a.ID = id
	a.PhotoURL = s.ArchivePhoto(ctx, id, image, contentType)

	if err := s.save(ctx, &a); err != nil {
		s.DeletePhoto(ctx, a.PhotoURL)
		return entity.BodyAnalysis{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"id":         a.ID,
		"dominant":   a.Dominant,
		"scale":      a.ScaleCmPerPx,
	}).Info("Photo analysis completed")

	s.presignPhoto(ctx, &a)
	return a, nil
}

func (s *analysisService) ScoreManual(ctx context.Context, req analysis.SomatotypeRequest) (entity.BodyAnalysis, error) {
	a := entity.BodyAnalysis{
		Source:          entity.AnalysisSourceManual,
		WeightKg:        req.WeightKg,
		HeightCm:        req.HeightCm,
		Age:             req.Age,
		Gender:          req.Gender,
		ShoulderWidthCm: req.ShoulderWidthCm,
		HipWidthCm:      req.HipWidthCm,
		TorsoLengthCm:   req.TorsoLengthCm,
	}

	if err := s.score(&a, req.MesoScale); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Manual analysis rejected")
		return entity.BodyAnalysis{}, err
	}

	return a, nil
}

func (s *analysisService) ScorePhoto(ctx context.Context, req analysis.PhotoAnalysisRequest, image []byte) (entity.BodyAnalysis, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.HeightCm <= 0 || req.WeightKg <= 0 {
		return entity.BodyAnalysis{}, fmt.Errorf("%w: weight and height must be positive", somatotype.ErrInvalidInput)
	}

	landmarks, err := s.detector.Detect(ctx, image)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Pose detection failed")
		return entity.BodyAnalysis{}, err
	}

	measurements, scale, err := somatotype.Measure(landmarks, req.HeightCm)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Calibration failed")
		return entity.BodyAnalysis{}, err
	}

	a := entity.BodyAnalysis{
		Source:          entity.AnalysisSourcePhoto,
		WeightKg:        req.WeightKg,
		HeightCm:        req.HeightCm,
		Age:             req.Age,
		Gender:          req.Gender,
		ShoulderWidthCm: measurements.ShoulderWidthCm,
		HipWidthCm:      measurements.HipWidthCm,
		TorsoLengthCm:   measurements.TorsoLengthCm,
		ScaleCmPerPx:    float64(scale),
	}

	if err := s.score(&a, req.MesoScale); err != nil {
		return entity.BodyAnalysis{}, err
	}

	return a, nil
}

func (s *analysisService) ArchivePhoto(ctx context.Context, id string, image []byte, contentType string) string {
	if s.s3 == nil {
		return ""
	}

	location, err := s.s3.UploadPhoto(ctx, fmt.Sprintf("%s.%s", id, utils.ImageExtension(contentType)), image, contentType)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to archive analysis photo, continuing without it")
		return ""
	}

	return location
}

func (s *analysisService) DeletePhoto(ctx context.Context, location string) {
	if s.s3 == nil || location == "" {
		return
	}

	if err := s.s3.DeleteFile(ctx, location); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to delete archived photo")
	}
}

func (s *analysisService) GetAnalysis(ctx context.Context, id string) (entity.BodyAnalysis, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if id == "" {
		return entity.BodyAnalysis{}, analysis.ErrInvalidAnalysisID
	}

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.BodyAnalysis{}, err
	}

	a, err := repo.Analysis.GetAnalysisByID(ctx, id)
	if err != nil {
		return entity.BodyAnalysis{}, err
	}

	s.presignPhoto(ctx, &a)
	return a, nil
}

func (s *analysisService) ListAnalyses(ctx context.Context, limit int) ([]entity.BodyAnalysis, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 || limit > maxListLimit {
		limit = 20
	}

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	analyses, err := repo.Analysis.ListRecentAnalyses(ctx, limit)
	if err != nil {
		return nil, err
	}

	for i := range analyses {
		s.presignPhoto(ctx, &analyses[i])
	}

	return analyses, nil
}

// presignPhoto swaps the stored bucket location for a short-lived download
// link. The bucket is private, so an unsignable location is dropped.
func (s *analysisService) presignPhoto(ctx context.Context, a *entity.BodyAnalysis) {
	if a.PhotoURL == "" {
		return
	}
	if s.s3 == nil {
		a.PhotoURL = ""
		return
	}

	signed, err := s.s3.PresignUrl(ctx, a.PhotoURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id":         a.ID,
			"error":      err.Error(),
		}).Warn("Failed to presign analysis photo")
		a.PhotoURL = ""
		return
	}

	a.PhotoURL = signed
}

// score fills the somatotype, dominant type and, when age and gender are
// known, the BMR of a. A non-positive mesoScale selects the service default.
func (s *analysisService) score(a *entity.BodyAnalysis, mesoScale float64) error {
	if mesoScale <= 0 {
		mesoScale = s.estimator.MesoScale()
	}

	scores, err := somatotype.EstimateWithScale(somatotype.Anthropometry{
		WeightKg:        a.WeightKg,
		HeightCm:        a.HeightCm,
		ShoulderWidthCm: a.ShoulderWidthCm,
		HipWidthCm:      a.HipWidthCm,
		TorsoLengthCm:   a.TorsoLengthCm,
	}, mesoScale)
	if err != nil {
		return err
	}

	a.MesoScale = mesoScale
	a.Endomorphy = scores.Endomorphy
	a.Mesomorphy = scores.Mesomorphy
	a.Ectomorphy = scores.Ectomorphy
	a.Dominant = scores.Dominant()

	if a.Age > 0 && a.Gender != "" {
		bmr, err := somatotype.BMR(somatotype.ParseSex(a.Gender), a.WeightKg, a.HeightCm, a.Age)
		if err != nil {
			return err
		}
		a.BMR = bmr
	}

	return nil
}

func (s *analysisService) newID(ctx context.Context) (string, error) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return "", err
	}
	return id, nil
}

func (s *analysisService) save(ctx context.Context, a *entity.BodyAnalysis) error {
	requestID := contextPkg.GetRequestID(ctx)

	if a.ID == "" {
		id, err := s.newID(ctx)
		if err != nil {
			return err
		}
		a.ID = id
	}
	a.CreatedAt = time.Now().UTC()

	repo, err := s.analysisRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return errors.Join(analysis.ErrCreateAnalysis, err)
	}

	if err := repo.Analysis.CreateAnalysis(ctx, *a); err != nil {
		return errors.Join(analysis.ErrCreateAnalysis, err)
	}

	return nil
}
