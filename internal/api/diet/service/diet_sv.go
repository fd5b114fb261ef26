package dietService

import (
	"DietApp/internal/api/analysis"
	"DietApp/internal/api/diet"
	"DietApp/internal/entity"
	contextPkg "DietApp/pkg/context"
	"DietApp/pkg/redis"
	"DietApp/pkg/somatotype"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

func (s *dietService) GenerateFromMeasurements(ctx context.Context, req diet.GenerateDietRequest) (diet.DietResponse, error) {
	profile := req.Profile()

	a, err := s.analysisService.ScoreManual(ctx, analysis.SomatotypeRequest{
		WeightKg:        profile.WeightKg,
		HeightCm:        profile.HeightCm,
		Age:             profile.Age,
		Gender:          profile.Gender,
		ShoulderWidthCm: req.ShoulderWidthCm,
		HipWidthCm:      req.HipWidthCm,
		TorsoLengthCm:   req.TorsoLengthCm,
		MesoScale:       req.MesoScale,
	})
	if err != nil {
		return diet.DietResponse{}, err
	}

	return s.generate(ctx, profile, a, nil)
}

func (s *dietService) GenerateFromPhoto(ctx context.Context, req diet.GenerateDietPhotoRequest, image []byte, contentType string) (diet.DietResponse, error) {
	profile := req.Profile()

	a, err := s.analysisService.ScorePhoto(ctx, analysis.PhotoAnalysisRequest{
		WeightKg:  profile.WeightKg,
		HeightCm:  profile.HeightCm,
		Age:       profile.Age,
		Gender:    profile.Gender,
		MesoScale: req.MesoScale,
	}, image)
	if err != nil {
		return diet.DietResponse{}, err
	}

	return s.generate(ctx, profile, a, &photo{data: image, contentType: contentType})
}

func (s *dietService) GetPlan(ctx context.Context, id string) (entity.DietPlanRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if id == "" {
		return entity.DietPlanRecord{}, diet.ErrInvalidPlanID
	}

	repo, err := s.dietRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.DietPlanRecord{}, err
	}

	return repo.Plan.GetPlanByID(ctx, id)
}

type photo struct {
	data        []byte
	contentType string
}

// generate turns a scored, unsaved analysis into a plan. Nothing is stored
// until the generator has produced a valid plan; the analysis and the plan
// are then written in one transaction.
func (s *dietService) generate(ctx context.Context, profile diet.DietProfile, a entity.BodyAnalysis, img *photo) (diet.DietResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	bmr := a.BMR
	if bmr == 0 {
		var err error
		bmr, err = somatotype.BMR(somatotype.ParseSex(profile.Gender), profile.WeightKg, profile.HeightCm, profile.Age)
		if err != nil {
			return diet.DietResponse{}, err
		}
	}

	scores := a.Scores()
	provider := s.generator.Provider()
	fingerprint := Fingerprint(profile, scores, a.Dominant, bmr, provider)

	plan, cached := s.cachedPlan(ctx, fingerprint)
	if !cached {
		var err error
		plan, err = s.requestPlan(ctx, BuildPrompt(profile, scores, a.Dominant, bmr))
		if err != nil {
			return diet.DietResponse{}, err
		}
		s.storeCachedPlan(ctx, fingerprint, plan)
	}

	target := TargetCalories(plan)
	prediction := PredictWeightChange(bmr, profile.ActivityLevel, target)

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return diet.DietResponse{}, err
	}

	analysisID, err := s.newID(ctx)
	if err != nil {
		return diet.DietResponse{}, err
	}
	planID, err := s.newID(ctx)
	if err != nil {
		return diet.DietResponse{}, err
	}

	now := time.Now().UTC()
	a.ID = analysisID
	a.CreatedAt = now

	record := entity.DietPlanRecord{
		ID:                planID,
		AnalysisID:        a.ID,
		Provider:          provider,
		Goal:              profile.Goal,
		ActivityLevel:     profile.ActivityLevel,
		Country:           profile.Country,
		BMR:               bmr,
		TargetCalories:    target,
		PredictedChangeKg: prediction.PredictedChangeKg,
		Plan:              planJSON,
		CreatedAt:         now,
	}

	if img != nil {
		a.PhotoURL = s.analysisService.ArchivePhoto(ctx, a.ID, img.data, img.contentType)
	}

	if err := s.persist(ctx, a, record); err != nil {
		s.analysisService.DeletePhoto(ctx, a.PhotoURL)
		return diet.DietResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"id":          record.ID,
		"analysis_id": a.ID,
		"provider":    provider,
		"cached":      cached,
	}).Info("Diet plan generated")

	return diet.DietResponse{
		ID:         record.ID,
		AnalysisID: a.ID,
		Provider:   provider,
		Cached:     cached,
		UserInfo:   profile,
		BMR:        bmr,
		SomatotypeAnalysis: diet.SomatotypeAnalysis{
			Components:      fmt.Sprintf("Endo: %v, Meso: %v, Ecto: %v", scores.Endomorphy, scores.Mesomorphy, scores.Ectomorphy),
			Scores:          scores,
			DominantProfile: a.Dominant,
		},
		DietPlan:         plan,
		SimplePrediction: prediction,
		CreatedAt:        record.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *dietService) persist(ctx context.Context, a entity.BodyAnalysis, record entity.DietPlanRecord) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.dietRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return errors.Join(diet.ErrCreatePlan, err)
	}
	defer repo.Rollback()

	if err := repo.Analysis.CreateAnalysis(ctx, a); err != nil {
		return errors.Join(analysis.ErrCreateAnalysis, err)
	}

	if err := repo.Plan.CreatePlan(ctx, record); err != nil {
		return errors.Join(diet.ErrCreatePlan, err)
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit diet plan")
		return errors.Join(diet.ErrCreatePlan, err)
	}

	return nil
}

func (s *dietService) newID(ctx context.Context) (string, error) {
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

// requestPlan calls the generator under its own deadline. A timeout or a
// transport failure yields a single error value and no plan.
func (s *dietService) requestPlan(ctx context.Context, prompt string) (diet.DietPlan, error) {
	requestID := contextPkg.GetRequestID(ctx)

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerateTimeout)
	defer cancel()

	start := time.Now()
	raw, err := s.generator.GenerateText(genCtx, prompt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		}).Error("Diet generator failed")

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(genCtx.Err(), context.DeadlineExceeded) {
			return diet.DietPlan{}, diet.ErrGeneratorTimeout
		}
		return diet.DietPlan{}, errors.Join(diet.ErrGeneratorUnavailable, err)
	}

	plan, err := ParsePlan(raw)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"raw_length": len(raw),
		}).Warn("Diet generator returned an unparseable plan")
		return diet.DietPlan{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"elapsed_ms": time.Since(start).Milliseconds(),
		"days":       len(plan.PlanSemanalRotativo),
	}).Debug("Diet generator responded")

	return plan, nil
}

// cachedPlan never fails on cache trouble; a broken cache behaves as a miss.
func (s *dietService) cachedPlan(ctx context.Context, fingerprint string) (diet.DietPlan, bool) {
	if s.cache == nil {
		return diet.DietPlan{}, false
	}

	raw, err := s.cache.GetDietPlan(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Diet plan cache lookup failed")
		}
		return diet.DietPlan{}, false
	}

	plan, err := ParsePlan(raw)
	if err != nil {
		return diet.DietPlan{}, false
	}

	return plan, true
}

func (s *dietService) storeCachedPlan(ctx context.Context, fingerprint string, plan diet.DietPlan) {
	if s.cache == nil {
		return
	}

	b, err := json.Marshal(plan)
	if err != nil {
		return
	}

	if err := s.cache.SetDietPlan(ctx, fingerprint, string(b), s.cfg.CacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to cache diet plan")
	}
}
