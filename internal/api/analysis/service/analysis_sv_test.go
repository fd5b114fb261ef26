package analysisService

import (
	"DietApp/internal/api/analysis"
	analysisRepository "DietApp/internal/api/analysis/repository"
	"DietApp/internal/entity"
	"DietApp/pkg/pose"
	"DietApp/pkg/somatotype"
	"DietApp/pkg/utils"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	landmarks somatotype.PoseLandmarks
	err       error
	calls     int
}

func (f *fakeDetector) Detect(ctx context.Context, image []byte) (somatotype.PoseLandmarks, error) {
	f.calls++
	return f.landmarks, f.err
}
func (f *fakeDetector) IsConnected() bool { return true }
func (f *fakeDetector) Reconnect() error  { return nil }
func (f *fakeDetector) Close()            {}

type fakeAnalysisStore struct {
	saved     []entity.BodyAnalysis
	createErr error
}

func (f *fakeAnalysisStore) CreateAnalysis(c context.Context, a entity.BodyAnalysis) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeAnalysisStore) GetAnalysisByID(c context.Context, id string) (entity.BodyAnalysis, error) {
	for _, a := range f.saved {
		if a.ID == id {
			return a, nil
		}
	}
	return entity.BodyAnalysis{}, analysis.ErrAnalysisNotFound
}

func (f *fakeAnalysisStore) ListRecentAnalyses(c context.Context, limit int) ([]entity.BodyAnalysis, error) {
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	return append([]entity.BodyAnalysis(nil), f.saved[:limit]...), nil
}

type fakeRepository struct {
	store *fakeAnalysisStore
}

func (r fakeRepository) NewClient(tx bool) (analysisRepository.Client, error) {
	noop := func() error { return nil }
	return analysisRepository.Client{Analysis: r.store, Commit: noop, Rollback: noop}, nil
}

type fakeS3 struct {
	uploaded   []string
	deleted    []string
	err        error
	presignErr error
}

func (f *fakeS3) UploadPhoto(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, key)
	return "https://bucket.s3.amazonaws.com/photos/" + key, nil
}
func (f *fakeS3) PresignUrl(ctx context.Context, fileUrl string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return fileUrl + "?X-Amz-Signature=test", nil
}

func (f *fakeS3) DeleteFile(ctx context.Context, fileName string) error {
	f.deleted = append(f.deleted, fileName)
	return nil
}

func frontalPose() somatotype.PoseLandmarks {
	return somatotype.PoseLandmarks{
		Nose:          somatotype.Point{X: 150, Y: 100},
		LeftShoulder:  somatotype.Point{X: 100, Y: 250},
		RightShoulder: somatotype.Point{X: 200, Y: 250},
		LeftHip:       somatotype.Point{X: 120, Y: 400},
		RightHip:      somatotype.Point{X: 180, Y: 400},
		LeftHeel:      somatotype.Point{X: 130, Y: 690},
		RightHeel:     somatotype.Point{X: 170, Y: 710},
	}
}

type fixture struct {
	svc      IAnalysisService
	store    *fakeAnalysisStore
	detector *fakeDetector
	s3       *fakeS3
}

func setup(t *testing.T, withS3 bool) fixture {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := fixture{
		store:    &fakeAnalysisStore{},
		detector: &fakeDetector{landmarks: frontalPose()},
		s3:       &fakeS3{},
	}

	if withS3 {
		f.svc = NewAnalysisService(logger, fakeRepository{f.store}, f.detector, somatotype.NewEstimator(0), f.s3, utils.New())
	} else {
		f.svc = NewAnalysisService(logger, fakeRepository{f.store}, f.detector, somatotype.NewEstimator(0), nil, utils.New())
	}
	return f
}

func TestAnalyzeManual(t *testing.T) {
	f := setup(t, false)

	got, err := f.svc.AnalyzeManual(context.Background(), analysis.SomatotypeRequest{
		WeightKg:        70,
		HeightCm:        175,
		Age:             30,
		Gender:          "male",
		ShoulderWidthCm: 45,
		HipWidthCm:      35,
		TorsoLengthCm:   50,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, entity.AnalysisSourceManual, got.Source)
	assert.Equal(t, somatotype.Scores{Endomorphy: 9.0, Mesomorphy: 7.4, Ectomorphy: 2.5}, got.Scores())
	assert.Equal(t, somatotype.Endomorph, got.Dominant)
	assert.Equal(t, 1648, got.BMR)
	assert.Equal(t, somatotype.DefaultMesoScale, got.MesoScale)
	require.Len(t, f.store.saved, 1)
	assert.Equal(t, got.ID, f.store.saved[0].ID)
}

func TestAnalyzeManual_CustomMesoScale(t *testing.T) {
	f := setup(t, false)

	got, err := f.svc.AnalyzeManual(context.Background(), analysis.SomatotypeRequest{
		WeightKg:        70,
		HeightCm:        175,
		ShoulderWidthCm: 45,
		HipWidthCm:      35,
		TorsoLengthCm:   50,
		MesoScale:       5,
	})
	require.NoError(t, err)

	assert.Equal(t, 3.7, got.Mesomorphy)
	assert.Equal(t, 5.0, got.MesoScale)
	assert.Zero(t, got.BMR)
}

func TestAnalyzeManual_InvalidInputIsNotPersisted(t *testing.T) {
	f := setup(t, false)

	_, err := f.svc.AnalyzeManual(context.Background(), analysis.SomatotypeRequest{
		WeightKg: 70,
		HeightCm: 0,
	})

	assert.ErrorIs(t, err, somatotype.ErrInvalidInput)
	assert.Empty(t, f.store.saved)
}

func TestAnalyzeManual_SaveFailure(t *testing.T) {
	f := setup(t, false)
	f.store.createErr = errors.New("db down")

	_, err := f.svc.AnalyzeManual(context.Background(), analysis.SomatotypeRequest{
		WeightKg: 70, HeightCm: 175, ShoulderWidthCm: 45, HipWidthCm: 35, TorsoLengthCm: 50,
	})

	assert.ErrorIs(t, err, analysis.ErrCreateAnalysis)
}

func TestAnalyzePhoto(t *testing.T) {
	f := setup(t, true)

	got, err := f.svc.AnalyzePhoto(context.Background(), analysis.PhotoAnalysisRequest{
		WeightKg: 80,
		HeightCm: 180,
	}, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, entity.AnalysisSourcePhoto, got.Source)
	assert.InDelta(t, 0.3, got.ScaleCmPerPx, 1e-9)
	assert.Equal(t, 30.0, got.ShoulderWidthCm)
	assert.Equal(t, 18.0, got.HipWidthCm)
	assert.Equal(t, 45.4, got.TorsoLengthCm)
	assert.Equal(t, somatotype.Endomorph, got.Dominant)
	require.Len(t, f.s3.uploaded, 1)
	assert.Equal(t, got.ID+".jpg", f.s3.uploaded[0])
	assert.Equal(t, "https://bucket.s3.amazonaws.com/photos/"+got.ID+".jpg?X-Amz-Signature=test", got.PhotoURL)
	require.Len(t, f.store.saved, 1)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/photos/"+got.ID+".jpg", f.store.saved[0].PhotoURL)
}

func TestScore_DoesNotPersist(t *testing.T) {
	f := setup(t, true)

	manual, err := f.svc.ScoreManual(context.Background(), analysis.SomatotypeRequest{
		WeightKg: 70, HeightCm: 175, Age: 30, Gender: "male",
		ShoulderWidthCm: 45, HipWidthCm: 35, TorsoLengthCm: 50,
	})
	require.NoError(t, err)
	assert.Empty(t, manual.ID)
	assert.Equal(t, 1648, manual.BMR)

	photo, err := f.svc.ScorePhoto(context.Background(), analysis.PhotoAnalysisRequest{
		WeightKg: 80, HeightCm: 180,
	}, []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, 30.0, photo.ShoulderWidthCm)
	assert.Empty(t, photo.PhotoURL)

	assert.Empty(t, f.store.saved)
	assert.Empty(t, f.s3.uploaded)
}

func TestArchivePhoto(t *testing.T) {
	t.Run("uploads and deletes", func(t *testing.T) {
		f := setup(t, true)

		location := f.svc.ArchivePhoto(context.Background(), "01HX", []byte("png"), "image/png")
		assert.Equal(t, "https://bucket.s3.amazonaws.com/photos/01HX.png", location)

		f.svc.DeletePhoto(context.Background(), location)
		assert.Equal(t, []string{location}, f.s3.deleted)
	})

	t.Run("disabled without a bucket", func(t *testing.T) {
		f := setup(t, false)

		assert.Empty(t, f.svc.ArchivePhoto(context.Background(), "01HX", []byte("png"), "image/png"))
		f.svc.DeletePhoto(context.Background(), "https://bucket.s3.amazonaws.com/photos/01HX.png")
		assert.Empty(t, f.s3.deleted)
	})
}

func TestAnalyzePhoto_UploadFailureIsNotFatal(t *testing.T) {
	f := setup(t, true)
	f.s3.err = errors.New("access denied")

	got, err := f.svc.AnalyzePhoto(context.Background(), analysis.PhotoAnalysisRequest{
		WeightKg: 80, HeightCm: 180,
	}, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Empty(t, got.PhotoURL)
	assert.Len(t, f.store.saved, 1)
}

func TestAnalyzePhoto_SaveFailureRemovesPhoto(t *testing.T) {
	f := setup(t, true)
	f.store.createErr = errors.New("db down")

	_, err := f.svc.AnalyzePhoto(context.Background(), analysis.PhotoAnalysisRequest{
		WeightKg: 80, HeightCm: 180,
	}, []byte("jpeg-bytes"), "image/jpeg")

	assert.ErrorIs(t, err, analysis.ErrCreateAnalysis)
	assert.Len(t, f.s3.deleted, 1)
}

func TestAnalyzePhoto_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     analysis.PhotoAnalysisRequest
		detect  func(*fakeDetector)
		wantErr error
		detects bool
	}{
		{
			name:    "non-positive height rejected before detection",
			req:     analysis.PhotoAnalysisRequest{WeightKg: 80, HeightCm: 0},
			wantErr: somatotype.ErrInvalidInput,
		},
		{
			name:    "no person",
			req:     analysis.PhotoAnalysisRequest{WeightKg: 80, HeightCm: 180},
			detect:  func(d *fakeDetector) { d.err = pose.ErrNoPersonDetected },
			wantErr: pose.ErrNoPersonDetected,
			detects: true,
		},
		{
			name: "degenerate pose",
			req:  analysis.PhotoAnalysisRequest{WeightKg: 80, HeightCm: 180},
			detect: func(d *fakeDetector) {
				lm := frontalPose()
				lm.Nose.Y = 700
				d.landmarks = lm
			},
			wantErr: somatotype.ErrDegeneratePose,
			detects: true,
		},
		{
			name:    "service down",
			req:     analysis.PhotoAnalysisRequest{WeightKg: 80, HeightCm: 180},
			detect:  func(d *fakeDetector) { d.err = pose.ErrServiceUnavailable },
			wantErr: pose.ErrServiceUnavailable,
			detects: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, true)
			if tt.detect != nil {
				tt.detect(f.detector)
			}

			_, err := f.svc.AnalyzePhoto(context.Background(), tt.req, []byte("img"), "image/jpeg")

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.detects, f.detector.calls > 0)
			assert.Empty(t, f.store.saved)
			assert.Empty(t, f.s3.uploaded)
		})
	}
}

func TestGetAnalysis(t *testing.T) {
	f := setup(t, false)

	_, err := f.svc.GetAnalysis(context.Background(), "")
	assert.ErrorIs(t, err, analysis.ErrInvalidAnalysisID)

	_, err = f.svc.GetAnalysis(context.Background(), "missing")
	assert.ErrorIs(t, err, analysis.ErrAnalysisNotFound)

	saved, err := f.svc.AnalyzeManual(context.Background(), analysis.SomatotypeRequest{
		WeightKg: 70, HeightCm: 175, ShoulderWidthCm: 45, HipWidthCm: 35, TorsoLengthCm: 50,
	})
	require.NoError(t, err)

	got, err := f.svc.GetAnalysis(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
}

func TestGetAnalysis_PresignsPhoto(t *testing.T) {
	stored := entity.BodyAnalysis{ID: "01HXPHOTO", PhotoURL: "https://bucket.s3.amazonaws.com/photos/2026-01-02/01HXPHOTO.jpg"}

	t.Run("signed link", func(t *testing.T) {
		f := setup(t, true)
		f.store.saved = []entity.BodyAnalysis{stored}

		got, err := f.svc.GetAnalysis(context.Background(), "01HXPHOTO")
		require.NoError(t, err)
		assert.Equal(t, stored.PhotoURL+"?X-Amz-Signature=test", got.PhotoURL)

		list, err := f.svc.ListAnalyses(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, stored.PhotoURL+"?X-Amz-Signature=test", list[0].PhotoURL)
		assert.Equal(t, stored.PhotoURL, f.store.saved[0].PhotoURL)
	})

	t.Run("presign failure hides the bucket location", func(t *testing.T) {
		f := setup(t, true)
		f.store.saved = []entity.BodyAnalysis{stored}
		f.s3.presignErr = errors.New("no such key")

		got, err := f.svc.GetAnalysis(context.Background(), "01HXPHOTO")
		require.NoError(t, err)
		assert.Empty(t, got.PhotoURL)
	})

	t.Run("archive disabled", func(t *testing.T) {
		f := setup(t, false)
		f.store.saved = []entity.BodyAnalysis{stored}

		got, err := f.svc.GetAnalysis(context.Background(), "01HXPHOTO")
		require.NoError(t, err)
		assert.Empty(t, got.PhotoURL)
	})
}

func TestListAnalyses_ClampsLimit(t *testing.T) {
	f := setup(t, false)

	got, err := f.svc.ListAnalyses(context.Background(), 1000)
	require.NoError(t, err)
	assert.Empty(t, got)
}
