package dietService

import (
	"DietApp/internal/api/analysis"
	"DietApp/internal/api/diet"
	dietRepository "DietApp/internal/api/diet/repository"
	"DietApp/internal/entity"
	"DietApp/pkg/somatotype"
	"DietApp/pkg/utils"
	"context"
	"sync"
	"time"
)

const samplePlanJSON = `{
  "analisis_inicial": {
    "interpretacion_somatotipo": "Predominio endomorfo con buena base muscular.",
    "estrategia_economica": "Legumbres y huevos como base proteica."
  },
  "resumen_nutricional": {
    "calorias_diarias_objetivo": 2000,
    "macros": { "proteina_g": 140, "carbos_g": 200, "grasa_g": 60 }
  },
  "plan_semanal_rotativo": {
    "dia_1": { "desayuno": "2 huevos MEDIANOS", "almuerzo": "150g de pollo", "cena": "200g de lentejas", "snack": "1 manzana MEDIANA" },
    "dia_6_flexible": { "desayuno": "LIBRE", "almuerzo": "LIBRE", "cena": "LIGERA", "snack": "Opcional" }
  },
  "lista_compras_semanal": ["huevos", "pollo", "lentejas"]
}`

type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	delay    time.Duration
	prompts  []string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.response, f.err
}

func (f *fakeGenerator) Provider() string { return "fake:model" }

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type fakeAnalysisService struct {
	result   entity.BodyAnalysis
	err      error
	manual   []analysis.SomatotypeRequest
	photos   int
	archived []string
	deleted  []string
}

func (f *fakeAnalysisService) ScoreManual(ctx context.Context, req analysis.SomatotypeRequest) (entity.BodyAnalysis, error) {
	f.manual = append(f.manual, req)
	return f.result, f.err
}

func (f *fakeAnalysisService) ScorePhoto(ctx context.Context, req analysis.PhotoAnalysisRequest, image []byte) (entity.BodyAnalysis, error) {
	f.photos++
	return f.result, f.err
}

func (f *fakeAnalysisService) ArchivePhoto(ctx context.Context, id string, image []byte, contentType string) string {
	location := "https://bucket.s3.amazonaws.com/photos/" + id
	f.archived = append(f.archived, location)
	return location
}

func (f *fakeAnalysisService) DeletePhoto(ctx context.Context, location string) {
	if location != "" {
		f.deleted = append(f.deleted, location)
	}
}

func (f *fakeAnalysisService) AnalyzeManual(ctx context.Context, req analysis.SomatotypeRequest) (entity.BodyAnalysis, error) {
	panic("unexpected AnalyzeManual call")
}

func (f *fakeAnalysisService) AnalyzePhoto(ctx context.Context, req analysis.PhotoAnalysisRequest, image []byte, contentType string) (entity.BodyAnalysis, error) {
	panic("unexpected AnalyzePhoto call")
}

func (f *fakeAnalysisService) GetAnalysis(ctx context.Context, id string) (entity.BodyAnalysis, error) {
	return f.result, f.err
}

func (f *fakeAnalysisService) ListAnalyses(ctx context.Context, limit int) ([]entity.BodyAnalysis, error) {
	return nil, nil
}

func (f *fakeAnalysisService) InspectFrame(ctx context.Context, frame []byte, heightCm float64) entity.FrameInspection {
	return entity.FrameInspection{}
}

// fakeDB keeps committed rows. Writes made through a client only land here
// when the client commits.
type fakeDB struct {
	analyses  []entity.BodyAnalysis
	plans     []entity.DietPlanRecord
	planErr   error
	commitErr error
	txs       int
}

type fakeClient struct {
	db       *fakeDB
	analyses []entity.BodyAnalysis
	plans    []entity.DietPlanRecord
}

func (c *fakeClient) CreateAnalysis(ctx context.Context, a entity.BodyAnalysis) error {
	c.analyses = append(c.analyses, a)
	return nil
}

func (c *fakeClient) GetAnalysisByID(ctx context.Context, id string) (entity.BodyAnalysis, error) {
	for _, a := range c.db.analyses {
		if a.ID == id {
			return a, nil
		}
	}
	return entity.BodyAnalysis{}, analysis.ErrAnalysisNotFound
}

func (c *fakeClient) ListRecentAnalyses(ctx context.Context, limit int) ([]entity.BodyAnalysis, error) {
	return append([]entity.BodyAnalysis(nil), c.db.analyses...), nil
}

func (c *fakeClient) CreatePlan(ctx context.Context, plan entity.DietPlanRecord) error {
	if c.db.planErr != nil {
		return c.db.planErr
	}
	c.plans = append(c.plans, plan)
	return nil
}

func (c *fakeClient) GetPlanByID(ctx context.Context, id string) (entity.DietPlanRecord, error) {
	for _, p := range c.db.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.DietPlanRecord{}, diet.ErrPlanNotFound
}

func (c *fakeClient) commit() error {
	if c.db.commitErr != nil {
		return c.db.commitErr
	}
	c.db.analyses = append(c.db.analyses, c.analyses...)
	c.db.plans = append(c.db.plans, c.plans...)
	c.analyses, c.plans = nil, nil
	return nil
}

func (c *fakeClient) rollback() error {
	c.analyses, c.plans = nil, nil
	return nil
}

type fakeRepository struct {
	db *fakeDB
}

func (r fakeRepository) NewClient(tx bool) (dietRepository.Client, error) {
	if tx {
		r.db.txs++
	}
	c := &fakeClient{db: r.db}
	return dietRepository.Client{Plan: c, Analysis: c, Commit: c.commit, Rollback: c.rollback}, nil
}

func sampleAnalysis() entity.BodyAnalysis {
	return entity.BodyAnalysis{
		Source:          entity.AnalysisSourceManual,
		WeightKg:        70,
		HeightCm:        175,
		Age:             30,
		Gender:          "male",
		ShoulderWidthCm: 45,
		HipWidthCm:      35,
		TorsoLengthCm:   50,
		MesoScale:       10,
		Endomorphy:      9.0,
		Mesomorphy:      7.4,
		Ectomorphy:      2.5,
		Dominant:        somatotype.Endomorph,
		BMR:             1648,
	}
}

func sampleRequest() diet.GenerateDietRequest {
	return diet.GenerateDietRequest{
		Age:             30,
		Gender:          "male",
		WeightKg:        70,
		HeightCm:        175,
		ActivityLevel:   "moderate",
		Goal:            "lose weight",
		Country:         "Colombia",
		City:            "Medellín",
		ShoulderWidthCm: 45,
		HipWidthCm:      35,
		TorsoLengthCm:   50,
	}
}

func utilsForTest() utils.IUtils {
	return utils.New()
}
