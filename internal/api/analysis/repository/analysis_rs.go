package analysisRepository

import (
	"DietApp/internal/api/analysis"
	"DietApp/internal/entity"
	contextPkg "DietApp/pkg/context"
	"DietApp/pkg/somatotype"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type BodyAnalysisDB struct {
	ID              string          `db:"id"`
	Source          string          `db:"source"`
	WeightKg        float64         `db:"weight_kg"`
	HeightCm        float64         `db:"height_cm"`
	Age             sql.NullInt64   `db:"age"`
	Gender          sql.NullString  `db:"gender"`
	ShoulderWidthCm float64         `db:"shoulder_width_cm"`
	HipWidthCm      float64         `db:"hip_width_cm"`
	TorsoLengthCm   float64         `db:"torso_length_cm"`
	ScaleCmPerPx    sql.NullFloat64 `db:"scale_cm_per_px"`
	MesoScale       float64         `db:"meso_scale"`
	Endomorphy      float64         `db:"endomorphy"`
	Mesomorphy      float64         `db:"mesomorphy"`
	Ectomorphy      float64         `db:"ectomorphy"`
	Dominant        string          `db:"dominant"`
	BMR             sql.NullInt64   `db:"bmr"`
	PhotoURL        sql.NullString  `db:"photo_url"`
	CreatedAt       time.Time       `db:"created_at"`
}

func (r *analysisRepository) CreateAnalysis(c context.Context, a entity.BodyAnalysis) error {
	requestID := contextPkg.GetRequestID(c)

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	argsKV := map[string]interface{}{
		"id":                a.ID,
		"source":            string(a.Source),
		"weight_kg":         a.WeightKg,
		"height_cm":         a.HeightCm,
		"age":               sql.NullInt64{Int64: int64(a.Age), Valid: a.Age > 0},
		"gender":            sql.NullString{String: a.Gender, Valid: a.Gender != ""},
		"shoulder_width_cm": a.ShoulderWidthCm,
		"hip_width_cm":      a.HipWidthCm,
		"torso_length_cm":   a.TorsoLengthCm,
		"scale_cm_per_px":   sql.NullFloat64{Float64: a.ScaleCmPerPx, Valid: a.ScaleCmPerPx > 0},
		"meso_scale":        a.MesoScale,
		"endomorphy":        a.Endomorphy,
		"mesomorphy":        a.Mesomorphy,
		"ectomorphy":        a.Ectomorphy,
		"dominant":          string(a.Dominant),
		"bmr":               sql.NullInt64{Int64: int64(a.BMR), Valid: a.BMR > 0},
		"photo_url":         sql.NullString{String: a.PhotoURL, Valid: a.PhotoURL != ""},
		"created_at":        createdAt,
	}

	query, args, err := sqlx.Named(queryCreateAnalysis, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateAnalysis")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating analysis")
		return err
	}

	return nil
}

func (r *analysisRepository) GetAnalysisByID(c context.Context, id string) (entity.BodyAnalysis, error) {
	requestID := contextPkg.GetRequestID(c)
	var row BodyAnalysisDB

	query, args, err := sqlx.Named(queryGetAnalysisByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAnalysisByID named query preparation err")
		return entity.BodyAnalysis{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetAnalysisByID no rows found")
			return entity.BodyAnalysis{}, analysis.ErrAnalysisNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAnalysisByID execution err")
		return entity.BodyAnalysis{}, err
	}

	return r.makeBodyAnalysis(row), nil
}

func (r *analysisRepository) ListRecentAnalyses(c context.Context, limit int) ([]entity.BodyAnalysis, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []BodyAnalysisDB

	query, args, err := sqlx.Named(queryListRecentAnalyses, map[string]interface{}{
		"limit": limit,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRecentAnalyses named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRecentAnalyses execution err")
		return nil, err
	}

	analyses := make([]entity.BodyAnalysis, 0, len(rows))
	for _, row := range rows {
		analyses = append(analyses, r.makeBodyAnalysis(row))
	}

	return analyses, nil
}

func (r *analysisRepository) makeBodyAnalysis(row BodyAnalysisDB) entity.BodyAnalysis {
	return entity.BodyAnalysis{
		ID:              row.ID,
		Source:          entity.AnalysisSource(row.Source),
		WeightKg:        row.WeightKg,
		HeightCm:        row.HeightCm,
		Age:             int(row.Age.Int64),
		Gender:          row.Gender.String,
		ShoulderWidthCm: row.ShoulderWidthCm,
		HipWidthCm:      row.HipWidthCm,
		TorsoLengthCm:   row.TorsoLengthCm,
		ScaleCmPerPx:    row.ScaleCmPerPx.Float64,
		MesoScale:       row.MesoScale,
		Endomorphy:      row.Endomorphy,
		Mesomorphy:      row.Mesomorphy,
		Ectomorphy:      row.Ectomorphy,
		Dominant:        somatotype.DominantType(row.Dominant),
		BMR:             int(row.BMR.Int64),
		PhotoURL:        row.PhotoURL.String,
		CreatedAt:       row.CreatedAt,
	}
}
