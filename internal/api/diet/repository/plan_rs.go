package dietRepository

import (
	"DietApp/internal/api/diet"
	"DietApp/internal/entity"
	contextPkg "DietApp/pkg/context"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type DietPlanDB struct {
	ID                string    `db:"id"`
	AnalysisID        string    `db:"analysis_id"`
	Provider          string    `db:"provider"`
	Goal              string    `db:"goal"`
	ActivityLevel     string    `db:"activity_level"`
	Country           string    `db:"country"`
	BMR               int       `db:"bmr"`
	TargetCalories    int       `db:"target_calories"`
	PredictedChangeKg float64   `db:"predicted_change_kg"`
	Plan              []byte    `db:"plan"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r *planRepository) CreatePlan(c context.Context, plan entity.DietPlanRecord) error {
	requestID := contextPkg.GetRequestID(c)

	createdAt := plan.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	argsKV := map[string]interface{}{
		"id":                  plan.ID,
		"analysis_id":         plan.AnalysisID,
		"provider":            plan.Provider,
		"goal":                plan.Goal,
		"activity_level":      plan.ActivityLevel,
		"country":             plan.Country,
		"bmr":                 plan.BMR,
		"target_calories":     plan.TargetCalories,
		"predicted_change_kg": plan.PredictedChangeKg,
		"plan":                string(plan.Plan),
		"created_at":          createdAt,
	}

	query, args, err := sqlx.Named(queryCreatePlan, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreatePlan")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating diet plan")
		return err
	}

	return nil
}

func (r *planRepository) GetPlanByID(c context.Context, id string) (entity.DietPlanRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var row DietPlanDB

	query, args, err := sqlx.Named(queryGetPlanByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPlanByID named query preparation err")
		return entity.DietPlanRecord{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetPlanByID no rows found")
			return entity.DietPlanRecord{}, diet.ErrPlanNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPlanByID execution err")
		return entity.DietPlanRecord{}, err
	}

	return entity.DietPlanRecord{
		ID:                row.ID,
		AnalysisID:        row.AnalysisID,
		Provider:          row.Provider,
		Goal:              row.Goal,
		ActivityLevel:     row.ActivityLevel,
		Country:           row.Country,
		BMR:               row.BMR,
		TargetCalories:    row.TargetCalories,
		PredictedChangeKg: row.PredictedChangeKg,
		Plan:              json.RawMessage(row.Plan),
		CreatedAt:         row.CreatedAt,
	}, nil
}
