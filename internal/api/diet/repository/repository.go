package dietRepository

import (
	analysisRepository "DietApp/internal/api/analysis/repository"
	"DietApp/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor = r.DB
	commitFunc := func() error { return nil }
	rollbackFunc := func() error { return nil }

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	}

	return Client{
		Plan:     &planRepository{q: sqlExecutor, log: r.log},
		Analysis: analysisRepository.NewAnalysisStore(sqlExecutor, r.log),
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Plan interface {
		CreatePlan(c context.Context, plan entity.DietPlanRecord) error
		GetPlanByID(c context.Context, id string) (entity.DietPlanRecord, error)
	}

	// Analysis shares the executor with Plan so both rows commit together.
	Analysis analysisRepository.AnalysisStore

	Commit   func() error
	Rollback func() error
}

type planRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
