package analysisRepository

import (
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
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Analysis: NewAnalysisStore(sqlExecutor, r.log),
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type AnalysisStore interface {
	CreateAnalysis(c context.Context, analysis entity.BodyAnalysis) error
	GetAnalysisByID(c context.Context, id string) (entity.BodyAnalysis, error)
	ListRecentAnalyses(c context.Context, limit int) ([]entity.BodyAnalysis, error)
}

// NewAnalysisStore binds the analysis queries to q, which may be a
// transaction opened by another repository.
func NewAnalysisStore(q SQLExecutor, log *logrus.Logger) AnalysisStore {
	return &analysisRepository{q: q, log: log}
}

type Client struct {
	Analysis AnalysisStore

	Commit   func() error
	Rollback func() error
}

type analysisRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
