package sites

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/sites"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// Repo reads the site geometry view in the foncier database. It holds its
// own handle: the view lives outside the saisie transaction scope, so
// methods take a plain context instead of dbctx.
type Repo interface {
	All(ctx context.Context) ([]types.VueSite, error)
	GetByID(ctx context.Context, id int) (*types.VueSite, error)
	GetByCode(ctx context.Context, code string) (*types.VueSite, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "SiteRepo")}
}

func (r *repo) All(ctx context.Context) ([]types.VueSite, error) {
	var rows []types.VueSite
	if err := r.db.WithContext(ctx).Order("idsite ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) GetByID(ctx context.Context, id int) (*types.VueSite, error) {
	var row types.VueSite
	if err := r.db.WithContext(ctx).First(&row, "idsite = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) GetByCode(ctx context.Context, code string) (*types.VueSite, error) {
	var row types.VueSite
	if err := r.db.WithContext(ctx).First(&row, "codesite = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
