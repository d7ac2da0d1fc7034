package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/m-u-l-a-s/ClimaMonitor-Backend/entities"
	"github.com/m-u-l-a-s/ClimaMonitor-Backend/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) Insert(ctx context.Context, c *entities.Crop) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cropRepo) Update(ctx context.Context, c *entities.Crop) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cropRepo) FindByID(ctx context.Context, id string) (*entities.Crop, error) {
	var c entities.Crop
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *cropRepo) FindByUser(ctx context.Context, userID string) ([]entities.Crop, error) {
	var out []entities.Crop
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at asc, id asc").Find(&out).Error
	return out, err
}

func (r *cropRepo) FindLiveByUser(ctx context.Context, userID string) ([]entities.Crop, error) {
	var out []entities.Crop
	err := r.db.WithContext(ctx).Where("user_id = ? AND deleted_at IS NULL", userID).Order("created_at asc, id asc").Find(&out).Error
	return out, err
}
