package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

type ImageRepo interface {
	Create(ctx context.Context, img *model.Image) error
	Get(ctx context.Context, id uuid.UUID) (*model.Image, error)
	// ListByItem returns the item's images in insertion order.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*model.Image, error)
	Update(ctx context.Context, img *model.Image) error

	// MarkFolderLabelled flags every image under the item, the side effect
	// of an item-level PUT.
	MarkFolderLabelled(ctx context.Context, itemID uuid.UUID) error

	// ListUnannotatedByUser computes the dataset's images minus those the
	// user already has annotation rows for, in one set-difference query.
	ListUnannotatedByUser(ctx context.Context, datasetID, userID uuid.UUID) ([]*model.Image, error)

	ListKeysByDataset(ctx context.Context, datasetID uuid.UUID) ([]string, error)
}

type imageRepo struct{ db *gorm.DB }

func NewImageRepo(db *gorm.DB) ImageRepo {
	return &imageRepo{db: db}
}

func (r *imageRepo) Create(ctx context.Context, img *model.Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *imageRepo) Get(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	var img model.Image
	if err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*model.Image, error) {
	var images []*model.Image
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&images).Error
	return images, err
}

func (r *imageRepo) Update(ctx context.Context, img *model.Image) error {
	return r.db.WithContext(ctx).Save(img).Error
}

func (r *imageRepo) MarkFolderLabelled(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Image{}).
		Where("item_id = ?", itemID).
		Update("folder_labelled", true).Error
}

func (r *imageRepo) ListUnannotatedByUser(ctx context.Context, datasetID, userID uuid.UUID) ([]*model.Image, error) {
	var images []*model.Image
	err := r.db.WithContext(ctx).
		Where("dataset_id = ?", datasetID).
		Where("id NOT IN (?)",
			r.db.Model(&model.Annotation{}).
				Select("image_id").
				Where("dataset_id = ? AND user_id = ?", datasetID, userID),
		).
		Find(&images).Error
	return images, err
}

func (r *imageRepo) ListKeysByDataset(ctx context.Context, datasetID uuid.UUID) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).
		Model(&model.Image{}).
		Where("dataset_id = ?", datasetID).
		Order("created_at ASC").
		Pluck("url", &urls).Error
	return urls, err
}
