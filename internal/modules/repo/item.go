package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

type ItemRepo interface {
	Create(ctx context.Context, item *model.Item) error
	// GetOrCreate finds the item by name within the dataset or creates it.
	// A lost create race falls back to re-reading the winner's row.
	GetOrCreate(ctx context.Context, datasetID uuid.UUID, name string) (*model.Item, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Item, error)
	ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uuid.UUID) error

	// RecomputeLabelled re-derives and persists the item's labelled flag by
	// scanning the child images: true iff every image has labelled,
	// folder_labelled and has_box set. This is the single definition used
	// by every write path that can change a child image.
	RecomputeLabelled(ctx context.Context, itemID uuid.UUID) (bool, error)
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepo(db *gorm.DB) ItemRepo {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) GetOrCreate(ctx context.Context, datasetID uuid.UUID, name string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Where("dataset_id = ? AND name = ?", datasetID, name).
		First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item = model.Item{DatasetID: datasetID, Name: name}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		// A concurrent upload may have created the folder first; the
		// unique index on (dataset_id, name) rejects ours, so read theirs.
		var existing model.Item
		if getErr := r.db.WithContext(ctx).
			Where("dataset_id = ? AND name = ?", datasetID, name).
			First(&existing).Error; getErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) Get(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Item, error) {
	var items []*model.Item
	err := r.db.WithContext(ctx).
		Where("dataset_id = ?", datasetID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id).Error
}

func (r *itemRepo) RecomputeLabelled(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var total, done int64
	if err := r.db.WithContext(ctx).
		Model(&model.Image{}).
		Where("item_id = ?", itemID).
		Count(&total).Error; err != nil {
		return false, err
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Image{}).
		Where("item_id = ? AND labelled AND folder_labelled AND has_box", itemID).
		Count(&done).Error; err != nil {
		return false, err
	}

	labelled := total > 0 && done == total
	err := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", itemID).
		Update("labelled", labelled).Error
	return labelled, err
}
