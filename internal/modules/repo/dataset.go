package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

type DatasetRepo interface {
	// Create persists the dataset and, when it belongs to a project, fans
	// out an assignment to every user attached to that project in the same
	// transaction.
	Create(ctx context.Context, ds *model.Dataset) error
	Get(ctx context.Context, id uuid.UUID) (*model.Dataset, error)
	List(ctx context.Context) ([]*model.Dataset, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Dataset, error)
	Update(ctx context.Context, ds *model.Dataset) error
	// Delete removes the dataset; items, images, assignments and
	// annotations go with it through the FK cascades.
	Delete(ctx context.Context, id uuid.UUID) error

	CountImages(ctx context.Context, datasetID uuid.UUID) (int64, error)
	// CountFullyLabelledImages counts images with labelled, has_box and
	// folder_labelled all set; the numerator of annotate-type progress.
	CountFullyLabelledImages(ctx context.Context, datasetID uuid.UUID) (int64, error)
}

type datasetRepo struct{ db *gorm.DB }

func NewDatasetRepo(db *gorm.DB) DatasetRepo {
	return &datasetRepo{db: db}
}

func (r *datasetRepo) Create(ctx context.Context, ds *model.Dataset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ds).Error; err != nil {
			return err
		}
		if ds.ProjectID == nil {
			return nil
		}

		var userIDs []uuid.UUID
		if err := tx.Model(&model.User{}).
			Where("project_id = ?", *ds.ProjectID).
			Pluck("id", &userIDs).Error; err != nil {
			return err
		}
		for _, userID := range userIDs {
			if err := upsertAssignment(tx, userID, ds.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *datasetRepo) Get(ctx context.Context, id uuid.UUID) (*model.Dataset, error) {
	var ds model.Dataset
	if err := r.db.WithContext(ctx).First(&ds, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ds, nil
}

func (r *datasetRepo) List(ctx context.Context) ([]*model.Dataset, error) {
	var datasets []*model.Dataset
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&datasets).Error
	return datasets, err
}

func (r *datasetRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Dataset, error) {
	var datasets []*model.Dataset
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&datasets).Error
	return datasets, err
}

func (r *datasetRepo) Update(ctx context.Context, ds *model.Dataset) error {
	return r.db.WithContext(ctx).Save(ds).Error
}

func (r *datasetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Dataset{}, "id = ?", id).Error
}

func (r *datasetRepo) CountImages(ctx context.Context, datasetID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Image{}).
		Where("dataset_id = ?", datasetID).
		Count(&n).Error
	return n, err
}

func (r *datasetRepo) CountFullyLabelledImages(ctx context.Context, datasetID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Image{}).
		Where("dataset_id = ? AND labelled AND has_box AND folder_labelled", datasetID).
		Count(&n).Error
	return n, err
}
