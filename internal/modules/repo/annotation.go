package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

type AnnotationRepo interface {
	// Create appends a new row; earlier submissions by the same user for
	// the same image are kept as history.
	Create(ctx context.Context, a *model.Annotation) error
	// CountDistinctImages counts the images this user has annotation rows
	// for; the numerator of label-type progress.
	CountDistinctImages(ctx context.Context, datasetID, userID uuid.UUID) (int64, error)
}

type annotationRepo struct{ db *gorm.DB }

func NewAnnotationRepo(db *gorm.DB) AnnotationRepo {
	return &annotationRepo{db: db}
}

func (r *annotationRepo) Create(ctx context.Context, a *model.Annotation) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *annotationRepo) CountDistinctImages(ctx context.Context, datasetID, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Annotation{}).
		Where("dataset_id = ? AND user_id = ?", datasetID, userID).
		Distinct("image_id").
		Count(&n).Error
	return n, err
}
