package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

type AssignmentRepo interface {
	// Create is idempotent on the (user, dataset) pair.
	Create(ctx context.Context, userID, datasetID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Assignment, error)
	ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Assignment, error)
	Delete(ctx context.Context, userID, datasetID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type assignmentRepo struct{ db *gorm.DB }

func NewAssignmentRepo(db *gorm.DB) AssignmentRepo {
	return &assignmentRepo{db: db}
}

// upsertAssignment inserts the pair, silently keeping an existing row.
// Shared with the fan-out paths in user and dataset repos.
func upsertAssignment(tx *gorm.DB, userID, datasetID uuid.UUID) error {
	a := model.Assignment{UserID: userID, DatasetID: datasetID}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "dataset_id"}},
		DoNothing: true,
	}).Create(&a).Error
}

func (r *assignmentRepo) Create(ctx context.Context, userID, datasetID uuid.UUID) error {
	return upsertAssignment(r.db.WithContext(ctx), userID, datasetID)
}

func (r *assignmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	err := r.db.WithContext(ctx).
		Where("dataset_id = ?", datasetID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Delete(ctx context.Context, userID, datasetID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND dataset_id = ?", userID, datasetID).
		Delete(&model.Assignment{}).Error
}

func (r *assignmentRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}
