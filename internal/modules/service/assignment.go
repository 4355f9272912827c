package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
)

// AssignmentService manages the user<->dataset work assignments. Create is
// idempotent on the unique pair.
type AssignmentService interface {
	Create(ctx context.Context, userID, datasetID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Assignment, error)
	ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Assignment, error)
	Delete(ctx context.Context, userID, datasetID uuid.UUID) error
}

type assignmentService struct {
	assignments repo.AssignmentRepo
	users       repo.UserRepo
	datasets    repo.DatasetRepo
}

func NewAssignmentService(assignments repo.AssignmentRepo, users repo.UserRepo, datasets repo.DatasetRepo) AssignmentService {
	return &assignmentService{assignments: assignments, users: users, datasets: datasets}
}

func (s *assignmentService) Create(ctx context.Context, userID, datasetID uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if _, err := s.datasets.Get(ctx, datasetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.assignments.Create(ctx, userID, datasetID)
}

func (s *assignmentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Assignment, error) {
	return s.assignments.ListByUser(ctx, userID)
}

func (s *assignmentService) ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Assignment, error) {
	return s.assignments.ListByDataset(ctx, datasetID)
}

func (s *assignmentService) Delete(ctx context.Context, userID, datasetID uuid.UUID) error {
	return s.assignments.Delete(ctx, userID, datasetID)
}
