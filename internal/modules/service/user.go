package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
)

// HomeStats is the annotator home screen payload.
type HomeStats struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Datasets int64     `json:"datasets"`
	Images   int64     `json:"images"`
}

type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetProject attaches (or, with uuid.Nil, detaches) the user's home
	// project, fanning assignments in or out accordingly.
	SetProject(ctx context.Context, userID, projectID uuid.UUID) error

	HomeStats(ctx context.Context, userID uuid.UUID) (*HomeStats, error)
	// AssignedDatasets lists the datasets the user has assignments for.
	AssignedDatasets(ctx context.Context, userID uuid.UUID) ([]*model.Dataset, error)
}

type userService struct {
	users       repo.UserRepo
	assignments repo.AssignmentRepo
	datasets    repo.DatasetRepo
}

func NewUserService(users repo.UserRepo, assignments repo.AssignmentRepo, datasets repo.DatasetRepo) UserService {
	return &userService{users: users, assignments: assignments, datasets: datasets}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	// Assignments and annotations go with the user via the FK cascades.
	return s.users.Delete(ctx, id)
}

func (s *userService) SetProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if projectID == uuid.Nil {
		return s.users.DetachProject(ctx, userID)
	}
	return s.users.AttachProject(ctx, userID, projectID)
}

func (s *userService) HomeStats(ctx context.Context, userID uuid.UUID) (*HomeStats, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	datasets, err := s.assignments.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	images, err := s.users.CountLabelledImages(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &HomeStats{
		ID:       user.ID,
		Name:     user.Username,
		Datasets: datasets,
		Images:   images,
	}, nil
}

func (s *userService) AssignedDatasets(ctx context.Context, userID uuid.UUID) ([]*model.Dataset, error) {
	assignments, err := s.assignments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	datasets := make([]*model.Dataset, 0, len(assignments))
	for _, a := range assignments {
		ds, err := s.datasets.Get(ctx, a.DatasetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}
