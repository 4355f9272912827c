package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
)

type ProjectService interface {
	Create(ctx context.Context, name, projectType string) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, name, projectType string) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, id uuid.UUID) ([]*model.User, error)
	ListDatasets(ctx context.Context, id uuid.UUID) ([]*model.Dataset, error)
}

type projectService struct {
	projects repo.ProjectRepo
	datasets repo.DatasetRepo
}

func NewProjectService(projects repo.ProjectRepo, datasets repo.DatasetRepo) ProjectService {
	return &projectService{projects: projects, datasets: datasets}
}

func (s *projectService) Create(ctx context.Context, name, projectType string) (*model.Project, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if projectType == "" {
		projectType = model.ProjectTypeAnnotate
	}
	p := &model.Project{Name: name, Type: projectType}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *projectService) List(ctx context.Context) ([]*model.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, name, projectType string) (*model.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		p.Name = name
	}
	if projectType != "" {
		p.Type = projectType
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

func (s *projectService) ListUsers(ctx context.Context, id uuid.UUID) ([]*model.User, error) {
	return s.projects.ListUsers(ctx, id)
}

func (s *projectService) ListDatasets(ctx context.Context, id uuid.UUID) ([]*model.Dataset, error) {
	return s.datasets.ListByProject(ctx, id)
}
