package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/infra/blob"
	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
)

// S3 caps DeleteObjects at 1000 keys per request.
const maxDeleteBatch = 1000

type CreateDatasetInput struct {
	Name      string
	ProjectID *uuid.UUID
	Classes   []string
	Classes2  []string
}

type UpdateDatasetInput struct {
	Name     string
	Classes  []string
	Classes2 []string
}

// DatasetWithProgress decorates a dataset with its read-time progress
// percentage.
type DatasetWithProgress struct {
	*model.Dataset
	Progress float64 `json:"progress"`
}

type DatasetService interface {
	Create(ctx context.Context, in CreateDatasetInput) (*model.Dataset, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Dataset, error)
	GetWithProgress(ctx context.Context, id, userID uuid.UUID) (*DatasetWithProgress, error)
	List(ctx context.Context) ([]*model.Dataset, error)
	ListWithProgress(ctx context.Context, datasets []*model.Dataset, userID uuid.UUID) ([]*DatasetWithProgress, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateDatasetInput) (*model.Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Progress computes the rule selected by the dataset's project type:
	// label-type projects count the user's distinct annotated images,
	// everything else counts fully labelled images. An empty dataset is 0.
	Progress(ctx context.Context, ds *model.Dataset, userID uuid.UUID) (float64, error)
}

type datasetService struct {
	datasets    repo.DatasetRepo
	projects    repo.ProjectRepo
	annotations repo.AnnotationRepo
	images      repo.ImageRepo
	storage     *blob.S3Deps
	log         *zap.Logger
}

func NewDatasetService(
	datasets repo.DatasetRepo,
	projects repo.ProjectRepo,
	annotations repo.AnnotationRepo,
	images repo.ImageRepo,
	storage *blob.S3Deps,
	log *zap.Logger,
) DatasetService {
	return &datasetService{
		datasets:    datasets,
		projects:    projects,
		annotations: annotations,
		images:      images,
		storage:     storage,
		log:         log,
	}
}

func classesJSON(classes []string) datatypes.JSON {
	if classes == nil {
		classes = []string{}
	}
	b, _ := json.Marshal(classes)
	return datatypes.JSON(b)
}

func (s *datasetService) Create(ctx context.Context, in CreateDatasetInput) (*model.Dataset, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	ds := &model.Dataset{
		Name:      in.Name,
		ProjectID: in.ProjectID,
		Classes:   classesJSON(in.Classes),
		Classes2:  classesJSON(in.Classes2),
	}
	if err := s.datasets.Create(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *datasetService) Get(ctx context.Context, id uuid.UUID) (*model.Dataset, error) {
	ds, err := s.datasets.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return ds, err
}

func (s *datasetService) GetWithProgress(ctx context.Context, id, userID uuid.UUID) (*DatasetWithProgress, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	progress, err := s.Progress(ctx, ds, userID)
	if err != nil {
		return nil, err
	}
	return &DatasetWithProgress{Dataset: ds, Progress: progress}, nil
}

func (s *datasetService) List(ctx context.Context) ([]*model.Dataset, error) {
	return s.datasets.List(ctx)
}

func (s *datasetService) ListWithProgress(ctx context.Context, datasets []*model.Dataset, userID uuid.UUID) ([]*DatasetWithProgress, error) {
	out := make([]*DatasetWithProgress, len(datasets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, ds := range datasets {
		g.Go(func() error {
			progress, err := s.Progress(gctx, ds, userID)
			if err != nil {
				return err
			}
			out[i] = &DatasetWithProgress{Dataset: ds, Progress: progress}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *datasetService) Update(ctx context.Context, id uuid.UUID, in UpdateDatasetInput) (*model.Dataset, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		ds.Name = in.Name
	}
	// Vocabulary updates replace the whole array; there is no merge and no
	// revalidation of labels already using removed classes.
	if in.Classes != nil {
		ds.Classes = classesJSON(in.Classes)
	}
	if in.Classes2 != nil {
		ds.Classes2 = classesJSON(in.Classes2)
	}

	if err := s.datasets.Update(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *datasetService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	// Snapshot object URLs before the row delete cascades through the
	// images table.
	urls, err := s.images.ListKeysByDataset(ctx, id)
	if err != nil {
		s.log.Warn("list stored objects for cleanup", zap.Error(err))
		urls = nil
	}

	if err := s.datasets.Delete(ctx, id); err != nil {
		return err
	}

	// Object cleanup is best effort; the rows are already gone.
	keys := make([]string, 0, len(urls))
	for _, u := range urls {
		keys = append(keys, s.storage.KeyFromURL(u))
	}
	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := min(start+maxDeleteBatch, len(keys))
		if err := s.storage.DeleteObjects(ctx, keys[start:end]); err != nil {
			s.log.Warn("delete stored objects", zap.Error(err))
		}
	}
	return nil
}

func (s *datasetService) Progress(ctx context.Context, ds *model.Dataset, userID uuid.UUID) (float64, error) {
	total, err := s.datasets.CountImages(ctx, ds.ID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	projectType := model.ProjectTypeAnnotate
	if ds.ProjectID != nil {
		project, err := s.projects.Get(ctx, *ds.ProjectID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		if err == nil {
			projectType = project.Type
		}
	}

	var labelled int64
	if projectType == model.ProjectTypeLabel && userID != uuid.Nil {
		labelled, err = s.annotations.CountDistinctImages(ctx, ds.ID, userID)
	} else {
		labelled, err = s.datasets.CountFullyLabelledImages(ctx, ds.ID)
	}
	if err != nil {
		return 0, err
	}

	return 100 * float64(labelled) / float64(total), nil
}
