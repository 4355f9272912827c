package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

type datasetServiceMocks struct {
	datasets    *MockDatasetRepo
	projects    *MockProjectRepo
	annotations *MockAnnotationRepo
	images      *MockImageRepo
}

func newDatasetService() (DatasetService, datasetServiceMocks) {
	m := datasetServiceMocks{
		datasets:    &MockDatasetRepo{},
		projects:    &MockProjectRepo{},
		annotations: &MockAnnotationRepo{},
		images:      &MockImageRepo{},
	}
	svc := NewDatasetService(m.datasets, m.projects, m.annotations, m.images, nil, zap.NewNop())
	return svc, m
}

func TestDatasetService_Progress(t *testing.T) {
	datasetID := uuid.New()
	projectID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name     string
		dataset  *model.Dataset
		userID   uuid.UUID
		setup    func(*MockDatasetRepo, *MockProjectRepo, *MockAnnotationRepo)
		expected float64
	}{
		{
			name:    "empty dataset is zero, not a division error",
			dataset: &model.Dataset{ID: datasetID},
			userID:  userID,
			setup: func(ds *MockDatasetRepo, pr *MockProjectRepo, an *MockAnnotationRepo) {
				ds.On("CountImages", mock.Anything, datasetID).Return(int64(0), nil)
			},
			expected: 0,
		},
		{
			name:    "label project counts the user's annotated images",
			dataset: &model.Dataset{ID: datasetID, ProjectID: &projectID},
			userID:  userID,
			setup: func(ds *MockDatasetRepo, pr *MockProjectRepo, an *MockAnnotationRepo) {
				ds.On("CountImages", mock.Anything, datasetID).Return(int64(10), nil)
				pr.On("Get", mock.Anything, projectID).
					Return(&model.Project{ID: projectID, Type: model.ProjectTypeLabel}, nil)
				an.On("CountDistinctImages", mock.Anything, datasetID, userID).Return(int64(3), nil)
			},
			expected: 30,
		},
		{
			name:    "annotate project counts fully labelled images",
			dataset: &model.Dataset{ID: datasetID, ProjectID: &projectID},
			userID:  userID,
			setup: func(ds *MockDatasetRepo, pr *MockProjectRepo, an *MockAnnotationRepo) {
				ds.On("CountImages", mock.Anything, datasetID).Return(int64(4), nil)
				pr.On("Get", mock.Anything, projectID).
					Return(&model.Project{ID: projectID, Type: model.ProjectTypeAnnotate}, nil)
				ds.On("CountFullyLabelledImages", mock.Anything, datasetID).Return(int64(4), nil)
			},
			expected: 100,
		},
		{
			name:    "no project falls back to the annotate rule",
			dataset: &model.Dataset{ID: datasetID},
			userID:  userID,
			setup: func(ds *MockDatasetRepo, pr *MockProjectRepo, an *MockAnnotationRepo) {
				ds.On("CountImages", mock.Anything, datasetID).Return(int64(8), nil)
				ds.On("CountFullyLabelledImages", mock.Anything, datasetID).Return(int64(2), nil)
			},
			expected: 25,
		},
		{
			name:    "dangling project reference falls back to the annotate rule",
			dataset: &model.Dataset{ID: datasetID, ProjectID: &projectID},
			userID:  userID,
			setup: func(ds *MockDatasetRepo, pr *MockProjectRepo, an *MockAnnotationRepo) {
				ds.On("CountImages", mock.Anything, datasetID).Return(int64(8), nil)
				pr.On("Get", mock.Anything, projectID).Return(nil, gorm.ErrRecordNotFound)
				ds.On("CountFullyLabelledImages", mock.Anything, datasetID).Return(int64(4), nil)
			},
			expected: 50,
		},
		{
			name:    "label project without a caller uses the shared rule",
			dataset: &model.Dataset{ID: datasetID, ProjectID: &projectID},
			userID:  uuid.Nil,
			setup: func(ds *MockDatasetRepo, pr *MockProjectRepo, an *MockAnnotationRepo) {
				ds.On("CountImages", mock.Anything, datasetID).Return(int64(10), nil)
				pr.On("Get", mock.Anything, projectID).
					Return(&model.Project{ID: projectID, Type: model.ProjectTypeLabel}, nil)
				ds.On("CountFullyLabelledImages", mock.Anything, datasetID).Return(int64(5), nil)
			},
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newDatasetService()
			tt.setup(m.datasets, m.projects, m.annotations)

			got, err := svc.Progress(context.Background(), tt.dataset, tt.userID)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)

			m.datasets.AssertExpectations(t)
			m.projects.AssertExpectations(t)
			m.annotations.AssertExpectations(t)
		})
	}
}

func TestDatasetService_Create(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		svc, _ := newDatasetService()
		_, err := svc.Create(context.Background(), CreateDatasetInput{})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("nil class lists become empty arrays", func(t *testing.T) {
		svc, m := newDatasetService()
		m.datasets.On("Create", mock.Anything, mock.MatchedBy(func(ds *model.Dataset) bool {
			return string(ds.Classes) == "[]" && string(ds.Classes2) == "[]"
		})).Return(nil)

		ds, err := svc.Create(context.Background(), CreateDatasetInput{Name: "cervix-batch-1"})
		require.NoError(t, err)
		assert.Equal(t, "cervix-batch-1", ds.Name)
		m.datasets.AssertExpectations(t)
	})

	t.Run("classes survive the JSON round trip", func(t *testing.T) {
		svc, m := newDatasetService()
		m.datasets.On("Create", mock.Anything, mock.Anything).Return(nil)

		ds, err := svc.Create(context.Background(), CreateDatasetInput{
			Name:    "d",
			Classes: []string{"normal", "suspect", "cancer"},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `["normal","suspect","cancer"]`, string(ds.Classes))
	})
}

func TestDatasetService_Get_NotFound(t *testing.T) {
	datasetID := uuid.New()
	svc, m := newDatasetService()
	m.datasets.On("Get", mock.Anything, datasetID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), datasetID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDatasetService_Update_ReplacesVocabulary(t *testing.T) {
	datasetID := uuid.New()
	svc, m := newDatasetService()
	m.datasets.On("Get", mock.Anything, datasetID).Return(&model.Dataset{
		ID:      datasetID,
		Name:    "old",
		Classes: classesJSON([]string{"a", "b"}),
	}, nil)
	m.datasets.On("Update", mock.Anything, mock.Anything).Return(nil)

	ds, err := svc.Update(context.Background(), datasetID, UpdateDatasetInput{
		Classes: []string{"c"},
	})
	require.NoError(t, err)
	// Whole-array replacement, and an omitted name keeps the old one.
	assert.JSONEq(t, `["c"]`, string(ds.Classes))
	assert.Equal(t, "old", ds.Name)
}

func TestDatasetService_Delete(t *testing.T) {
	datasetID := uuid.New()

	t.Run("removes the rows", func(t *testing.T) {
		svc, m := newDatasetService()
		m.datasets.On("Get", mock.Anything, datasetID).Return(&model.Dataset{ID: datasetID}, nil)
		m.images.On("ListKeysByDataset", mock.Anything, datasetID).Return([]string{}, nil)
		m.datasets.On("Delete", mock.Anything, datasetID).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), datasetID))
		m.datasets.AssertExpectations(t)
		m.images.AssertExpectations(t)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		svc, m := newDatasetService()
		m.datasets.On("Get", mock.Anything, datasetID).Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(context.Background(), datasetID)
		assert.ErrorIs(t, err, ErrNotFound)
		m.datasets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("object listing failure does not block the delete", func(t *testing.T) {
		svc, m := newDatasetService()
		m.datasets.On("Get", mock.Anything, datasetID).Return(&model.Dataset{ID: datasetID}, nil)
		m.images.On("ListKeysByDataset", mock.Anything, datasetID).Return(nil, assert.AnError)
		m.datasets.On("Delete", mock.Anything, datasetID).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), datasetID))
		m.datasets.AssertExpectations(t)
	})
}

func TestDatasetService_ListWithProgress(t *testing.T) {
	userID := uuid.New()
	first := &model.Dataset{ID: uuid.New()}
	second := &model.Dataset{ID: uuid.New()}

	svc, m := newDatasetService()
	m.datasets.On("CountImages", mock.Anything, first.ID).Return(int64(2), nil)
	m.datasets.On("CountFullyLabelledImages", mock.Anything, first.ID).Return(int64(1), nil)
	m.datasets.On("CountImages", mock.Anything, second.ID).Return(int64(0), nil)

	out, err := svc.ListWithProgress(context.Background(), []*model.Dataset{first, second}, userID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Order matches the input even though progress is computed concurrently.
	assert.Equal(t, first.ID, out[0].ID)
	assert.InDelta(t, 50, out[0].Progress, 1e-9)
	assert.Equal(t, second.ID, out[1].ID)
	assert.InDelta(t, 0, out[1].Progress, 1e-9)
}
