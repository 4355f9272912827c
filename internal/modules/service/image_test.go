package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

func newImageService(images *MockImageRepo, items *MockItemRepo, datasets *MockDatasetRepo, annotations *MockAnnotationRepo) ImageService {
	return NewImageService(images, items, datasets, annotations)
}

func TestImageService_Get_NotFound(t *testing.T) {
	imageID := uuid.New()
	images := &MockImageRepo{}
	images.On("Get", mock.Anything, imageID).Return(nil, gorm.ErrRecordNotFound)

	svc := newImageService(images, &MockItemRepo{}, &MockDatasetRepo{}, &MockAnnotationRepo{})
	_, err := svc.Get(context.Background(), imageID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImageService_UpdateLabel(t *testing.T) {
	imageID := uuid.New()
	itemID := uuid.New()
	labeller := uuid.New()

	images := &MockImageRepo{}
	images.On("Get", mock.Anything, imageID).Return(&model.Image{ID: imageID, ItemID: itemID}, nil)
	images.On("Update", mock.Anything, mock.MatchedBy(func(img *model.Image) bool {
		return img.Label == "suspect" && img.Labelled && img.LabelledBy != nil && *img.LabelledBy == labeller
	})).Return(nil)

	items := &MockItemRepo{}
	items.On("RecomputeLabelled", mock.Anything, itemID).Return(false, nil)

	svc := newImageService(images, items, &MockDatasetRepo{}, &MockAnnotationRepo{})
	img, err := svc.UpdateLabel(context.Background(), imageID, UpdateImageInput{Label: "suspect", Labeller: &labeller})
	require.NoError(t, err)
	assert.True(t, img.Labelled)

	// Labelling an image must re-derive the parent item's flag.
	items.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestImageService_UpdateBoundingBox(t *testing.T) {
	imageID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name        string
		boundingBox string
		expectHas   bool
	}{
		{name: "storing a region sets has_box", boundingBox: `{"x":1,"y":2,"w":10,"h":10}`, expectHas: true},
		{name: "empty payload clears has_box", boundingBox: "", expectHas: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := &MockImageRepo{}
			images.On("Get", mock.Anything, imageID).
				Return(&model.Image{ID: imageID, ItemID: itemID, HasBox: !tt.expectHas}, nil)
			images.On("Update", mock.Anything, mock.Anything).Return(nil)

			items := &MockItemRepo{}
			items.On("RecomputeLabelled", mock.Anything, itemID).Return(tt.expectHas, nil)

			svc := newImageService(images, items, &MockDatasetRepo{}, &MockAnnotationRepo{})
			img, err := svc.UpdateBoundingBox(context.Background(), imageID, tt.boundingBox)
			require.NoError(t, err)
			assert.Equal(t, tt.expectHas, img.HasBox)
			assert.Equal(t, tt.boundingBox, img.BoundingBox)
		})
	}
}

func TestImageService_RandomUnannotated(t *testing.T) {
	datasetID := uuid.New()
	userID := uuid.New()

	t.Run("fully annotated dataset returns done, never panics", func(t *testing.T) {
		datasets := &MockDatasetRepo{}
		datasets.On("CountImages", mock.Anything, datasetID).Return(int64(12), nil)
		images := &MockImageRepo{}
		images.On("ListUnannotatedByUser", mock.Anything, datasetID, userID).
			Return([]*model.Image{}, nil)

		svc := newImageService(images, &MockItemRepo{}, datasets, &MockAnnotationRepo{})
		pick, err := svc.RandomUnannotated(context.Background(), datasetID, userID)
		require.NoError(t, err)
		assert.True(t, pick.Done)
		assert.Nil(t, pick.Image)
		assert.Equal(t, "done", pick.Progress)
	})

	t.Run("picks from the remainder and reports progress", func(t *testing.T) {
		remaining := []*model.Image{
			{ID: uuid.New()},
			{ID: uuid.New()},
			{ID: uuid.New()},
		}
		datasets := &MockDatasetRepo{}
		datasets.On("CountImages", mock.Anything, datasetID).Return(int64(10), nil)
		images := &MockImageRepo{}
		images.On("ListUnannotatedByUser", mock.Anything, datasetID, userID).Return(remaining, nil)

		svc := newImageService(images, &MockItemRepo{}, datasets, &MockAnnotationRepo{})
		pick, err := svc.RandomUnannotated(context.Background(), datasetID, userID)
		require.NoError(t, err)
		require.NotNil(t, pick.Image)
		assert.False(t, pick.Done)
		assert.Equal(t, "7 labeled out of 10", pick.Progress)

		ids := map[uuid.UUID]bool{}
		for _, img := range remaining {
			ids[img.ID] = true
		}
		assert.True(t, ids[pick.Image.ID], "picked image must come from the unannotated remainder")
	})
}

func TestImageService_SubmitAnnotation(t *testing.T) {
	imageID := uuid.New()
	datasetID := uuid.New()
	projectID := uuid.New()
	userID := uuid.New()
	answers := []byte(`{"quality":"good","lesion":"none"}`)

	images := &MockImageRepo{}
	images.On("Get", mock.Anything, imageID).
		Return(&model.Image{ID: imageID, DatasetID: datasetID}, nil)

	datasets := &MockDatasetRepo{}
	datasets.On("Get", mock.Anything, datasetID).
		Return(&model.Dataset{ID: datasetID, ProjectID: &projectID}, nil)

	annotations := &MockAnnotationRepo{}
	annotations.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Annotation) bool {
		return a.ImageID == imageID &&
			a.DatasetID == datasetID &&
			a.UserID == userID &&
			a.ProjectID != nil && *a.ProjectID == projectID
	})).Return(nil)

	svc := newImageService(images, &MockItemRepo{}, datasets, annotations)
	a, err := svc.SubmitAnnotation(context.Background(), imageID, userID, answers)
	require.NoError(t, err)
	assert.JSONEq(t, string(answers), string(a.Answers))
	annotations.AssertExpectations(t)
}

func TestImageService_SubmitAnnotation_UnknownImage(t *testing.T) {
	imageID := uuid.New()
	images := &MockImageRepo{}
	images.On("Get", mock.Anything, imageID).Return(nil, gorm.ErrRecordNotFound)

	svc := newImageService(images, &MockItemRepo{}, &MockDatasetRepo{}, &MockAnnotationRepo{})
	_, err := svc.SubmitAnnotation(context.Background(), imageID, uuid.New(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)
}
