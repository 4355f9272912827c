package handler

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

// Service mocks shared by the handler tests in this package.

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) (service.VerifyOutcome, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(service.VerifyOutcome), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginOutput, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginOutput), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, rawToken string) error {
	return m.Called(ctx, rawToken).Error(0)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) SetNewPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Get(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageService) UpdateLabel(ctx context.Context, id uuid.UUID, in service.UpdateImageInput) (*model.Image, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageService) UpdateBoundingBox(ctx context.Context, id uuid.UUID, boundingBox string) (*model.Image, error) {
	args := m.Called(ctx, id, boundingBox)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageService) RandomUnannotated(ctx context.Context, datasetID, userID uuid.UUID) (*service.RandomPick, error) {
	args := m.Called(ctx, datasetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RandomPick), args.Error(1)
}

func (m *MockImageService) SubmitAnnotation(ctx context.Context, imageID, userID uuid.UUID, answers []byte) (*model.Annotation, error) {
	args := m.Called(ctx, imageID, userID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Annotation), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) WriteImagesCSV(ctx context.Context, w io.Writer, datasetID uuid.UUID, orderByCase bool) error {
	return m.Called(ctx, w, datasetID, orderByCase).Error(0)
}

func (m *MockExportService) WriteAnnotationsCSV(ctx context.Context, w io.Writer, datasetID uuid.UUID) error {
	return m.Called(ctx, w, datasetID).Error(0)
}

func (m *MockExportService) WriteZip(ctx context.Context, w io.Writer, datasetID uuid.UUID) error {
	return m.Called(ctx, w, datasetID).Error(0)
}

type MockDatasetService struct {
	mock.Mock
}

func (m *MockDatasetService) Create(ctx context.Context, in service.CreateDatasetInput) (*model.Dataset, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockDatasetService) Get(ctx context.Context, id uuid.UUID) (*model.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockDatasetService) GetWithProgress(ctx context.Context, id, userID uuid.UUID) (*service.DatasetWithProgress, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DatasetWithProgress), args.Error(1)
}

func (m *MockDatasetService) List(ctx context.Context) ([]*model.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Dataset), args.Error(1)
}

func (m *MockDatasetService) ListWithProgress(ctx context.Context, datasets []*model.Dataset, userID uuid.UUID) ([]*service.DatasetWithProgress, error) {
	args := m.Called(ctx, datasets, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.DatasetWithProgress), args.Error(1)
}

func (m *MockDatasetService) Update(ctx context.Context, id uuid.UUID, in service.UpdateDatasetInput) (*model.Dataset, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockDatasetService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDatasetService) Progress(ctx context.Context, ds *model.Dataset, userID uuid.UUID) (float64, error) {
	args := m.Called(ctx, ds, userID)
	return args.Get(0).(float64), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) UploadItem(ctx context.Context, datasetID uuid.UUID, files []*multipart.FileHeader) (*service.ItemUploadResult, error) {
	args := m.Called(ctx, datasetID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ItemUploadResult), args.Error(1)
}

func (m *MockUploadService) BulkUpload(ctx context.Context, datasetID uuid.UUID, files []service.BulkFile) ([]*service.ItemUploadResult, error) {
	args := m.Called(ctx, datasetID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.ItemUploadResult), args.Error(1)
}
