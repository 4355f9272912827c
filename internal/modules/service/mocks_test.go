package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
)

// Repository mocks shared by the service tests in this package.

type MockDatasetRepo struct {
	mock.Mock
}

func (m *MockDatasetRepo) Create(ctx context.Context, ds *model.Dataset) error {
	return m.Called(ctx, ds).Error(0)
}

func (m *MockDatasetRepo) Get(ctx context.Context, id uuid.UUID) (*model.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockDatasetRepo) List(ctx context.Context) ([]*model.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Dataset), args.Error(1)
}

func (m *MockDatasetRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*model.Dataset, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Dataset), args.Error(1)
}

func (m *MockDatasetRepo) Update(ctx context.Context, ds *model.Dataset) error {
	return m.Called(ctx, ds).Error(0)
}

func (m *MockDatasetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDatasetRepo) CountImages(ctx context.Context, datasetID uuid.UUID) (int64, error) {
	args := m.Called(ctx, datasetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDatasetRepo) CountFullyLabelledImages(ctx context.Context, datasetID uuid.UUID) (int64, error) {
	args := m.Called(ctx, datasetID)
	return args.Get(0).(int64), args.Error(1)
}

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepo) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, p *model.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProjectRepo) ListUsers(ctx context.Context, projectID uuid.UUID) ([]*model.User, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *model.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepo) GetOrCreate(ctx context.Context, datasetID uuid.UUID, name string) (*model.Item, error) {
	args := m.Called(ctx, datasetID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepo) Get(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepo) ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Item, error) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Item), args.Error(1)
}

func (m *MockItemRepo) Update(ctx context.Context, item *model.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockItemRepo) RecomputeLabelled(ctx context.Context, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

type MockImageRepo struct {
	mock.Mock
}

func (m *MockImageRepo) Create(ctx context.Context, img *model.Image) error {
	return m.Called(ctx, img).Error(0)
}

func (m *MockImageRepo) Get(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockImageRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*model.Image, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Image), args.Error(1)
}

func (m *MockImageRepo) Update(ctx context.Context, img *model.Image) error {
	return m.Called(ctx, img).Error(0)
}

func (m *MockImageRepo) MarkFolderLabelled(ctx context.Context, itemID uuid.UUID) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *MockImageRepo) ListUnannotatedByUser(ctx context.Context, datasetID, userID uuid.UUID) ([]*model.Image, error) {
	args := m.Called(ctx, datasetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Image), args.Error(1)
}

func (m *MockImageRepo) ListKeysByDataset(ctx context.Context, datasetID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAnnotationRepo struct {
	mock.Mock
}

func (m *MockAnnotationRepo) Create(ctx context.Context, a *model.Annotation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAnnotationRepo) CountDistinctImages(ctx context.Context, datasetID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, datasetID, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) AttachProject(ctx context.Context, userID, projectID uuid.UUID) error {
	return m.Called(ctx, userID, projectID).Error(0)
}

func (m *MockUserRepo) DetachProject(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserRepo) CountLabelledImages(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, userID, datasetID uuid.UUID) error {
	return m.Called(ctx, userID, datasetID).Error(0)
}

func (m *MockAssignmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Assignment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepo) ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Assignment, error) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Assignment), args.Error(1)
}

func (m *MockAssignmentRepo) Delete(ctx context.Context, userID, datasetID uuid.UUID) error {
	return m.Called(ctx, userID, datasetID).Error(0)
}

func (m *MockAssignmentRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBlacklistRepo struct {
	mock.Mock
}

func (m *MockBlacklistRepo) Add(ctx context.Context, token string, remaining time.Duration) error {
	return m.Called(ctx, token, remaining).Error(0)
}

func (m *MockBlacklistRepo) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

type MockExportRepo struct {
	mock.Mock
}

func (m *MockExportRepo) ForEachImageRow(ctx context.Context, datasetID uuid.UUID, orderByCase bool, fn func(*repo.ImageExportRow) error) error {
	return m.Called(ctx, datasetID, orderByCase, fn).Error(0)
}

func (m *MockExportRepo) ForEachAnnotationRow(ctx context.Context, datasetID uuid.UUID, fn func(*repo.AnnotationExportRow) error) error {
	return m.Called(ctx, datasetID, fn).Error(0)
}

// MockMailSender records outbound email calls without a queue behind it.
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendVerification(ctx context.Context, email, link string) {
	m.Called(ctx, email, link)
}

func (m *MockMailSender) SendSignupNotice(ctx context.Context, newUserEmail string) {
	m.Called(ctx, newUserEmail)
}

func (m *MockMailSender) SendPasswordReset(ctx context.Context, email, link string) {
	m.Called(ctx, email, link)
}
