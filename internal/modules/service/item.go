package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
)

// ItemDetail is an item together with its ordered images and the label
// vocabularies annotators pick from.
type ItemDetail struct {
	Item           *model.Item
	Images         []*model.Image
	DatasetClasses model.Dataset
}

type ItemWithImages struct {
	*model.Item
	Images []*model.Image `json:"images"`
}

type UpdateItemInput struct {
	Label    string
	Comment  string
	Labeller *uuid.UUID
}

type ItemService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Item, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*ItemDetail, error)
	ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Item, error)
	// ListWithImages pairs each item of the dataset with its image rows.
	ListWithImages(ctx context.Context, datasetID uuid.UUID) ([]*ItemWithImages, error)

	// UpdateLabel applies the item-level judgement: sets label, comment
	// and labeller, marks every child image folder_labelled, then
	// re-derives the item's labelled flag through the shared scan.
	UpdateLabel(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*model.Item, error)
}

type itemService struct {
	items    repo.ItemRepo
	images   repo.ImageRepo
	datasets repo.DatasetRepo
}

func NewItemService(items repo.ItemRepo, images repo.ImageRepo, datasets repo.DatasetRepo) ItemService {
	return &itemService{items: items, images: images, datasets: datasets}
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	item, err := s.items.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return item, err
}

func (s *itemService) GetDetail(ctx context.Context, id uuid.UUID) (*ItemDetail, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.images.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	ds, err := s.datasets.Get(ctx, item.DatasetID)
	if err != nil {
		return nil, err
	}

	return &ItemDetail{Item: item, Images: images, DatasetClasses: *ds}, nil
}

func (s *itemService) ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]*model.Item, error) {
	return s.items.ListByDataset(ctx, datasetID)
}

func (s *itemService) ListWithImages(ctx context.Context, datasetID uuid.UUID) ([]*ItemWithImages, error) {
	if _, err := s.datasets.Get(ctx, datasetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := s.items.ListByDataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	out := make([]*ItemWithImages, 0, len(items))
	for _, item := range items {
		images, err := s.images.ListByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &ItemWithImages{Item: item, Images: images})
	}
	return out, nil
}

func (s *itemService) UpdateLabel(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*model.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Label = in.Label
	item.Comment = in.Comment
	item.LabelledBy = in.Labeller
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	if err := s.images.MarkFolderLabelled(ctx, item.ID); err != nil {
		return nil, err
	}

	labelled, err := s.items.RecomputeLabelled(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.Labelled = labelled
	return item, nil
}
