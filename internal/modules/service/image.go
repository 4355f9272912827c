package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
	"github.com/marconi-lab/annotator/internal/telemetry"
)

type UpdateImageInput struct {
	Label    string
	Labeller *uuid.UUID
}

// RandomPick is one uniformly chosen unannotated image plus the annotator's
// running progress line. Done is set when nothing remains; Image is nil in
// that case and Progress reads "done".
type RandomPick struct {
	Image    *model.Image
	Progress string
	Done     bool
}

type ImageService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Image, error)

	// UpdateLabel records the image-level judgement and re-derives the
	// parent item's labelled flag.
	UpdateLabel(ctx context.Context, id uuid.UUID, in UpdateImageInput) (*model.Image, error)

	// UpdateBoundingBox stores the serialized region; an empty payload
	// clears has_box.
	UpdateBoundingBox(ctx context.Context, id uuid.UUID, boundingBox string) (*model.Image, error)

	// RandomUnannotated picks uniformly from the dataset's images the user
	// has no annotation rows for. An empty remainder returns Done instead
	// of failing.
	RandomUnannotated(ctx context.Context, datasetID, userID uuid.UUID) (*RandomPick, error)

	// SubmitAnnotation appends a new annotation row for the image.
	SubmitAnnotation(ctx context.Context, imageID, userID uuid.UUID, answers []byte) (*model.Annotation, error)
}

type imageService struct {
	images      repo.ImageRepo
	items       repo.ItemRepo
	datasets    repo.DatasetRepo
	annotations repo.AnnotationRepo
}

func NewImageService(images repo.ImageRepo, items repo.ItemRepo, datasets repo.DatasetRepo, annotations repo.AnnotationRepo) ImageService {
	return &imageService{images: images, items: items, datasets: datasets, annotations: annotations}
}

func (s *imageService) Get(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	img, err := s.images.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return img, err
}

func (s *imageService) UpdateLabel(ctx context.Context, id uuid.UUID, in UpdateImageInput) (*model.Image, error) {
	img, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	img.Label = in.Label
	img.LabelledBy = in.Labeller
	img.Labelled = true
	if err := s.images.Update(ctx, img); err != nil {
		return nil, err
	}

	if _, err := s.items.RecomputeLabelled(ctx, img.ItemID); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *imageService) UpdateBoundingBox(ctx context.Context, id uuid.UUID, boundingBox string) (*model.Image, error) {
	img, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	img.BoundingBox = boundingBox
	img.HasBox = boundingBox != ""
	if err := s.images.Update(ctx, img); err != nil {
		return nil, err
	}

	if _, err := s.items.RecomputeLabelled(ctx, img.ItemID); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *imageService) RandomUnannotated(ctx context.Context, datasetID, userID uuid.UUID) (*RandomPick, error) {
	total, err := s.datasets.CountImages(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	remaining, err := s.images.ListUnannotatedByUser(ctx, datasetID, userID)
	if err != nil {
		return nil, err
	}

	// The guard matters: picking from an empty remainder would panic, and
	// a fully annotated dataset is the normal end state.
	if len(remaining) == 0 {
		return &RandomPick{Progress: "done", Done: true}, nil
	}

	picked := remaining[rand.IntN(len(remaining))]
	labelled := total - int64(len(remaining))
	return &RandomPick{
		Image:    picked,
		Progress: fmt.Sprintf("%d labeled out of %d", labelled, total),
	}, nil
}

func (s *imageService) SubmitAnnotation(ctx context.Context, imageID, userID uuid.UUID, answers []byte) (*model.Annotation, error) {
	img, err := s.Get(ctx, imageID)
	if err != nil {
		return nil, err
	}

	ds, err := s.datasets.Get(ctx, img.DatasetID)
	if err != nil {
		return nil, err
	}
	a := &model.Annotation{
		ProjectID: ds.ProjectID,
		DatasetID: img.DatasetID,
		ImageID:   img.ID,
		UserID:    userID,
		Answers:   answers,
	}
	if err := s.annotations.Create(ctx, a); err != nil {
		return nil, err
	}
	telemetry.RecordAnnotation(ctx, img.DatasetID.String())
	return a, nil
}
