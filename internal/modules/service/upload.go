package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/infra/blob"
	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
	"github.com/marconi-lab/annotator/internal/pkg/imaging"
	"github.com/marconi-lab/annotator/internal/telemetry"
)

const itemNameLength = 20

const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomItemName matches the historical case-identifier format: 20 mixed
// alphanumerics.
func randomItemName() string {
	b := make([]byte, itemNameLength)
	for i := range b {
		b[i] = nameAlphabet[rand.IntN(len(nameAlphabet))]
	}
	return string(b)
}

// UploadedImage reports one stored file back to the admin client.
type UploadedImage struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	URL  string    `json:"image"`
}

// ItemUploadResult is the response payload of both upload endpoints.
type ItemUploadResult struct {
	ItemID uuid.UUID       `json:"item_id"`
	Name   string          `json:"name"`
	Images []UploadedImage `json:"images"`
}

// BulkFile pairs an uploaded file with the client-supplied relative path
// whose first segment names the folder it belongs to.
type BulkFile struct {
	File *multipart.FileHeader
	Path string
}

type UploadService interface {
	// UploadItem stores a batch of images under a freshly named item.
	UploadItem(ctx context.Context, datasetID uuid.UUID, files []*multipart.FileHeader) (*ItemUploadResult, error)

	// BulkUpload groups files by folder name, get-or-creating each item,
	// so re-running a partially failed upload converges.
	BulkUpload(ctx context.Context, datasetID uuid.UUID, files []BulkFile) ([]*ItemUploadResult, error)
}

type uploadService struct {
	items  repo.ItemRepo
	images repo.ImageRepo
	s3     *blob.S3Deps
	cfg    *config.Config
	log    *zap.Logger
}

func NewUploadService(items repo.ItemRepo, images repo.ImageRepo, s3 *blob.S3Deps, cfg *config.Config, log *zap.Logger) UploadService {
	return &uploadService{items: items, images: images, s3: s3, cfg: cfg, log: log}
}

func (s *uploadService) UploadItem(ctx context.Context, datasetID uuid.UUID, files []*multipart.FileHeader) (*ItemUploadResult, error) {
	item := &model.Item{DatasetID: datasetID, Name: randomItemName()}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.storeFiles(ctx, item, files)
}

func (s *uploadService) BulkUpload(ctx context.Context, datasetID uuid.UUID, files []BulkFile) ([]*ItemUploadResult, error) {
	byFolder := make(map[string][]*multipart.FileHeader)
	var order []string
	for _, f := range files {
		folder := folderName(f.Path)
		if folder == "" {
			folder = randomItemName()
		}
		if _, seen := byFolder[folder]; !seen {
			order = append(order, folder)
		}
		byFolder[folder] = append(byFolder[folder], f.File)
	}

	results := make([]*ItemUploadResult, 0, len(order))
	for _, folder := range order {
		item, err := s.items.GetOrCreate(ctx, datasetID, folder)
		if err != nil {
			return nil, err
		}
		res, err := s.storeFiles(ctx, item, byFolder[folder])
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// folderName derives the item name from the client path: the first
// non-trivial path segment.
func folderName(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return ""
	}
	segments := strings.Split(p, "/")
	if len(segments) > 1 {
		return segments[0]
	}
	// A bare filename has no folder component.
	return ""
}

func (s *uploadService) storeFiles(ctx context.Context, item *model.Item, files []*multipart.FileHeader) (*ItemUploadResult, error) {
	result := &ItemUploadResult{ItemID: item.ID, Name: item.Name}

	for _, fh := range files {
		uploaded, err := s.storeOne(ctx, item, fh)
		if err != nil {
			return nil, err
		}
		if uploaded != nil {
			result.Images = append(result.Images, *uploaded)
		}
	}
	return result, nil
}

func (s *uploadService) storeOne(ctx context.Context, item *model.Item, fh *multipart.FileHeader) (*UploadedImage, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}

	// Sniff the real content type; the client-declared header is not
	// trusted. Non-image files are skipped, matching the original's
	// allowed-extension filter.
	mtype := mimetype.Detect(data)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") {
		s.log.Warn("skipping non-image upload",
			zap.String("filename", fh.Filename),
			zap.String("detected", mtype.String()))
		return nil, nil
	}

	name := path.Base(fh.Filename)
	key := fmt.Sprintf("%s/%s/%s", item.DatasetID, item.Name, name)

	url, err := s.s3.Upload(ctx, key, mtype.String(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	// The preview derivative is best-effort; the full-size object is the
	// record of truth.
	if resized, rerr := imaging.Downscale(data, s.cfg.S3.ResizedMaxEdge); rerr == nil {
		resizedKey := fmt.Sprintf("%s/%s/resized/%s", item.DatasetID, item.Name, name)
		if _, uerr := s.s3.Upload(ctx, resizedKey, "image/jpeg", bytes.NewReader(resized)); uerr != nil {
			s.log.Warn("store resized derivative", zap.String("key", resizedKey), zap.Error(uerr))
		}
	} else {
		s.log.Warn("downscale upload", zap.String("filename", fh.Filename), zap.Error(rerr))
	}

	telemetry.RecordUpload(ctx, item.DatasetID.String(), int64(len(data)))

	img := &model.Image{
		ItemID:    item.ID,
		DatasetID: item.DatasetID,
		Name:      name,
		URL:       url,
	}
	if err := s.images.Create(ctx, img); err != nil {
		return nil, err
	}

	return &UploadedImage{ID: img.ID, Name: img.Name, URL: img.URL}, nil
}
