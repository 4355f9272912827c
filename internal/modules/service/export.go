package service

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/infra/blob"
	"github.com/marconi-lab/annotator/internal/modules/repo"
)

// csvFlushEvery bounds how many rows accumulate in the csv writer's buffer
// before flushing to the response stream.
const csvFlushEvery = 100

// ExportService streams dataset exports. All writers work row-at-a-time
// over the destination writer; nothing is buffered whole.
type ExportService interface {
	// WriteImagesCSV emits the image/item join as CSV with the fixed
	// header "image, label, label 2, comment, cervical area". With
	// orderByCase the rows are grouped by item name instead of insertion
	// order.
	WriteImagesCSV(ctx context.Context, w io.Writer, datasetID uuid.UUID, orderByCase bool) error

	// WriteAnnotationsCSV emits one row per annotation with the dataset's
	// class vocabulary denormalized into per-question columns.
	WriteAnnotationsCSV(ctx context.Context, w io.Writer, datasetID uuid.UUID) error

	// WriteZip streams every stored object of the dataset into a zip
	// archive, fetching objects from the blob store one at a time.
	WriteZip(ctx context.Context, w io.Writer, datasetID uuid.UUID) error
}

type exportService struct {
	exports  repo.ExportRepo
	datasets repo.DatasetRepo
	images   repo.ImageRepo
	s3       *blob.S3Deps
	logger   *zap.Logger
}

func NewExportService(exports repo.ExportRepo, datasets repo.DatasetRepo, images repo.ImageRepo, s3 *blob.S3Deps, logger *zap.Logger) ExportService {
	return &exportService{exports: exports, datasets: datasets, images: images, s3: s3, logger: logger}
}

func (s *exportService) WriteImagesCSV(ctx context.Context, w io.Writer, datasetID uuid.UUID, orderByCase bool) error {
	if _, err := s.datasets.Get(ctx, datasetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"image", "label", "label 2", "comment", "cervical area"}); err != nil {
		return err
	}

	n := 0
	err := s.exports.ForEachImageRow(ctx, datasetID, orderByCase, func(row *repo.ImageExportRow) error {
		if err := cw.Write([]string{row.ImageName, row.ItemLabel, row.ImageLabel, row.Comment, row.CervicalArea}); err != nil {
			return err
		}
		n++
		if n%csvFlushEvery == 0 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func (s *exportService) WriteAnnotationsCSV(ctx context.Context, w io.Writer, datasetID uuid.UUID) error {
	ds, err := s.datasets.Get(ctx, datasetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// The class vocabulary doubles as the question set: each class name is
	// one answer column in the per-user export.
	var questions []string
	if len(ds.Classes) > 0 {
		if err := sonic.Unmarshal(ds.Classes, &questions); err != nil {
			return fmt.Errorf("decode dataset classes: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	header := append([]string{"image", "user"}, questions...)
	if err := cw.Write(header); err != nil {
		return err
	}

	n := 0
	err = s.exports.ForEachAnnotationRow(ctx, datasetID, func(row *repo.AnnotationExportRow) error {
		answers := map[string]string{}
		if len(row.Answers) > 0 {
			if uerr := sonic.Unmarshal(row.Answers, &answers); uerr != nil {
				s.logger.Warn("skipping malformed annotation payload",
					zap.String("image", row.ImageName), zap.Error(uerr))
				return nil
			}
		}

		record := make([]string, 0, len(header))
		record = append(record, row.ImageName, row.UserEmail)
		for _, q := range questions {
			record = append(record, answers[q])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
		n++
		if n%csvFlushEvery == 0 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func (s *exportService) WriteZip(ctx context.Context, w io.Writer, datasetID uuid.UUID) error {
	if _, err := s.datasets.Get(ctx, datasetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	urls, err := s.images.ListKeysByDataset(ctx, datasetID)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for _, url := range urls {
		key := s.s3.KeyFromURL(url)
		if key == "" {
			continue
		}
		if err := s.copyObject(ctx, zw, key); err != nil {
			// A missing object should not abort an archive that is
			// already partially on the wire.
			s.logger.Warn("skipping object in zip export",
				zap.String("key", key), zap.Error(err))
		}
	}
	return zw.Close()
}

func (s *exportService) copyObject(ctx context.Context, zw *zip.Writer, key string) error {
	body, err := s.s3.Download(ctx, key)
	if err != nil {
		return err
	}
	defer body.Close()

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: key, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, body)
	return err
}
