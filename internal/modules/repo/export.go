package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

// ImageExportRow is one denormalized line of the image/item join used by
// the CSV exports.
type ImageExportRow struct {
	ImageName    string `gorm:"column:image_name"`
	ItemName     string `gorm:"column:item_name"`
	ItemLabel    string `gorm:"column:item_label"`
	ImageLabel   string `gorm:"column:image_label"`
	Comment      string `gorm:"column:comment"`
	CervicalArea string `gorm:"column:cervical_area"`
}

// AnnotationExportRow carries one annotation with its JSON answer set for
// the per-user export; answers are denormalized into columns downstream.
type AnnotationExportRow struct {
	ImageName string `gorm:"column:image_name"`
	UserEmail string `gorm:"column:user_email"`
	Answers   []byte `gorm:"column:answers"`
}

// ExportRepo walks export result sets with a row cursor so the CSV writers
// never hold a full dataset in memory.
type ExportRepo interface {
	ForEachImageRow(ctx context.Context, datasetID uuid.UUID, orderByCase bool, fn func(*ImageExportRow) error) error
	ForEachAnnotationRow(ctx context.Context, datasetID uuid.UUID, fn func(*AnnotationExportRow) error) error
}

type exportRepo struct{ db *gorm.DB }

func NewExportRepo(db *gorm.DB) ExportRepo {
	return &exportRepo{db: db}
}

func (r *exportRepo) ForEachImageRow(ctx context.Context, datasetID uuid.UUID, orderByCase bool, fn func(*ImageExportRow) error) error {
	order := "items.created_at ASC, images.created_at ASC"
	if orderByCase {
		order = "items.name ASC, images.created_at ASC"
	}

	rows, err := r.db.WithContext(ctx).
		Model(&model.Image{}).
		Select("images.name AS image_name, items.name AS item_name, items.label AS item_label, " +
			"images.label AS image_label, items.comment AS comment, images.cervical_area AS cervical_area").
		Joins("JOIN items ON items.id = images.item_id").
		Where("images.dataset_id = ?", datasetID).
		Order(order).
		Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row ImageExportRow
		if err := r.db.ScanRows(rows, &row); err != nil {
			return err
		}
		if err := fn(&row); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *exportRepo) ForEachAnnotationRow(ctx context.Context, datasetID uuid.UUID, fn func(*AnnotationExportRow) error) error {
	rows, err := r.db.WithContext(ctx).
		Model(&model.Annotation{}).
		Select("images.name AS image_name, users.email AS user_email, annotations.answers AS answers").
		Joins("JOIN images ON images.id = annotations.image_id").
		Joins("JOIN users ON users.id = annotations.user_id").
		Where("annotations.dataset_id = ?", datasetID).
		Order("users.email ASC, annotations.created_at ASC").
		Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row AnnotationExportRow
		if err := r.db.ScanRows(rows, &row); err != nil {
			return err
		}
		if err := fn(&row); err != nil {
			return err
		}
	}
	return rows.Err()
}
