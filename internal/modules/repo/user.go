package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AttachProject points the user at a project and creates an assignment
	// for every dataset the project currently owns, in one transaction.
	AttachProject(ctx context.Context, userID, projectID uuid.UUID) error
	// DetachProject clears the home project and removes the assignments
	// that attachment created.
	DetachProject(ctx context.Context, userID uuid.UUID) error

	// CountLabelledImages counts images across all items this user has
	// labelled, for the annotator home screen.
	CountLabelledImages(ctx context.Context, userID uuid.UUID) (int64, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) AttachProject(ctx context.Context, userID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("project_id", projectID).Error; err != nil {
			return err
		}

		var datasetIDs []uuid.UUID
		if err := tx.Model(&model.Dataset{}).
			Where("project_id = ?", projectID).
			Pluck("id", &datasetIDs).Error; err != nil {
			return err
		}

		for _, dsID := range datasetIDs {
			if err := upsertAssignment(tx, userID, dsID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepo) DetachProject(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		if user.ProjectID == nil {
			return nil
		}

		if err := tx.Where(
			"user_id = ? AND dataset_id IN (?)",
			userID,
			tx.Model(&model.Dataset{}).Select("id").Where("project_id = ?", *user.ProjectID),
		).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("project_id", nil).Error
	})
}

func (r *userRepo) CountLabelledImages(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Image{}).
		Joins("JOIN items ON items.id = images.item_id").
		Where("items.labelled_by = ?", userID).
		Count(&n).Error
	return n, err
}
