package bootstrap

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/modules/model"
)

// EnsureDefaultAdminExists seeds the initial admin account at startup so a
// fresh deployment is reachable. A no-op unless both credential fields are
// configured; an existing account with the same email is left untouched.
func EnsureDefaultAdminExists(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	email := cfg.Auth.DefaultAdminEmail
	password := cfg.Auth.DefaultAdminPassword
	if email == "" || password == "" {
		return nil
	}

	var existing model.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		log.Sugar().Infow("default admin exists", "user", existing.ID)
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, herr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if herr != nil {
			return herr
		}
		admin := model.User{
			Email:        email,
			Username:     "admin",
			PasswordHash: string(hash),
			IsAdmin:      true,
			IsVerified:   true,
		}
		if cerr := db.WithContext(ctx).Create(&admin).Error; cerr != nil {
			return cerr
		}
		log.Sugar().Infow("default admin created", "user", admin.ID)
		return nil
	default:
		return err
	}
}
