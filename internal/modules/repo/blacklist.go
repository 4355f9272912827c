package repo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/model"
)

const blacklistKeyPrefix = "blacklist:"

// BlacklistRepo is the durable set of revoked bearer tokens. The Postgres
// table is authoritative; Redis keeps a TTL-bounded copy so the auth
// middleware check stays off the database on the hot path.
type BlacklistRepo interface {
	Add(ctx context.Context, token string, remaining time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type blacklistRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewBlacklistRepo(db *gorm.DB, rdb *redis.Client) BlacklistRepo {
	return &blacklistRepo{db: db, rdb: rdb}
}

func (r *blacklistRepo) Add(ctx context.Context, token string, remaining time.Duration) error {
	row := model.BlackListToken{Token: token}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// Blacklisting an already-blacklisted token is a no-op.
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}

	if remaining <= 0 {
		remaining = time.Minute
	}
	// Cache write failure only costs a later DB lookup.
	_ = r.rdb.Set(ctx, blacklistKeyPrefix+token, "1", remaining).Err()
	return nil
}

func (r *blacklistRepo) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	hit, err := r.rdb.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err == nil && hit > 0 {
		return true, nil
	}

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.BlackListToken{}).
		Where("token = ?", token).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		_ = r.rdb.Set(ctx, blacklistKeyPrefix+token, "1", time.Hour).Err()
		return true, nil
	}
	return false, nil
}
