package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/infra/blob"
	"github.com/marconi-lab/annotator/internal/infra/cache"
	"github.com/marconi-lab/annotator/internal/infra/db"
	"github.com/marconi-lab/annotator/internal/infra/httpclient"
	"github.com/marconi-lab/annotator/internal/infra/logger"
	mq "github.com/marconi-lab/annotator/internal/infra/queue"
	"github.com/marconi-lab/annotator/internal/mailer"
	"github.com/marconi-lab/annotator/internal/modules/handler"
	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}

		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.Project{},
				&model.User{},
				&model.Dataset{},
				&model.Item{},
				&model.Image{},
				&model.Assignment{},
				&model.Annotation{},
				&model.BlackListToken{},
			)
		}

		if err := EnsureDefaultAdminExists(context.Background(), d, cfg, log); err != nil {
			return nil, err
		}

		if cfg.Telemetry.Enabled {
			if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
				return nil, err
			}
		}

		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb, err := cache.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Telemetry.Enabled {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				return nil, err
			}
		}
		return rdb, nil
	})

	// RabbitMQ DialFunc for connection and reconnection
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		cfg := do.MustInvoke[*config.Config](i)

		dialFn := func() (*amqp.Connection, error) {
			useTLS := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(cfg.RabbitMQ.URL, "amqps://")

			if useTLS {
				tlsConfig := &tls.Config{
					MinVersion: tls.VersionTLS12,
				}
				url := cfg.RabbitMQ.URL
				if strings.HasPrefix(url, "amqp://") {
					url = strings.Replace(url, "amqp://", "amqps://", 1)
				}
				return amqp.DialTLS(url, tlsConfig)
			}

			return amqp.Dial(cfg.RabbitMQ.URL)
		}

		return dialFn, nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		dialFn := do.MustInvoke[mq.DialFunc](i)
		return dialFn()
	})

	// RabbitMQ Publisher
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		conn := do.MustInvoke[*amqp.Connection](i)
		log := do.MustInvoke[*zap.Logger](i)
		dialFn := do.MustInvoke[mq.DialFunc](i)
		return mq.NewPublisher(conn, log, cfg, dialFn)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// Prediction HTTP client
	do.Provide(inj, func(i *do.Injector) (*httpclient.PredictClient, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return httpclient.NewPredictClient(cfg, log), nil
	})

	// Mailer
	do.Provide(inj, func(i *do.Injector) (*mailer.Mailer, error) {
		return mailer.New(
			do.MustInvoke[*mq.Publisher](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.DatasetRepo, error) {
		return repo.NewDatasetRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ItemRepo, error) {
		return repo.NewItemRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ImageRepo, error) {
		return repo.NewImageRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AssignmentRepo, error) {
		return repo.NewAssignmentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AnnotationRepo, error) {
		return repo.NewAnnotationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.BlacklistRepo, error) {
		return repo.NewBlacklistRepo(
			do.MustInvoke[*gorm.DB](i),
			do.MustInvoke[*redis.Client](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ExportRepo, error) {
		return repo.NewExportRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[repo.BlacklistRepo](i),
			do.MustInvoke[*mailer.Mailer](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.DatasetService, error) {
		return service.NewDatasetService(
			do.MustInvoke[repo.DatasetRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.AnnotationRepo](i),
			do.MustInvoke[repo.ImageRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.DatasetRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[repo.AssignmentRepo](i),
			do.MustInvoke[repo.DatasetRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AssignmentService, error) {
		return service.NewAssignmentService(
			do.MustInvoke[repo.AssignmentRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[repo.DatasetRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ItemService, error) {
		return service.NewItemService(
			do.MustInvoke[repo.ItemRepo](i),
			do.MustInvoke[repo.ImageRepo](i),
			do.MustInvoke[repo.DatasetRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ImageService, error) {
		return service.NewImageService(
			do.MustInvoke[repo.ImageRepo](i),
			do.MustInvoke[repo.ItemRepo](i),
			do.MustInvoke[repo.DatasetRepo](i),
			do.MustInvoke[repo.AnnotationRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UploadService, error) {
		return service.NewUploadService(
			do.MustInvoke[repo.ItemRepo](i),
			do.MustInvoke[repo.ImageRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ExportService, error) {
		return service.NewExportService(
			do.MustInvoke[repo.ExportRepo](i),
			do.MustInvoke[repo.DatasetRepo](i),
			do.MustInvoke[repo.ImageRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(
			do.MustInvoke[service.AuthService](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.DatasetHandler, error) {
		return handler.NewDatasetHandler(do.MustInvoke[service.DatasetService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UserAdminHandler, error) {
		return handler.NewUserAdminHandler(do.MustInvoke[service.UserService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AssignmentHandler, error) {
		return handler.NewAssignmentHandler(do.MustInvoke[service.AssignmentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ItemHandler, error) {
		return handler.NewItemHandler(do.MustInvoke[service.ItemService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ImageHandler, error) {
		return handler.NewImageHandler(do.MustInvoke[service.ImageService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(
			do.MustInvoke[service.UserService](i),
			do.MustInvoke[service.DatasetService](i),
			do.MustInvoke[service.ItemService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UploadHandler, error) {
		return handler.NewUploadHandler(do.MustInvoke[service.UploadService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ExportHandler, error) {
		return handler.NewExportHandler(
			do.MustInvoke[service.ExportService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PredictHandler, error) {
		return handler.NewPredictHandler(
			do.MustInvoke[service.ImageService](i),
			do.MustInvoke[*httpclient.PredictClient](i),
			do.MustInvoke[*blob.S3Deps](i),
		), nil
	})

	return inj
}
