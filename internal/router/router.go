package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/marconi-lab/annotator/docs"
	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/middleware"
	"github.com/marconi-lab/annotator/internal/modules/handler"
	"github.com/marconi-lab/annotator/internal/modules/repo"
	"github.com/marconi-lab/annotator/internal/modules/serializer"
)

type RouterDeps struct {
	Config            *config.Config
	Log               *zap.Logger
	Blacklist         repo.BlacklistRepo
	AuthHandler       *handler.AuthHandler
	DatasetHandler    *handler.DatasetHandler
	ProjectHandler    *handler.ProjectHandler
	UserAdminHandler  *handler.UserAdminHandler
	AssignmentHandler *handler.AssignmentHandler
	ItemHandler       *handler.ItemHandler
	ImageHandler      *handler.ImageHandler
	UserHandler       *handler.UserHandler
	UploadHandler     *handler.UploadHandler
	ExportHandler     *handler.ExportHandler
	PredictHandler    *handler.PredictHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// public auth surface
	auth := r.Group("/auth")
	{
		auth.POST("/register/", d.AuthHandler.Register)
		auth.POST("/login/", d.AuthHandler.Login)
		auth.POST("/logout/", middleware.Auth(d.Config, d.Blacklist), d.AuthHandler.Logout)
	}
	r.GET("/confirm/:token", d.AuthHandler.ConfirmEmail)
	r.POST("/password-reset/", d.AuthHandler.RequestPasswordReset)
	r.POST("/new-password/:token", d.AuthHandler.SetNewPassword)

	authed := middleware.Auth(d.Config, d.Blacklist)

	admin := r.Group("/admin", authed, middleware.RequireAdmin())
	{
		datasets := admin.Group("/datasets")
		{
			datasets.POST("/", d.DatasetHandler.CreateDataset)
			datasets.GET("/", d.DatasetHandler.ListDatasets)
			datasets.GET("/:dataset_id/", d.DatasetHandler.GetDataset)
			datasets.PUT("/:dataset_id/", d.DatasetHandler.UpdateDataset)
			datasets.DELETE("/:dataset_id/", d.DatasetHandler.DeleteDataset)
		}

		projects := admin.Group("/projects")
		{
			projects.POST("/", d.ProjectHandler.CreateProject)
			projects.GET("/", d.ProjectHandler.ListProjects)
			projects.GET("/:project_id/", d.ProjectHandler.GetProject)
			projects.PUT("/:project_id/", d.ProjectHandler.UpdateProject)
			projects.DELETE("/:project_id/", d.ProjectHandler.DeleteProject)
		}

		users := admin.Group("/users")
		{
			users.GET("/", d.UserAdminHandler.ListUsers)
			users.GET("/:user_id/", d.UserAdminHandler.GetUser)
			users.PUT("/:user_id/", d.UserAdminHandler.UpdateUser)
			users.DELETE("/:user_id/", d.UserAdminHandler.DeleteUser)
		}

		assignments := admin.Group("/assignments")
		{
			assignments.POST("/", d.AssignmentHandler.CreateAssignment)
			assignments.GET("/", d.AssignmentHandler.ListAssignments)
			assignments.DELETE("/", d.AssignmentHandler.DeleteAssignment)
		}

		admin.GET("/:dataset_id/item/", d.ItemHandler.ListItems)
		admin.POST("/:dataset_id/item/", d.UploadHandler.UploadItem)
		admin.POST("/:dataset_id/bulk_upload/", d.UploadHandler.BulkUpload)
	}

	download := r.Group("/download", authed, middleware.RequireAdmin())
	{
		download.GET("/csv/:dataset_id/", d.ExportHandler.DownloadCSV)
		download.GET("/csv/:dataset_id/cases", d.ExportHandler.DownloadCSVByCase)
		download.GET("/csv/annotations/:dataset_id", d.ExportHandler.DownloadAnnotationsCSV)
		download.GET("/zip/:dataset_id/", d.ExportHandler.DownloadZip)
	}

	user := r.Group("/user", authed)
	{
		user.GET("/:user_id/home/", middleware.RequireSelfOrAdmin("user_id"), d.UserHandler.Home)
		user.GET("/:user_id/datasets/", middleware.RequireSelfOrAdmin("user_id"), d.UserHandler.AssignedDatasets)

		user.GET("/datasets/:dataset_id/", d.UserHandler.DatasetItems)

		user.GET("/item/:item_id/", d.ItemHandler.GetItem)
		user.PUT("/item/:item_id/", d.ItemHandler.UpdateItem)

		// the :id segment is an image id on the first two routes and a
		// dataset id on the random route; gin requires one wildcard name
		// per segment.
		user.GET("/images/:id/", d.ImageHandler.GetImage)
		user.PUT("/images/:id/", d.ImageHandler.UpdateImage)
		user.PUT("/images/boundingbox/:id/", d.ImageHandler.UpdateBoundingBox)
		user.GET("/images/:id/random", d.ImageHandler.RandomImage)

		user.POST("/label/:id", d.ImageHandler.SubmitAnnotation)
	}

	external := r.Group("/external", authed, middleware.RequireAdmin())
	{
		external.POST("/predict/:image_id", d.PredictHandler.Predict)
	}

	return r
}
