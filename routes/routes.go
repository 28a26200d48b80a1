package routes

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-cropadvisor/config"
	"go-cropadvisor/controllers"
	"go-cropadvisor/middleware"
	"go-cropadvisor/templates"
)

// SetupRouter 配置所有路由，db 为 nil 时历史记录与账户接口返回 503
func SetupRouter(db *sql.DB, classifier controllers.CropClassifier, cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// 创建控制器实例
	predictController := controllers.NewPredictController(db, classifier, logger)
	insightController := controllers.NewInsightController(logger)
	reportController := controllers.NewReportController(logger)
	historyController := controllers.NewHistoryController(db, logger)
	authController := controllers.NewAuthController(db, cfg.JWT, logger)

	// 公共路由
	public := r.Group("/")
	{
		public.GET("/", predictController.Index)
		public.GET("/health", predictController.Health)
		public.POST("/predict", predictController.Predict)
		public.POST("/download_report", reportController.DownloadReport)
		public.POST("/compare", insightController.Compare)
		public.GET("/chart_data/:district", insightController.ChartData)
		public.GET("/chart_image/:district", insightController.ChartImage)
		public.GET("/district_defaults/:district", insightController.DistrictDefaults)

		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	// 需要认证的路由
	protected := r.Group("/history")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		protected.GET("/records", historyController.GetRecords)
		protected.GET("/record", historyController.GetRecord)
		protected.GET("/export", historyController.ExportRecords)
	}

	return r, nil
}
