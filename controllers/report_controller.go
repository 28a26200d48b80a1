package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-cropadvisor/utils"
)

// ReportController PDF 报告
type ReportController struct {
	Logger *zap.Logger
	// render 默认为 utils.RenderReport
	render func(utils.Report) ([]byte, error)
}

func NewReportController(logger *zap.Logger) *ReportController {
	return &ReportController{Logger: logger, render: utils.RenderReport}
}

// DownloadReport 生成并下载 PDF 报告
func (c *ReportController) DownloadReport(ctx *gin.Context) {
	report := utils.Report{
		PredictedCrop: ctx.DefaultPostForm("Predicted", "Unknown"),
		District:      ctx.PostForm("District"),
		Season:        ctx.PostForm("Season"),
	}

	pdf, err := c.render(report)
	if err != nil {
		c.Logger.Error("failed to render report", zap.Error(err))
		ctx.String(http.StatusInternalServerError, "PDF Error: %v", err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, utils.ReportFilename))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
