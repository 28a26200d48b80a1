package controllers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-cropadvisor/models"
	"go-cropadvisor/utils"
)

const recordColumns = "id, public_id, district, season, predicted_crop, vulnerability, " +
	"nitrogen, phosphorus, potassium, temperature, humidity, ph, rainfall, created_at"

// HistoryController 预测历史查询，需要登录
type HistoryController struct {
	DB     *sql.DB
	Logger *zap.Logger
}

// NewHistoryController 创建一个新的HistoryController实例
func NewHistoryController(db *sql.DB, logger *zap.Logger) *HistoryController {
	return &HistoryController{DB: db, Logger: logger}
}

// recordFilter 由 district / crop 查询参数构建 WHERE 子句
func recordFilter(ctx *gin.Context) (string, []any) {
	var conds []string
	var args []any
	if district := ctx.Query("district"); district != "" {
		conds = append(conds, "district = ?")
		args = append(args, district)
	}
	if crop := ctx.Query("crop"); crop != "" {
		conds = append(conds, "predicted_crop LIKE ?")
		args = append(args, "%"+crop+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (c *HistoryController) available(ctx *gin.Context) bool {
	if c.DB == nil {
		utils.ServiceUnavailable(ctx, "prediction history is disabled")
		return false
	}
	return true
}

// GetRecords 获取预测记录列表
func (c *HistoryController) GetRecords(ctx *gin.Context) {
	if !c.available(ctx) {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	where, args := recordFilter(ctx)
	query := "SELECT " + recordColumns + " FROM prediction_records" + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	records, err := c.queryRecords(ctx.Request.Context(), query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		c.Logger.Error("failed to query records", zap.Error(err))
		utils.InternalServerError(ctx, "查询记录失败")
		return
	}

	var totalCount int
	err = c.DB.QueryRowContext(ctx.Request.Context(), "SELECT COUNT(*) FROM prediction_records"+where, args...).Scan(&totalCount)
	if err != nil {
		c.Logger.Error("failed to count records", zap.Error(err))
		utils.InternalServerError(ctx, "获取总记录数失败")
		return
	}

	utils.SuccessWithPagination(ctx, records, totalCount, page, pageSize)
}

// GetRecord 获取单个预测记录
func (c *HistoryController) GetRecord(ctx *gin.Context) {
	if !c.available(ctx) {
		return
	}

	id := ctx.Query("id")
	if !utils.ValidateRecordID(id) {
		utils.BadRequest(ctx, "无效的ID")
		return
	}

	row := c.DB.QueryRowContext(ctx.Request.Context(),
		"SELECT "+recordColumns+" FROM prediction_records WHERE public_id = ?", id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.NotFound(ctx, "记录不存在")
			return
		}
		c.Logger.Error("failed to query record", zap.String("id", id), zap.Error(err))
		utils.InternalServerError(ctx, err.Error())
		return
	}

	utils.Success(ctx, record)
}

// ExportRecords 导出符合条件的全部记录为 xlsx
func (c *HistoryController) ExportRecords(ctx *gin.Context) {
	if !c.available(ctx) {
		return
	}

	where, args := recordFilter(ctx)
	records, err := c.queryRecords(ctx.Request.Context(),
		"SELECT "+recordColumns+" FROM prediction_records"+where+" ORDER BY created_at DESC, id DESC", args...)
	if err != nil {
		c.Logger.Error("failed to query records", zap.Error(err))
		utils.InternalServerError(ctx, "查询记录失败")
		return
	}

	data, err := utils.ExportRecords(records)
	if err != nil {
		c.Logger.Error("failed to export records", zap.Error(err))
		utils.InternalServerError(ctx, err.Error())
		return
	}

	filename := fmt.Sprintf("predictions_%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (c *HistoryController) queryRecords(ctx context.Context, query string, args ...any) ([]models.PredictionRecord, error) {
	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.PredictionRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.PredictionRecord, error) {
	var r models.PredictionRecord
	err := row.Scan(
		&r.ID, &r.PublicID, &r.District, &r.Season, &r.PredictedCrop, &r.Vulnerability,
		&r.Inputs.N, &r.Inputs.P, &r.Inputs.K, &r.Inputs.Temp, &r.Inputs.Humidity, &r.Inputs.Ph, &r.Inputs.Rainfall,
		&r.CreatedAt,
	)
	return r, err
}
