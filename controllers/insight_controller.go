package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-cropadvisor/models"
	"go-cropadvisor/utils"
)

// InsightController 作物对比、图表数据等静态查询
type InsightController struct {
	Logger *zap.Logger
}

func NewInsightController(logger *zap.Logger) *InsightController {
	return &InsightController{Logger: logger}
}

// 占位数据，所有地区共用
var climateNormals = utils.ClimateSeries{
	Months:   []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Rainfall: []float64{30, 40, 55, 60, 80, 120, 160, 140, 110, 70, 40, 30},
	Temp:     []float64{22, 24, 28, 30, 32, 34, 33, 32, 30, 28, 25, 23},
}

// Compare 对比两种作物
func (c *InsightController) Compare(ctx *gin.Context) {
	var body map[string]any
	if err := json.NewDecoder(ctx.Request.Body).Decode(&body); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("invalid JSON body: %v", err)})
		return
	}
	if body == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "JSON body must be an object"})
		return
	}

	cropA, cropB := body["a"], body["b"]
	if isEmptyValue(cropA) || isEmptyValue(cropB) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing crops"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"a": cropProfile(cropA),
		"b": cropProfile(cropB),
	})
}

// ChartData 月度降雨与气温，目前不区分地区
func (c *InsightController) ChartData(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, climateNormals)
}

// ChartImage 以 PNG 返回 ChartData 的折线图
func (c *InsightController) ChartImage(ctx *gin.Context) {
	district := ctx.Param("district")
	png, err := utils.RenderClimateChart("Climate normals: "+district, climateNormals)
	if err != nil {
		c.Logger.Error("failed to render chart", zap.String("district", district), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// DistrictDefaults 地区默认天气，目前不区分地区
func (c *InsightController) DistrictDefaults(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"temp":     28,
		"humidity": 60,
		"rainfall": 500,
	})
}

func cropProfile(v any) any {
	name, ok := v.(string)
	if !ok {
		return gin.H{}
	}
	if p, ok := models.LookupCropProfile(name); ok {
		return p
	}
	return gin.H{}
}

// isEmptyValue 缺失、null、空字符串、0、false、空数组和空对象都视为未填写
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
