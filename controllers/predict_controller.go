package controllers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-cropadvisor/models"
	"go-cropadvisor/templates"
	"go-cropadvisor/utils"
)

// CropClassifier 输入 7 个原始特征，返回分类序号
type CropClassifier interface {
	Predict(features []float64) (int, error)
}

// PredictController 处理作物推荐相关的请求
type PredictController struct {
	DB         *sql.DB
	Classifier CropClassifier
	Logger     *zap.Logger
}

// NewPredictController 创建一个新的PredictController实例，db 可以为 nil
func NewPredictController(db *sql.DB, classifier CropClassifier, logger *zap.Logger) *PredictController {
	return &PredictController{DB: db, Classifier: classifier, Logger: logger}
}

// Index 首页
func (c *PredictController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, templates.IndexPage, gin.H{
		"Districts": models.Districts(),
	})
}

// Predict 作物推荐
func (c *PredictController) Predict(ctx *gin.Context) {
	asJSON := isJSONRequest(ctx)

	result, err := c.predict(ctx, asJSON)
	if err != nil {
		c.Logger.Warn("prediction failed", zap.Error(err), zap.Bool("json", asJSON))
		if asJSON {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.HTML(http.StatusOK, templates.IndexPage, gin.H{
			"Districts": models.Districts(),
			"Error":     err.Error(),
		})
		return
	}

	if c.DB != nil {
		id, err := c.saveRecord(ctx.Request.Context(), result)
		if err != nil {
			c.Logger.Error("failed to save prediction record", zap.Error(err))
		} else {
			result.RecordID = id
		}
	}

	if asJSON {
		ctx.JSON(http.StatusOK, result)
		return
	}
	ctx.HTML(http.StatusOK, templates.IndexPage, gin.H{
		"Districts": models.Districts(),
		"Result":    result,
	})
}

func (c *PredictController) predict(ctx *gin.Context, asJSON bool) (*models.PredictionResult, error) {
	var lookup func(key string) (any, bool)
	if asJSON {
		var body map[string]any
		if err := json.NewDecoder(ctx.Request.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		if body == nil {
			return nil, errors.New("JSON body must be an object")
		}
		lookup = func(key string) (any, bool) {
			v, ok := body[key]
			return v, ok
		}
	} else {
		lookup = func(key string) (any, bool) {
			return ctx.GetPostForm(key)
		}
	}

	var in models.Inputs
	numeric := []struct {
		key string
		dst *float64
	}{
		{"Nitrogen", &in.N},
		{"Phosphorus", &in.P},
		{"Potassium", &in.K},
		{"Temperature", &in.Temp},
		{"Humidity", &in.Humidity},
		{"Ph", &in.Ph},
		{"Rainfall", &in.Rainfall},
	}
	for _, f := range numeric {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}
		n, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}

	district := lookupString(lookup, "District")
	season := lookupString(lookup, "Season")

	classIdx, err := c.Classifier.Predict(in.Vector())
	if err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}

	level := models.DistrictVulnerability(district)
	return &models.PredictionResult{
		District:      district,
		Season:        season,
		PredictedCrop: models.CropName(classIdx),
		Vulnerability: level,
		Recommended:   models.RecommendedCrops(level),
		Inputs:        in,
	}, nil
}

func (c *PredictController) saveRecord(ctx context.Context, r *models.PredictionResult) (string, error) {
	id, err := utils.NewRecordID()
	if err != nil {
		return "", err
	}
	_, err = c.DB.ExecContext(ctx, `
		INSERT INTO prediction_records (
			public_id, district, season, predicted_crop, vulnerability,
			nitrogen, phosphorus, potassium, temperature, humidity, ph, rainfall, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		id, r.District, r.Season, r.PredictedCrop, string(r.Vulnerability),
		r.Inputs.N, r.Inputs.P, r.Inputs.K, r.Inputs.Temp, r.Inputs.Humidity, r.Inputs.Ph, r.Inputs.Rainfall,
		time.Now(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Health 健康检查
func (c *PredictController) Health(ctx *gin.Context) {
	database := "disabled"
	if c.DB != nil {
		database = "ok"
		if err := c.DB.PingContext(ctx.Request.Context()); err != nil {
			database = "unreachable"
		}
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"model_loaded": c.Classifier != nil,
		"database":     database,
		"time":         time.Now(),
	})
}

// isJSONRequest application/json 或 application/*+json
func isJSONRequest(ctx *gin.Context) bool {
	mt := ctx.ContentType()
	return mt == "application/json" ||
		(strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

// toFloat 数值字段的类型转换，字符串按十进制解析
func toFloat(v any) (float64, error) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case bool:
		if t {
			n = 1
		}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert %q to float", t)
		}
		n = f
	case nil:
		return 0, errors.New("value must be a number, not null")
	default:
		return 0, fmt.Errorf("value must be a number, not %T", v)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errors.New("value must be a finite number")
	}
	return n, nil
}

func lookupString(lookup func(string) (any, bool), key string) string {
	v, ok := lookup(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
