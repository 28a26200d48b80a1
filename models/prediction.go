package models

import "time"

// FeatureNames 模型输入特征的顺序
var FeatureNames = []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// Inputs 一次预测的 7 个数值输入
type Inputs struct {
	N        float64 `json:"N"`
	P        float64 `json:"P"`
	K        float64 `json:"K"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Ph       float64 `json:"ph"`
	Rainfall float64 `json:"rainfall"`
}

// Vector 按 FeatureNames 顺序返回特征向量
func (in Inputs) Vector() []float64 {
	return []float64{in.N, in.P, in.K, in.Temp, in.Humidity, in.Ph, in.Rainfall}
}

// PredictionResult /predict 的响应结构
type PredictionResult struct {
	RecordID      string        `json:"record_id,omitempty"`
	District      string        `json:"district"`
	Season        string        `json:"season"`
	PredictedCrop string        `json:"predicted_crop"`
	Vulnerability Vulnerability `json:"vulnerability"`
	Recommended   []string      `json:"recommended"`
	Inputs        Inputs        `json:"inputs"`
}

// PredictionRecord 预测历史记录
type PredictionRecord struct {
	ID            int64     `json:"id"`
	PublicID      string    `json:"publicId"`
	District      string    `json:"district"`
	Season        string    `json:"season"`
	PredictedCrop string    `json:"predictedCrop"`
	Vulnerability string    `json:"vulnerability"`
	Inputs        Inputs    `json:"inputs"`
	CreatedAt     time.Time `json:"createdAt"`
}
