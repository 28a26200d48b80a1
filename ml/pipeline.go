package ml

import "fmt"

// Pipeline 标准化 + 分类，加载后只读，可被多个请求并发使用
type Pipeline struct {
	scaler *StandardScaler
	model  *RandomForest
}

// NewPipeline 校验两个模型文件的特征数一致
func NewPipeline(scaler *StandardScaler, model *RandomForest) (*Pipeline, error) {
	if scaler.NumFeatures() != model.NFeatures {
		return nil, fmt.Errorf("scaler has %d features but model expects %d", scaler.NumFeatures(), model.NFeatures)
	}
	return &Pipeline{scaler: scaler, model: model}, nil
}

// LoadPipeline 从磁盘加载模型与标准化参数
func LoadPipeline(modelPath, scalerPath string) (*Pipeline, error) {
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	scaler, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	return NewPipeline(scaler, model)
}

// Predict 对单行原始特征做推理，返回分类序号
func (p *Pipeline) Predict(features []float64) (int, error) {
	scaled, err := p.scaler.Transform(features)
	if err != nil {
		return 0, err
	}
	return p.model.Predict(scaled)
}
