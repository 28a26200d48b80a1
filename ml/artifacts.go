package ml

import (
	"encoding/gob"
	"fmt"
	"os"
)

// SaveModel 以 gob 格式写出森林
func SaveModel(path string, model *RandomForest) error {
	return saveGob(path, model)
}

// LoadModel 读取 SaveModel 写出的森林
func LoadModel(path string) (*RandomForest, error) {
	var model RandomForest
	if err := loadGob(path, &model); err != nil {
		return nil, err
	}
	if len(model.Trees) == 0 {
		return nil, fmt.Errorf("model %s contains no trees", path)
	}
	return &model, nil
}

// SaveScaler 以 gob 格式写出标准化参数
func SaveScaler(path string, scaler *StandardScaler) error {
	return saveGob(path, scaler)
}

// LoadScaler 读取 SaveScaler 写出的标准化参数
func LoadScaler(path string) (*StandardScaler, error) {
	var scaler StandardScaler
	if err := loadGob(path, &scaler); err != nil {
		return nil, err
	}
	if len(scaler.Mean) == 0 || len(scaler.Mean) != len(scaler.Scale) {
		return nil, fmt.Errorf("scaler %s is malformed", path)
	}
	return &scaler, nil
}

func saveGob(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := gob.NewEncoder(file).Encode(v); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

func loadGob(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	if err := gob.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
