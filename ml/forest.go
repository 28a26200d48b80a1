package ml

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// ForestConfig 随机森林训练参数
type ForestConfig struct {
	NumTrees        int
	MaxDepth        int // 0 表示不限制
	MinSamplesSplit int
	MaxFeatures     int // 0 表示 sqrt(特征数)
	Seed            int64
}

// DefaultForestConfig 100 棵树、随机种子 42
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NumTrees:        100,
		MinSamplesSplit: 2,
		Seed:            42,
	}
}

// RandomForest 自助采样 + 随机特征子集的分类森林
type RandomForest struct {
	Config    ForestConfig
	Classes   []int
	NFeatures int
	Trees     []Tree
}

// NewRandomForest 创建未训练的森林
func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = 100
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	return &RandomForest{Config: cfg}
}

// Fit 并发训练全部决策树，同一个 Seed 得到相同的森林
func (f *RandomForest) Fit(ctx context.Context, x *mat.Dense, y []int) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return errors.New("forest: no training rows")
	}
	if rows != len(y) {
		return fmt.Errorf("forest: %d rows but %d labels", rows, len(y))
	}

	f.Classes = uniqueSorted(y)
	f.NFeatures = cols
	position := make(map[int]int, len(f.Classes))
	for i, c := range f.Classes {
		position[c] = i
	}
	encoded := make([]int, len(y))
	for i, c := range y {
		encoded[i] = position[c]
	}
	data := make([][]float64, rows)
	for i := range data {
		data[i] = x.RawRowView(i)
	}

	params := treeParams{
		maxDepth:        f.Config.MaxDepth,
		minSamplesSplit: f.Config.MinSamplesSplit,
		maxFeatures:     f.Config.MaxFeatures,
	}
	if params.maxFeatures <= 0 || params.maxFeatures > cols {
		params.maxFeatures = int(math.Max(1, math.Floor(math.Sqrt(float64(cols)))))
	}

	master := rand.New(rand.NewSource(f.Config.Seed))
	seeds := make([]int64, f.Config.NumTrees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	trees := make([]Tree, f.Config.NumTrees)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range trees {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seeds[i]))
			samples := make([]int, rows)
			for k := range samples {
				samples[k] = rng.Intn(rows)
			}
			trees[i] = *growTree(data, encoded, len(f.Classes), samples, params, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("forest: %w", err)
	}
	f.Trees = trees
	return nil
}

// PredictProba 返回各类别的平均概率，顺序与 Classes 一致
func (f *RandomForest) PredictProba(row []float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, errors.New("forest: model is not fitted")
	}
	if len(row) != f.NFeatures {
		return nil, fmt.Errorf("forest: expected %d features, got %d", f.NFeatures, len(row))
	}
	probs := make([]float64, len(f.Classes))
	for i := range f.Trees {
		for c, p := range f.Trees[i].predict(row) {
			probs[c] += p
		}
	}
	for c := range probs {
		probs[c] /= float64(len(f.Trees))
	}
	return probs, nil
}

// Predict 返回概率最大的类别，概率相同时取较小的类别
func (f *RandomForest) Predict(row []float64) (int, error) {
	probs, err := f.PredictProba(row)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return f.Classes[best], nil
}

// Score 在给定数据上的准确率
func (f *RandomForest) Score(x *mat.Dense, y []int) (float64, error) {
	rows, _ := x.Dims()
	if rows == 0 || rows != len(y) {
		return 0, fmt.Errorf("forest: %d rows but %d labels", rows, len(y))
	}
	correct := 0
	for i := 0; i < rows; i++ {
		pred, err := f.Predict(x.RawRowView(i))
		if err != nil {
			return 0, err
		}
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(rows), nil
}

func uniqueSorted(y []int) []int {
	seen := make(map[int]struct{}, len(y))
	var out []int
	for _, v := range y {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
