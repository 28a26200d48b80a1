package ml

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// LabelEncoder 把标签文本映射为分类序号
type LabelEncoder func(label string) (int, bool)

// Dataset 带标签的训练数据
type Dataset struct {
	Features     *mat.Dense
	Labels       []int
	FeatureNames []string
}

// Len 样本数
func (d *Dataset) Len() int {
	return len(d.Labels)
}

// LoadCSVFile 打开文件并调用 ReadCSV
func LoadCSVFile(path string, featureCols []string, labelCol string, encode LabelEncoder) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, featureCols, labelCol, encode)
}

// ReadCSV 读取带表头的 CSV，按 featureCols 的顺序取特征列
func ReadCSV(r io.Reader, featureCols []string, labelCol string, encode LabelEncoder) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	featIdx := make([]int, len(featureCols))
	for i, name := range featureCols {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("missing feature column %q", name)
		}
		featIdx[i] = idx
	}
	labelIdx, ok := index[labelCol]
	if !ok {
		return nil, fmt.Errorf("missing label column %q", labelCol)
	}

	var data []float64
	var labels []int
	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for i, idx := range featIdx {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, featureCols[i], err)
			}
			data = append(data, v)
		}
		class, ok := encode(rec[labelIdx])
		if !ok {
			return nil, fmt.Errorf("line %d: unknown label %q", line, rec[labelIdx])
		}
		labels = append(labels, class)
	}
	if len(labels) == 0 {
		return nil, errors.New("dataset has no rows")
	}

	names := make([]string, len(featureCols))
	copy(names, featureCols)
	return &Dataset{
		Features:     mat.NewDense(len(labels), len(featureCols), data),
		Labels:       labels,
		FeatureNames: names,
	}, nil
}

// Split 打乱后按 testSize 比例切分训练集与测试集
func (d *Dataset) Split(testSize float64, seed int64) (train, test *Dataset, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in (0, 1), got %v", testSize)
	}
	n := d.Len()
	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest < 1 || nTest >= n {
		return nil, nil, fmt.Errorf("cannot split %d rows with test size %v", n, testSize)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return d.subset(perm[nTest:]), d.subset(perm[:nTest]), nil
}

func (d *Dataset) subset(rows []int) *Dataset {
	_, cols := d.Features.Dims()
	out := &Dataset{
		Features:     mat.NewDense(len(rows), cols, nil),
		Labels:       make([]int, len(rows)),
		FeatureNames: d.FeatureNames,
	}
	for i, r := range rows {
		out.Features.SetRow(i, d.Features.RawRowView(r))
		out.Labels[i] = d.Labels[r]
	}
	return out
}
