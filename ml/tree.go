package ml

import (
	"math/rand"
	"sort"
)

// Node 决策树节点，Feature 为 -1 表示叶子
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Probs     []float64
}

// Tree 扁平存储的 CART 决策树，Nodes[0] 为根
type Tree struct {
	Nodes []Node
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int
}

type treeBuilder struct {
	x        [][]float64
	y        []int
	nClasses int
	params   treeParams
	rng      *rand.Rand
	tree     *Tree
}

// predict 返回样本落入叶子的类别分布
func (t *Tree) predict(row []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Feature < 0 {
			return n.Probs
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// growTree y 为类别位置 (0..nClasses-1)，samples 可以包含重复下标（自助采样）
func growTree(x [][]float64, y []int, nClasses int, samples []int, params treeParams, rng *rand.Rand) *Tree {
	b := &treeBuilder{
		x:        x,
		y:        y,
		nClasses: nClasses,
		params:   params,
		rng:      rng,
		tree:     &Tree{},
	}
	b.build(samples, 0)
	return b.tree
}

func (b *treeBuilder) build(samples []int, depth int) int {
	counts := b.classCounts(samples)
	idx := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, Node{Feature: -1})

	if b.isPure(counts) ||
		len(samples) < b.params.minSamplesSplit ||
		(b.params.maxDepth > 0 && depth >= b.params.maxDepth) {
		b.tree.Nodes[idx].Probs = normalize(counts, len(samples))
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples, counts)
	if !ok {
		b.tree.Nodes[idx].Probs = normalize(counts, len(samples))
		return idx
	}

	var left, right []int
	for _, s := range samples {
		if b.x[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.tree.Nodes[idx] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return idx
}

// bestSplit 至少检查 maxFeatures 个随机特征；若都无法切分则继续检查剩余特征
func (b *treeBuilder) bestSplit(samples []int, parent []int) (int, float64, bool) {
	nFeatures := len(b.x[0])
	order := b.rng.Perm(nFeatures)

	bestFeature, bestThreshold, bestImpurity := -1, 0.0, 0.0
	found := false

	sorted := make([]int, len(samples))
	left := make([]int, b.nClasses)
	right := make([]int, b.nClasses)

	for visited, f := range order {
		if visited >= b.params.maxFeatures && found {
			break
		}
		copy(sorted, samples)
		sort.Slice(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })

		for c := range left {
			left[c] = 0
		}
		copy(right, parent)

		n := len(sorted)
		for i := 0; i < n-1; i++ {
			c := b.y[sorted[i]]
			left[c]++
			right[c]--
			cur, next := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if cur == next {
				continue
			}
			nl, nr := i+1, n-i-1
			impurity := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(n)
			if !found || impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = f
				bestThreshold = cur + (next-cur)/2
				if bestThreshold >= next {
					bestThreshold = cur
				}
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func (b *treeBuilder) classCounts(samples []int) []int {
	counts := make([]int, b.nClasses)
	for _, s := range samples {
		counts[b.y[s]]++
	}
	return counts
}

func (b *treeBuilder) isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

func normalize(counts []int, n int) []float64 {
	probs := make([]float64, len(counts))
	if n == 0 {
		return probs
	}
	for i, c := range counts {
		probs[i] = float64(c) / float64(n)
	}
	return probs
}
