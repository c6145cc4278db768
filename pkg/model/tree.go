package model

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DecisionTree is a CART regression tree grown on squared error. With the
// zero value it grows until leaves are pure or cannot be split.
type DecisionTree struct {
	MaxDepth        int // 0 means unlimited
	MinSamplesSplit int // default 2
	MinSamplesLeaf  int // default 1

	nodes    []treeNode
	features int
}

type treeNode struct {
	feature     int
	threshold   float64
	left, right int
	value       float64
	leaf        bool
}

func NewDecisionTree() *DecisionTree { return &DecisionTree{} }

// Depth of the fitted tree; a single leaf has depth 0.
func (t *DecisionTree) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	var walk func(i int) int
	walk = func(i int) int {
		n := t.nodes[i]
		if n.leaf {
			return 0
		}
		return 1 + max(walk(n.left), walk(n.right))
	}
	return walk(0)
}

// Leaves counts the terminal nodes.
func (t *DecisionTree) Leaves() int {
	c := 0
	for _, n := range t.nodes {
		if n.leaf {
			c++
		}
	}
	return c
}

func (t *DecisionTree) Fit(X mat.Matrix, y []float64) error {
	n, p, err := checkXY(X, y)
	if err != nil {
		return err
	}
	b := &treeBuilder{
		x:        mat.DenseCopyOf(X),
		y:        y,
		minSplit: max(t.MinSamplesSplit, 2),
		minLeaf:  max(t.MinSamplesLeaf, 1),
		maxDepth: t.MaxDepth,
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	b.grow(idx, 0)
	t.nodes = b.nodes
	t.features = p
	return nil
}

func (t *DecisionTree) Predict(X mat.Matrix) ([]float64, error) {
	if len(t.nodes) == 0 {
		return nil, ErrNotFitted
	}
	n, p := X.Dims()
	if p != t.features {
		return nil, fmt.Errorf("%w: fitted on %d features, got %d", ErrShape, t.features, p)
	}
	out := make([]float64, n)
	for i := range out {
		k := 0
		for !t.nodes[k].leaf {
			nd := t.nodes[k]
			if X.At(i, nd.feature) <= nd.threshold {
				k = nd.left
			} else {
				k = nd.right
			}
		}
		out[i] = t.nodes[k].value
	}
	return out, nil
}

type treeBuilder struct {
	x        *mat.Dense
	y        []float64
	minSplit int
	minLeaf  int
	maxDepth int
	nodes    []treeNode
}

// grow appends the subtree for idx and returns its node index.
func (b *treeBuilder) grow(idx []int, depth int) int {
	id := len(b.nodes)
	mean, sse := b.moments(idx)
	b.nodes = append(b.nodes, treeNode{leaf: true, value: mean})

	n := len(idx)
	if n < b.minSplit || n < 2*b.minLeaf || sse/float64(n) <= epsilon ||
		(b.maxDepth > 0 && depth >= b.maxDepth) {
		return id
	}
	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return id
	}
	var left, right []int
	for _, i := range idx {
		if b.x.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[id] = treeNode{feature: feature, threshold: threshold, left: l, right: r, value: mean}
	return id
}

func (b *treeBuilder) moments(idx []int) (mean, sse float64) {
	for _, i := range idx {
		mean += b.y[i]
	}
	mean /= float64(len(idx))
	for _, i := range idx {
		d := b.y[i] - mean
		sse += d * d
	}
	return mean, sse
}

// bestSplit scans every feature for the threshold that minimises the summed
// squared error of the two children.
func (b *treeBuilder) bestSplit(idx []int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	_, p := b.x.Dims()
	order := make([]int, n)
	best := math.Inf(1)
	for j := 0; j < p; j++ {
		copy(order, idx)
		sort.SliceStable(order, func(a, c int) bool { return b.x.At(order[a], j) < b.x.At(order[c], j) })

		var totSum, totSq float64
		for _, i := range order {
			totSum += b.y[i]
			totSq += b.y[i] * b.y[i]
		}
		var lSum, lSq float64
		for k := 0; k < n-1; k++ {
			yi := b.y[order[k]]
			lSum += yi
			lSq += yi * yi
			nl := k + 1
			nr := n - nl
			if nl < b.minLeaf || nr < b.minLeaf {
				continue
			}
			xa, xb := b.x.At(order[k], j), b.x.At(order[k+1], j)
			if xb <= xa {
				continue
			}
			rSum, rSq := totSum-lSum, totSq-lSq
			cost := (lSq - lSum*lSum/float64(nl)) + (rSq - rSum*rSum/float64(nr))
			if cost < best {
				best = cost
				feature = j
				threshold = xa + (xb-xa)/2
				if threshold == xb {
					threshold = xa
				}
				ok = true
			}
		}
	}
	return feature, threshold, ok
}
