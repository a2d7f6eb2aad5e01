package job

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/ccicconetti/stateful-faas-sim/rvhisto"
)

const (
	minCPL   = 2
	maxCPL   = 35
	minLevel = 1
	maxLevel = 20

	seedStride = 1_000_000
)

// FactoryConfig names the on-disk distribution files a JobFactory loads
// its histograms from, relative to DataDir.
type FactoryConfig struct {
	DataDir  string
	StateMul float64
	ArgMul   float64
}

// JobFactory constructs random job DAGs from eleven-odd empirical
// histograms (a task-count distribution, 34 critical-path-length
// distributions keyed by saturated task count, 20 level-fanout
// distributions keyed by saturated critical-path length, a per-task CPU
// distribution, and a per-task/edge memory distribution) plus a
// dedicated RNG used only to select edge endpoints.
type JobFactory struct {
	numSampler *rvhisto.Sampler
	cplSampler map[int]*rvhisto.Sampler // keyed by saturate(num) in [2,35]
	lvlSampler map[int]*rvhisto.Sampler // keyed by saturate(cpl) in [1,20]
	cpuSampler *rvhisto.Sampler
	memSampler *rvhisto.Sampler

	edgeRNG *rand.Rand

	stateMul float64
	argMul   float64
}

// NewJobFactory loads every histogram in the seed-derivation order fixed
// by the observable contract: task_num_dist, cpl_dist-2..35,
// level_dist-1..20, task_cpu_dist, task_mem_dist, then the edge-selection
// RNG. Each sampler k (1-based, in that order) is seeded with
// seed + 1_000_000*k.
func NewJobFactory(seed int64, cfg FactoryConfig) (*JobFactory, error) {
	seedCounter := int64(0)
	nextSeed := func() int64 {
		seedCounter++
		return seed + seedStride*seedCounter
	}

	numSampler, err := rvhisto.NewSamplerFromFile(nextSeed(), filepath.Join(cfg.DataDir, "task_num_dist.dat"))
	if err != nil {
		return nil, fmt.Errorf("job: loading task_num_dist: %w", err)
	}

	cplSampler := make(map[int]*rvhisto.Sampler, maxCPL-minCPL+1)
	for n := minCPL; n <= maxCPL; n++ {
		s, err := rvhisto.NewSamplerFromFile(nextSeed(), filepath.Join(cfg.DataDir, fmt.Sprintf("cpl_dist-%d.dat", n)))
		if err != nil {
			return nil, fmt.Errorf("job: loading cpl_dist-%d: %w", n, err)
		}
		cplSampler[n] = s
	}

	lvlSampler := make(map[int]*rvhisto.Sampler, maxLevel-minLevel+1)
	for n := minLevel; n <= maxLevel; n++ {
		s, err := rvhisto.NewSamplerFromFile(nextSeed(), filepath.Join(cfg.DataDir, fmt.Sprintf("level_dist-%d.dat", n)))
		if err != nil {
			return nil, fmt.Errorf("job: loading level_dist-%d: %w", n, err)
		}
		lvlSampler[n] = s
	}

	cpuSampler, err := rvhisto.NewSamplerFromFile(nextSeed(), filepath.Join(cfg.DataDir, "task_cpu_dist.dat"))
	if err != nil {
		return nil, fmt.Errorf("job: loading task_cpu_dist: %w", err)
	}
	memSampler, err := rvhisto.NewSamplerFromFile(nextSeed(), filepath.Join(cfg.DataDir, "task_mem_dist.dat"))
	if err != nil {
		return nil, fmt.Errorf("job: loading task_mem_dist: %w", err)
	}

	return &JobFactory{
		numSampler: numSampler,
		cplSampler: cplSampler,
		lvlSampler: lvlSampler,
		cpuSampler: cpuSampler,
		memSampler: memSampler,
		edgeRNG:    rand.New(rand.NewSource(nextSeed())),
		stateMul:   cfg.StateMul,
		argMul:     cfg.ArgMul,
	}, nil
}

func saturateCPL(num int) int {
	if num > maxCPL {
		return maxCPL
	}
	return num
}

func saturateLevel(cpl int) int {
	if cpl > maxLevel {
		return maxLevel
	}
	if cpl < minLevel {
		return minLevel
	}
	return cpl
}

// Make draws one random job DAG: levels, the critical path, and extra
// fan-out edges. Level numbers below are 1-based internally and
// converted to 0-based vertex indices only when edges are emitted.
func (f *JobFactory) Make() (*Job, error) {
	num := int(f.numSampler.Sample())
	if num < 1 {
		return nil, fmt.Errorf("job: task_num_dist.dat yielded non-positive task count %d", num)
	}

	vertices := make([]Vertex, num)
	for i := 0; i < num; i++ {
		cpu := int(f.cpuSampler.Sample())
		state := int(f.memSampler.Sample() * f.stateMul)
		vertices[i] = Vertex{CPURequest: cpu, StateSize: state}
	}

	cpl := num
	if num > 1 {
		sampled := int(f.cplSampler[saturateCPL(num)].Sample())
		if sampled < num {
			cpl = sampled
		}
	}
	if cpl < 1 {
		cpl = 1
	}

	// level[l] holds the 1-based task labels assigned to level l.
	level := make(map[int][]int, cpl)
	for i := 0; i < cpl; i++ {
		level[i+1] = []int{i + 1}
	}
	lvlKey := saturateLevel(cpl)
	for i := cpl; i < num; i++ {
		for {
			lvl := int(f.lvlSampler[lvlKey].Sample())
			if lvl < 1 {
				return nil, fmt.Errorf("job: level_dist-%d.dat yielded non-positive level %d", lvlKey, lvl)
			}
			if lvl <= cpl {
				level[lvl] = append(level[lvl], i+1)
				break
			}
		}
	}

	var edges []Edge
	for i := 0; i < cpl-1; i++ {
		edges = append(edges, Edge{From: i, To: i + 1, ArgSize: int(f.memSampler.Sample() * f.argMul)})
	}

	for lvl := 1; lvl <= cpl; lvl++ {
		tasks := level[lvl]
		nextTasks := level[lvl+1]
		if len(tasks) == 0 || len(nextTasks) == 0 {
			continue
		}
		numEdgesPerTask := 1
		if len(nextTasks)/len(tasks) < 1 {
			numEdgesPerTask = 0
		}
		if numEdgesPerTask == 0 {
			continue
		}
		for _, task := range tasks {
			other := nextTasks[f.edgeRNG.Intn(len(nextTasks))]
			if other <= cpl && task+1 == other {
				continue // duplicates a critical-path edge
			}
			edges = appendOrOverwriteEdge(edges, Edge{
				From:    task - 1,
				To:      other - 1,
				ArgSize: int(f.memSampler.Sample() * f.argMul),
			})
		}
	}

	for _, e := range edges {
		if e.From < 0 || e.From >= num || e.To < 0 || e.To >= num {
			return nil, fmt.Errorf("job: generated edge (%d,%d) out of range [0,%d)", e.From, e.To, num)
		}
	}

	return &Job{Vertices: vertices, Edges: edges}, nil
}

// appendOrOverwriteEdge enforces "exactly one edge per ordered pair":
// a duplicate (From,To) overwrites the prior edge's ArgSize instead of
// appending a parallel edge.
func appendOrOverwriteEdge(edges []Edge, e Edge) []Edge {
	for i := range edges {
		if edges[i].From == e.From && edges[i].To == e.To {
			edges[i] = e
			return edges
		}
	}
	return append(edges, e)
}
