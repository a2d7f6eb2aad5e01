package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ccicconetti/stateful-faas-sim/job"
	"github.com/ccicconetti/stateful-faas-sim/placement"
)

// seedLifetimeOffset/seedPlacementOffset derive the lifetime and
// placement RNG seeds from the run seed. These offsets deliberately
// overlap the job factory's own internal seed derivation — each RNG's
// reproducibility depends only on its own seed, not on global
// uniqueness across the run.
const (
	seedLifetimeOffset = 1_000_000
	seedPlacementOffset = 1_100_000
)

// Simulation is the single-threaded discrete-event engine: it owns the
// job factory, the interarrival/lifetime RNGs, the active-jobs table, and
// delegates all placement decisions to a placement.Engine.
type Simulation struct {
	config Config

	jobFactory *job.JobFactory

	interarrivalDist distuv.Exponential
	lifetimeDist     distuv.Exponential

	engine     placement.Engine
	activeJobs placement.ActiveJobs

	nextJobID uint64
	hasRun    bool
}

// NewSimulation validates cfg and constructs a fresh Simulation. Returns
// an error for any configuration or data-file failure — no simulation
// begins.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	jobFactory, err := job.NewJobFactory(cfg.Seed, job.FactoryConfig{
		DataDir:  cfg.DataDir,
		StateMul: cfg.StateMul,
		ArgMul:   cfg.ArgMul,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: constructing job factory: %w", err)
	}

	interarrivalRNG := rand.New(rand.NewSource(cfg.Seed))
	lifetimeRNG := rand.New(rand.NewSource(cfg.Seed + seedLifetimeOffset))
	placementRNG := rand.New(rand.NewSource(cfg.Seed + seedPlacementOffset))

	var engine placement.Engine
	switch cfg.Policy {
	case PolicyStatelessMinNodes:
		engine = placement.StatelessMinNodes{}
	case PolicyStatelessMaxBalancing:
		engine = placement.StatelessMaxBalancing{}
	case PolicyStatefulBestFit:
		engine = placement.NewStatefulBestFit(cfg.NodeCapacity, placementRNG)
	case PolicyStatefulRandom:
		engine = placement.NewStatefulRandom(cfg.NodeCapacity, placementRNG)
	default:
		return nil, fmt.Errorf("sim: unknown policy %q", cfg.Policy)
	}

	return &Simulation{
		config:           cfg,
		jobFactory:       jobFactory,
		interarrivalDist: distuv.Exponential{Rate: 1.0 / cfg.JobInterarrival, Src: interarrivalRNG},
		lifetimeDist:     distuv.Exponential{Rate: 1.0 / cfg.JobLifetime, Src: lifetimeRNG},
		engine:           engine,
		activeJobs:       make(placement.ActiveJobs),
	}, nil
}

// Run drains the event queue to completion and returns the aggregate
// Output record. Panics if called more than once: a Simulation is
// single-use.
func (s *Simulation) Run() Output {
	if s.hasRun {
		panic("sim: Simulation.Run() called more than once")
	}
	s.hasRun = true

	start := time.Now()

	h := newEventHeap()
	var seqCounter int64
	h.schedule(Event{Time: 0, Kind: EventJobStart}, &seqCounter)
	h.schedule(Event{Time: s.config.Duration, Kind: EventExperimentEnd}, &seqCounter)
	h.schedule(Event{Time: s.config.DefragmentationInterval, Kind: EventDefragmentation}, &seqCounter)

	var now int64
	var avgBusyNodes, maxBusyNodes, totalTraffic float64
	var migrations int

	for {
		ev, ok := h.popNext()
		if !ok {
			break
		}
		delta := float64(ev.Time - now)
		now = ev.Time

		busy, traffic := s.engine.Stats(s.activeJobs, s.config.NodeCapacity)
		avgBusyNodes += busy * delta
		if busy > maxBusyNodes {
			maxBusyNodes = busy
		}
		totalTraffic += traffic * s.config.JobInvocationRate * delta

		switch ev.Kind {
		case EventJobStart:
			j, err := s.jobFactory.Make()
			if err != nil {
				panic(fmt.Sprintf("sim: job factory: %v", err))
			}
			jobID := s.nextJobID
			s.nextJobID++
			if _, exists := s.activeJobs[jobID]; exists {
				panic(fmt.Sprintf("sim: duplicate job_id %d insertion into active jobs", jobID))
			}
			s.activeJobs[jobID] = j
			s.engine.Allocate(jobID, j)

			lifetime := int64(math.Ceil(s.lifetimeDist.Rand()))
			h.schedule(Event{Time: now + lifetime, Kind: EventJobEnd, JobID: jobID}, &seqCounter)
			logrus.Infof("A %d job ID %d (lifetime %d s)", now, jobID, lifetime)

			interarrival := int64(math.Ceil(s.interarrivalDist.Rand()))
			h.schedule(Event{Time: now + interarrival, Kind: EventJobStart}, &seqCounter)

		case EventJobEnd:
			j, ok := s.activeJobs[ev.JobID]
			if !ok {
				panic(fmt.Sprintf("sim: JobEnd for absent job %d", ev.JobID))
			}
			s.engine.Deallocate(ev.JobID, j)
			delete(s.activeJobs, ev.JobID)
			logrus.Infof("T %d job ID %d", now, ev.JobID)

		case EventDefragmentation:
			traffic, migs := s.engine.Defragment(s.activeJobs)
			totalTraffic += traffic
			migrations += migs
			logrus.Infof("D %d", now)
			h.schedule(Event{Time: now + s.config.DefragmentationInterval, Kind: EventDefragmentation}, &seqCounter)

		case EventExperimentEnd:
			logrus.Infof("E %d", now)
			return s.finalize(avgBusyNodes, maxBusyNodes, totalTraffic, migrations, start)
		}
	}

	return s.finalize(avgBusyNodes, maxBusyNodes, totalTraffic, migrations, start)
}

// finalize applies the post-loop aggregation rules.
func (s *Simulation) finalize(avgBusyNodes, maxBusyNodes, totalTraffic float64, migrations int, start time.Time) Output {
	avgBusyNodes /= float64(s.config.Duration)
	if s.config.Policy == PolicyStatelessMaxBalancing {
		avgBusyNodes = maxBusyNodes
	}
	if migrations > 0 {
		logrus.Infof("defragmentation: %d migrations over the run", migrations)
	}
	return Output{
		Seed:          s.config.Seed,
		AvgBusyNodes:  avgBusyNodes,
		TotalTraffic:  totalTraffic,
		MigrationRate: float64(migrations) / float64(s.config.Duration),
		ExecutionTime: time.Since(start).Seconds(),
	}
}
