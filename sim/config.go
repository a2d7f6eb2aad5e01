package sim

import "fmt"

// Policy names one of the four placement policies a Simulation can run.
type Policy string

const (
	PolicyStatelessMinNodes    Policy = "stateless-min-nodes"
	PolicyStatelessMaxBalancing Policy = "stateless-max-balancing"
	PolicyStatefulBestFit      Policy = "stateful-best-fit"
	PolicyStatefulRandom       Policy = "stateful-random"
)

// AllPolicies returns every known policy name, in the order the CLI's
// "--policy list" sentinel should print them.
func AllPolicies() []Policy {
	return []Policy{
		PolicyStatelessMinNodes,
		PolicyStatelessMaxBalancing,
		PolicyStatefulBestFit,
		PolicyStatefulRandom,
	}
}

// ParsePolicy validates a policy name against AllPolicies.
func ParsePolicy(name string) (Policy, error) {
	for _, p := range AllPolicies() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("sim: unknown policy %q", name)
}

// Config is the run configuration for one Simulation.
type Config struct {
	Duration                int64
	JobLifetime             float64
	JobInterarrival         float64
	JobInvocationRate       float64
	NodeCapacity            int
	DefragmentationInterval int64
	StateMul                float64
	ArgMul                  float64
	Policy                  Policy
	Seed                    int64
	DataDir                 string
}

// Validate checks construction-time invariants, reported synchronously
// before any simulation begins.
func (c Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("sim: duration must be > 0, got %d", c.Duration)
	}
	if c.JobLifetime <= 0 {
		return fmt.Errorf("sim: job_lifetime must be > 0, got %g", c.JobLifetime)
	}
	if c.JobInterarrival <= 0 {
		return fmt.Errorf("sim: job_interarrival must be > 0, got %g", c.JobInterarrival)
	}
	if c.JobInvocationRate <= 0 {
		return fmt.Errorf("sim: job_invocation_rate must be > 0, got %g", c.JobInvocationRate)
	}
	if c.NodeCapacity <= 0 {
		return fmt.Errorf("sim: node_capacity must be > 0, got %d", c.NodeCapacity)
	}
	if c.DefragmentationInterval <= 0 {
		return fmt.Errorf("sim: defragmentation_interval must be > 0, got %d", c.DefragmentationInterval)
	}
	if _, err := ParsePolicy(string(c.Policy)); err != nil {
		return err
	}
	return nil
}
