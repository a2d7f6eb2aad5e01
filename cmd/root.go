// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccicconetti/stateful-faas-sim/internal/sweep"
	"github.com/ccicconetti/stateful-faas-sim/sim"
)

var (
	duration                int64
	jobLifetime             float64
	jobInterarrival         float64
	jobInvocationRate       float64
	nodeCapacity            int
	defragmentationInterval int64
	stateMul                float64
	argMul                  float64
	seedInit                int64
	seedEnd                 int64
	concurrency             int
	policyName              string
	dataDir                 string
	outputPath              string
	appendOutput            bool
	additionalFields        string
	additionalHeader        string
	logLevel                string
	scenarioFile            string
	scenarioName            string
)

var rootCmd = &cobra.Command{
	Use:   "stateful-faas-sim",
	Short: "Discrete-event simulator for stateful FaaS task placement policies",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sweep a seed range over one placement policy and write a CSV of results",
	RunE:  runSweep,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	if strings.Count(additionalFields, ",") != strings.Count(additionalHeader, ",") {
		return fmt.Errorf("--additional-fields and --additional-header have a different number of commas")
	}

	if scenarioFile != "" && scenarioName != "" {
		scenario, err := loadScenario(scenarioFile, scenarioName)
		if err != nil {
			return err
		}
		applyScenario(scenario)
		logrus.Infof("applied scenario %q from %s", scenarioName, scenarioFile)
	}

	if policyName == "list" {
		names := make([]string, 0, len(sim.AllPolicies()))
		for _, p := range sim.AllPolicies() {
			names = append(names, string(p))
		}
		fmt.Println("available policies:", strings.Join(names, ", "))
		return nil
	}

	policy, err := sim.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	var configs []sim.Config
	for seed := seedInit; seed < seedEnd; seed++ {
		configs = append(configs, sim.Config{
			Duration:                duration,
			JobLifetime:             jobLifetime,
			JobInterarrival:         jobInterarrival,
			JobInvocationRate:       jobInvocationRate,
			NodeCapacity:            nodeCapacity,
			DefragmentationInterval: defragmentationInterval,
			StateMul:                stateMul,
			ArgMul:                  argMul,
			Policy:                  policy,
			Seed:                    seed,
			DataDir:                 dataDir,
		})
	}

	logrus.Infof("running %d configurations across %d workers", len(configs), concurrency)
	coordinator := sweep.NewCoordinator(configs)
	outputs := coordinator.Run(context.Background(), concurrency)

	return writeCSV(outputPath, appendOutput, additionalHeader, additionalFields, outputs)
}

func init() {
	runCmd.Flags().Int64Var(&duration, "duration", 3600, "Duration of the simulation experiment, in s")
	runCmd.Flags().Float64Var(&jobLifetime, "job-lifetime", 10.0, "Average lifetime duration of a job, in s")
	runCmd.Flags().Float64Var(&jobInterarrival, "job-interarrival", 1.0, "Average inter-arrival between consecutive jobs, in s")
	runCmd.Flags().Float64Var(&jobInvocationRate, "job-invocation-rate", 5.0, "Invocation rate of a job within its lifetime, in Hz")
	runCmd.Flags().IntVar(&nodeCapacity, "node-capacity", 1000, "Node capacity; every 100 units means 1 core")
	runCmd.Flags().Int64Var(&defragmentationInterval, "defragmentation-interval", 300, "Defragmentation interval, in s")
	runCmd.Flags().Float64Var(&stateMul, "state-mul", 100.0, "State size multiplier applied to the task memory sample")
	runCmd.Flags().Float64Var(&argMul, "arg-mul", 100.0, "Argument size multiplier applied to the task memory sample")
	runCmd.Flags().Int64Var(&seedInit, "seed-init", 0, "Initial seed to initialize the pseudo-random number generators")
	runCmd.Flags().Int64Var(&seedEnd, "seed-end", 10, "Final (exclusive) seed to initialize the pseudo-random number generators")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 1, "Number of parallel workers")
	runCmd.Flags().StringVar(&policyName, "policy", "stateless-min-nodes", "Allocation policy to use; use 'list' to get a list of policies")
	runCmd.Flags().StringVar(&dataDir, "data-dir", "data", "Directory containing the input distribution files")
	runCmd.Flags().StringVar(&outputPath, "output", "out.csv", "Name of the CSV output file where to save the metrics collected")
	runCmd.Flags().BoolVar(&appendOutput, "append", false, "Append to the output file")
	runCmd.Flags().StringVar(&additionalFields, "additional-fields", "", "Additional fields recorded in the CSV output file")
	runCmd.Flags().StringVar(&additionalHeader, "additional-header", "", "Header of additional fields recorded in the CSV output file")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML file of named presets overriding the flags above")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Name of the preset to apply from --scenario-file")

	rootCmd.AddCommand(runCmd)
}
