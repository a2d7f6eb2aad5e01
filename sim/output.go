package sim

import "fmt"

// Output is the single aggregate-metrics row a Simulation run produces.
type Output struct {
	Seed          int64
	AvgBusyNodes  float64
	TotalTraffic  float64
	MigrationRate float64
	ExecutionTime float64 // seconds, wall-clock
}

// CSVHeader is the fixed column header row, seed first.
func CSVHeader() string {
	return "seed,avg-busy-nodes,total-traffic,migration-rate,execution-time"
}

// CSVRow renders one Output as a CSV data row.
func (o Output) CSVRow() string {
	return fmt.Sprintf("%d,%g,%g,%g,%g", o.Seed, o.AvgBusyNodes, o.TotalTraffic, o.MigrationRate, o.ExecutionTime)
}
