package sim

import "testing"

func runOnce(t *testing.T, cfg Config) Output {
	t.Helper()
	s, err := NewSimulation(cfg)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return s.Run()
}

func TestSimulation_StatelessMinNodes_FiniteAndPositive(t *testing.T) {
	cfg := validConfig()
	out := runOnce(t, cfg)
	if out.AvgBusyNodes <= 0 {
		t.Fatalf("AvgBusyNodes = %g, want > 0", out.AvgBusyNodes)
	}
	if out.TotalTraffic <= 0 {
		t.Fatalf("TotalTraffic = %g, want > 0", out.TotalTraffic)
	}
}

func TestSimulation_StatelessMinNodes_DurationScaling(t *testing.T) {
	base := validConfig()
	out3600 := runOnce(t, base)

	doubled := base
	doubled.Duration = 7200
	out7200 := runOnce(t, doubled)

	if out7200.AvgBusyNodes < 0.5*out3600.AvgBusyNodes || out7200.AvgBusyNodes > 1.5*out3600.AvgBusyNodes {
		t.Fatalf("avg_busy_nodes at 7200s = %g, want within [0.5x,1.5x] of %g", out7200.AvgBusyNodes, out3600.AvgBusyNodes)
	}
	if out7200.TotalTraffic < 1.5*out3600.TotalTraffic || out7200.TotalTraffic > 2.5*out3600.TotalTraffic {
		t.Fatalf("total_traffic at 7200s = %g, want within [1.5x,2.5x] of %g", out7200.TotalTraffic, out3600.TotalTraffic)
	}
}

func TestSimulation_Deterministic(t *testing.T) {
	cfg := validConfig()
	out1 := runOnce(t, cfg)
	out2 := runOnce(t, cfg)

	if out1.AvgBusyNodes != out2.AvgBusyNodes || out1.TotalTraffic != out2.TotalTraffic || out1.MigrationRate != out2.MigrationRate {
		t.Fatalf("two runs with identical Config diverged: %+v != %+v", out1, out2)
	}
}

func TestSimulation_StatefulBestFit_MigrationRateNonNegative(t *testing.T) {
	cfg := validConfig()
	cfg.Policy = PolicyStatefulBestFit
	out := runOnce(t, cfg)
	if out.MigrationRate < 0 {
		t.Fatalf("MigrationRate = %g, want >= 0", out.MigrationRate)
	}
}

func TestSimulation_StatefulRandom_Runs(t *testing.T) {
	cfg := validConfig()
	cfg.Policy = PolicyStatefulRandom
	out := runOnce(t, cfg)
	if out.AvgBusyNodes <= 0 {
		t.Fatalf("AvgBusyNodes = %g, want > 0", out.AvgBusyNodes)
	}
}

func TestSimulation_RunTwicePanics(t *testing.T) {
	s, err := NewSimulation(validConfig())
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	s.Run()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Run() twice")
		}
	}()
	s.Run()
}

func TestNewSimulation_InvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Duration = 0
	if _, err := NewSimulation(cfg); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestNewSimulation_MissingDataDir(t *testing.T) {
	cfg := validConfig()
	cfg.DataDir = "/nonexistent-data-dir"
	if _, err := NewSimulation(cfg); err == nil {
		t.Fatal("expected error for missing data dir")
	}
}

func TestOutput_CSVRoundTrip(t *testing.T) {
	out := Output{Seed: 42, AvgBusyNodes: 1.5, TotalTraffic: 1000, MigrationRate: 0.1, ExecutionTime: 0.002}
	row := out.CSVRow()
	if row != "42,1.5,1000,0.1,0.002" {
		t.Fatalf("CSVRow() = %q", row)
	}
	if CSVHeader() != "seed,avg-busy-nodes,total-traffic,migration-rate,execution-time" {
		t.Fatalf("CSVHeader() = %q", CSVHeader())
	}
}
