package sim

import "testing"

func validConfig() Config {
	return Config{
		Duration:                3600,
		JobLifetime:             10,
		JobInterarrival:         1,
		JobInvocationRate:       5,
		NodeCapacity:            1000,
		DefragmentationInterval: 300,
		StateMul:                100,
		ArgMul:                  100,
		Policy:                  PolicyStatelessMinNodes,
		Seed:                    42,
		DataDir:                 "../job/testdata",
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"zero job_lifetime", func(c *Config) { c.JobLifetime = 0 }},
		{"zero job_interarrival", func(c *Config) { c.JobInterarrival = 0 }},
		{"zero job_invocation_rate", func(c *Config) { c.JobInvocationRate = 0 }},
		{"zero node_capacity", func(c *Config) { c.NodeCapacity = 0 }},
		{"zero defragmentation_interval", func(c *Config) { c.DefragmentationInterval = 0 }},
		{"unknown policy", func(c *Config) { c.Policy = "bogus" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error for %s", tc.name)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range AllPolicies() {
		got, err := ParsePolicy(string(p))
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", p, err)
		}
		if got != p {
			t.Fatalf("ParsePolicy(%q) = %q, want %q", p, got, p)
		}
	}
	if _, err := ParsePolicy("nonexistent"); err == nil {
		t.Fatal("ParsePolicy(\"nonexistent\") = nil error, want error")
	}
}
