package config

import "testing"

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default :8080, got %s", cfg.Addr)
	}
}

func TestLoadServerConfigPortForms(t *testing.T) {
	cases := map[string]string{
		"9090":           ":9090",
		":9090":          ":9090",
		"127.0.0.1:9090": "127.0.0.1:9090",
	}

	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			t.Setenv("PORT", input)

			cfg, err := loadServerConfig()
			if err != nil {
				t.Fatalf("loadServerConfig err: %v", err)
			}
			if cfg.Addr != want {
				t.Fatalf("expected %s, got %s", want, cfg.Addr)
			}
		})
	}
}

func TestLoadServerConfigRejectsSpaces(t *testing.T) {
	t.Setenv("PORT", "80 80")

	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  AIConfig
		want bool
	}{
		{"empty", AIConfig{}, false},
		{"model only", AIConfig{Model: "m"}, false},
		{"api key", AIConfig{Model: "m", APIKey: "k"}, true},
		{"ak only", AIConfig{Model: "m", AccessKey: "ak"}, false},
		{"ak sk", AIConfig{Model: "m", AccessKey: "ak", SecretKey: "sk"}, true},
		{"key without model", AIConfig{APIKey: "k"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.Enabled(); got != tc.want {
				t.Fatalf("Enabled() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoadAnalyzerConfig(t *testing.T) {
	t.Setenv("ANALYZER_SEED", "42")

	cfg, err := loadAnalyzerConfig()
	if err != nil {
		t.Fatalf("loadAnalyzerConfig err: %v", err)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Seed)
	}
}

func TestLoadAnalyzerConfigRejectsNegative(t *testing.T) {
	t.Setenv("ANALYZER_SEED", "-1")

	if _, err := loadAnalyzerConfig(); err == nil {
		t.Fatal("expected error for negative seed")
	}
}

func TestParseOptionalFloatEnv(t *testing.T) {
	t.Setenv("ARK_TEMPERATURE", "0.7")

	val, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		t.Fatalf("parseOptionalFloatEnv err: %v", err)
	}
	if val == nil || *val != 0.7 {
		t.Fatalf("expected 0.7, got %v", val)
	}
}

func TestParseOptionalFloatEnvUnsetAndBlank(t *testing.T) {
	val, err := parseOptionalFloatEnv("ARK_UNSET_FOR_TEST")
	if err != nil || val != nil {
		t.Fatalf("expected nil for unset env, got %v, %v", val, err)
	}

	t.Setenv("ARK_TEMPERATURE", "   ")
	val, err = parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil || val != nil {
		t.Fatalf("expected nil for blank env, got %v, %v", val, err)
	}
}

func TestParseOptionalIntEnvInvalid(t *testing.T) {
	t.Setenv("ARK_MAX_TOKENS", "lots")

	if _, err := parseOptionalIntEnv("ARK_MAX_TOKENS"); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}
