package config

import (
	"errors"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty image", func(c *Config) { c.Image = "" }},
		{"empty platform tag", func(c *Config) { c.PlatformTag = "" }},
		{"empty variants root", func(c *Config) { c.VariantsRoot = "" }},
		{"bad audit policy", func(c *Config) { c.AuditPolicy = "ignore" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestVariantEnabled(t *testing.T) {
	cfg := Default()

	if !cfg.VariantEnabled("cp39-cp39") {
		t.Fatal("empty allow list should admit every variant")
	}

	cfg.VariantAllow = []string{"cp39-cp39"}
	if cfg.VariantEnabled("cp38-cp38") {
		t.Fatal("variant outside the allow list admitted")
	}
	if !cfg.VariantEnabled("cp39-cp39") {
		t.Fatal("allowed variant rejected")
	}

	cfg.VariantDeny = []string{"cp39-cp39"}
	if cfg.VariantEnabled("cp39-cp39") {
		t.Fatal("deny list must win over the allow list")
	}
}
