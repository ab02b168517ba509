package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8081" {
		t.Errorf("unexpected default addr: %s", cfg.HTTPAddr)
	}
	if cfg.ServiceName != "checkout-api" {
		t.Errorf("unexpected default service name: %s", cfg.ServiceName)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "kafka:9092" {
		t.Errorf("unexpected default brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.MigrationsPath != "file://migrations" {
		t.Errorf("unexpected default migrations path: %s", cfg.MigrationsPath)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SERVICE_NAME", "checkout-canary")

	cfg := Load()
	if cfg.HTTPAddr != ":9000" {
		t.Errorf("expected :9000, got %s", cfg.HTTPAddr)
	}
	if want := []string{"k1:9092", "k2:9092"}; !reflect.DeepEqual(cfg.KafkaBrokers, want) {
		t.Errorf("expected %v, got %v", want, cfg.KafkaBrokers)
	}
	if cfg.ServiceName != "checkout-canary" {
		t.Errorf("expected checkout-canary, got %s", cfg.ServiceName)
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ", []string{"a", "b"}},
		{",,", []string{}},
	}
	for _, c := range cases {
		if got := splitCSV(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitCSV(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
