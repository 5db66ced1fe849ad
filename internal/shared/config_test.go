package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	c := Load()
	if c.HTTPAddr != ":8080" || c.ApprovalBackend != "file" {
		t.Fatalf("defaults: %+v", c)
	}
	if c.HostawayBase != "https://api.hostaway.com" {
		t.Fatalf("hostaway base: %s", c.HostawayBase)
	}
	if c.ApprovalPath != "data/approved.json" {
		t.Fatalf("approval path: %s", c.ApprovalPath)
	}
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "http_addr: \":9090\"\napproval_backend: redis\nprovider_rps: 12\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	c := Load()
	if c.HTTPAddr != ":9090" || c.ApprovalBackend != "redis" || c.ProviderRPS != 12 {
		t.Fatalf("yaml overlay: %+v", c)
	}
	// untouched keys keep their defaults
	if c.GoogleBase != "https://maps.googleapis.com" {
		t.Fatalf("google base: %s", c.GoogleBase)
	}
}

func TestLoad_EnvWinsOverYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http_addr: \":9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("APPROVAL_BACKEND", "pebble")

	c := Load()
	if c.HTTPAddr != ":7070" {
		t.Fatalf("env must win: %s", c.HTTPAddr)
	}
	if c.ApprovalBackend != "pebble" {
		t.Fatalf("backend: %s", c.ApprovalBackend)
	}
}

func TestLoad_BadYAMLFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("bad yaml must keep defaults: %+v", c)
	}
}

func TestLoad_BadIntEnvIgnored(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PROVIDER_RPS", "many")

	c := Load()
	if c.ProviderRPS != 5 {
		t.Fatalf("providerRPS: %d", c.ProviderRPS)
	}
}
