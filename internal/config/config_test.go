package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.StegoWaveLib.Header != "STEG" || s.StegoWaveLib.DefaultLsbDeep != 1 || s.StegoWaveLib.MaxOccupancy != 70 {
		t.Fatalf("unexpected defaults: %+v", s.StegoWaveLib)
	}
	if s.REST.Port != 8080 || s.GRPC.Port != 50051 {
		t.Fatalf("unexpected endpoint defaults: rest=%+v grpc=%+v", s.REST, s.GRPC)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sw_config.toml")
	contents := "[stego_wave_lib]\nheader = \"XYZ\"\ndefault_lsb_deep = 3\nmax_occupancy = 50\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.StegoWaveLib.Header != "XYZ" || s.StegoWaveLib.DefaultLsbDeep != 3 || s.StegoWaveLib.MaxOccupancy != 50 {
		t.Fatalf("file override not applied: %+v", s.StegoWaveLib)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sw_config.toml")
	contents := "[stego_wave_lib]\nheader = \"XYZ\"\ndefault_lsb_deep = 3\nmax_occupancy = 50\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("SW__STEGO_WAVE_LIB__HEADER", "ENVH")
	t.Setenv("SW__REST__PORT", "9999")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.StegoWaveLib.Header != "ENVH" {
		t.Fatalf("env override not applied: header = %q", s.StegoWaveLib.Header)
	}
	if s.REST.Port != 9999 {
		t.Fatalf("env override not applied: rest.port = %d", s.REST.Port)
	}
	if s.StegoWaveLib.DefaultLsbDeep != 3 {
		t.Fatalf("file value clobbered by env default: %d", s.StegoWaveLib.DefaultLsbDeep)
	}
}
