package settings

import "testing"

func withTempHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	withTempHome(t)
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != (Settings{}) {
		t.Fatalf("Load() = %+v, want zero value", s)
	}
}

func TestSetThenLoadRoundTrips(t *testing.T) {
	withTempHome(t)
	if err := Set("model", "gpt-4"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Model != "gpt-4" {
		t.Fatalf("Model = %q, want gpt-4", s.Model)
	}
}

func TestSetUnknownKeyRejected(t *testing.T) {
	withTempHome(t)
	if err := Set("bogus", "x"); err == nil {
		t.Fatal("expected error setting unknown key")
	}
}

func TestUnsetResetsToZeroValue(t *testing.T) {
	withTempHome(t)
	Set("key", "secret")
	if err := Unset("key"); err != nil {
		t.Fatalf("Unset: %v", err)
	}
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Key != "" {
		t.Fatalf("Key = %q, want empty after unset", s.Key)
	}
}
