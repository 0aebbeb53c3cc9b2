package alertlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_OncePerDay(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "alert_log.json"))
	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)

	if !s.ShouldAlert("BTCUSDT", day1) {
		t.Fatal("fresh symbol should be eligible")
	}
	s.Record("BTCUSDT", day1)
	if s.ShouldAlert("BTCUSDT", day1) {
		t.Error("recorded symbol should be suppressed for the same day")
	}

	// Recording twice with the same date is idempotent.
	s.Record("BTCUSDT", day1)
	if s.ShouldAlert("BTCUSDT", day1) {
		t.Error("double record must not reset suppression")
	}

	// The date advancing makes the symbol eligible again.
	if !s.ShouldAlert("BTCUSDT", day2) {
		t.Error("symbol should be eligible again the next day")
	}
}

func TestStore_SymbolsAreIndependent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "alert_log.json"))
	now := time.Now()
	s.Record("BTCUSDT", now)
	if !s.ShouldAlert("ETHUSDT", now) {
		t.Error("recording one symbol must not suppress another")
	}
}

func TestStore_PersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "alert_log.json")
	now := time.Now()

	s := NewStore(path)
	s.Record("BTCUSDT", now)
	s.Record("ETHUSDT", now)
	if err := s.Persist(); err != nil {
		t.Fatal(err)
	}

	reloaded := NewStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", reloaded.Len())
	}
	if reloaded.ShouldAlert("BTCUSDT", now) {
		t.Error("suppression should survive a restart within the same day")
	}
	if !reloaded.ShouldAlert("BTCUSDT", now.AddDate(0, 0, 1)) {
		t.Error("next-day eligibility should survive a restart")
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does_not_exist.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alert_log.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)
	if err := s.Load(); err == nil {
		t.Error("expected error for corrupt file")
	}
}
