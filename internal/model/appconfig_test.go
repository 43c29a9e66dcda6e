package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultStockLength != 1820 {
		t.Errorf("expected stock length 1820, got %f", cfg.DefaultStockLength)
	}
	if cfg.DefaultSpacing != 303 {
		t.Errorf("expected spacing 303, got %f", cfg.DefaultSpacing)
	}
	if cfg.DefaultBoardWidth != DefaultBoardSize.Width || cfg.DefaultBoardLength != DefaultBoardSize.Length {
		t.Errorf("board defaults should match DefaultBoardSize, got %fx%f", cfg.DefaultBoardWidth, cfg.DefaultBoardLength)
	}
	if cfg.EcoMode {
		t.Error("eco mode should be off by default")
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestApplyToJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultStockLength = 3640
	cfg.DefaultSpacing = 455
	cfg.EcoMode = true

	var j Job
	cfg.ApplyToJob(&j)

	if j.Joist.StockLength != 3640 {
		t.Errorf("expected StockLength=3640, got %f", j.Joist.StockLength)
	}
	if j.Joist.Spacing != 455 {
		t.Errorf("expected Spacing=455, got %f", j.Joist.Spacing)
	}
	if !j.Joist.EcoMode {
		t.Error("expected EcoMode to be copied")
	}
	if j.Plywood.Width != 910 || j.Plywood.Length != 1820 {
		t.Errorf("unexpected plywood size %fx%f", j.Plywood.Width, j.Plywood.Length)
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a.toml", 3)
	cfg.AddRecentJob("b.toml", 3)
	cfg.AddRecentJob("a.toml", 3)
	cfg.AddRecentJob("c.toml", 3)
	cfg.AddRecentJob("d.toml", 3)

	want := []string{"d.toml", "c.toml", "a.toml"}
	if len(cfg.RecentJobs) != len(want) {
		t.Fatalf("expected %d recent jobs, got %v", len(want), cfg.RecentJobs)
	}
	for i := range want {
		if cfg.RecentJobs[i] != want[i] {
			t.Errorf("recent[%d]: expected %s, got %s", i, want[i], cfg.RecentJobs[i])
		}
	}
}
