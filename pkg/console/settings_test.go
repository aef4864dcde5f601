package console

import (
	"math"
	"testing"
)

func TestSettings_UpdateThreshold(t *testing.T) {
	base := DefaultSettings()

	updated, err := base.Update("threshold", 0.95)
	if err != nil {
		t.Fatalf("Update(threshold, 0.95) error = %v", err)
	}
	if updated.Threshold != 0.95 {
		t.Errorf("Threshold = %v, want 0.95", updated.Threshold)
	}

	want := base
	want.Threshold = 0.95
	if updated != want {
		t.Errorf("unrelated fields changed: got %+v, want %+v", updated, want)
	}
}

func TestSettings_UpdateThresholdFromText(t *testing.T) {
	base := DefaultSettings()

	updated, err := base.Update("threshold", " 0.45 ")
	if err != nil {
		t.Fatalf("Update(threshold, text) error = %v", err)
	}
	if updated.Threshold != 0.45 {
		t.Errorf("Threshold = %v, want 0.45", updated.Threshold)
	}
}

func TestSettings_RejectsInvalidThreshold(t *testing.T) {
	base := DefaultSettings()
	inputs := []any{math.NaN(), math.Inf(1), 0.05, 1.5, "not-a-number", "", true}

	for _, in := range inputs {
		updated, err := base.Update("threshold", in)
		if err == nil {
			t.Errorf("Update(threshold, %v) error = nil, want rejection", in)
		}
		if updated != base {
			t.Errorf("Update(threshold, %v) mutated the record: %+v", in, updated)
		}
	}
}

func TestSettings_UpdateSensitivity(t *testing.T) {
	base := DefaultSettings()

	updated, err := base.Update("sensitivity", "HIGH")
	if err != nil {
		t.Fatalf("Update(sensitivity, HIGH) error = %v", err)
	}
	if updated.Sensitivity != SensitivityHigh {
		t.Errorf("Sensitivity = %v, want high", updated.Sensitivity)
	}

	if _, err := base.Update("sensitivity", "extreme"); err == nil {
		t.Error("Update(sensitivity, extreme) error = nil, want rejection")
	}
}

func TestSettings_UpdateToggles(t *testing.T) {
	base := DefaultSettings()

	updated, err := base.Update("night_mode", true)
	if err != nil {
		t.Fatalf("Update(night_mode, true) error = %v", err)
	}
	if !updated.NightMode {
		t.Error("NightMode not set")
	}
	if updated.AutoResponse != base.AutoResponse || updated.SoundAlerts != base.SoundAlerts {
		t.Error("unrelated toggles changed")
	}

	if _, err := base.Update("sound_alerts", "yes"); err == nil {
		t.Error("Update(sound_alerts, string) error = nil, want rejection")
	}
}

func TestSettings_UnknownKeyRejected(t *testing.T) {
	base := DefaultSettings()
	if _, err := base.Update("volume", 11); err == nil {
		t.Error("Update(volume) error = nil, want rejection")
	}
}
