package game

import (
	"testing"

	"github.com/gonewx/lawncore/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	manager, err := gdata.Open(gdata.Config{AppName: "lawncore_test_settings"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.MusicVolume != 0.7 || settings.SoundVolume != 0.8 {
		t.Errorf("unexpected volumes %v/%v", settings.MusicVolume, settings.SoundVolume)
	}
	if !settings.MusicEnabled || !settings.SoundEnabled {
		t.Error("audio should be enabled by default")
	}
	if len(settings.LastLoadout) != 6 {
		t.Errorf("expected default loadout of 6, got %d", len(settings.LastLoadout))
	}
}

// TestSettingsNilGdata 测试降级模式
func TestSettingsNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetMusicVolume(0.3)
	if err := sm.Save(); err != nil {
		t.Errorf("Save in fallback mode should not fail: %v", err)
	}
	if sm.GetSettings().MusicVolume != 0.3 {
		t.Error("in-memory setting should be kept")
	}
}

// TestSettingsPersist 测试保存后重新加载
func TestSettingsPersist(t *testing.T) {
	manager := openTestGdata(t)

	sm := NewSettingsManager(manager)
	sm.SetMusicVolume(1.5) // 超出范围
	sm.SetSoundVolume(0.25)
	sm.SetSoundEnabled(false)
	sm.SetLastLoadout([]types.PlantType{types.PlantRepeater, types.PlantChomper})
	if err := sm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewSettingsManager(manager)
	s := reloaded.GetSettings()
	if s.MusicVolume != 1.0 {
		t.Errorf("MusicVolume: got %v, want 1.0", s.MusicVolume)
	}
	if s.SoundVolume != 0.25 || s.SoundEnabled {
		t.Errorf("sound settings not restored: %+v", s)
	}
	if reloaded.EffectiveSoundVolume() != 0 {
		t.Error("disabled sound should have zero effective volume")
	}

	loadout := reloaded.LastLoadout()
	if len(loadout) != 2 || loadout[0] != types.PlantRepeater || loadout[1] != types.PlantChomper {
		t.Errorf("unexpected loadout %v", loadout)
	}
}

// TestLastLoadoutSkipsUnknown 测试忽略未知植物ID
func TestLastLoadoutSkipsUnknown(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.GetSettings().LastLoadout = []string{"peashooter", "squash", "wallnut"}

	loadout := sm.LastLoadout()
	if len(loadout) != 2 || loadout[1] != types.PlantWallnut {
		t.Errorf("unexpected loadout %v", loadout)
	}
}
