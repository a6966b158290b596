package embedded

import (
	"testing"
	"testing/fstest"
)

// TestBuiltinData 测试内置数据文件齐全
func TestBuiltinData(t *testing.T) {
	Init(nil)

	for _, path := range []string{"game.yaml", "plants.yaml", "zombies.yaml", "data/levels/level-1.yaml"} {
		if !Exists(path) {
			t.Errorf("expected builtin file %s", path)
		}
	}

	levels, err := Glob("levels/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(levels) == 0 {
		t.Error("expected at least one level file")
	}
}

// TestInitOverride 测试外部目录覆盖内置数据
func TestInitOverride(t *testing.T) {
	t.Cleanup(func() { Init(nil) })

	Init(fstest.MapFS{
		"game.yaml": &fstest.MapFile{Data: []byte("field: {}\n")},
	})
	if !IsOverridden() {
		t.Fatal("expected override to be active")
	}

	data, err := ReadFile("./game.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "field: {}\n" {
		t.Errorf("unexpected content %q", data)
	}
	if Exists("plants.yaml") {
		t.Error("override should hide builtin files")
	}

	Init(nil)
	if IsOverridden() || !Exists("plants.yaml") {
		t.Error("Init(nil) should restore builtin data")
	}
}

// TestReadFileMissing 测试缺失文件返回错误
func TestReadFileMissing(t *testing.T) {
	Init(nil)
	if _, err := ReadFile("levels/level-99.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
