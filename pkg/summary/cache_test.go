package summary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.json")

	c := LoadCache(path)
	if c.Len() != 0 {
		t.Fatalf("缺失文件应从空缓存开始, len = %d", c.Len())
	}

	c.Set("Vuejs/Core", "渐进式前端框架")
	c.Set("rust-lang/rust", "Rust 语言主仓库")
	if err := c.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := LoadCache(path)
	if reloaded.Len() != 2 {
		t.Fatalf("重新加载后 len = %d, want 2", reloaded.Len())
	}
	// 键统一小写
	if v, ok := reloaded.Get("vuejs/core"); !ok || v != "渐进式前端框架" {
		t.Errorf("Get(vuejs/core) = %q, %v", v, ok)
	}
	if v, ok := reloaded.Get("RUST-LANG/RUST"); !ok || v != "Rust 语言主仓库" {
		t.Errorf("Get 应大小写不敏感, got %q, %v", v, ok)
	}
}

func TestLoadCache_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.json")
	if err := os.WriteFile(path, []byte(`{{{ 坏文件`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := LoadCache(path)
	if c.Len() != 0 {
		t.Errorf("坏缓存文件应从空开始, len = %d", c.Len())
	}
}

func TestCache_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "translations.json")

	c := LoadCache(path)
	c.Set("a/b", "测试")
	if err := c.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("缓存文件未生成: %v", err)
	}
	// 不应留下临时文件
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("临时文件未清理")
	}
}
