package summary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/iWorld-y/trend_radar/pkg/logger"
)

// Cache 翻译缓存：键为小写项目全名，值为展示用简介。
// 构建开始时整体加载，构建期间在内存中更新，结束时整文件覆盖写回。
type Cache struct {
	entries map[string]string
}

// LoadCache 从文件加载翻译缓存，文件缺失或损坏时从空缓存开始
func LoadCache(path string) *Cache {
	c := &Cache{entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.Warnf("无法读取翻译缓存 [%s]: %v", path, err)
		}
		return c
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		logger.Log.Warnf("翻译缓存解析失败，从空缓存开始 [%s]: %v", path, err)
		c.entries = make(map[string]string)
	}
	return c
}

// Get 按项目名查询缓存（名字统一转小写）
func (c *Cache) Get(name string) (string, bool) {
	v, ok := c.entries[strings.ToLower(name)]
	return v, ok
}

// Set 写入缓存
func (c *Cache) Set(name, value string) {
	c.entries[strings.ToLower(name)] = value
}

// Len 缓存条目数
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save 把缓存整体写回文件。先写临时文件再改名，避免写到一半留下坏文件。
func (c *Cache) Save(path string) error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
