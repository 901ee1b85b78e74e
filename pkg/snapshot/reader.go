package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/pkg/model"
)

// DaySnapshot 某一天的快照数据
type DaySnapshot struct {
	DayKey  string // YYYY-MM-DD
	Entries []model.Entry
}

// Reader 负责从快照目录读取指定时间窗口内的每日数据
type Reader struct {
	dir string
}

// NewReader 创建快照读取器
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// LoadWindow 读取最近 windowDays 天（含今天）的快照，按日期从新到旧排列。
// 目录不存在、单个文件损坏都不视为错误，只影响对应天的数据。
func (r *Reader) LoadWindow(windowDays int) []DaySnapshot {
	files, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Log.Warnf("快照目录不存在: %s", r.dir)
			return nil
		}
		logger.Log.Warnf("无法读取快照目录 [%s]: %v", r.dir, err)
		return nil
	}

	now := time.Now()
	earliest := now.AddDate(0, 0, -windowDays)

	var days []DaySnapshot
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}

		dayKey := strings.TrimSuffix(f.Name(), ".json")
		day, err := time.ParseInLocation(time.DateOnly, dayKey, time.Local)
		if err != nil {
			// 文件名不符合日期约定，忽略
			continue
		}
		if day.Before(truncateDay(earliest)) || day.After(now) {
			continue
		}

		path := filepath.Join(r.dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Log.Warnf("无法读取快照文件 [%s]: %v", path, err)
			continue
		}

		var entries []model.Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			if json.Valid(data) {
				// 合法 JSON 但不是数组，按当天无数据处理
				logger.Log.Warnf("快照文件不是数组，按空处理 [%s]", path)
				days = append(days, DaySnapshot{DayKey: dayKey})
				continue
			}
			logger.Log.Warnf("快照文件解析失败，跳过 [%s]: %v", path, err)
			continue
		}

		days = append(days, DaySnapshot{DayKey: dayKey, Entries: entries})
	}

	// 按日期从新到旧
	sort.Slice(days, func(i, j int) bool {
		return days[i].DayKey > days[j].DayKey
	})

	return days
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
