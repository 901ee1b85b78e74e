package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/iWorld-y/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/pkg/ranking"
	"github.com/iWorld-y/trend_radar/pkg/snapshot"
	"github.com/iWorld-y/trend_radar/pkg/storage"
	"github.com/iWorld-y/trend_radar/pkg/summary"
	"github.com/iWorld-y/trend_radar/pkg/translate"
)

// 三个固定的时间窗口
const (
	windowWeek    = 7
	windowMonth   = 30
	windowQuarter = 90
)

// Builder 榜单构建器：跑三个时间窗口的聚合，给每一项补上中文简介，
// 写出榜单数据文件并回写翻译缓存。
type Builder struct {
	cfg        *config.Config
	reader     *snapshot.Reader
	aggregator *ranking.Aggregator
	translator translate.Translator // 可以为 nil
	store      *storage.Storage     // 可以为 nil
}

// NewBuilder 创建构建器，translator 和 store 都允许为 nil
func NewBuilder(cfg *config.Config, translator translate.Translator, store *storage.Storage) *Builder {
	return &Builder{
		cfg:        cfg,
		reader:     snapshot.NewReader(cfg.Data.SnapshotDir),
		aggregator: ranking.NewAggregator(cfg.Ranking.TopN),
		translator: translator,
		store:      store,
	}
}

// Build 执行一次完整构建。快照缺失、翻译失败都只降级；
// 榜单或缓存写盘失败会让整次构建报错，因为没有产物的构建没有意义。
func (b *Builder) Build(ctx context.Context) (*model.RankingPayload, error) {
	start := time.Now()

	cache := summary.LoadCache(b.cfg.Data.CacheFile)
	logger.Log.Infof("翻译缓存已加载: %d 条", cache.Len())

	curated := summary.BuildCuratedIndex(b.latestReportText())
	if curated.Len() > 0 {
		logger.Log.Infof("精选简介索引已生成: %d 条", curated.Len())
	}

	resolver := summary.NewResolver(cache, curated, b.translator)

	payload := &model.RankingPayload{}
	windows := []struct {
		name string
		days int
		dst  *[]model.RankingItem
	}{
		{"week", windowWeek, &payload.Week},
		{"month", windowMonth, &payload.Month},
		{"quarter", windowQuarter, &payload.Quarter},
	}

	for _, w := range windows {
		days := b.reader.LoadWindow(w.days)
		items := b.aggregator.Aggregate(days)
		for i := range items {
			items[i].ChineseDesc = resolver.ResolveDisplay(items[i].Name, items[i].Description)
			items[i].DetailedDesc = resolver.ResolveDetail(items[i].Name, items[i].Description)
		}
		*w.dst = items
		logger.Log.Infof("窗口 [%s] 聚合完成: %d 天快照, %d 个项目上榜", w.name, len(days), len(items))
	}

	if err := b.writePayload(payload); err != nil {
		return nil, fmt.Errorf("榜单数据写盘失败: %w", err)
	}
	if err := cache.Save(b.cfg.Data.CacheFile); err != nil {
		return nil, fmt.Errorf("翻译缓存写盘失败: %w", err)
	}

	// 历史归档是附加能力，失败不影响本次构建
	if b.store != nil {
		if buildID, err := b.store.SaveBuild(payload); err != nil {
			logger.Log.Errorf("榜单归档失败: %v", err)
		} else {
			logger.Log.Infof("榜单已归档 (build %d)", buildID)
		}
	}

	// 主产物已经落盘，这里的富化结果只影响下一次构建
	if n := resolver.DrainEnrichment(ctx); n > 0 {
		if err := cache.Save(b.cfg.Data.CacheFile); err != nil {
			logger.Log.Errorf("富化后回写翻译缓存失败: %v", err)
		} else {
			logger.Log.Infof("翻译富化完成: %d 条新译文已入缓存", n)
		}
	}

	logger.Log.Infof("构建完成，耗时 %v", time.Since(start).Round(time.Millisecond))
	return payload, nil
}

// writePayload 把榜单序列化成一条 JS 赋值语句，页面用 <script src> 直接引入。
// 先写临时文件再改名，任何时刻都不会出现写了一半的数据文件。
func (b *Builder) writePayload(payload *model.RankingPayload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	path := b.cfg.Data.OutputFile
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	content := "window.rankingData = " + string(data) + ";\n"
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// latestReportText 读取日报目录里日期最新的一篇 Markdown 正文，
// 没有日报时返回空串，精选简介整条降级即可。
func (b *Builder) latestReportText() string {
	dir := b.cfg.Data.ReportDir
	if dir == "" {
		return ""
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.Warnf("无法读取日报目录 [%s]: %v", dir, err)
		}
		return ""
	}

	var names []string
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}
		dayKey := strings.TrimSuffix(f.Name(), ".md")
		if _, err := time.Parse(time.DateOnly, dayKey); err != nil {
			continue
		}
		names = append(names, f.Name())
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)

	latest := names[len(names)-1]
	data, err := os.ReadFile(filepath.Join(dir, latest))
	if err != nil {
		logger.Log.Warnf("无法读取日报 [%s]: %v", latest, err)
		return ""
	}
	logger.Log.Infof("精选简介来源: %s", latest)
	return string(data)
}
