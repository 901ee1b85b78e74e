package ranking

import (
	"sort"
	"strconv"
	"strings"

	"github.com/iWorld-y/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/pkg/snapshot"
)

// Aggregator 把一组每日快照折叠成去重后的榜单
type Aggregator struct {
	topN int
}

// NewAggregator 创建聚合器，topN 非正数时使用默认值 10
func NewAggregator(topN int) *Aggregator {
	if topN <= 0 {
		topN = 10
	}
	return &Aggregator{topN: topN}
}

// aggregate 单个项目跨天累积的中间状态
type aggregate struct {
	item      model.RankingItem
	dates     map[string]struct{}
	maxDayKey string // stars 取该项目出现过的最新一天
	order     int    // 首次出现顺序，用于稳定排序
}

// Aggregate 折叠快照并返回按热度排序、截断到 topN 的榜单。
// 结果与输入顺序无关：上榜次数逐条累加，stars 始终取日期最大那天的值。
func (a *Aggregator) Aggregate(days []snapshot.DaySnapshot) []model.RankingItem {
	aggs := make(map[string]*aggregate)
	var names []string // 首次出现顺序

	for _, day := range days {
		for _, entry := range day.Entries {
			if entry.Name == "" {
				continue
			}

			agg, ok := aggs[entry.Name]
			if !ok {
				agg = &aggregate{
					item: model.RankingItem{
						Name:        entry.Name,
						URL:         entry.URL,
						Description: entry.Description,
						Stars:       entry.Stars,
						Language:    entry.Language,
					},
					dates:     make(map[string]struct{}),
					maxDayKey: day.DayKey,
					order:     len(names),
				}
				aggs[entry.Name] = agg
				names = append(names, entry.Name)
			}

			agg.item.Count++
			agg.dates[day.DayKey] = struct{}{}
			if day.DayKey > agg.maxDayKey {
				agg.maxDayKey = day.DayKey
				agg.item.Stars = entry.Stars
			}
		}
	}

	items := make([]*aggregate, 0, len(aggs))
	for _, name := range names {
		items = append(items, aggs[name])
	}

	// 上榜次数降序，次数相同时按最新 star 数降序，仍相同保持首次出现顺序
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].item.Count != items[j].item.Count {
			return items[i].item.Count > items[j].item.Count
		}
		return parseStars(items[i].item.Stars) > parseStars(items[j].item.Stars)
	})

	if len(items) > a.topN {
		items = items[:a.topN]
	}

	result := make([]model.RankingItem, 0, len(items))
	for _, agg := range items {
		item := agg.item
		item.Dates = sortedDatesDesc(agg.dates)
		result = append(result, item)
	}
	return result
}

// parseStars 解析人类可读的 star 数，剥掉千分位等非数字字符，解析失败按 0 处理
func parseStars(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

func sortedDatesDesc(dates map[string]struct{}) []string {
	out := make([]string, 0, len(dates))
	for d := range dates {
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
