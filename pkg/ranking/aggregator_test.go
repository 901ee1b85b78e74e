package ranking

import (
	"fmt"
	"testing"

	"github.com/iWorld-y/trend_radar/pkg/model"
	"github.com/iWorld-y/trend_radar/pkg/snapshot"
)

func day(key string, entries ...model.Entry) snapshot.DaySnapshot {
	return snapshot.DaySnapshot{DayKey: key, Entries: entries}
}

func entry(name, stars string) model.Entry {
	return model.Entry{Name: name, URL: "https://github.com/" + name, Stars: stars}
}

func TestAggregate_CountAndLatestStars(t *testing.T) {
	days := []snapshot.DaySnapshot{
		day("2026-08-30", entry("a/x", "1,300")),
		day("2026-08-29", entry("a/x", "1,200"), entry("b/y", "500")),
	}

	items := NewAggregator(10).Aggregate(days)
	if len(items) != 2 {
		t.Fatalf("Aggregate() len = %d, want 2", len(items))
	}
	if items[0].Name != "a/x" || items[0].Count != 2 {
		t.Errorf("items[0] = %s count %d, want a/x count 2", items[0].Name, items[0].Count)
	}
	if items[0].Stars != "1,300" {
		t.Errorf("items[0].Stars = %s, want 1,300 (最新一天)", items[0].Stars)
	}
	if items[1].Name != "b/y" || items[1].Count != 1 {
		t.Errorf("items[1] = %s count %d, want b/y count 1", items[1].Name, items[1].Count)
	}
}

func TestAggregate_LatestStarsIndependentOfInputOrder(t *testing.T) {
	oldFirst := []snapshot.DaySnapshot{
		day("2026-08-28", entry("a/x", "100")),
		day("2026-08-30", entry("a/x", "300")),
		day("2026-08-29", entry("a/x", "200")),
	}

	items := NewAggregator(10).Aggregate(oldFirst)
	if len(items) != 1 {
		t.Fatalf("Aggregate() len = %d, want 1", len(items))
	}
	if items[0].Stars != "300" {
		t.Errorf("Stars = %s, want 300 (按日期取最新，与遍历顺序无关)", items[0].Stars)
	}
	if items[0].Count != 3 {
		t.Errorf("Count = %d, want 3", items[0].Count)
	}
}

func TestAggregate_TieBreakByNumericStars(t *testing.T) {
	// c/z 三天都是 100，d/w 三天分别 50/60/70，两者上榜次数相同
	days := []snapshot.DaySnapshot{
		day("2026-08-30", entry("d/w", "70"), entry("c/z", "100")),
		day("2026-08-29", entry("d/w", "60"), entry("c/z", "100")),
		day("2026-08-28", entry("d/w", "50"), entry("c/z", "100")),
	}

	items := NewAggregator(10).Aggregate(days)
	if items[0].Name != "c/z" {
		t.Errorf("items[0] = %s, want c/z (100 > 70)", items[0].Name)
	}
	if items[1].Stars != "70" {
		t.Errorf("d/w stars = %s, want 70", items[1].Stars)
	}
}

func TestAggregate_StableOrderOnFullTie(t *testing.T) {
	days := []snapshot.DaySnapshot{
		day("2026-08-30", entry("first/seen", "100"), entry("second/seen", "100")),
	}

	items := NewAggregator(10).Aggregate(days)
	if items[0].Name != "first/seen" || items[1].Name != "second/seen" {
		t.Errorf("完全平局时应保持首次出现顺序, got %s, %s", items[0].Name, items[1].Name)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	days := []snapshot.DaySnapshot{
		day("2026-08-30", entry("a/x", "1,300"), entry("b/y", "987")),
		day("2026-08-29", entry("b/y", "980"), entry("c/z", "10")),
	}

	agg := NewAggregator(10)
	first := agg.Aggregate(days)
	second := agg.Aggregate(days)

	if fmt.Sprintf("%v", first) != fmt.Sprintf("%v", second) {
		t.Errorf("两次聚合结果不一致:\n%v\n%v", first, second)
	}
}

func TestAggregate_TruncateToTopN(t *testing.T) {
	var entries []model.Entry
	for i := 0; i < 15; i++ {
		entries = append(entries, entry(fmt.Sprintf("u/r%d", i), "10"))
	}
	days := []snapshot.DaySnapshot{day("2026-08-30", entries...)}

	items := NewAggregator(10).Aggregate(days)
	if len(items) != 10 {
		t.Errorf("Aggregate() len = %d, want 10", len(items))
	}
}

func TestAggregate_DropsEmptyName(t *testing.T) {
	days := []snapshot.DaySnapshot{
		day("2026-08-30", model.Entry{Name: "", Stars: "999"}, entry("a/x", "1")),
	}

	items := NewAggregator(10).Aggregate(days)
	if len(items) != 1 || items[0].Name != "a/x" {
		t.Errorf("空名条目应被丢弃, got %v", items)
	}
}

func TestAggregate_DistinctDates(t *testing.T) {
	// 同一天出现两次：次数按快照累加，日期去重
	days := []snapshot.DaySnapshot{
		day("2026-08-30", entry("a/x", "100")),
		day("2026-08-30", entry("a/x", "101")),
		day("2026-08-29", entry("a/x", "99")),
	}

	items := NewAggregator(10).Aggregate(days)
	if items[0].Count != 3 {
		t.Errorf("Count = %d, want 3 (按快照计数)", items[0].Count)
	}
	if len(items[0].Dates) != 2 {
		t.Errorf("Dates = %v, want 2 个去重日期", items[0].Dates)
	}
	if items[0].Dates[0] != "2026-08-30" || items[0].Dates[1] != "2026-08-29" {
		t.Errorf("Dates 应从新到旧排列, got %v", items[0].Dates)
	}
}

func TestParseStars(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1,234", 1234},
		{"987", 987},
		{"12,345,678", 12345678},
		{"", 0},
		{"n/a", 0},
	}
	for _, c := range cases {
		if got := parseStars(c.in); got != c.want {
			t.Errorf("parseStars(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
