package summary

import (
	"regexp"
	"strings"
)

// 日报正文的文本约定：标题行里出现 owner/repo 形式的项目名，
// 块内随后出现一行「一句话简介：xxx」。两个正则版本化地固定这一约定，
// 解析规则变化时只需要改这里。
var (
	curatedNameRe    = regexp.MustCompile(`([A-Za-z0-9_.\-]+/[A-Za-z0-9_.\-]+)`)
	curatedSummaryRe = regexp.MustCompile(`一句话简介\s*[:：]\s*(.+)`)
)

// CuratedIndex 人工撰写的一句话简介索引，来自最新一天的日报正文。
// 每次构建重新生成，不做持久化。
type CuratedIndex struct {
	byName map[string]string
}

// BuildCuratedIndex 扫描日报正文，提取每个项目的一句话简介。
// 同一条简介同时以全名和短名（去掉 owner 前缀）入索引，都为小写。
func BuildCuratedIndex(text string) *CuratedIndex {
	idx := &CuratedIndex{byName: make(map[string]string)}
	if text == "" {
		return idx
	}

	var currentName string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			if m := curatedNameRe.FindStringSubmatch(trimmed); m != nil {
				currentName = m[1]
			}
			continue
		}

		m := curatedSummaryRe.FindStringSubmatch(trimmed)
		if m == nil || currentName == "" {
			continue
		}

		summary := strings.TrimSpace(m[1])
		if summary == "" {
			continue
		}

		full := strings.ToLower(currentName)
		idx.byName[full] = summary
		if i := strings.LastIndex(full, "/"); i >= 0 && i+1 < len(full) {
			short := full[i+1:]
			if _, exists := idx.byName[short]; !exists {
				idx.byName[short] = summary
			}
		}
		currentName = ""
	}
	return idx
}

// Lookup 先按全名再按短名查找（大小写不敏感）
func (idx *CuratedIndex) Lookup(name string) (string, bool) {
	lower := strings.ToLower(name)
	if v, ok := idx.byName[lower]; ok {
		return v, true
	}
	if i := strings.LastIndex(lower, "/"); i >= 0 && i+1 < len(lower) {
		if v, ok := idx.byName[lower[i+1:]]; ok {
			return v, true
		}
	}
	return "", false
}

// Len 索引条目数
func (idx *CuratedIndex) Len() int {
	return len(idx.byName)
}
