package model

// Entry 每日快照中的一条趋势项目记录
type Entry struct {
	Name        string `json:"name"`        // 项目全名，如 "owner/repo"
	URL         string `json:"url"`         // 项目主页
	Description string `json:"description"` // 原始描述（通常是英文）
	Stars       string `json:"stars"`       // 人类可读的 star 数，可能带千分位逗号
	Language    string `json:"language"`    // 主要语言
	Rank        int    `json:"rank"`        // 当日榜单排名
}

// RankingItem 单个项目在某个时间窗口内的聚合与富化结果
type RankingItem struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Stars       string `json:"stars"` // 最新一天的 star 数
	Language    string `json:"language"`
	Count       int    `json:"count"` // 窗口内上榜次数
	// Dates 窗口内上榜的日期（去重，从新到旧），用于前端绘制热度轨迹
	Dates        []string `json:"dates"`
	ChineseDesc  string   `json:"chineseDesc"`  // 展示用中文简介
	DetailedDesc string   `json:"detailedDesc"` // 悬浮详情用简介
}

// RankingPayload 三个时间窗口的完整榜单
type RankingPayload struct {
	Week    []RankingItem `json:"week"`    // 最近 7 天
	Month   []RankingItem `json:"month"`   // 最近 30 天
	Quarter []RankingItem `json:"quarter"` // 最近 90 天
}
