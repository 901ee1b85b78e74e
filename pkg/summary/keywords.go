package summary

import "regexp"

// keywordPair 双语关键词映射，按表内顺序依次替换，长词组放在前面
type keywordPair struct {
	re *regexp.Regexp
	zh string
}

var keywordTable = buildKeywordTable([][2]string{
	{"machine learning", "机器学习"},
	{"deep learning", "深度学习"},
	{"open source", "开源"},
	{"open-source", "开源"},
	{"command line", "命令行"},
	{"command-line", "命令行"},
	{"self-hosted", "可自托管的"},
	{"real-time", "实时"},
	{"awesome", "精选"},
	{"framework", "框架"},
	{"libraries", "库"},
	{"library", "库"},
	{"tutorials", "教程"},
	{"tutorial", "教程"},
	{"examples", "示例"},
	{"example", "示例"},
	{"guide", "指南"},
	{"toolkit", "工具包"},
	{"tools", "工具"},
	{"tool", "工具"},
	{"plugins", "插件"},
	{"plugin", "插件"},
	{"lightweight", "轻量级"},
	{"powerful", "强大的"},
	{"fast", "快速的"},
	{"simple", "简洁的"},
	{"modern", "现代化"},
	{"collection", "合集"},
	{"resources", "资源"},
	{"implementation", "实现"},
	{"documentation", "文档"},
	{"interview", "面试"},
	{"roadmap", "路线图"},
	{"cheatsheet", "速查表"},
})

func buildKeywordTable(pairs [][2]string) []keywordPair {
	table := make([]keywordPair, 0, len(pairs))
	for _, p := range pairs {
		// 整词匹配，大小写不敏感，避免替换到单词内部
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p[0]) + `\b`)
		table = append(table, keywordPair{re: re, zh: p[1]})
	}
	return table
}

// SubstituteKeywords 把描述里的已知英文术语替换成中文，返回结果和是否发生过替换
func SubstituteKeywords(text string) (string, bool) {
	out := text
	for _, kw := range keywordTable {
		out = kw.re.ReplaceAllString(out, kw.zh)
	}
	return out, out != text
}
