package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Data        DataConfig        `yaml:"data"`
	Ranking     RankingConfig     `yaml:"ranking"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// LLMConfig LLM 相关配置，api_key 为空时完全禁用翻译富化
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// DataConfig 数据文件相关配置
type DataConfig struct {
	SnapshotDir string `yaml:"snapshot_dir"` // 每日快照 JSON 目录
	ReportDir   string `yaml:"report_dir"`   // 每日报告 Markdown 目录（精选简介来源）
	CacheFile   string `yaml:"cache_file"`   // 翻译缓存文件
	OutputFile  string `yaml:"output_file"`  // 榜单数据输出文件（JS 赋值语句）
}

// RankingConfig 榜单相关配置
type RankingConfig struct {
	TopN int `yaml:"top_n"` // 每个窗口保留的项目数，默认 10
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Ranking.TopN <= 0 {
		cfg.Ranking.TopN = 10
	}

	return &cfg, nil
}
