package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/iWorld-y/trend_radar/pkg/builder"
	"github.com/iWorld-y/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/pkg/storage"
	"github.com/iWorld-y/trend_radar/pkg/translate"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// .env 里的密钥优先于配置文件，方便部署时不把密钥写进 yaml
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if key := os.Getenv("TREND_RADAR_LLM_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	if cfg.Data.SnapshotDir == "" {
		log.Fatal("配置错误: 未设置快照目录 (data.snapshot_dir)")
	}
	if cfg.Data.OutputFile == "" {
		log.Fatal("配置错误: 未设置输出文件 (data.output_file)")
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动趋势雷达...")

	ctx := context.Background()

	// 3. 初始化数据库连接（可选）
	var store *storage.Storage
	if cfg.DB.Host != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 将仅生成榜单文件。", err)
		} else {
			store = s
			defer store.Close()
			logger.Log.Info("已成功连接到数据库")
		}
	} else {
		logger.Log.Info("未配置数据库信息，跳过归档")
	}

	// 4. 初始化翻译器（可选）
	var translator translate.Translator
	if cfg.LLM.APIKey != "" {
		t, err := translate.NewLLMTranslator(cfg.LLM, cfg.Concurrency)
		if err != nil {
			logger.Log.Errorf("翻译器初始化失败: %v. 将不做翻译富化。", err)
		} else {
			translator = t
		}
	} else {
		logger.Log.Info("未配置 LLM，跳过翻译富化")
	}

	// 5. 执行构建
	b := builder.NewBuilder(cfg, translator, store)
	if _, err := b.Build(ctx); err != nil {
		logger.Log.Fatalf("榜单构建失败: %v", err)
	}

	logger.Log.Infof("✅ 趋势榜单生成完毕: %s", cfg.Data.OutputFile)
}
