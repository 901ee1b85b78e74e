package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2"
	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/pkg/storage"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "display"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string
	// flagaddr 是 HTTP 监听地址
	flagaddr string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagaddr, "addr", ":8000", "http listen address")
}

func main() {
	flag.Parse()

	logger := klog.With(klog.NewStdLogger(os.Stdout),
		"ts", klog.DefaultTimestamp,
		"caller", klog.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	helper := klog.NewHelper(logger)

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 归档库可选，连不上时只提供静态榜单
	var store *storage.Storage
	if cfg.DB.Host != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			helper.Errorf("无法连接数据库: %v", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	srv := http.NewServer(
		http.Address(flagaddr),
		http.Timeout(30*time.Second),
		http.Middleware(recovery.Recovery()),
	)
	registerRoutes(srv, cfg, store, helper)

	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger),
		kratos.Server(srv),
	)

	if err := app.Run(); err != nil {
		panic(err)
	}
}
