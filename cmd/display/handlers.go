package main

import (
	"embed"
	"encoding/json"
	nethttp "net/http"
	"strconv"

	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/pkg/storage"
)

//go:embed assets/*
var assets embed.FS

// registerRoutes 注册展示服务的全部路由
func registerRoutes(srv *http.Server, cfg *config.Config, store *storage.Storage, helper *klog.Helper) {
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	// 构建器生成的榜单数据文件，页面通过 <script src> 直接引入
	srv.HandleFunc("/ranking.js", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		nethttp.ServeFile(w, r, cfg.Data.OutputFile)
	})

	srv.HandleFunc("/api/builds", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if store == nil {
			nethttp.Error(w, `{"error":"archive not configured"}`, nethttp.StatusServiceUnavailable)
			return
		}

		builds, err := store.ListBuilds(20)
		if err != nil {
			helper.Errorf("读取构建历史失败: %v", err)
			nethttp.Error(w, `{"error":"internal error"}`, nethttp.StatusInternalServerError)
			return
		}
		writeJSON(w, builds)
	})

	srv.HandleFunc("/api/build", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if store == nil {
			nethttp.Error(w, `{"error":"archive not configured"}`, nethttp.StatusServiceUnavailable)
			return
		}

		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil || id <= 0 {
			nethttp.Error(w, `{"error":"invalid build id"}`, nethttp.StatusBadRequest)
			return
		}

		payload, err := store.GetBuild(id)
		if err != nil {
			helper.Errorf("读取历史榜单失败 [build %d]: %v", id, err)
			nethttp.Error(w, `{"error":"internal error"}`, nethttp.StatusInternalServerError)
			return
		}
		writeJSON(w, payload)
	})
}

func writeJSON(w nethttp.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		nethttp.Error(w, `{"error":"encode failed"}`, nethttp.StatusInternalServerError)
	}
}
