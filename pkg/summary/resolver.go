package summary

import (
	"context"
	"strings"
	"sync"

	"github.com/iWorld-y/trend_radar/pkg/logger"
	"github.com/iWorld-y/trend_radar/pkg/translate"
)

const (
	// keywordMaxLen 描述超过该长度时不再做关键词替换（长文本替换出来的中英混排没法看）
	keywordMaxLen = 100
	// fallbackMinLen 描述超过该长度时才值得带标记直接展示原文
	fallbackMinLen = 20
	// fallbackMarker 未翻译原文的前缀标记
	fallbackMarker = "📝 "
	// descPlaceholder 无描述时的占位文案
	descPlaceholder = "暂无描述"
)

// EnrichJob 一次待执行的翻译富化任务
type EnrichJob struct {
	Name string
	Text string
	URL  string
}

// Resolver 按固定优先级解析项目简介：
// 人工精选 → 翻译缓存 → 关键词替换 → 带标记原文 → （后台翻译富化）→ 原文兜底。
// 翻译富化只入队不阻塞，由构建器在主产物落盘后统一执行，结果供下次构建使用。
type Resolver struct {
	cache      *Cache
	curated    *CuratedIndex
	translator translate.Translator // nil 表示未配置，富化整条跳过

	mu      sync.Mutex
	jobs    []EnrichJob
	pending map[string]struct{}
}

// NewResolver 创建简介解析器，translator 可以为 nil
func NewResolver(cache *Cache, curated *CuratedIndex, translator translate.Translator) *Resolver {
	return &Resolver{
		cache:      cache,
		curated:    curated,
		translator: translator,
		pending:    make(map[string]struct{}),
	}
}

// ResolveDisplay 解析展示用简介
func (r *Resolver) ResolveDisplay(name, rawDesc string) string {
	// 1. 人工精选优先，且永远不落缓存（每次构建都取最新日报的版本）
	if v, ok := r.curated.Lookup(name); ok {
		return v
	}

	// 2. 缓存命中
	if v, ok := r.cache.Get(name); ok {
		return v
	}

	// 3. 关键词替换
	if len(rawDesc) < keywordMaxLen {
		if out, changed := SubstituteKeywords(rawDesc); changed {
			r.cache.Set(name, out)
			return out
		}
	}

	// 没有现成译文，交给后台富化，让下次构建用上更好的结果
	r.enqueue(name, rawDesc)

	// 4. 长描述带标记直接展示原文，先占住缓存位，富化成功后会被覆盖
	if len(rawDesc) > fallbackMinLen {
		out := fallbackMarker + rawDesc
		r.cache.Set(name, out)
		return out
	}

	// 6. 原文兜底
	if rawDesc == "" {
		return descPlaceholder
	}
	return rawDesc
}

// ResolveDetail 解析悬浮详情用简介。与展示版的区别：当整条链没能产出
// 有意义的译文时，额外查一次缓存里是否有历史富化结果，但绝不等待新请求。
func (r *Resolver) ResolveDetail(name, rawDesc string) string {
	v := r.ResolveDisplay(name, rawDesc)
	if v != rawDesc {
		return v
	}

	if cached, ok := r.cache.Get(name); ok {
		return cached
	}
	return rawDesc
}

// enqueue 登记一个富化任务，按项目名去重
func (r *Resolver) enqueue(name, text string) {
	if r.translator == nil {
		return
	}

	key := strings.ToLower(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[key]; ok {
		return
	}
	r.pending[key] = struct{}{}
	r.jobs = append(r.jobs, EnrichJob{
		Name: name,
		Text: text,
		URL:  "https://github.com/" + name,
	})
}

// PendingJobs 当前登记的富化任务数
func (r *Resolver) PendingJobs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// DrainEnrichment 逐个执行富化任务并把成功结果写进缓存，返回成功条数。
// 单个任务失败只记日志，不影响其余任务。
func (r *Resolver) DrainEnrichment(ctx context.Context) int {
	r.mu.Lock()
	jobs := r.jobs
	r.jobs = nil
	r.mu.Unlock()

	if len(jobs) == 0 || r.translator == nil {
		return 0
	}

	logger.Log.Infof("开始执行 %d 个翻译富化任务", len(jobs))
	succeeded := 0
	for _, job := range jobs {
		result, err := r.translator.Translate(ctx, job.Name, job.Text, job.URL)
		if err != nil {
			logger.Log.Warnf("翻译富化失败 [%s]: %v", job.Name, err)
			continue
		}
		r.cache.Set(job.Name, result)
		succeeded++
	}
	return succeeded
}
