package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/pkg/logger"
)

// Translator 翻译富化能力的抽象，便于在测试中替换
type Translator interface {
	// Translate 把项目描述翻译成简洁的中文一句话简介。
	// 重试耗尽后返回错误，调用方按"无结果"处理。
	Translate(ctx context.Context, name, text, url string) (string, error)
}

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 2
	// maxResultRunes 简介长度上限，模型偶尔不守约定时在这里兜住
	maxResultRunes = 60
)

// LLMTranslator 基于 OpenAI 兼容接口的翻译器
type LLMTranslator struct {
	chatModel model.ChatModel
	limiter   *rate.Limiter
}

// 确认实现了 Translator 接口
var _ Translator = (*LLMTranslator)(nil)

// NewLLMTranslator 创建 LLM 翻译器
func NewLLMTranslator(llmCfg config.LLMConfig, conc config.ConcurrencyConfig) (*LLMTranslator, error) {
	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: llmCfg.BaseURL,
		APIKey:  llmCfg.APIKey,
		Model:   llmCfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	rpm := conc.RPM
	if rpm <= 0 {
		rpm = 60
	}
	burst := conc.QPS
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)

	return &LLMTranslator{chatModel: chatModel, limiter: limiter}, nil
}

// Translate 实现 Translator 接口
func (t *LLMTranslator) Translate(ctx context.Context, name, text, url string) (string, error) {
	// 描述太短时尝试抓取项目主页正文作为补充上下文
	extra := ""
	if len(text) < 20 && url != "" {
		if fetched, err := fetchPageText(url); err == nil {
			extra = fetched
		} else {
			logger.Log.Debugf("项目主页抓取失败 [%s]: %v", name, err)
		}
	}

	prompt := fmt.Sprintf(`请把下面这个 GitHub 项目的描述翻译成一条简洁的中文一句话简介。
要求：不超过 40 个字，只输出简介本身，不要任何解释、评论或标点装饰。

项目名：%s
项目描述：%s`, name, text)
	if extra != "" {
		prompt += fmt.Sprintf("\n补充上下文（项目主页摘录）：\n%s", extra)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: "你是一个技术翻译助手。只输出翻译结果本身。"},
		{Role: schema.User, Content: prompt},
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := t.generateOnce(ctx, messages)
		if err != nil {
			lastErr = err
			if isBadRequestErr(err) {
				logger.Log.Warnf("翻译请求无效（模型或参数错误）[%s] (尝试 %d/%d): %v", name, attempt, maxAttempts, err)
			} else {
				logger.Log.Warnf("翻译请求失败 [%s] (尝试 %d/%d): %v", name, attempt, maxAttempts, err)
			}
			continue
		}
		return result, nil
	}
	return "", fmt.Errorf("翻译重试耗尽: %w", lastErr)
}

// generateOnce 单次请求，独立超时
func (t *LLMTranslator) generateOnce(ctx context.Context, messages []*schema.Message) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := t.limiter.Wait(reqCtx); err != nil {
		return "", fmt.Errorf("limiter wait error: %w", err)
	}

	resp, err := t.chatModel.Generate(reqCtx, messages)
	if err != nil {
		return "", err
	}

	result := cleanResult(resp.Content)
	if result == "" {
		return "", fmt.Errorf("模型返回空结果")
	}
	return result, nil
}

// cleanResult 清理模型输出里可能混入的 markdown 标记和引号，并控制长度上限
func cleanResult(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.Trim(s, "\"“”")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > maxResultRunes {
		s = string(runes[:maxResultRunes])
	}
	return s
}

// isBadRequestErr 区分"请求本身有问题"（参数错误、模型不存在等）和一般性失败
func isBadRequestErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "400") ||
		strings.Contains(msg, "invalid_request") ||
		strings.Contains(msg, "model_not_found") ||
		strings.Contains(msg, "does not exist")
}

// fetchPageText 抓取网页并提取正文，截断到合理长度
func fetchPageText(url string) (string, error) {
	article, err := readability.FromURL(url, requestTimeout)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) > 2000 {
		text = text[:2000]
	}
	return text, nil
}
