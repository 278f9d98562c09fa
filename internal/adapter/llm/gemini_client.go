package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/plastinin/docsimplifier/internal/config"
	"go.uber.org/zap"
)

// GeminiClient клиент для работы с Gemini API
type GeminiClient struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	model         string
	fallbackModel string
	configured    bool
	logger        *zap.Logger
}

// NewGeminiClient создаёт новый экземпляр GeminiClient.
// Рабочая модель выбирается позже, явным вызовом SelectModel
func NewGeminiClient(cfg config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:       cfg.Host,
		apiKey:        cfg.APIKey,
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		logger:        logger,
	}
}

// geminiRequest структура запроса к generateContent
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse структура ответа generateContent
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *geminiError `json:"error,omitempty"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// SelectModel проверяет доступность предпочитаемой модели и при
// недоступности явно переключается на запасную. Выбор логируется
func (c *GeminiClient) SelectModel(ctx context.Context) error {
	if c.apiKey == "" {
		return fmt.Errorf("gemini API key is not set")
	}

	if err := c.probeModel(ctx, c.model); err == nil {
		c.configured = true
		c.logger.Info("Gemini model selected", zap.String("model", c.model))
		return nil
	} else {
		c.logger.Warn("Preferred Gemini model unavailable, falling back",
			zap.String("model", c.model),
			zap.String("fallback_model", c.fallbackModel),
			zap.Error(err),
		)
	}

	if err := c.probeModel(ctx, c.fallbackModel); err != nil {
		return fmt.Errorf("fallback model %s unavailable: %w", c.fallbackModel, err)
	}

	c.model = c.fallbackModel
	c.configured = true
	c.logger.Info("Gemini model selected", zap.String("model", c.model))
	return nil
}

// Model возвращает имя выбранной модели
func (c *GeminiClient) Model() string {
	return c.model
}

// Configured сообщает, была ли модель успешно выбрана при старте
func (c *GeminiClient) Configured() bool {
	return c.configured
}

// GenerateText выполняет один синхронный вызов generateContent
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !c.configured {
		return "", fmt.Errorf("gemini client is not configured")
	}

	reqJSON, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Gemini: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Gemini request completed",
		zap.String("model", c.model),
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("status_code", resp.StatusCode),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var genResp geminiResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", genResp.Error.Code, genResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(body))
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// probeModel проверяет, что модель существует и доступна с этим ключом
func (c *GeminiClient) probeModel(ctx context.Context, model string) error {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s?key=%s",
		c.baseURL, model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("model probe failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
