package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Деградационные ответы Simplifier: конвейер продолжает работу
// с этими строками вместо упрощённого текста
const (
	warnNoReadableText = "⚠️ No readable text was extracted from the PDF."
	warnNotConfigured  = "⚠️ AI Model is not configured. Cannot simplify text."
)

const simplifyPromptTemplate = `
Your single most important job is to make the text below extremely easy to understand for someone who finds reading difficult.

First, translate the text into **%s**. Then, rewrite it in that language following these strict rules:

1.  **Use Simple Words:** Use common, everyday words only.
2.  **Short Sentences:** Keep every sentence very short.
3.  **One Idea Per Sentence:** Each sentence should only have one main idea.
4.  **Explain Big Words:** If you must use a complicated word, explain it right away in parentheses (like this).
5.  **Use Analogies:** If possible, use a simple analogy or example to explain the main point.
6.  **Focus on "What" and "Why":** Explain what the text is about and why it matters in the simplest way possible.

Do not try to sound academic or formal. Your tone should be encouraging and very clear.

Text to process:
---
%s
---
`

// Simplifier переписывает распознанный текст простым языком
// на целевом языке через генеративную модель
type Simplifier struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewSimplifier создаёт новый экземпляр Simplifier
func NewSimplifier(generator TextGenerator, logger *zap.Logger) *Simplifier {
	return &Simplifier{
		generator: generator,
		logger:    logger,
	}
}

// Simplify выполняет один вызов модели и возвращает упрощённый текст.
// Ошибки сервиса не пробрасываются: вместо текста возвращается
// предупреждение, и конвейер продолжает работу.
// При успехе вызывается progress с контрольной точкой стадии
func (s *Simplifier) Simplify(ctx context.Context, text, targetLanguage string, progress func(int)) string {
	if strings.TrimSpace(text) == "" {
		return warnNoReadableText
	}

	if !s.generator.Configured() {
		s.logger.Warn("Text generator is not configured, skipping simplification")
		return warnNotConfigured
	}

	prompt := buildSimplifyPrompt(text, targetLanguage)

	simplified, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("Simplification failed",
			zap.String("language", targetLanguage),
			zap.Error(err),
		)
		return fmt.Sprintf("⚠️ Could not simplify text due to AI service error: %v", err)
	}

	if progress != nil {
		progress(progressSimplified)
	}

	return simplified
}

// buildSimplifyPrompt формирует промпт упрощения текста
func buildSimplifyPrompt(text, targetLanguage string) string {
	return fmt.Sprintf(simplifyPromptTemplate, targetLanguage, text)
}
