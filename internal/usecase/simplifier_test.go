package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSimplifier_BuildsGroundedPrompt(t *testing.T) {
	gen := &fakeGenerator{configured: true, response: "simple text"}
	s := NewSimplifier(gen, zap.NewNop())

	var checkpoint int
	got := s.Simplify(context.Background(), "Hello world", "English", func(p int) {
		checkpoint = p
	})

	assert.Equal(t, "simple text", got)
	require.Equal(t, 1, gen.callCount())

	// Промпт содержит исходный текст и целевой язык дословно
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Hello world")
	assert.Contains(t, prompt, "English")
	assert.Contains(t, prompt, "One Idea Per Sentence")

	// Успех двигает прогресс к контрольной точке стадии
	assert.Equal(t, progressSimplified, checkpoint)
}

func TestSimplifier_EmptyTextShortCircuits(t *testing.T) {
	gen := &fakeGenerator{configured: true, response: "never used"}
	s := NewSimplifier(gen, zap.NewNop())

	for _, text := range []string{"", "   ", "\n\t\n"} {
		got := s.Simplify(context.Background(), text, "English", nil)
		assert.Equal(t, warnNoReadableText, got)
	}

	// Ни одного вызова модели
	assert.Equal(t, 0, gen.callCount())
}

func TestSimplifier_NotConfigured(t *testing.T) {
	gen := &fakeGenerator{configured: false}
	s := NewSimplifier(gen, zap.NewNop())

	got := s.Simplify(context.Background(), "some text", "Hindi", nil)

	assert.Equal(t, warnNotConfigured, got)
	assert.Equal(t, 0, gen.callCount())
}

func TestSimplifier_ServiceFailureDegrades(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: errors.New("quota exceeded")}
	s := NewSimplifier(gen, zap.NewNop())

	progressCalled := false
	got := s.Simplify(context.Background(), "some text", "Kannada", func(int) {
		progressCalled = true
	})

	// Ошибка не пробрасывается: возвращается предупреждение с деталями
	assert.Contains(t, got, "Could not simplify text due to AI service error")
	assert.Contains(t, got, "quota exceeded")
	assert.False(t, progressCalled)
}
