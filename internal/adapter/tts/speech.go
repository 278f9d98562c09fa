package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/plastinin/docsimplifier/internal/config"
	"go.uber.org/zap"
)

// Максимальное число слов, отправляемых в синтез речи.
// Ограничивает стоимость и длительность озвучивания
const maxSpeechTokens = 500

// Декоративные символы, не имеющие смысла в устной речи:
// markdown-разметка, стрелки и эмодзи
var speechNoise = map[rune]bool{
	'*': true, '#': true,
	'✅': true, '→': true,
	'🧠': true, '🔬': true, '💡': true,
	'⚠': true, '️': true,
}

// FileStore хранилище готовых аудиофайлов
type FileStore interface {
	SaveOutput(ctx context.Context, name string, contentType string, reader io.Reader, size int64) error
}

// Synthesizer озвучивает упрощённый текст через сервис синтеза речи
// и складывает mp3 в хранилище артефактов
type Synthesizer struct {
	enabled bool
	tempDir string
	store   FileStore
	logger  *zap.Logger
}

// NewSynthesizer создаёт новый экземпляр Synthesizer
func NewSynthesizer(cfg config.TTSConfig, store FileStore, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		enabled: cfg.Enabled,
		tempDir: cfg.TempDir,
		store:   store,
		logger:  logger,
	}
}

// Synthesize озвучивает текст и возвращает имя созданного аудиофайла.
// Пустая строка без ошибки означает, что озвучивать было нечего
func (s *Synthesizer) Synthesize(ctx context.Context, text, outputName, languageCode string) (string, error) {
	if !s.enabled {
		return "", nil
	}

	speechText := PrepareForSpeech(text)
	if speechText == "" {
		s.logger.Warn("Nothing left to narrate after cleanup",
			zap.String("output_name", outputName),
		)
		return "", nil
	}

	tempDir, err := os.MkdirTemp(s.tempDir, "docsimplifier-tts-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	speech := htgotts.Speech{
		Folder:   tempDir,
		Language: languageCode,
	}

	// htgo-tts сам добавляет расширение .mp3
	filePath, err := speech.CreateSpeechFile(speechText, strings.TrimSuffix(outputName, ".mp3"))
	if err != nil {
		return "", fmt.Errorf("failed to synthesize speech: %w", err)
	}

	audioData, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read synthesized audio: %w", err)
	}

	if err := s.store.SaveOutput(ctx, outputName, "audio/mpeg", bytes.NewReader(audioData), int64(len(audioData))); err != nil {
		return "", fmt.Errorf("failed to store audio: %w", err)
	}

	s.logger.Info("Audio synthesized",
		zap.String("output_name", outputName),
		zap.String("language_code", languageCode),
		zap.Int("audio_size", len(audioData)),
	)

	return outputName, nil
}

// PrepareForSpeech вычищает декоративные символы и обрезает текст
// до первых maxSpeechTokens слов
func PrepareForSpeech(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if speechNoise[r] {
			return -1
		}
		return r
	}, text)

	tokens := strings.Fields(cleaned)
	if len(tokens) > maxSpeechTokens {
		tokens = tokens[:maxSpeechTokens]
	}

	return strings.Join(tokens, " ")
}
