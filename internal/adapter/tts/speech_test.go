package tts

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/plastinin/docsimplifier/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFileStore struct {
	saved map[string][]byte
}

func (s *fakeFileStore) SaveOutput(_ context.Context, name string, _ string, reader io.Reader, _ int64) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[name] = data
	return nil
}

func TestPrepareForSpeech_StripsDecorations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "markdown markers",
			in:   "**Bold** and # heading",
			want: "Bold and heading",
		},
		{
			name: "emoji and arrows",
			in:   "✅ Done → next 🧠 think 🔬 test 💡 idea",
			want: "Done next think test idea",
		},
		{
			name: "warning sign",
			in:   "⚠️ No readable text was extracted from the PDF.",
			want: "No readable text was extracted from the PDF.",
		},
		{
			name: "whitespace collapse",
			in:   "one\n\ntwo\t three",
			want: "one two three",
		},
		{
			name: "plain text untouched",
			in:   "Water boils at 100 degrees.",
			want: "Water boils at 100 degrees.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrepareForSpeech(tt.in))
		})
	}
}

func TestPrepareForSpeech_CapsTokenCount(t *testing.T) {
	long := strings.Repeat("word ", 700)

	got := PrepareForSpeech(long)

	assert.Len(t, strings.Fields(got), 500)
}

func TestSynthesize_DisabledReturnsEmpty(t *testing.T) {
	store := &fakeFileStore{}
	s := NewSynthesizer(config.TTSConfig{Enabled: false}, store, zap.NewNop())

	name, err := s.Synthesize(context.Background(), "anything", "lecture_en.mp3", "en")

	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Empty(t, store.saved)
}

func TestSynthesize_NothingLeftAfterCleanup(t *testing.T) {
	store := &fakeFileStore{}
	s := NewSynthesizer(config.TTSConfig{Enabled: true, TempDir: t.TempDir()}, store, zap.NewNop())

	name, err := s.Synthesize(context.Background(), "✅ → 💡 ** ##", "lecture_en.mp3", "en")

	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Empty(t, store.saved)
}
