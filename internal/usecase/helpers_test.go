package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/plastinin/docsimplifier/internal/domain"
	"github.com/plastinin/docsimplifier/internal/registry"
)

// fakeStorage файловое хранилище в памяти
type fakeStorage struct {
	mu          sync.Mutex
	uploads     map[string][]byte
	outputs     map[string][]byte
	downloadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		uploads: make(map[string][]byte),
		outputs: make(map[string][]byte),
	}
}

func (s *fakeStorage) Upload(_ context.Context, fileName string, _ string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := "key-" + fileName
	s.uploads[key] = data
	return key, nil
}

func (s *fakeStorage) Download(_ context.Context, fileKey string) (io.ReadCloser, error) {
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.uploads[fileKey]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", fileKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) OpenOutput(_ context.Context, name string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.outputs[name]
	if !ok {
		return nil, fmt.Errorf("no such output: %s", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// fakeExtractor детерминированный распознаватель текста
type fakeExtractor struct {
	text     string
	err      error
	pages    int
	panicMsg string
	calls    int
}

func (e *fakeExtractor) ExtractText(_ context.Context, _ []byte, progress func(pagesDone, totalPages int)) (string, error) {
	e.calls++
	if e.panicMsg != "" {
		panic(e.panicMsg)
	}
	if e.err != nil {
		return "", e.err
	}
	pages := e.pages
	if pages < 1 {
		pages = 1
	}
	for page := 1; page <= pages; page++ {
		if progress != nil {
			progress(page, pages)
		}
	}
	return e.text, nil
}

// fakeGenerator генеративная модель, запоминающая промпты
type fakeGenerator struct {
	mu         sync.Mutex
	configured bool
	response   string
	err        error
	prompts    []string
}

func (g *fakeGenerator) Configured() bool {
	return g.configured
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// fakeSynthesizer синтезатор речи, запоминающий входные тексты
type fakeSynthesizer struct {
	mu     sync.Mutex
	err    error
	texts  []string
	names  []string
	codes  []string
}

func (s *fakeSynthesizer) Synthesize(_ context.Context, text, outputName, languageCode string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	s.names = append(s.names, outputName)
	s.codes = append(s.codes, languageCode)
	if s.err != nil {
		return "", s.err
	}
	return outputName, nil
}

func (s *fakeSynthesizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.texts)
}

// inlinePool пул, выполняющий задания синхронно
type inlinePool struct {
	err error
}

func (p inlinePool) Submit(task func()) error {
	if p.err != nil {
		return p.err
	}
	task()
	return nil
}

// stageRecord снимок задачи после одной мутации реестра
type stageRecord struct {
	status   domain.TaskStatus
	progress int
}

// recordingRegistry реестр, записывающий историю переходов задачи
type recordingRegistry struct {
	*registry.TaskRegistry
	mu      sync.Mutex
	history []stageRecord
}

func newRecordingRegistry() *recordingRegistry {
	return &recordingRegistry{TaskRegistry: registry.NewTaskRegistry()}
}

func (r *recordingRegistry) record(id uuid.UUID) {
	task, err := r.TaskRegistry.GetByID(id)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, stageRecord{status: task.Status, progress: task.Progress})
}

func (r *recordingRegistry) AdvanceStage(id uuid.UUID, status domain.TaskStatus, progress int) error {
	err := r.TaskRegistry.AdvanceStage(id, status, progress)
	r.record(id)
	return err
}

func (r *recordingRegistry) SetProgress(id uuid.UUID, progress int) error {
	err := r.TaskRegistry.SetProgress(id, progress)
	r.record(id)
	return err
}

func (r *recordingRegistry) Complete(id uuid.UUID, result domain.TaskResult) error {
	err := r.TaskRegistry.Complete(id, result)
	r.record(id)
	return err
}

func (r *recordingRegistry) Fail(id uuid.UUID, result domain.TaskResult) error {
	err := r.TaskRegistry.Fail(id, result)
	r.record(id)
	return err
}

func (r *recordingRegistry) snapshots() []stageRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	history := make([]stageRecord, len(r.history))
	copy(history, r.history)
	return history
}
