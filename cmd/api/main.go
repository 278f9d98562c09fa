package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/panjf2000/ants/v2"
	"github.com/plastinin/docsimplifier/internal/adapter/http/handler"
	"github.com/plastinin/docsimplifier/internal/adapter/llm"
	"github.com/plastinin/docsimplifier/internal/adapter/ocr"
	"github.com/plastinin/docsimplifier/internal/adapter/storage"
	"github.com/plastinin/docsimplifier/internal/adapter/tts"
	"github.com/plastinin/docsimplifier/internal/config"
	"github.com/plastinin/docsimplifier/internal/registry"
	"github.com/plastinin/docsimplifier/internal/usecase"
	"github.com/plastinin/docsimplifier/pkg/logger"
	"go.uber.org/zap"

	apphttp "github.com/plastinin/docsimplifier/internal/adapter/http"
)

// fileStorage объединяет порты хранилища, которые реализуют оба бэкенда
type fileStorage interface {
	usecase.FileStorage
	tts.FileStore
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Инициализируем логгер
	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("Starting docsimplifier API",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	// Контекст инициализации
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем файловое хранилище
	var fs fileStorage
	switch cfg.Storage.Backend {
	case "s3":
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatal("Failed to connect to S3", zap.Error(err))
		}
		log.Info("Connected to S3",
			zap.String("endpoint", cfg.S3.Endpoint),
			zap.String("bucket", cfg.S3.Bucket),
		)
		fs = s3Storage
	default:
		localStorage, err := storage.NewLocalStorage(cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		log.Info("Using local storage",
			zap.String("upload_dir", cfg.Storage.UploadDir),
			zap.String("output_dir", cfg.Storage.OutputDir),
		)
		fs = localStorage
	}

	// Инициализируем Gemini клиент и явно выбираем модель.
	// Неудача не фатальна: сервис продолжает работать, а упрощение
	// возвращает предупреждение о недоступной модели
	geminiClient := llm.NewGeminiClient(cfg.Gemini, log)
	if err := geminiClient.SelectModel(ctx); err != nil {
		log.Warn("Gemini model selection failed, simplification will be degraded", zap.Error(err))
	}

	// Инициализируем реестр задач
	taskRegistry := registry.NewTaskRegistry()

	// Инициализируем пул фоновых воркеров конвейера
	pool, err := ants.NewPool(cfg.Pipeline.Workers)
	if err != nil {
		log.Fatal("Failed to create worker pool", zap.Error(err))
	}
	defer pool.Release()

	// Инициализируем стадии конвейера
	extractor := ocr.NewExtractor(cfg.OCR, log)
	simplifier := usecase.NewSimplifier(geminiClient, log)
	synthesizer := tts.NewSynthesizer(cfg.TTS, fs, log)

	// Инициализируем use cases
	pipelineUC := usecase.NewPipelineUseCase(taskRegistry, fs, extractor, simplifier, synthesizer, log)
	taskUC := usecase.NewTaskUseCase(taskRegistry, fs, pipelineUC, pool, log)
	qaUC := usecase.NewQAUseCase(taskRegistry, geminiClient, log)

	// Инициализируем handlers
	taskHandler := handler.NewTaskHandler(taskUC, qaUC, log)
	healthHandler := handler.NewHealthHandler()

	// Создаём роутер
	router := apphttp.NewRouter(taskHandler, healthHandler, log)

	// Создаём HTTP сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", cfg.Server.Addr()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
