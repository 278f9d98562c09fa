package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"github.com/plastinin/docsimplifier/internal/config"
	"go.uber.org/zap"
)

// Базовое разрешение страницы PDF в точках на дюйм
const baseDPI = 72

// Extractor распознаёт текст отсканированного PDF: рендерит каждую
// страницу в растровое изображение и прогоняет его через Tesseract
type Extractor struct {
	language string
	dpi      float64
	logger   *zap.Logger
}

// NewExtractor создаёт новый экземпляр Extractor
func NewExtractor(cfg config.OCRConfig, logger *zap.Logger) *Extractor {
	scale := cfg.Scale
	if scale < 1 {
		scale = 3
	}
	return &Extractor{
		language: cfg.Language,
		// Масштаб линейный: 3x даёт 9x по площади пикселей,
		// этого хватает для распознавания сканов
		dpi:    float64(baseDPI * scale),
		logger: logger,
	}
}

// ExtractText распознаёт текст всех страниц документа по порядку.
// После каждой страницы вызывается progress(pagesDone, totalPages)
func (e *Extractor) ExtractText(ctx context.Context, pdfData []byte, progress func(pagesDone, totalPages int)) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	totalPages := doc.NumPage()
	if totalPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.language != "" {
		if err := client.SetLanguage(e.language); err != nil {
			return "", fmt.Errorf("failed to set OCR language %q: %w", e.language, err)
		}
	}

	var fullText strings.Builder

	for pageNum := 0; pageNum < totalPages; pageNum++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(pageNum, e.dpi)
		if err != nil {
			return "", fmt.Errorf("failed to render page %d: %w", pageNum+1, err)
		}

		pageImage, err := encodeGrayscalePNG(img)
		if err != nil {
			return "", fmt.Errorf("failed to encode page %d: %w", pageNum+1, err)
		}

		if err := client.SetImageFromBytes(pageImage); err != nil {
			return "", fmt.Errorf("failed to load page %d into OCR: %w", pageNum+1, err)
		}

		pageText, err := client.Text()
		if err != nil {
			return "", fmt.Errorf("failed to recognize page %d: %w", pageNum+1, err)
		}

		fullText.WriteString(pageText)
		fullText.WriteString("\n\n")

		e.logger.Debug("Page recognized",
			zap.Int("page", pageNum+1),
			zap.Int("total_pages", totalPages),
			zap.Int("chars", len(pageText)),
		)

		if progress != nil {
			progress(pageNum+1, totalPages)
		}
	}

	return fullText.String(), nil
}

// encodeGrayscalePNG переводит изображение в одноканальное
// и кодирует его в PNG для Tesseract
func encodeGrayscalePNG(img image.Image) ([]byte, error) {
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
