package domain

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// Поддерживаемые MIME типы (только PDF)
var supportedContentTypes = map[string]bool{
	"application/pdf": true,
}

// ValidateContentType проверяет поддерживается ли тип файла
func ValidateContentType(contentType string) error {
	// Убираем параметры типа charset
	ct := strings.Split(contentType, ";")[0]
	ct = strings.TrimSpace(strings.ToLower(ct))

	if !supportedContentTypes[ct] {
		return ErrUnsupportedFileType
	}
	return nil
}

// ContentTypeFromFileName определяет MIME тип по имени файла
func ContentTypeFromFileName(fileName string) (string, error) {
	if strings.ToLower(filepath.Ext(fileName)) != ".pdf" {
		return "", ErrUnsupportedFileType
	}
	return "application/pdf", nil
}

// BaseName возвращает имя файла без расширения,
// используется для именования аудиофайла
func BaseName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AudioFileName строит имя аудиофайла из имени документа и кода языка
func AudioFileName(fileName, speechCode string) string {
	return BaseName(fileName) + "_" + speechCode + ".mp3"
}
