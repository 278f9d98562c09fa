package usecase

import (
	"io"
)

// CreateTaskInput входные данные для создания задачи
type CreateTaskInput struct {
	FileName    string    // Имя файла
	ContentType string    // MIME тип
	FileSize    int64     // Размер файла
	FileReader  io.Reader // Содержимое файла
	Language    string    // Целевой язык упрощения
}

// AskInput входные данные вопроса по документу
type AskInput struct {
	TaskID   string
	Question string
}
