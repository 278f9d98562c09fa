package domain

// TaskStatus представляет стадию обработки документа
type TaskStatus string

const (
	TaskStatusQueued       TaskStatus = "Queued"       // Задача создана, ожидает воркера
	TaskStatusExtracting   TaskStatus = "Extracting"   // Идёт распознавание текста (OCR)
	TaskStatusSimplifying  TaskStatus = "Simplifying"  // Идёт упрощение текста
	TaskStatusSynthesizing TaskStatus = "Synthesizing" // Идёт озвучивание
	TaskStatusComplete     TaskStatus = "Complete"     // Задача успешно завершена
	TaskStatusError        TaskStatus = "Error"        // Задача завершилась с ошибкой
)

// rank порядок стадий; терминальные стадии старше любых промежуточных
var rank = map[TaskStatus]int{
	TaskStatusQueued:       0,
	TaskStatusExtracting:   1,
	TaskStatusSimplifying:  2,
	TaskStatusSynthesizing: 3,
	TaskStatusComplete:     4,
	TaskStatusError:        4,
}

// IsValid проверяет валидность статуса
func (s TaskStatus) IsValid() bool {
	_, ok := rank[s]
	return ok
}

// IsFinal проверяет, является ли статус терминальным
func (s TaskStatus) IsFinal() bool {
	return s == TaskStatusComplete || s == TaskStatusError
}

// CanTransitionTo проверяет допустимость перехода: стадии не повторяются
// и не откатываются назад, из терминальной стадии переходов нет
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if s.IsFinal() || !next.IsValid() {
		return false
	}
	return rank[next] > rank[s]
}

func (s TaskStatus) String() string {
	return string(s)
}
