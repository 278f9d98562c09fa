package registry

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/plastinin/docsimplifier/internal/domain"
)

// TaskRegistry хранит все задачи процесса в памяти.
// Единственный источник правды для опроса статуса и Q&A.
// Записи живут до рестарта процесса и не удаляются.
//
// Писатель у каждой записи один — оркестратор её конвейера;
// читателей произвольно много, им отдаются копии
type TaskRegistry struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.Task
}

// NewTaskRegistry создаёт новый реестр задач
func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{
		tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Add регистрирует новую задачу
func (r *TaskRegistry) Add(task *domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = task
}

// GetByID возвращает копию задачи по ID
func (r *TaskRegistry) GetByID(id uuid.UUID) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// AdvanceStage переводит задачу на следующую стадию конвейера
func (r *TaskRegistry) AdvanceStage(id uuid.UUID, status domain.TaskStatus, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	return task.AdvanceStage(status, progress)
}

// SetProgress обновляет прогресс задачи; убывание игнорируется
func (r *TaskRegistry) SetProgress(id uuid.UUID, progress int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.SetProgress(progress)
	return nil
}

// Complete переводит задачу в терминальный статус "Complete" с результатом
func (r *TaskRegistry) Complete(id uuid.UUID, result domain.TaskResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	return task.MarkComplete(result)
}

// Fail переводит задачу в терминальный статус "Error" с диагностикой
func (r *TaskRegistry) Fail(id uuid.UUID, result domain.TaskResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	return task.MarkError(result)
}

// List возвращает страницу задач, отсортированных по времени создания
// (новые первыми), с опциональным фильтром по статусу
func (r *TaskRegistry) List(filter domain.TaskFilter, pagination domain.Pagination) *domain.TaskListResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		matched = append(matched, task)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := pagination.Offset()
	if start > total {
		start = total
	}
	end := start + pagination.Limit()
	if end > total {
		end = total
	}

	page := make([]*domain.Task, 0, end-start)
	for _, task := range matched[start:end] {
		page = append(page, task.Clone())
	}

	return &domain.TaskListResult{
		Tasks:      page,
		Total:      total,
		Pagination: pagination,
	}
}
