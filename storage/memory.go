package storage

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"bot-produtividade/deadline"
	"bot-produtividade/models"

	"github.com/google/uuid"
)

// MemoryStore guarda as tarefas em memória, protegidas por um único mutex.
// Sem persistência entre reinicializações do processo.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  map[string]models.Task
	order  []string            // ordem de inserção, para listagem estável
	issued map[string]struct{} // IDs já emitidos nunca são reaproveitados
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:  make(map[string]models.Task),
		issued: make(map[string]struct{}),
	}
}

func (s *MemoryStore) Create(descriptionRaw string, now time.Time) (models.Task, error) {
	descriptionRaw = strings.TrimSpace(descriptionRaw)
	if descriptionRaw == "" {
		return models.Task{}, fmt.Errorf("%w: descrição vazia", ErrValidation)
	}

	description, due := deadline.Extract(descriptionRaw, now)

	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.Task{
		ID:          s.newID(),
		Description: description,
		Deadline:    due,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	return task, nil
}

func (s *MemoryStore) List() ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks, nil
}

func (s *MemoryStore) Get(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return task, nil
}

func (s *MemoryStore) UpdateStatus(id string, newStatus string, now time.Time) (models.Task, error) {
	if !models.IsValidStatus(newStatus) {
		return models.Task{}, fmt.Errorf("%w: status %q", ErrValidation, newStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	task.Status = newStatus
	task.UpdatedAt = now
	s.tasks[id] = task
	return task, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// newID gera um identificador curto e opaco, único para a vida do processo.
// Chamar somente com o mutex de escrita em mãos.
func (s *MemoryStore) newID() string {
	for {
		id := uuid.NewString()[:8]
		if _, used := s.issued[id]; !used {
			s.issued[id] = struct{}{}
			return id
		}
	}
}
