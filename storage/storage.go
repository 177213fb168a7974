package storage

import (
	"errors"
	"time"

	"bot-produtividade/models"
)

var (
	ErrNotFound   = errors.New("tarefa não encontrada")
	ErrValidation = errors.New("entrada inválida")
)

// TaskStore é a abstração de armazenamento das tarefas. O instante de
// referência (now) é sempre fornecido pelo chamador, nunca lido do relógio
// do processo, para manter as operações determinísticas.
type TaskStore interface {
	Create(descriptionRaw string, now time.Time) (models.Task, error)
	List() ([]models.Task, error)
	Get(id string) (models.Task, error)
	UpdateStatus(id string, newStatus string, now time.Time) (models.Task, error)
	Delete(id string) error
}
