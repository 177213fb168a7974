package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bot-produtividade/deadline"
	"bot-produtividade/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore implementa TaskStore sobre o PostgreSQL, preservando as
// mesmas garantias do MemoryStore: unicidade dos IDs, domínio fechado de
// status e listagem em ordem de inserção.
type PostgresStore struct {
	db *sql.DB
}

const schemaTarefas = `
CREATE TABLE IF NOT EXISTS tarefas (
    id TEXT PRIMARY KEY,
    descricao TEXT NOT NULL,
    prazo TIMESTAMPTZ,
    status TEXT NOT NULL,
    criado_em TIMESTAMPTZ NOT NULL,
    atualizado_em TIMESTAMPTZ NOT NULL,
    posicao SERIAL
)`

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if _, err := db.Exec(schemaTarefas); err != nil {
		return nil, fmt.Errorf("erro ao criar schema de tarefas: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Create(descriptionRaw string, now time.Time) (models.Task, error) {
	descriptionRaw = strings.TrimSpace(descriptionRaw)
	if descriptionRaw == "" {
		return models.Task{}, fmt.Errorf("%w: descrição vazia", ErrValidation)
	}

	description, due := deadline.Extract(descriptionRaw, now)

	task := models.Task{
		Description: description,
		Deadline:    due,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `INSERT INTO tarefas (id, descricao, prazo, status, criado_em, atualizado_em)
              VALUES ($1, $2, $3, $4, $5, $6)`
	for {
		task.ID = uuid.NewString()[:8]
		_, err := s.db.Exec(query, task.ID, task.Description, nullTime(task.Deadline),
			task.Status, task.CreatedAt, task.UpdatedAt)
		if err == nil {
			return task, nil
		}
		// Colisão de ID: gera outro e tenta de novo
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			continue
		}
		return models.Task{}, fmt.Errorf("erro ao inserir tarefa: %w", err)
	}
}

func (s *PostgresStore) List() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT id, descricao, prazo, status, criado_em, atualizado_em
                             FROM tarefas ORDER BY posicao`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tarefas: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *PostgresStore) Get(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT id, descricao, prazo, status, criado_em, atualizado_em
                          FROM tarefas WHERE id = $1`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	return task, err
}

func (s *PostgresStore) UpdateStatus(id string, newStatus string, now time.Time) (models.Task, error) {
	if !models.IsValidStatus(newStatus) {
		return models.Task{}, fmt.Errorf("%w: status %q", ErrValidation, newStatus)
	}

	row := s.db.QueryRow(`UPDATE tarefas SET status = $1, atualizado_em = $2 WHERE id = $3
                          RETURNING id, descricao, prazo, status, criado_em, atualizado_em`,
		newStatus, now, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	return task, err
}

func (s *PostgresStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM tarefas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir tarefa: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	var prazo sql.NullTime
	err := row.Scan(&task.ID, &task.Description, &prazo, &task.Status,
		&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	if prazo.Valid {
		task.Deadline = &prazo.Time
	}
	return task, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
