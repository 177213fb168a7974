package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bot-produtividade/models"
	"bot-produtividade/storage"
	"bot-produtividade/utilities"
)

// SlackHandler atende o slash command do bot e os endpoints auxiliares.
// O store é injetado na construção para manter o handler testável com um
// store novo por teste.
type SlackHandler struct {
	store storage.TaskStore
}

func NewSlackHandler(store storage.TaskStore) *SlackHandler {
	return &SlackHandler{store: store}
}

// slackResponse é o corpo de resposta esperado pelo Slack
type slackResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

const (
	responseEphemeral = "ephemeral"
	responseInChannel = "in_channel"
)

const helpText = "🤖 **Slack Productivity Bot Help**\n\n" +
	"**Commands:**\n" +
	"• `/task create <description>` - Create a new task\n" +
	"• `/task list` - List all your tasks\n" +
	"• `/task show <task_id>` - Show task details\n" +
	"• `/task update <task_id> <status>` - Update task status (pending/in_progress/completed)\n" +
	"• `/task delete <task_id>` - Delete a task\n\n" +
	"**Examples:**\n" +
	"• `/task create Review project proposal by tomorrow`\n" +
	"• `/task create Set up meeting with client next week`\n" +
	"• `/task update abc123 completed`"

// Command trata o slash command enviado pelo Slack
func (h *SlackHandler) Command(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utilities.LogError(err, "Erro ao decodificar formulário do Slack")
		http.Error(w, "Requisição inválida", http.StatusBadRequest)
		return
	}

	userName := r.FormValue("user_name")
	text := strings.TrimSpace(r.FormValue("text"))
	utilities.LogDebug("Comando recebido de %s: %q", userName, text)

	if text == "" {
		respond(w, responseEphemeral, helpText)
		return
	}

	fields := strings.Fields(text)
	action := strings.ToLower(fields[0])
	args := fields[1:]

	switch action {
	case "create":
		h.createTask(w, args)
	case "list":
		h.listTasks(w)
	case "show":
		h.showTask(w, args)
	case "update":
		h.updateTask(w, args)
	case "delete":
		h.deleteTask(w, args)
	default:
		respond(w, responseEphemeral,
			fmt.Sprintf("❌ Unknown action '%s'. Use `/task` without parameters to see help.", action))
	}
}

func (h *SlackHandler) createTask(w http.ResponseWriter, args []string) {
	if len(args) == 0 {
		respond(w, responseEphemeral,
			"❌ Please provide a task description. Example: `/task create Review documents by Friday`")
		return
	}

	task, err := h.store.Create(strings.Join(args, " "), time.Now())
	if err != nil {
		utilities.LogError(err, "Erro ao criar tarefa")
		respond(w, responseEphemeral,
			"❌ Please provide a task description. Example: `/task create Review documents by Friday`")
		return
	}

	utilities.LogInfo("Tarefa criada com sucesso: %s (ID: %s)", task.Description, task.ID)
	respond(w, responseInChannel, "✅ **Task Created:** "+task.Description+"\n"+formatTask(task))
}

func (h *SlackHandler) listTasks(w http.ResponseWriter) {
	tasks, err := h.store.List()
	if err != nil {
		utilities.LogError(err, "Erro ao listar tarefas")
		respond(w, responseEphemeral, "❌ An error occurred while listing tasks.")
		return
	}

	if len(tasks) == 0 {
		respond(w, responseEphemeral,
			"📭 You don't have any tasks yet! Use `/task create <task description>` to create one.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Your Tasks (%d):**\n\n", len(tasks))
	for _, task := range tasks {
		fmt.Fprintf(&b, "%s **%s** - %s", statusEmoji(task.Status), task.ID, task.Description)
		if task.Deadline != nil {
			fmt.Fprintf(&b, " (Due: %s)", task.Deadline.Format("01/02"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n💡 Use `/task show <task_id>` to see details or `/task update <task_id> <status>` to update status.")

	utilities.LogDebug("Tarefas listadas com sucesso - total: %d", len(tasks))
	respond(w, responseEphemeral, b.String())
}

func (h *SlackHandler) showTask(w http.ResponseWriter, args []string) {
	if len(args) == 0 {
		respond(w, responseEphemeral, "❌ Please provide a task ID. Example: `/task show abc123`")
		return
	}

	task, err := h.store.Get(args[0])
	if err != nil {
		respondNotFound(w, args[0], err)
		return
	}
	respond(w, responseEphemeral, formatTask(task))
}

func (h *SlackHandler) updateTask(w http.ResponseWriter, args []string) {
	if len(args) < 2 {
		respond(w, responseEphemeral,
			"❌ Please provide task ID and status. Example: `/task update abc123 completed`")
		return
	}

	id := args[0]
	newStatus := strings.ToLower(args[1])

	task, err := h.store.UpdateStatus(id, newStatus, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrValidation) {
			respond(w, responseEphemeral, "❌ Status must be one of: pending, in_progress, completed")
			return
		}
		respondNotFound(w, id, err)
		return
	}

	statusMessages := map[string]string{
		models.StatusPending:    "⏳ Task moved to pending",
		models.StatusInProgress: "🔄 Task is now in progress",
		models.StatusCompleted:  "🎉 Task completed!",
	}

	utilities.LogInfo("Tarefa atualizada com sucesso: %s -> %s", id, newStatus)
	respond(w, responseInChannel, statusMessages[newStatus]+"\n"+formatTask(task))
}

func (h *SlackHandler) deleteTask(w http.ResponseWriter, args []string) {
	if len(args) == 0 {
		respond(w, responseEphemeral, "❌ Please provide a task ID. Example: `/task delete abc123`")
		return
	}

	id := args[0]
	task, err := h.store.Get(id)
	if err == nil {
		err = h.store.Delete(id)
	}
	if err != nil {
		respondNotFound(w, id, err)
		return
	}

	utilities.LogInfo("Tarefa excluída com sucesso: %s", id)
	respond(w, responseEphemeral, fmt.Sprintf("🗑️ Task '%s' has been deleted.", task.Description))
}

// Health é o endpoint de verificação de saúde do serviço
func (h *SlackHandler) Health(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.List()
	if err != nil {
		utilities.LogError(err, "Erro ao consultar tarefas no health check")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Slack Productivity Bot API is running!",
		"total_tasks": len(tasks),
	})
}

// Tasks expõe todas as tarefas para depuração/administração
func (h *SlackHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.List()
	if err != nil {
		utilities.LogError(err, "Erro ao listar tarefas para depuração")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"tasks": tasks})
}

func respond(w http.ResponseWriter, responseType, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slackResponse{ResponseType: responseType, Text: text})
}

// respondNotFound traduz o erro do store para a resposta do usuário.
// Corridas de mutação concorrente também terminam aqui: quem perde a
// corrida enxerga a tarefa como inexistente.
func respondNotFound(w http.ResponseWriter, id string, err error) {
	utilities.LogError(err, fmt.Sprintf("Tarefa %s não encontrada", id))
	respond(w, responseEphemeral, fmt.Sprintf("❌ Task '%s' not found.", id))
}

func formatTask(task models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 **ID:** %s\n", task.ID)
	fmt.Fprintf(&b, "📋 **Description:** %s\n", task.Description)
	if task.Deadline != nil {
		fmt.Fprintf(&b, "⏰ **Deadline:** %s\n", task.Deadline.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "📊 **Status:** %s\n", statusTitle(task.Status))
	fmt.Fprintf(&b, "🕐 **Created:** %s", task.CreatedAt.Format("2006-01-02 15:04"))
	return b.String()
}

func statusEmoji(status string) string {
	switch status {
	case models.StatusPending:
		return "⏳"
	case models.StatusInProgress:
		return "🔄"
	case models.StatusCompleted:
		return "✅"
	}
	return "❓"
}

// statusTitle formata o status para exibição: "in_progress" -> "In Progress"
func statusTitle(status string) string {
	words := strings.Split(status, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
