package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"bot-produtividade/handlers"
	"bot-produtividade/storage"
	"bot-produtividade/utilities"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func LoadRoutes(store storage.TaskStore) {
	// Inicializar o sistema de logs
	utilities.InitLogger()

	r := mux.NewRouter()

	// Middleware de logging global em todas as rotas
	r.Use(handlers.LoggingMiddleware)

	slackHandler := handlers.NewSlackHandler(store)

	// --- Rota do slash command (com verificação de assinatura do Slack) ---
	slack := r.PathPrefix("/slack").Subrouter()
	slack.Use(handlers.SlackSignatureMiddleware(os.Getenv("SLACK_SIGNING_SECRET")))
	slack.HandleFunc("/command", slackHandler.Command).Methods("POST")

	// --- Rotas públicas ---
	r.HandleFunc("/", slackHandler.Health).Methods("GET")
	r.HandleFunc("/tasks", slackHandler.Tasks).Methods("GET") // depuração/admin

	// Configuração do CORS
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})

	allowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if allowedOriginsEnv == "" {
		allowedOrigins = []string{"*"}
		utilities.LogInfo("CORS_ALLOWED_ORIGINS não definida, permitindo todas as origens ('*'). Defina para maior segurança em produção.")
	} else {
		allowedOrigins = strings.Split(allowedOriginsEnv, ",")
	}
	origins := gorillahandlers.AllowedOrigins(allowedOrigins)

	handler := gorillahandlers.CORS(headers, methods, origins)(r)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8000"
	}

	utilities.LogInfo("Servidor iniciado na porta %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
