package main

import (
	"log"
	"os"

	"bot-produtividade/database"
	"bot-produtividade/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente do processo")
	}

	var store storage.TaskStore
	switch os.Getenv("STORAGE_DRIVER") {
	case "postgres":
		db, err := database.ConnectPostgres()
		if err != nil {
			log.Fatalf("Erro ao conectar ao banco de dados: %v", err)
		}
		defer db.Close()

		store, err = storage.NewPostgresStore(db)
		if err != nil {
			log.Fatalf("Erro ao preparar o armazenamento de tarefas: %v", err)
		}
	default:
		// Armazenamento em memória: as tarefas não sobrevivem a reinicializações
		store = storage.NewMemoryStore()
	}

	LoadRoutes(store)
}
