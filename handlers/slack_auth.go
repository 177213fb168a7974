package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"bot-produtividade/utilities"

	"github.com/gorilla/mux"
)

// Janela máxima aceita entre o timestamp da requisição e o relógio local,
// para bloquear replay de requisições antigas
const maxSignatureAge = 5 * time.Minute

// SlackSignatureMiddleware verifica a assinatura HMAC-SHA256 que o Slack
// envia em cada requisição. Com o segredo vazio a verificação fica
// desabilitada (útil em desenvolvimento local).
func SlackSignatureMiddleware(signingSecret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if signingSecret == "" {
				next.ServeHTTP(w, r)
				return
			}

			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")
			if timestamp == "" || signature == "" {
				utilities.LogError(fmt.Errorf("cabeçalhos de assinatura ausentes"), "Falha na autenticação do Slack")
				http.Error(w, "Não autorizado", http.StatusUnauthorized)
				return
			}

			ts, err := strconv.ParseInt(timestamp, 10, 64)
			if err != nil {
				utilities.LogError(err, "Timestamp de assinatura inválido")
				http.Error(w, "Não autorizado", http.StatusUnauthorized)
				return
			}
			age := time.Since(time.Unix(ts, 0))
			if age > maxSignatureAge || age < -maxSignatureAge {
				utilities.LogError(fmt.Errorf("timestamp fora da janela: %s", timestamp), "Possível replay de requisição")
				http.Error(w, "Não autorizado", http.StatusUnauthorized)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				utilities.LogError(err, "Erro ao ler corpo da requisição")
				http.Error(w, "Requisição inválida", http.StatusBadRequest)
				return
			}
			// O corpo precisa continuar disponível para o handler
			r.Body = io.NopCloser(bytes.NewReader(body))

			if !verifySignature(signingSecret, timestamp, body, signature) {
				utilities.LogError(fmt.Errorf("assinatura não confere"), "Falha na autenticação do Slack")
				http.Error(w, "Não autorizado", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func verifySignature(signingSecret, timestamp string, body []byte, signature string) bool {
	base := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(base))
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
