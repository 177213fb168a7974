package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

const testSecret = "8f742231b10e8888abcd99yyyzzz85a5"

func signedRequest(t *testing.T, secret, body string, timestamp int64) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/slack/command", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	ts := strconv.FormatInt(timestamp, 10)
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", ts, body)

	r.Header.Set("X-Slack-Request-Timestamp", ts)
	r.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return r
}

func runMiddleware(secret string, r *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	SlackSignatureMiddleware(secret)(next).ServeHTTP(w, r)
	return w, reached
}

func TestSignatureValid(t *testing.T) {
	r := signedRequest(t, testSecret, "text=list", time.Now().Unix())

	w, reached := runMiddleware(testSecret, r)
	if w.Code != http.StatusOK || !reached {
		t.Errorf("requisição assinada foi rejeitada: status %d", w.Code)
	}
}

func TestSignatureInvalid(t *testing.T) {
	// Assinada com outro segredo
	r := signedRequest(t, "segredo-errado", "text=list", time.Now().Unix())

	w, reached := runMiddleware(testSecret, r)
	if w.Code != http.StatusUnauthorized || reached {
		t.Errorf("assinatura inválida foi aceita: status %d", w.Code)
	}
}

func TestSignatureMissingHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/slack/command", strings.NewReader("text=list"))

	w, reached := runMiddleware(testSecret, r)
	if w.Code != http.StatusUnauthorized || reached {
		t.Errorf("requisição sem assinatura foi aceita: status %d", w.Code)
	}
}

func TestSignatureStaleTimestamp(t *testing.T) {
	stale := time.Now().Add(-10 * time.Minute).Unix()
	r := signedRequest(t, testSecret, "text=list", stale)

	w, reached := runMiddleware(testSecret, r)
	if w.Code != http.StatusUnauthorized || reached {
		t.Errorf("timestamp antigo foi aceito: status %d", w.Code)
	}
}

func TestSignatureDisabledWithoutSecret(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/slack/command", strings.NewReader("text=list"))

	w, reached := runMiddleware("", r)
	if w.Code != http.StatusOK || !reached {
		t.Errorf("verificação desabilitada deveria deixar a requisição passar: status %d", w.Code)
	}
}

func TestSignaturePreservesBody(t *testing.T) {
	body := "text=create+Buy+groceries"
	r := signedRequest(t, testSecret, body, time.Now().Unix())

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("erro ao decodificar formulário: %v", err)
		}
		seen = r.FormValue("text")
	})

	w := httptest.NewRecorder()
	SlackSignatureMiddleware(testSecret)(next).ServeHTTP(w, r)

	if seen != "create Buy groceries" {
		t.Errorf("corpo não chegou intacto ao handler: %q", seen)
	}
}
