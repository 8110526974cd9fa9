package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	httpctrl "github.com/mnemo-app/mnemo/pkg/controller/http"
	"github.com/mnemo-app/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-app/mnemo/pkg/repository/memory"
	"github.com/mnemo-app/mnemo/pkg/usecase"
)

type stubLLM struct {
	reply string
	err   error
}

var _ interfaces.LLMClient = &stubLLM{}

func (s *stubLLM) Available() bool {
	return true
}

func (s *stubLLM) WithPolicy(policy string) interfaces.LLMClient {
	return s
}

func (s *stubLLM) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) GenerateLite(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return "", goerr.New("not configured")
}

func (s *stubLLM) Embed(ctx context.Context, text string) []float32 {
	return nil
}

func newServer(llm interfaces.LLMClient) *httpctrl.Server {
	return httpctrl.New(usecase.New(memory.New(), llm))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newServer(&stubLLM{reply: "ok"})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	gt.Value(t, rec.Code).Equal(200)
	gt.Value(t, rec.Body.String()).Equal("OK")
}

func TestChatEndpoint(t *testing.T) {
	t.Run("returns the generated reply", func(t *testing.T) {
		srv := newServer(&stubLLM{reply: "hello back"})

		body := `{"user_id":"u1","user_name":"Haruka","messages":[{"role":"user","content":"hi"}]}`
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/chat", strings.NewReader(body)))

		gt.Value(t, rec.Code).Equal(200)

		var resp struct {
			Reply string `json:"reply"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp.Reply).Equal("hello back")
	})

	t.Run("invalid body yields 400", func(t *testing.T) {
		srv := newServer(&stubLLM{reply: "unused"})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/chat", strings.NewReader("not json")))

		gt.Value(t, rec.Code).Equal(400)
	})

	t.Run("missing messages yields 400", func(t *testing.T) {
		srv := newServer(&stubLLM{reply: "unused"})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"user_id":"u1"}`)))

		gt.Value(t, rec.Code).Equal(400)
	})

	t.Run("model failure yields 502 without detail", func(t *testing.T) {
		srv := newServer(&stubLLM{err: goerr.New("provider exploded: secret detail")})

		body := `{"user_id":"u1","messages":[{"role":"user","content":"hi"}]}`
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/chat", strings.NewReader(body)))

		gt.Value(t, rec.Code).Equal(502)
		gt.String(t, rec.Body.String()).NotContains("secret detail")
	})
}
