package summarizer

import (
	"context"
	"errors"
	"testing"

	"github.com/nguyentantai21042004/bilisum/internal/config"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

type fakeCompletions struct {
	resp *Completion
	err  error
	got  CompletionRequest
}

func (f *fakeCompletions) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	f.got = req
	return f.resp, f.err
}

func TestSummarize(t *testing.T) {
	fake := &fakeCompletions{resp: &Completion{Choices: []string{"# Summary", "ignored"}}}
	s := New(fake, logger.NewNop())

	got, err := s.Summarize(context.Background(), "transcript body", "You are terse.")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "# Summary" {
		t.Errorf("Summarize() = %q, want first choice", got)
	}
	if fake.got.System != "You are terse." {
		t.Errorf("System = %q", fake.got.System)
	}
	if want := "以最简、高效、科学的方式总结以下内容：transcript body"; fake.got.User != want {
		t.Errorf("User = %q, want %q", fake.got.User, want)
	}
}

func TestSummarizeAbsent(t *testing.T) {
	tests := []struct {
		name string
		resp *Completion
	}{
		{name: "nil completion", resp: nil},
		{name: "no choices", resp: &Completion{}},
		{name: "blank choice", resp: &Completion{Choices: []string{"  \n"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeCompletions{resp: tt.resp}, logger.NewNop())
			got, err := s.Summarize(context.Background(), "t", "p")
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if got != "" {
				t.Errorf("Summarize() = %q, want empty", got)
			}
		})
	}
}

func TestSummarizeTransportError(t *testing.T) {
	cause := &rateLimitError{err: errors.New("429 Too Many Requests")}
	s := New(&fakeCompletions{err: cause}, logger.NewNop())

	_, err := s.Summarize(context.Background(), "t", "p")
	if err == nil {
		t.Fatal("Summarize() should return the transport error")
	}

	var transient interface{ Transient() bool }
	if !errors.As(err, &transient) || !transient.Transient() {
		t.Errorf("error %v should stay classifiable as transient", err)
	}
}

func TestNewCompletionService(t *testing.T) {
	t.Setenv("TEST_KEY_A", "a")
	t.Setenv("TEST_KEY_B", "b")
	t.Setenv("TEST_KEY_EMPTY", "")

	tests := []struct {
		name     string
		cfg      config.LLMConfig
		wantType string
		wantErr  bool
	}{
		{name: "gemini rotates keys", cfg: config.LLMConfig{Provider: "gemini", APIKeyEnv: []string{"TEST_KEY_A", "TEST_KEY_EMPTY", "TEST_KEY_B"}}, wantType: "gemini"},
		{name: "openai", cfg: config.LLMConfig{Provider: "openai", APIKeyEnv: []string{"TEST_KEY_A"}}, wantType: "openai"},
		{name: "anthropic", cfg: config.LLMConfig{Provider: "anthropic", APIKeyEnv: []string{"TEST_KEY_B"}}, wantType: "anthropic"},
		{name: "missing key", cfg: config.LLMConfig{Provider: "gemini", APIKeyEnv: []string{"TEST_KEY_EMPTY"}}, wantErr: true},
		{name: "unknown provider", cfg: config.LLMConfig{Provider: "mistral", APIKeyEnv: []string{"TEST_KEY_A"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewCompletionService(tt.cfg, logger.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCompletionService() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			switch s := svc.(type) {
			case *geminiService:
				if tt.wantType != "gemini" || len(s.apiKeys) != 2 {
					t.Errorf("gemini service = %+v", s)
				}
			case *openAIService:
				if tt.wantType != "openai" {
					t.Errorf("got openai, want %s", tt.wantType)
				}
			case *anthropicService:
				if tt.wantType != "anthropic" {
					t.Errorf("got anthropic, want %s", tt.wantType)
				}
			default:
				t.Errorf("unexpected service %T", svc)
			}
		})
	}
}

func TestGeminiKeyRotation(t *testing.T) {
	g := newGemini([]string{"k1", "k2", "k3"}, config.LLMConfig{Model: "m"}, logger.NewNop())

	for _, want := range []string{"k1", "k2", "k3", "k1"} {
		key, _ := g.key()
		if key != want {
			t.Errorf("key() = %q, want %q", key, want)
		}
		g.rotateKey()
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("Error 429, Message: Resource has been exhausted"), true},
		{errors.New("quota exceeded for metric"), true},
		{errors.New("RESOURCE_EXHAUSTED"), true},
		{errors.New("Error 400, Message: API key not valid"), false},
	}

	for _, tt := range tests {
		if got := isRateLimited(tt.err); got != tt.want {
			t.Errorf("isRateLimited(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
