package llm

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/domain/service"
)

type fakeProvider struct {
	name      string
	models    []string
	available bool
	err       error
	calls     int
}

func (p *fakeProvider) Name() string     { return p.name }
func (p *fakeProvider) Models() []string { return p.models }

func (p *fakeProvider) SupportsModel(model string) bool {
	if len(p.models) == 0 {
		return true
	}
	for _, m := range p.models {
		if m == model {
			return true
		}
	}
	return false
}

func (p *fakeProvider) IsAvailable(ctx context.Context) bool { return p.available }

func (p *fakeProvider) Generate(ctx context.Context, req *service.LLMRequest) (*service.LLMResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &service.LLMResponse{Content: "from " + p.name, ModelUsed: req.Model}, nil
}

func TestRouter_FailoverToNextProvider(t *testing.T) {
	primary := &fakeProvider{name: "primary", available: true, err: fmt.Errorf("boom")}
	backup := &fakeProvider{name: "backup", available: true}

	router := NewRouter(zap.NewNop())
	router.AddProvider(primary, 0)
	router.AddProvider(backup, 0)

	resp, err := router.Generate(context.Background(), &service.LLMRequest{Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("expected failover success, got %v", err)
	}
	if resp.Content != "from backup" {
		t.Errorf("response came from %q", resp.Content)
	}
	if primary.calls != 1 || backup.calls != 1 {
		t.Errorf("call counts: primary=%d backup=%d", primary.calls, backup.calls)
	}
}

func TestRouter_PriorityBeatsInsertionOrder(t *testing.T) {
	fallback := &fakeProvider{name: "fallback", available: true}
	preferred := &fakeProvider{name: "preferred", available: true}

	router := NewRouter(zap.NewNop())
	router.AddProvider(fallback, 10)
	router.AddProvider(preferred, 1)

	resp, err := router.Generate(context.Background(), &service.LLMRequest{Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp.Content != "from preferred" {
		t.Errorf("lower priority value must be tried first, got %q", resp.Content)
	}
	if fallback.calls != 0 {
		t.Error("higher priority value must not be called when the preferred provider succeeds")
	}
}

func TestRouter_SkipsUnavailableAndUnsupported(t *testing.T) {
	noKey := &fakeProvider{name: "no-key", available: false}
	wrongModel := &fakeProvider{name: "wrong-model", available: true, models: []string{"other-model"}}
	good := &fakeProvider{name: "good", available: true}

	router := NewRouter(zap.NewNop())
	router.AddProvider(noKey, 0)
	router.AddProvider(wrongModel, 0)
	router.AddProvider(good, 0)

	resp, err := router.Generate(context.Background(), &service.LLMRequest{Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp.Content != "from good" {
		t.Errorf("response came from %q", resp.Content)
	}
	if noKey.calls != 0 || wrongModel.calls != 0 {
		t.Error("skipped providers must not be called")
	}
}

func TestRouter_NoProviderForModel(t *testing.T) {
	router := NewRouter(zap.NewNop())
	router.AddProvider(&fakeProvider{name: "narrow", available: true, models: []string{"other-model"}}, 0)

	if _, err := router.Generate(context.Background(), &service.LLMRequest{Model: "gpt-4o-mini"}); err == nil {
		t.Fatal("expected an error when no provider supports the model")
	}
}

func TestRouter_AllProvidersFailing(t *testing.T) {
	router := NewRouter(zap.NewNop())
	router.AddProvider(&fakeProvider{name: "a", available: true, err: fmt.Errorf("a down")}, 0)
	router.AddProvider(&fakeProvider{name: "b", available: true, err: fmt.Errorf("b down")}, 0)

	_, err := router.Generate(context.Background(), &service.LLMRequest{Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("expected an error when every provider fails")
	}
}

func TestRouter_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	failing := &fakeProvider{name: "flaky", available: true, err: fmt.Errorf("down")}

	router := NewRouter(zap.NewNop())
	router.AddProvider(failing, 0)

	for i := 0; i < 5; i++ {
		_, _ = router.Generate(context.Background(), &service.LLMRequest{Model: "m"})
	}
	if failing.calls != 5 {
		t.Fatalf("expected 5 attempts before the circuit opens, got %d", failing.calls)
	}

	// Circuit is now open: further calls never reach the provider.
	_, err := router.Generate(context.Background(), &service.LLMRequest{Model: "m"})
	if err == nil {
		t.Fatal("expected an error with the circuit open")
	}
	if failing.calls != 5 {
		t.Errorf("open circuit must short-circuit the provider, calls=%d", failing.calls)
	}

	statuses := router.ListProviders(context.Background())
	if len(statuses) != 1 || statuses[0].CircuitState != "open" {
		t.Errorf("unexpected provider status: %+v", statuses)
	}
}
