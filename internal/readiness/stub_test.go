package readiness

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jonathan/career-readiness/internal/llm"
)

// stubClient answers structured requests by schema title.
type stubClient struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	prompts []string
	calls   atomic.Int32
	// block, when set, holds every call until it is closed or the context ends.
	block chan struct{}
}

func newStub() *stubClient {
	return &stubClient{replies: map[string]string{}, errs: map[string]error{}}
}

func (s *stubClient) reply(schema, text string) *stubClient {
	s.replies[schema] = text
	return s
}

func (s *stubClient) fail(schema string, err error) *stubClient {
	s.errs[schema] = err
	return s
}

func (s *stubClient) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

func (s *stubClient) GenerateStructured(ctx context.Context, prompt string, schema *llm.Schema, _ llm.ModelTier) (string, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	name := schema.Name()
	if err, ok := s.errs[name]; ok {
		return "", err
	}
	return s.replies[name], nil
}

func (s *stubClient) GetModel(tier llm.ModelTier) string {
	return "stub-" + string(tier)
}

func (s *stubClient) Close() error {
	return nil
}
