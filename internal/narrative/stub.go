package narrative

import "context"

// Static is a deterministic Generator for tests and offline use: it returns
// a fixed string and records whether it was invoked.
type Static struct {
	Text   string
	Called bool
}

// Summarize returns the fixed text.
func (s *Static) Summarize(_ context.Context, _, _ []string) (string, error) {
	s.Called = true
	return s.Text, nil
}

// Unavailable is the generator used when no chat-completion service is
// configured. Its error is folded inline into the narrative by Summarize,
// keeping report composition alive.
type Unavailable struct {
	Err error
}

// Summarize always fails with the configured error.
func (u Unavailable) Summarize(_ context.Context, _, _ []string) (string, error) {
	return "", u.Err
}
