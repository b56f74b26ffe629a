package agents

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/resume-forge/internal/llm"
)

// stageClient routes canned responses by prompt content, standing in
// for the model provider. Responses for the writer and reviewer are
// consumed in order so revision rounds can differ.
type stageClient struct {
	mu sync.Mutex

	profileResponse string
	jobResponse     string
	writeResponses  []string
	reviewResponses []string
	legacyResponse  string

	// failures maps a stage marker to an error returned instead of a
	// response; remaining counts how many calls still fail.
	failures map[string]*stageFailure

	calls map[string]int
}

type stageFailure struct {
	err       error
	remaining int
}

func newStageClient() *stageClient {
	return &stageClient{
		failures: make(map[string]*stageFailure),
		calls:    make(map[string]int),
	}
}

// failStage makes the named stage fail err for the next n calls.
func (c *stageClient) failStage(stage string, err error, n int) {
	c.failures[stage] = &stageFailure{err: err, remaining: n}
}

// stageFor identifies the pipeline stage from its prompt text.
func stageFor(prompt string) string {
	switch {
	case strings.Contains(prompt, "career analyst"):
		return "profile"
	case strings.Contains(prompt, "job posting analyst"):
		return "job"
	case strings.Contains(prompt, "in one pass"):
		return "legacy"
	case strings.Contains(prompt, "resume reviewer"):
		return "review"
	case strings.Contains(prompt, "resume writer"):
		return "write"
	default:
		return "unknown"
	}
}

func (c *stageClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stage := stageFor(prompt)
	c.calls[stage]++

	if failure, ok := c.failures[stage]; ok && failure.remaining > 0 {
		failure.remaining--
		return "", failure.err
	}

	switch stage {
	case "profile":
		return c.profileResponse, nil
	case "job":
		return c.jobResponse, nil
	case "legacy":
		return c.legacyResponse, nil
	case "review":
		return c.takeLocked(&c.reviewResponses), nil
	case "write":
		return c.takeLocked(&c.writeResponses), nil
	}
	return "", nil
}

func (c *stageClient) takeLocked(responses *[]string) string {
	if len(*responses) == 0 {
		return ""
	}
	response := (*responses)[0]
	if len(*responses) > 1 {
		*responses = (*responses)[1:]
	}
	return response
}

func (c *stageClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *stageClient) GetModel(tier llm.ModelTier) string {
	return "stage-stub"
}

func (c *stageClient) Close() error { return nil }

func (c *stageClient) callCount(stage string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[stage]
}
