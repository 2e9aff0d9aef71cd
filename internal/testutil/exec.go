package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/hbjs97/shimenv/internal/cmdexec"
)

// Response represents a pre-configured command response for FakeCommander.
type Response struct {
	Output []byte
	Err    error
}

// FakeCommander returns pre-configured responses for testing.
// Responses are keyed by "name arg1 arg2 ..." format. If no exact match is
// found, it tries prefix matching.
type FakeCommander struct {
	// Responses maps command strings to their responses.
	// Key format: "command arg1 arg2" (e.g., "bash --version", "direnv version")
	Responses map[string]Response

	// Calls records all commands that were executed, in order.
	Calls []string

	// Specs records every Spec passed to Run, in order.
	Specs []cmdexec.Spec

	// DefaultResponse is returned when no matching response is found.
	// If nil, an error is returned for unmatched commands.
	DefaultResponse *Response
}

// NewFakeCommander creates a FakeCommander with an empty response map.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{
		Responses: make(map[string]Response),
	}
}

// Register adds a response for the given command key.
func (c *FakeCommander) Register(key string, output string, err error) {
	c.Responses[key] = Response{
		Output: []byte(output),
		Err:    err,
	}
}

// Run records the spec, writes the matched output to spec.Stdout and returns
// the matched error.
func (c *FakeCommander) Run(_ context.Context, spec cmdexec.Spec) error {
	c.Specs = append(c.Specs, spec)

	out, err := c.lookup(spec.Name, spec.Args...)
	if spec.Stdout != nil && len(out) > 0 {
		spec.Stdout.Write(out)
	}
	return err
}

// Output looks up the command in Responses and returns the matching response.
func (c *FakeCommander) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	return c.lookup(name, args...)
}

// Called returns true if a command matching the given prefix was executed.
func (c *FakeCommander) Called(prefix string) bool {
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func (c *FakeCommander) lookup(name string, args ...string) ([]byte, error) {
	fullCmd := name
	if len(args) > 0 {
		fullCmd = name + " " + strings.Join(args, " ")
	}

	c.Calls = append(c.Calls, fullCmd)

	// Exact match first.
	if resp, ok := c.Responses[fullCmd]; ok {
		return resp.Output, resp.Err
	}

	// Try prefix matching (longest prefix wins).
	bestKey := ""
	for key := range c.Responses {
		if strings.HasPrefix(fullCmd, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey != "" {
		resp := c.Responses[bestKey]
		return resp.Output, resp.Err
	}

	// Default response.
	if c.DefaultResponse != nil {
		return c.DefaultResponse.Output, c.DefaultResponse.Err
	}

	return nil, fmt.Errorf("FakeCommander: no response registered for %q", fullCmd)
}
