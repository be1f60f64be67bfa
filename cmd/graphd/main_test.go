package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldtechnologies/graphmsg/internal/dispatch"
	"github.com/eldtechnologies/graphmsg/internal/graph"
	"github.com/eldtechnologies/graphmsg/internal/identity"
	"github.com/eldtechnologies/graphmsg/internal/message"
	"github.com/eldtechnologies/graphmsg/internal/scenario"
	"github.com/eldtechnologies/graphmsg/internal/testutil"
)

func buildDefault(t *testing.T) (*graph.Registry, []message.Message) {
	t.Helper()
	reg, msgs, err := scenario.Build(scenario.Default(), func(id string) (identity.KeyPair, error) {
		return testutil.KeyPair(t, id), nil
	})
	require.NoError(t, err)
	return reg, msgs
}

func TestRunDefaultScenario(t *testing.T) {
	reg, msgs := buildDefault(t)

	var out bytes.Buffer
	failed := run(context.Background(), dispatch.New(reg), msgs, &out)
	assert.Equal(t, 3, failed)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(msgs))
	assert.Equal(t, "Received Message from Alice to Bob: H1e1l2o1,1 1B1o1b1!1", lines[0])
	assert.Equal(t, "Received Message from Alice to Bob: Hello, Bob!", lines[3])
	assert.True(t, strings.HasPrefix(lines[7], "Failed confirmation message from 2 to 1: OriginalVerificationFailed"), lines[7])
	assert.True(t, strings.HasPrefix(lines[9], "Failed compressed message from 1 to 4: NotFound"), lines[9])
}

func TestRunRequireEdge(t *testing.T) {
	reg, msgs := buildDefault(t)
	require.NoError(t, reg.Disconnect("1", "2"))

	var out bytes.Buffer
	failed := run(context.Background(), dispatch.New(reg, dispatch.RequireEdge(true)), msgs[:1], &out)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "NotConnected")
}

func TestRunStopsWhenCancelled(t *testing.T) {
	reg, msgs := buildDefault(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	failed := run(ctx, dispatch.New(reg), msgs, &out)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "context canceled")
}
