package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/custard/model/identity"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span.txt")
	require.NoError(t, Init("custard", "0.0.1", fname))

	name := identity.FullTaskName{Crate: "demo", Task: "counter"}
	_, span := StartTaskSpan(context.Background(), "supervisor.reload", name)
	span.WithAttributes(map[string]string{"type": "Counter"})
	EndSpan(span, errors.New("boom"))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "supervisor.reload")
	assert.Contains(t, string(data), "custard.task")
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	span.SetStatus(nil)
	EndSpan(nil, nil)
}
