package log_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/pkg/log"
)

func TestCrate(t *testing.T) {
	assertAttrEqual(t, log.Crate(identity.CrateName("demo")), "crate", "demo")
}

func TestTask(t *testing.T) {
	attr := log.Task(identity.FullTaskName{Crate: "demo", Task: "counter"})
	assertAttrEqual(t, attr, "task", "demo/counter")
}

func TestDatachunk(t *testing.T) {
	attr := log.Datachunk(identity.FullDatachunkName{Crate: "demo", Datachunk: "chunk"})
	assertAttrEqual(t, attr, "datachunk", "demo/chunk")
}

func TestOutcome(t *testing.T) {
	assertAttrEqual(t, log.Outcome(flow.FullReload()), "outcome", "fullReload")
}

func TestError(t *testing.T) {
	assertAttrEqual(t, log.Error(nil), "error", "")
	assertAttrEqual(t, log.Error(errors.New("boom")), "error", "boom")
}

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.New(buf, "custard", "0.1.0", slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("Task started", log.Type("Counter"))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "service=custard")
	assert.Contains(t, buf.String(), "type=Counter")
}

func assertAttrEqual(t *testing.T, attr slog.Attr, key, value string) {
	t.Helper()
	assert.Equal(t, key, attr.Key)
	assert.Equal(t, value, attr.Value.String())
}
