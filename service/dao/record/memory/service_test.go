package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := New()
	now := time.Now()

	counter := record.New(identity.FullTaskName{Crate: "demo", Task: "counter"}, "Counter", now)
	prompt := record.New(identity.FullTaskName{Crate: "other", Task: "prompt"}, "Prompt", now)
	prompt.State = record.StateFaulted

	assert.NoError(t, srv.Save(ctx, counter))
	assert.NoError(t, srv.Save(ctx, prompt))
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &record.Record{}), dao.ErrInvalidID)

	counter.Cycles = 10
	loaded, err := srv.Load(ctx, "demo/counter")
	assert.NoError(t, err)
	assert.Equal(t, 0, loaded.Cycles, "store keeps its own copy")

	faulted, err := srv.List(ctx, dao.WithState(record.StateFaulted))
	assert.NoError(t, err)
	assert.Len(t, faulted, 1)
	assert.Equal(t, "other/prompt", faulted[0].ID)

	demo, err := srv.List(ctx, dao.WithCrate("demo"))
	assert.NoError(t, err)
	assert.Len(t, demo, 1)

	assert.NoError(t, srv.Delete(ctx, "demo/counter"))
	_, err = srv.Load(ctx, "demo/counter")
	assert.True(t, errors.Is(err, dao.ErrNotFound))
}
