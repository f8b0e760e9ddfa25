package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/foundation/teacup"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	ev := &Evaluation{Source: "1 + 2", Result: "3", Duration: 1500 * time.Microsecond}
	require.NoError(t, s.Record(ctx, ev))

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, engine.Digest("1 + 2"), ev.Digest)
	assert.False(t, ev.CreatedAt.IsZero())

	got, err := s.Get(ctx, ev.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1 + 2", got.Source)
	assert.Equal(t, "3", got.Result)
	assert.Equal(t, ev.Digest, got.Digest)
	assert.Equal(t, 1500*time.Microsecond, got.Duration)
	assert.False(t, got.Failed())
}

func TestGet_Missing(t *testing.T) {
	s := newStore(t)

	got, err := s.Get(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	base := time.Now()
	for i, src := range []string{"a", "b", "c"} {
		require.NoError(t, s.Record(ctx, &Evaluation{
			Source:    src,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Source, "newest first")
	assert.Equal(t, "a", all[2].Source)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRecord_DuplicateID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, &Evaluation{ID: "x", Source: "1"}))
	err := s.Record(ctx, &Evaluation{ID: "x", Source: "2"})
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, &Evaluation{Source: "1"}))
	require.NoError(t, s.Clear(ctx))

	all, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoError(t, s.Ping(ctx))
}

func TestFromResult(t *testing.T) {
	e, err := teacup.New(teacup.Options{Logger: mdwlog.NewNop()})
	require.NoError(t, err)

	res, err := e.Run("[1, 2] + [3]")
	require.NoError(t, err)

	ev := FromResult("session-1", res, nil)
	assert.Equal(t, res.ID, ev.ID)
	assert.Equal(t, "session-1", ev.SessionID)
	assert.Equal(t, "[1, 2, 3]", ev.Result)
	assert.False(t, ev.Failed())

	res, err = e.Run("1 / 0")
	require.Error(t, err)
	ev = FromResult("", res, err)
	assert.True(t, ev.Failed())
	assert.Empty(t, ev.Result)
	assert.Equal(t, "1 / 0", ev.Source)

	ev = FromResult("", nil, errors.New("boom"))
	assert.Equal(t, "boom", ev.Error)
}
