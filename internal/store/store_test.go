package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func openBolt(t *testing.T) *BoltStore {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "records.db"), 0600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewBoltStore(db)
	require.NoError(t, err)
	return s
}

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestRecordStores(t *testing.T) {
	stores := map[string]func(t *testing.T) RecordStore{
		"memory": func(t *testing.T) RecordStore { return NewMemoryStore() },
		"bolt":   func(t *testing.T) RecordStore { return openBolt(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("absent collection reads empty", func(t *testing.T) {
				s := open(t)
				records, err := s.Read(ctx, "courses")
				require.NoError(t, err)
				assert.NotNil(t, records)
				assert.Empty(t, records)
			})

			t.Run("write keeps order", func(t *testing.T) {
				s := open(t)
				in := []json.RawMessage{
					raw(t, map[string]string{"id": "b"}),
					raw(t, map[string]string{"id": "a"}),
					raw(t, map[string]string{"id": "c"}),
				}
				require.NoError(t, s.Write(ctx, "courses", in))

				out, err := s.Read(ctx, "courses")
				require.NoError(t, err)
				require.Len(t, out, 3)
				for i := range in {
					assert.JSONEq(t, string(in[i]), string(out[i]))
				}
			})

			t.Run("write overwrites whole collection", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Write(ctx, "users", []json.RawMessage{raw(t, 1), raw(t, 2)}))
				require.NoError(t, s.Write(ctx, "users", []json.RawMessage{raw(t, 3)}))

				out, err := s.Read(ctx, "users")
				require.NoError(t, err)
				require.Len(t, out, 1)
				assert.JSONEq(t, "3", string(out[0]))
			})

			t.Run("collections are independent", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Write(ctx, "daily_tasks_u1", []json.RawMessage{raw(t, "x")}))

				out, err := s.Read(ctx, "daily_tasks_u2")
				require.NoError(t, err)
				assert.Empty(t, out)
			})

			t.Run("ping", func(t *testing.T) {
				s := open(t)
				pinger, ok := s.(Pinger)
				require.True(t, ok)
				assert.NoError(t, pinger.Ping(ctx))
			})

			t.Run("nil write stores empty collection", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Write(ctx, "enrollments", nil))

				out, err := s.Read(ctx, "enrollments")
				require.NoError(t, err)
				assert.Empty(t, out)
			})
		})
	}
}

func TestDecodeArrayRejectsNonArray(t *testing.T) {
	_, err := decodeArray("courses", []byte(`{"id":"x"}`))
	assert.Error(t, err)
}
