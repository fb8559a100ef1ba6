// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/treeindex/types"
)

type fieldsOption = BuildOption[int, types.Fields[int]]

// panicRecord fails while its identifier is read.
type panicRecord struct{}

func (panicRecord) ID() (int, bool)       { panic("unreadable identifier") }
func (panicRecord) ParentID() (int, bool) { return 0, false }

func TestBuildSource_Build(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		records  []types.Fields[int]
		options  []fieldsOption
		wantLen  int
		wantErrs []error
		skipErrs []error
	}{
		{
			name:    "valid",
			ctx:     context.Background(),
			records: referenceItems(),
			wantLen: 8,
		},
		{
			name:    "valid with cycle check",
			ctx:     context.Background(),
			records: referenceItems(),
			options: []fieldsOption{WithCycleCheck[int, types.Fields[int]](true)},
			wantLen: 8,
		},
		{
			name:    "empty",
			ctx:     context.Background(),
			wantLen: 0,
		},
		{
			name:    "missing parent is a root",
			ctx:     context.Background(),
			records: []types.Fields[int]{{"id": 1}},
			wantLen: 1,
		},
		{
			name:     "missing id",
			ctx:      context.Background(),
			records:  []types.Fields[int]{{"id": 1, "parent": "root"}, {"parent": 1}},
			wantErrs: []error{ErrBuildIndex, ErrInvalidIndexSrc, ErrMissingID},
		},
		{
			name:     "mistyped id",
			ctx:      context.Background(),
			records:  []types.Fields[int]{{"id": "1", "parent": "root"}},
			wantErrs: []error{ErrBuildIndex, ErrInvalidIndexSrc, ErrMissingID},
		},
		{
			name:     "canceled",
			ctx:      canceled,
			records:  referenceItems(),
			wantErrs: []error{ErrBuildIndex, context.Canceled},
		},
		{
			name:     "cycle check",
			ctx:      context.Background(),
			records:  []types.Fields[int]{{"id": 1, "parent": 2}, {"id": 2, "parent": 1}},
			options:  []fieldsOption{WithCycleCheck[int, types.Fields[int]](true)},
			wantErrs: []error{ErrBuildIndex, ErrCycle},
			skipErrs: []error{ErrInvalidIndexSrc},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := append([]fieldsOption{WithRecords[int](tt.records)}, tt.options...)
			b := NewBuildSource(options...)
			assert.Equal(t, len(tt.records), b.Len())

			gotIdx, err := b.Build(tt.ctx)
			if len(tt.wantErrs) > 0 {
				assert.Nil(t, gotIdx)
				for _, wantErr := range tt.wantErrs {
					assert.ErrorIs(t, err, wantErr)
				}
				for _, skipErr := range tt.skipErrs {
					assert.NotErrorIs(t, err, skipErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, gotIdx.Len())
		})
	}
}

func TestBuildSource_Build_panic(t *testing.T) {
	gotIdx, err := New[int](context.Background(), []panicRecord{{}})
	assert.Nil(t, gotIdx)
	assert.ErrorIs(t, err, ErrBuildIndex)
	assert.ErrorIs(t, err, ErrPanicked)
}

func TestBuildSource_Build_debug(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := New[int](context.Background(), []types.Fields[int]{{"parent": 1}},
		WithBuildLogger[int, types.Fields[int]](logger),
		WithDebug[int, types.Fields[int]](true),
	)
	require.ErrorIs(t, err, ErrMissingID)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Contains(t, entry.Message, "malformed record")

	hook.Reset()

	idx, err := New[int](context.Background(), referenceItems(),
		WithBuildLogger[int, types.Fields[int]](logger),
		WithDebug[int, types.Fields[int]](true),
	)
	require.NoError(t, err)
	assert.Same(t, logger, idx.Config().Logger)
	require.Len(t, hook.Entries, 1)
	assert.Contains(t, hook.Entries[0].Message, "indexed 8 records")
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{AncestorCacheSize: -1}
	cfg.Validate()

	assert.NotNil(t, cfg.Logger)
	assert.Positive(t, cfg.PoolSize)
	assert.Zero(t, cfg.AncestorCacheSize)
}

func TestBuildSource_Build_sharedConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("option order", func(t *testing.T) {
		logger, _ := logtest.NewNullLogger()

		idx, _ := referenceIndex(t,
			WithDebug[int, types.Fields[int]](true),
			WithBuildLogger[int, types.Fields[int]](logger),
			WithConfig[int, types.Fields[int]](&Config{}),
		)
		assert.True(t, idx.Config().Debug)
		assert.Same(t, logger, idx.Config().Logger)
	})

	t.Run("separate indices", func(t *testing.T) {
		shared := &Config{AncestorCacheSize: 2}
		loggerA, _ := logtest.NewNullLogger()
		loggerB, _ := logtest.NewNullLogger()

		a, err := New[int](ctx, referenceItems(),
			WithConfig[int, types.Fields[int]](shared),
			WithDebug[int, types.Fields[int]](true),
			WithBuildLogger[int, types.Fields[int]](loggerA),
		)
		require.NoError(t, err)

		b, err := New[int](ctx, referenceItems(),
			WithConfig[int, types.Fields[int]](shared),
			WithDebug[int, types.Fields[int]](false),
			WithBuildLogger[int, types.Fields[int]](loggerB),
		)
		require.NoError(t, err)

		assert.True(t, a.Config().Debug)
		assert.False(t, b.Config().Debug)
		assert.Same(t, loggerA, a.Config().Logger)
		assert.Same(t, loggerB, b.Config().Logger)
		assert.NotSame(t, a.Config(), b.Config())

		// The caller's Config is left as supplied.
		assert.False(t, shared.Debug)
		assert.Nil(t, shared.Logger)
		assert.Zero(t, shared.PoolSize)

		shared.Debug = true
		assert.False(t, b.Config().Debug)
	})
}

func TestBuildSource_Build_decodedJSON(t *testing.T) {
	ctx := context.Background()

	var items []types.Fields[int]
	src := `[{"id": 1, "parent": "root"}, {"id": 2, "parent": 1, "type": "test"}, {"id": 3, "parent": 2}]`
	require.NoError(t, json.Unmarshal([]byte(src), &items))

	idx, err := New[int](ctx, items)
	require.NoError(t, err)

	parents, err := idx.AllParents(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, Values[int](ctx, parents))
	assert.Equal(t, []types.Fields[int]{items[2]}, idx.Children(ctx, 2))
}
