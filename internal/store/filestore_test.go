package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type record struct {
	ID string `json:"id"`
}

func TestFileStoreReadEmpty(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := fs.Read(context.Background(), Orders)
	require.NoError(t, err)
	assert.Nil(t, data)

	records, err := View[[]record](context.Background(), fs, Orders)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStoreReadAfterWrite(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = Mutate(ctx, fs, Orders, func(rs *[]record) error {
		*rs = append(*rs, record{ID: "a"})
		return nil
	})
	require.NoError(t, err)

	records, err := View[[]record](ctx, fs, Orders)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)

	// Reopening the same directory sees the persisted state.
	fs2, err := NewFileStore(dir)
	require.NoError(t, err)
	records, err = View[[]record](ctx, fs2, Orders)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFileStoreMutateErrorDiscardsWrite(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	boom := fmt.Errorf("boom")
	_, err = Mutate(ctx, fs, Orders, func(rs *[]record) error {
		*rs = append(*rs, record{ID: "a"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	records, err := View[[]record](ctx, fs, Orders)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStoreConcurrentAppends(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	const writers = 25
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		id := fmt.Sprintf("r%d", i)
		g.Go(func() error {
			_, err := Mutate(ctx, fs, Orders, func(rs *[]record) error {
				*rs = append(*rs, record{ID: id})
				return nil
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	records, err := View[[]record](ctx, fs, Orders)
	require.NoError(t, err)
	assert.Len(t, records, writers, "no appended record may be lost")
}

func TestFileStoreCollectionsIndependent(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = Mutate(ctx, fs, Orders, func(rs *[]record) error {
		*rs = append(*rs, record{ID: "o1"})
		return nil
	})
	require.NoError(t, err)

	invoices, err := View[[]record](ctx, fs, Invoices)
	require.NoError(t, err)
	assert.Empty(t, invoices)
}
