package journal

import (
	"context"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/stretchr/testify/require"
)

func tempJournal(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "journal")
	require.NoError(t, err)
	return filepath.Join(dir, "events.db"), func() { os.RemoveAll(dir) }
}

func TestPublishAndList(t *testing.T) {
	path, cleanup := tempJournal(t)
	defer cleanup()

	j, err := Open(path)
	require.NoError(t, err)
	fixed := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	ctx := custody.WithCallID(context.Background(), "call-1")
	require.NoError(t, j.Publish(ctx, []custody.Event{
		custody.NewEvent("transfer/created").With("id", "0").With("amount", "7"),
		custody.NewEvent("transfer/approved"),
	}))
	require.NoError(t, j.Publish(context.Background(), []custody.Event{
		custody.NewEvent("transfer/executed").With("id", "0"),
	}))

	all, err := j.List(0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, Record{
		Seq:        1,
		CallID:     "call-1",
		Type:       "transfer/created",
		Attributes: map[string]string{"id": "0", "amount": "7"},
		Time:       fixed,
	}, all[0])
	require.Equal(t, uint64(2), all[1].Seq)
	require.Nil(t, all[1].Attributes)
	require.Equal(t, "", all[2].CallID)

	page, err := j.List(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "transfer/approved", page[0].Type)

	rest, err := j.List(3, 10)
	require.NoError(t, err)
	require.Empty(t, rest)

	// nothing can follow the largest sequence
	none, err := j.List(math.MaxUint64, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestReopenKeepsRecords(t *testing.T) {
	path, cleanup := tempJournal(t)
	defer cleanup()

	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Publish(context.Background(), []custody.Event{custody.NewEvent("a/b")}))
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()
	require.NoError(t, j.Publish(context.Background(), []custody.Event{custody.NewEvent("c/d")}))

	all, err := j.List(0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "a/b", all[0].Type)
	require.Equal(t, uint64(2), all[1].Seq)
}
