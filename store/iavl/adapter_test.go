package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest/assert"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func TestCommitOnlyAfterWriteAndCommit(t *testing.T) {
	commit := NewCommitStoreFromDB(dbm.NewMemDB())
	k, v := []byte("french"), []byte("fry")

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assertGetHas(t, cache, k, v, true)

	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, []byte(nil), got)

	assert.Nil(t, cache.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	// a discarded cache leaves no trace
	c2 := commit.CacheWrap()
	assert.Nil(t, c2.Delete(k))
	c2.Discard()
	assertGetHas(t, commit.Adapter(), k, v, true)
}

func TestReloadFromDisk(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	assert.Nil(t, err)
	assert.Nil(t, commit.LoadLatestVersion())
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("k"), []byte("v")))
	assert.Nil(t, cache.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)

	// leveldb holds an exclusive lock per directory
	commit.Close()
	reopened, err := NewCommitStore(dir, "state")
	assert.Nil(t, err)
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())
	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id.Version, latest.Version)
	assert.Equal(t, id.Hash, latest.Hash)
	assertGetHas(t, reopened.Adapter(), []byte("k"), []byte("v"), true)
}

func TestRollbackDropsUncommittedWrites(t *testing.T) {
	commit := NewCommitStoreFromDB(dbm.NewMemDB())
	kept, dropped := []byte("kept"), []byte("dropped")

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(kept, []byte("1")))
	assert.Nil(t, cache.Write())
	_, err := commit.Commit()
	assert.Nil(t, err)

	cache = commit.CacheWrap()
	assert.Nil(t, cache.Set(dropped, []byte("2")))
	assert.Nil(t, cache.Delete(kept))
	assert.Nil(t, cache.Write())
	assertGetHas(t, commit.Adapter(), dropped, []byte("2"), true)

	commit.Rollback()
	assertGetHas(t, commit.Adapter(), kept, []byte("1"), true)
	assertGetHas(t, commit.Adapter(), dropped, nil, false)

	// the next commit continues from the last saved version
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id.Version)
}
