/*
Package journal keeps a durable copy of all events published by the engine
in a bolt database. Records are numbered in publishing order, so that a
reader can resume listing from the last record it has seen.
*/
package journal

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"time"

	"github.com/boltdb/bolt"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var bucketName = []byte("events")

// Record is a single stored event.
type Record struct {
	Seq        uint64            `json:"seq"`
	CallID     string            `json:"call_id,omitempty"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Time       time.Time         `json:"time"`
}

// Journal is a custody.EventSink writing to a bolt file.
type Journal struct {
	db  *bolt.DB
	now func() time.Time
}

var _ custody.EventSink = (*Journal)(nil)

// Open opens or creates the journal file at path.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open journal %s: %s", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create bucket: %s", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Publish stores all events in a single transaction. Either all of them
// are written or none.
func (j *Journal) Publish(ctx custody.Context, events []custody.Event) error {
	callID := custody.GetCallID(ctx)
	now := j.now().UTC()
	err := j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, e := range events {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			rec := Record{
				Seq:    seq,
				CallID: callID,
				Type:   e.Type,
				Time:   now,
			}
			if len(e.Attributes) > 0 {
				rec.Attributes = make(map[string]string, len(e.Attributes))
				for _, kv := range e.Attributes {
					rec.Attributes[string(kv.Key)] = string(kv.Value)
				}
			}
			raw, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put(seqKey(seq), raw); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "journal: %s", err)
	}
	return nil
}

// List returns up to limit records with a sequence greater than after, in
// order. A limit of zero returns all of them.
func (j *Journal) List(after uint64, limit int) ([]Record, error) {
	if after == math.MaxUint64 {
		return nil, nil
	}
	var res []Record
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.Seek(seqKey(after + 1)); k != nil; k, v = c.Next() {
			if limit > 0 && len(res) == limit {
				return nil
			}
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return errors.Wrapf(errors.ErrModel, "record %X: %s", k, err)
			}
			res = append(res, rec)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "list journal")
	}
	return res, nil
}

// Close releases the file. The journal cannot be used afterwards.
func (j *Journal) Close() error {
	return j.db.Close()
}

func seqKey(n uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, n)
	return k
}
