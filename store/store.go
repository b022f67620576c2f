/*
Package store persists the shell command history in a single-file bolt
database. Entries live in one bucket keyed by the big-endian bucket
sequence number, so a cursor walks them in the order they were typed.
The value is a small binary record: the length-prefixed line followed
by the unix timestamp of the moment it was accepted.
*/
package store

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lunfardo314/easysh"
	bolt "go.etcd.io/bbolt"
)

// Cmd is one recorded history entry.
type Cmd struct {
	Seq  uint64
	Text string
	At   time.Time
}

// ErrNoMatchingCmd is returned when a sequence number query finds nothing.
var ErrNoMatchingCmd = errors.New("no matching command line")

var bucketCmd = []byte("cmd")

// Store is the persistent command history. Safe for concurrent use
// within one process, per bolt transaction semantics.
type Store struct {
	db *bolt.DB
}

// Open opens the history database, creating file and bucket when absent.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("history store '%s': %v", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCmd)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history store '%s': %v", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AddCmd appends a command line and returns its sequence number.
// Sequence numbers start at 1 and never repeat, even after deletions.
func (s *Store) AddCmd(line string) (uint64, error) {
	if len(line) > math.MaxUint16 {
		return 0, fmt.Errorf("history store: line too long (%d bytes)", len(line))
	}
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCmd)
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(easysh.EncodeInteger(seq), encodeRecord(line, time.Now()))
	})
	return seq, err
}

// NextSeq returns the sequence number the next AddCmd will take.
func (s *Store) NextSeq() (uint64, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket(bucketCmd).Sequence() + 1
		return nil
	})
	return seq, err
}

// Get queries the entry with the given sequence number.
func (s *Store) Get(seq uint64) (Cmd, error) {
	var ret Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketCmd).Get(easysh.EncodeInteger(seq))
		if v == nil {
			return ErrNoMatchingCmd
		}
		var err error
		ret, err = decodeRecord(seq, v)
		return err
	})
	return ret, err
}

// Cmds returns the lines of the entries with from <= seq < upto,
// oldest first.
func (s *Store) Cmds(from, upto uint64) ([]string, error) {
	var ret []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketCmd).Cursor()
		for k, v := c.Seek(easysh.EncodeInteger(from)); k != nil && easysh.DecodeInteger[uint64](k) < upto; k, v = c.Next() {
			rec, err := decodeRecord(easysh.DecodeInteger[uint64](k), v)
			if err != nil {
				return err
			}
			ret = append(ret, rec.Text)
		}
		return nil
	})
	return ret, err
}

// All returns up to max newest entries, oldest first. It seeds the
// in-memory ring on startup. max < 1 means no cap.
func (s *Store) All(max int) ([]string, error) {
	var ret []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketCmd).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if max > 0 && len(ret) >= max {
				break
			}
			rec, err := decodeRecord(easysh.DecodeInteger[uint64](k), v)
			if err != nil {
				return err
			}
			ret = append(ret, rec.Text)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// collected newest first, flip to chronological order
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret, nil
}

func encodeRecord(line string, at time.Time) []byte {
	var buf bytes.Buffer
	_ = easysh.WriteBytes16(&buf, []byte(line))
	_ = easysh.WriteInteger(&buf, uint64(at.Unix()))
	return buf.Bytes()
}

func decodeRecord(seq uint64, data []byte) (Cmd, error) {
	rdr := bytes.NewReader(data)
	text, err := easysh.ReadBytes16(rdr)
	if err != nil {
		return Cmd{}, fmt.Errorf("corrupted history record #%d: %v", seq, err)
	}
	var ts uint64
	if err = easysh.ReadInteger(rdr, &ts); err != nil {
		return Cmd{}, fmt.Errorf("corrupted history record #%d: %v", seq, err)
	}
	return Cmd{Seq: seq, Text: string(text), At: time.Unix(int64(ts), 0)}, nil
}
