package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
	"morphseg/internal/domain"
)

// ErrNoRun is returned when the database holds no completed run.
var ErrNoRun = errors.New("no segmentation run stored")

var (
	bucketPrefix = []byte("records_prefix")
	bucketSuffix = []byte("records_suffix")
	bucketFinal  = []byte("records_final")
	bucketMeta   = []byte("meta")
	keySummary   = []byte("summary")
)

// BoltStore persists the records and summary of the latest run.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketPrefix, bucketSuffix, bucketFinal, bucketMeta}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func bucketFor(set domain.RecordSet) ([]byte, error) {
	switch set {
	case domain.SetPrefix:
		return bucketPrefix, nil
	case domain.SetSuffix:
		return bucketSuffix, nil
	case domain.SetFinal:
		return bucketFinal, nil
	}
	return nil, fmt.Errorf("unknown record set: %q", set)
}

// seqKey keeps records in corpus order under bbolt's byte ordering.
func seqKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}

// PutRecords replaces the contents of a record set.
func (s *BoltStore) PutRecords(set domain.RecordSet, records []domain.SegmentationRecord) error {
	name, err := bucketFor(set)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		for i, r := range records {
			data, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if err := b.Put(seqKey(i), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) ListRecords(set domain.RecordSet) ([]domain.SegmentationRecord, error) {
	name, err := bucketFor(set)
	if err != nil {
		return nil, err
	}
	var records []domain.SegmentationRecord
	err = s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(name).ForEach(func(k, v []byte) error {
			var r domain.SegmentationRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			records = append(records, r)
			return nil
		})
	})
	return records, err
}

func (s *BoltStore) CountRecords(set domain.RecordSet) (int, error) {
	name, err := bucketFor(set)
	if err != nil {
		return 0, err
	}
	count := 0
	err = s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(name).Stats().KeyN
		return nil
	})
	return count, err
}

func (s *BoltStore) PutSummary(summary domain.Summary) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keySummary, data)
	})
}

func (s *BoltStore) GetSummary() (domain.Summary, error) {
	var summary domain.Summary
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keySummary)
		if data == nil {
			return ErrNoRun
		}
		return json.Unmarshal(data, &summary)
	})
	return summary, err
}

// WriteModel implements port.Sink.
func (s *BoltStore) WriteModel(model domain.Model, records []domain.SegmentationRecord) error {
	if err := s.PutRecords(domain.SetFor(model), records); err != nil {
		return fmt.Errorf("failed to store %s records: %w", model, err)
	}
	return nil
}

// WriteFinal implements port.Sink.
func (s *BoltStore) WriteFinal(records []domain.SegmentationRecord) error {
	if err := s.PutRecords(domain.SetFinal, records); err != nil {
		return fmt.Errorf("failed to store final records: %w", err)
	}
	return nil
}

// WriteSummary implements port.Sink.
func (s *BoltStore) WriteSummary(summary domain.Summary) error {
	if err := s.PutSummary(summary); err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}
	return nil
}
