package memstore

import (
	"fmt"
	"sync"

	"morphseg/internal/domain"
	"morphseg/internal/port"
)

var (
	_ port.Sink        = (*MemoryStore)(nil)
	_ port.RecordStore = (*MemoryStore)(nil)
)

// MemoryStore keeps the latest run in memory.
type MemoryStore struct {
	mu         sync.RWMutex
	records    map[domain.RecordSet][]domain.SegmentationRecord
	summary    domain.Summary
	hasSummary bool
	notFound   error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[domain.RecordSet][]domain.SegmentationRecord),
	}
}

// WithNotFound sets the error GetSummary returns before a summary is written.
func (s *MemoryStore) WithNotFound(err error) *MemoryStore {
	s.notFound = err
	return s
}

func (s *MemoryStore) WriteModel(model domain.Model, records []domain.SegmentationRecord) error {
	if !model.Valid() {
		return fmt.Errorf("unknown model: %q", model)
	}
	s.put(domain.SetFor(model), records)
	return nil
}

func (s *MemoryStore) WriteFinal(records []domain.SegmentationRecord) error {
	s.put(domain.SetFinal, records)
	return nil
}

func (s *MemoryStore) WriteSummary(summary domain.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
	s.hasSummary = true
	return nil
}

func (s *MemoryStore) put(set domain.RecordSet, records []domain.SegmentationRecord) {
	cp := make([]domain.SegmentationRecord, len(records))
	copy(cp, records)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[set] = cp
}

func (s *MemoryStore) ListRecords(set domain.RecordSet) ([]domain.SegmentationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch set {
	case domain.SetPrefix, domain.SetSuffix, domain.SetFinal:
	default:
		return nil, fmt.Errorf("unknown record set: %q", set)
	}
	recs := s.records[set]
	out := make([]domain.SegmentationRecord, len(recs))
	copy(out, recs)
	return out, nil
}

func (s *MemoryStore) GetSummary() (domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasSummary {
		if s.notFound != nil {
			return domain.Summary{}, s.notFound
		}
		return domain.Summary{}, fmt.Errorf("no summary written")
	}
	return s.summary, nil
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[domain.RecordSet][]domain.SegmentationRecord)
	s.summary = domain.Summary{}
	s.hasSummary = false
}

func (s *MemoryStore) Close() error {
	return nil
}
