package port

import "morphseg/internal/domain"

// Sink receives the outcome of a segmentation run.
type Sink interface {
	// WriteModel records one model's decisions in corpus order.
	WriteModel(model domain.Model, records []domain.SegmentationRecord) error

	// WriteFinal records the winning model's decisions.
	WriteFinal(records []domain.SegmentationRecord) error

	// WriteSummary records the per-model tallies and the winner.
	WriteSummary(summary domain.Summary) error
}

// RecordStore reads back a persisted run.
type RecordStore interface {
	ListRecords(set domain.RecordSet) ([]domain.SegmentationRecord, error)

	GetSummary() (domain.Summary, error)
}
