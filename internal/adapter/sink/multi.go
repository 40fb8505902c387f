package sink

import (
	"morphseg/internal/domain"
	"morphseg/internal/port"
)

// Multi forwards every call to each sink in turn and stops at the first error.
type Multi []port.Sink

func (m Multi) WriteModel(model domain.Model, records []domain.SegmentationRecord) error {
	for _, s := range m {
		if err := s.WriteModel(model, records); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) WriteFinal(records []domain.SegmentationRecord) error {
	for _, s := range m {
		if err := s.WriteFinal(records); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) WriteSummary(summary domain.Summary) error {
	for _, s := range m {
		if err := s.WriteSummary(summary); err != nil {
			return err
		}
	}
	return nil
}
