package linkstore

import (
	"time"

	"github.com/bunchhieng/linkvault/internal/model"
	"go.uber.org/zap"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source used for CreatedAt and CustomOrder.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithColorPicker overrides how new tags are colored.
func WithColorPicker(pick func() string) Option {
	return func(s *Store) {
		if pick != nil {
			s.pickColor = pick
		}
	}
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func defaults(s *Store) {
	s.log = zap.NewNop()
	s.now = time.Now
	s.pickColor = model.RandomColor
	s.newID = model.GenerateID
	s.filters = Filters{SortBy: model.SortByDate, SortOrder: model.SortDesc}
}
