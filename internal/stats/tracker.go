package stats

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// SyncStats tracks per-entry outcomes of a bulk download run
type SyncStats struct {
	Total   int
	Written int
	Skipped int
	Failed  int

	StartTime time.Time
	EndTime   time.Time
}

// NewSyncStats creates stats for a run over total entries
func NewSyncStats(total int) *SyncStats {
	return &SyncStats{
		Total:     total,
		StartTime: time.Now(),
	}
}

// RecordWritten counts an entry successfully written to disk
func (s *SyncStats) RecordWritten() {
	s.Written++
}

// RecordSkipped counts an entry intentionally left alone
func (s *SyncStats) RecordSkipped() {
	s.Skipped++
}

// RecordFailed counts an entry that could not be fetched or written
func (s *SyncStats) RecordFailed() {
	s.Failed++
}

// Finish marks the end of the run and logs final statistics
func (s *SyncStats) Finish() {
	s.EndTime = time.Now()

	logrus.WithFields(logrus.Fields{
		"total":    s.Total,
		"written":  s.Written,
		"skipped":  s.Skipped,
		"failed":   s.Failed,
		"duration": s.Duration(),
	}).Info("Download statistics finalized")
}

// Duration returns the elapsed time of the run
func (s *SyncStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Summary creates a user-friendly summary of the run
func (s *SyncStats) Summary() string {
	return fmt.Sprintf("Wrote %d of %d entries, %d skipped, %d failed (%v)",
		s.Written,
		s.Total,
		s.Skipped,
		s.Failed,
		s.Duration().Round(time.Millisecond))
}
