package service

import (
	"context"
	"fmt"

	"taskmanager/internal/model"
)

// TaskCounter provides aggregate counts for reporting.
type TaskCounter interface {
	CountByStatus(ctx context.Context) (map[model.Status]int64, error)
}

// ReportService builds human-readable summaries of the task backlog.
type ReportService struct {
	counter TaskCounter
}

func NewReportService(counter TaskCounter) *ReportService {
	return &ReportService{counter: counter}
}

// Summary returns a one-line count of tasks per status.
func (s *ReportService) Summary(ctx context.Context) (string, error) {
	counts, err := s.counter.CountByStatus(ctx)
	if err != nil {
		return "", err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return fmt.Sprintf("tasks: %d total, %d pending, %d in progress, %d completed",
		total,
		counts[model.StatusPending],
		counts[model.StatusInProgress],
		counts[model.StatusCompleted],
	), nil
}
