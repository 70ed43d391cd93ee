package web

import (
	"testing"
	"time"
)

func TestEventFromJob(t *testing.T) {
	job := Job{
		ID:          "job_abc",
		Status:      StatusRunning,
		CurrentFile: "song",
		Progress:    2,
		Total:       5,
		Succeeded:   1,
		Failed:      1,
		CreatedAt:   time.Now(),
	}

	ev := eventFromJob(job)
	if ev.Type != "progress" {
		t.Errorf("type = %q, want progress", ev.Type)
	}
	if ev.JobID != "job_abc" {
		t.Errorf("job_id = %q", ev.JobID)
	}
	if ev.File != "song" {
		t.Errorf("file = %q, want song", ev.File)
	}
	if ev.Progress != 2 || ev.Total != 5 || ev.Succeeded != 1 || ev.Failed != 1 {
		t.Errorf("counts = %+v", ev)
	}
}

func TestEventFromJobTerminal(t *testing.T) {
	for _, status := range []JobStatus{StatusCompleted, StatusFailed, StatusCancelled} {
		job := Job{ID: "job_abc", Status: status, CurrentFile: "leftover"}

		ev := eventFromJob(job)
		if ev.Type != "done" {
			t.Errorf("%s: type = %q, want done", status, ev.Type)
		}
		if ev.File != "" {
			t.Errorf("%s: a terminal event must not carry a current file, got %q", status, ev.File)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusRunning, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("Terminal(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
