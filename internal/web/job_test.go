package web

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sunoproc/internal/config"
)

func TestCreateJobRejectsMissingDirectory(t *testing.T) {
	jm := NewJobManager()

	if _, err := jm.CreateJob("/nonexistent/dir", config.DefaultConfig()); err == nil {
		t.Error("expected error for a missing directory")
	}
	if len(jm.ListJobs()) != 0 {
		t.Error("no job should be registered for a rejected directory")
	}
}

func TestCreateJobRejectsFile(t *testing.T) {
	jm := NewJobManager()
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := jm.CreateJob(path, config.DefaultConfig()); err == nil {
		t.Error("expected error when the target is not a directory")
	}
}

func TestCleanup(t *testing.T) {
	jm := NewJobManager()
	cfg := config.DefaultConfig()

	// An old completed job (finished 2 hours ago)
	old := mustCreateJob(t, jm, cfg)
	jm.UpdateJob(old.ID, func(j *Job) {
		j.Status = StatusCompleted
	})
	jm.mu.Lock()
	past := time.Now().Add(-2 * time.Hour)
	jm.jobs[old.ID].CompletedAt = &past
	jm.mu.Unlock()

	// A recently completed job
	recent := mustCreateJob(t, jm, cfg)
	jm.UpdateJob(recent.ID, func(j *Job) {
		j.Status = StatusCompleted
	})

	// A running job (never cleaned)
	running := mustCreateJob(t, jm, cfg)
	jm.UpdateJob(running.ID, func(j *Job) {
		j.Status = StatusRunning
	})

	jm.cleanup()

	if _, err := jm.GetJob(old.ID); err == nil {
		t.Error("old completed job should have been cleaned up")
	}
	if _, err := jm.GetJob(recent.ID); err != nil {
		t.Error("recent completed job should NOT have been cleaned up")
	}
	if _, err := jm.GetJob(running.ID); err != nil {
		t.Error("running job should NOT have been cleaned up")
	}
}

func TestCreateJobUniqueIDs(t *testing.T) {
	jm := NewJobManager()
	cfg := config.DefaultConfig()

	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		job := mustCreateJob(t, jm, cfg)
		if ids[job.ID] {
			t.Fatalf("duplicate job ID: %s", job.ID)
		}
		ids[job.ID] = true
	}
}

func TestJobIDFormat(t *testing.T) {
	jm := NewJobManager()

	job := mustCreateJob(t, jm, config.DefaultConfig())
	if !strings.HasPrefix(job.ID, "job_") {
		t.Errorf("job ID should start with 'job_', got %q", job.ID)
	}
}

func TestUpdateJobTimestamps(t *testing.T) {
	jm := NewJobManager()
	job := mustCreateJob(t, jm, config.DefaultConfig())

	// Pending → Running should set StartedAt
	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusRunning
	})
	j, _ := jm.GetJob(job.ID)
	if j.StartedAt == nil {
		t.Error("StartedAt should be set when status changes to running")
	}

	// Running → Completed should set CompletedAt
	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusCompleted
	})
	j, _ = jm.GetJob(job.ID)
	if j.CompletedAt == nil {
		t.Error("CompletedAt should be set when status changes to completed")
	}
}

func TestUpdateJobNotFound(t *testing.T) {
	jm := NewJobManager()
	err := jm.UpdateJob("nonexistent", func(j *Job) {})
	if err == nil {
		t.Error("UpdateJob should return error for nonexistent job")
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	jm := NewJobManager()
	job := mustCreateJob(t, jm, config.DefaultConfig())

	ch := jm.Subscribe(job.ID)

	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusRunning
		j.Total = 3
		j.CurrentFile = "song"
	})

	var snap Job
	select {
	case snap = <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}

	if snap.Status != StatusRunning {
		t.Errorf("expected status running, got %s", snap.Status)
	}
	if snap.Total != 3 {
		t.Errorf("expected total 3, got %d", snap.Total)
	}
	if snap.CurrentFile != "song" {
		t.Errorf("expected current file %q, got %q", "song", snap.CurrentFile)
	}

	// A delivered snapshot is a value; later mutations must not show through.
	jm.UpdateJob(job.ID, func(j *Job) {
		j.Total = 5
	})
	if snap.Total != 3 {
		t.Errorf("snapshot total changed to %d after a later update", snap.Total)
	}

	jm.Unsubscribe(job.ID, ch)
}

// mustCreateJob creates a job over a fresh temp directory.
func mustCreateJob(t *testing.T, jm *JobManager, cfg config.Config) Job {
	t.Helper()
	job, err := jm.CreateJob(t.TempDir(), cfg)
	if err != nil {
		t.Fatalf("CreateJob() error: %v", err)
	}
	return job
}
