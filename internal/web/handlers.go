package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"sunoproc/internal/encoder"
	"sunoproc/internal/pipeline"
)

type ProcessRequest struct {
	Directory string `json:"directory"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	Directory   string    `json:"directory"`
	Status      JobStatus `json:"status"`
	CurrentFile string    `json:"current_file,omitempty"`
	Progress    int       `json:"progress"`
	Total       int       `json:"total"`
	Succeeded   int       `json:"succeeded"`
	Failed      int       `json:"failed"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   string    `json:"created_at"`
	StartedAt   *string   `json:"started_at,omitempty"`
	CompletedAt *string   `json:"completed_at,omitempty"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Directory == "" {
		http.Error(w, "Directory is required", http.StatusBadRequest)
		return
	}

	jobConfig := s.config
	jobConfig.Directory = req.Directory

	job, err := s.jobMgr.CreateJob(req.Directory, jobConfig)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Info("Created job %s for directory: %s", job.ID, req.Directory)

	go s.processJob(job)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobToResponse(job))
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs := s.jobMgr.ListJobs()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = jobToResponse(job)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

func (s *Server) handleJobAction(w http.ResponseWriter, r *http.Request) {
	// Extract job ID from path: /api/jobs/{id} or /api/jobs/{id}/cancel
	path := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	jobID := parts[0]

	// Handle GET /api/jobs/{id}
	if r.Method == http.MethodGet && len(parts) == 1 {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(jobToResponse(job))
		return
	}

	// Handle POST /api/jobs/{id}/cancel
	if r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "cancel" {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		if job.Cancel != nil {
			job.Cancel()
		}

		s.jobMgr.UpdateJob(jobID, func(j *Job) {
			j.Status = StatusCancelled
		})

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
		return
	}

	http.Error(w, "Invalid request", http.StatusBadRequest)
}

// processJob runs one batch in the background, pushing per-triplet progress
// into the job manager as the pipeline reports it.
func (s *Server) processJob(job Job) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Cancel = cancel
		j.Status = StatusRunning
	})

	s.logger.Info("Starting job %s", job.ID)

	hooks := pipeline.Hooks{
		OnMatched: func(total int) {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Total = total
			})
		},
		OnUnitStart: func(name string) {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.CurrentFile = name
			})
		},
		OnUnitDone: func(ok bool) {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.CurrentFile = ""
				j.Progress++
				if ok {
					j.Succeeded++
				} else {
					j.Failed++
				}
			})
		},
	}

	proc := pipeline.New(job.Config, s.logger, encoder.New(s.logger))
	stats, err := proc.Run(ctx, hooks)
	if err != nil {
		s.logger.Error("Job %s failed: %v", job.ID, err)
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			j.Status = StatusFailed
			j.Error = err.Error()
		})
		return
	}

	if ctx.Err() != nil {
		// The cancel handler already marked the job cancelled.
		s.logger.Warn("Job %s cancelled after %d/%d triplets", job.ID, stats.Succeeded+stats.Failed, stats.Total)
		return
	}

	// Per-triplet failures don't fail the job; they show in the counts.
	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusCompleted
	})

	s.logger.Info("Job %s completed: %d/%d triplets", job.ID, stats.Succeeded, stats.Total)
}

func jobToResponse(job Job) *JobResponse {
	resp := &JobResponse{
		ID:          job.ID,
		Directory:   job.Directory,
		Status:      job.Status,
		CurrentFile: job.CurrentFile,
		Progress:    job.Progress,
		Total:       job.Total,
		Succeeded:   job.Succeeded,
		Failed:      job.Failed,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if job.StartedAt != nil {
		started := job.StartedAt.Format("2006-01-02 15:04:05")
		resp.StartedAt = &started
	}

	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &completed
	}

	return resp
}
