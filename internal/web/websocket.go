package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for simplicity
	},
}

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// ProgressEvent is one WebSocket message: a point-in-time view of a batch,
// emitted on every triplet state change. The final message has type "done".
type ProgressEvent struct {
	Type      string    `json:"type"` // "progress" or "done"
	JobID     string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	File      string    `json:"file,omitempty"` // triplet currently being processed
	Progress  int       `json:"progress"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Error     string    `json:"error,omitempty"`
}

func eventFromJob(job Job) ProgressEvent {
	ev := ProgressEvent{
		Type:      "progress",
		JobID:     job.ID,
		Status:    job.Status,
		File:      job.CurrentFile,
		Progress:  job.Progress,
		Total:     job.Total,
		Succeeded: job.Succeeded,
		Failed:    job.Failed,
		Error:     job.Error,
	}
	if job.Status.Terminal() {
		ev.Type = "done"
		ev.File = ""
	}
	return ev
}

// handleWebSocket streams per-triplet progress events for one job until the
// job reaches a terminal status or the client goes away. The job must exist
// before the connection is upgraded.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		http.Error(w, "job_id query parameter is required", http.StatusBadRequest)
		return
	}
	if _, err := s.jobMgr.GetJob(jobID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates := s.jobMgr.Subscribe(jobID)
	defer s.jobMgr.Unsubscribe(jobID, updates)

	// Current state first, so a late subscriber sees where the batch stands.
	job, err := s.jobMgr.GetJob(jobID)
	if err != nil {
		return
	}
	first := eventFromJob(job)
	if err := writeEvent(conn, first); err != nil {
		return
	}
	if first.Type == "done" {
		return
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}

			ev := eventFromJob(snap)
			if err := writeEvent(conn, ev); err != nil {
				s.logger.Debug("WebSocket client for job %s gone: %v", jobID, err)
				return
			}

			if ev.Type == "done" {
				deadline := time.Now().Add(writeTimeout)
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(snap.Status))
				conn.WriteControl(websocket.CloseMessage, msg, deadline)
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev ProgressEvent) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(ev)
}
