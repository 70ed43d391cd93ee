package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Handler cancels the run context on SIGINT/SIGTERM so the batch stops
// between triplets and any in-flight ffmpeg process is killed.
type Handler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new shutdown handler.
func New() *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the context cancelled on shutdown.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Listen starts listening for shutdown signals. A second signal exits
// immediately instead of waiting for the current triplet to finish.
func (h *Handler) Listen() {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		h.cancel()
		<-sigChan
		os.Exit(1)
	}()
}

// Shutdown cancels the run context.
func (h *Handler) Shutdown() {
	h.cancel()
}
