package export

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrBusy is returned by Acquire when the format already has an export running.
var ErrBusy = errors.New("Export already running")

// Recorder is told about every export that actually starts.
type Recorder interface {
	ExportStarted(req Request) error
	ExportFinished(req Request, runErr error) error
}

// Invoker runs ffmpeg for export requests with at most one export in flight
// per format.
type Invoker struct {
	ffmpegPath string
	runner     Runner
	recorder   Recorder
	logger     *zap.Logger

	mu       sync.Mutex
	inFlight map[Format]bool
}

// NewInvoker creates an Invoker. An empty ffmpegPath means "ffmpeg" from
// PATH; a nil runner means ExecRunner.
func NewInvoker(ffmpegPath string, runner Runner, logger *zap.Logger) *Invoker {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{
		ffmpegPath: ffmpegPath,
		runner:     runner,
		logger:     logger,
		inFlight:   make(map[Format]bool),
	}
}

// SetRecorder attaches an export history store.
func (inv *Invoker) SetRecorder(r Recorder) {
	inv.recorder = r
}

// Acquire claims the in-flight slot for f.
func (inv *Invoker) Acquire(f Format) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if inv.inFlight[f] {
		return ErrBusy
	}
	inv.inFlight[f] = true
	return nil
}

// Release frees the in-flight slot for f.
func (inv *Invoker) Release(f Format) {
	inv.mu.Lock()
	delete(inv.inFlight, f)
	inv.mu.Unlock()
}

// Busy reports whether an export of f is running.
func (inv *Invoker) Busy(f Format) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.inFlight[f]
}

// Run executes req and blocks until ffmpeg exits. The caller must hold the
// slot for req.Preset.Format (see Acquire); Run releases it on return,
// whatever the outcome.
func (inv *Invoker) Run(ctx context.Context, req Request) Result {
	defer inv.Release(req.Preset.Format)

	log := inv.logger.With(
		zap.String("job", req.JobID),
		zap.String("format", string(req.Preset.Format)),
		zap.String("input", req.Input),
		zap.String("output", req.Output),
		zap.Float64("start", req.Start),
		zap.Float64("duration", req.Duration),
	)

	if inv.recorder != nil {
		if err := inv.recorder.ExportStarted(req); err != nil {
			log.Warn("recording export start failed", zap.Error(err))
		}
	}

	began := time.Now()
	err := ensureDir(req.Output)
	if err == nil {
		args := BuildArgs(req)
		log.Debug("running encoder", zap.String("binary", inv.ffmpegPath), zap.Strings("args", args))
		err = inv.runner.Run(ctx, inv.ffmpegPath, args)
	}

	if err != nil {
		log.Error("export failed", zap.Duration("elapsed", time.Since(began)), zap.Error(err))
	} else {
		log.Info("export saved", zap.Duration("elapsed", time.Since(began)))
	}

	if inv.recorder != nil {
		if recErr := inv.recorder.ExportFinished(req, err); recErr != nil {
			log.Warn("recording export result failed", zap.Error(recErr))
		}
	}
	return Result{Request: req, Err: err}
}

// Export acquires the slot for req's format and runs it synchronously.
func (inv *Invoker) Export(ctx context.Context, req Request) (Result, error) {
	if err := inv.Acquire(req.Preset.Format); err != nil {
		return Result{}, err
	}
	return inv.Run(ctx, req), nil
}
