package organizer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pigeonhole/internal/config"
	"pigeonhole/internal/logging"
	"pigeonhole/internal/mover"
	"pigeonhole/internal/plan"
	"pigeonhole/internal/report"
	"pigeonhole/internal/scanner"
)

// Phase names one stage of the run's progression.
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseScanning             Phase = "scanning"
	PhasePreviewing           Phase = "previewing"
	PhaseAwaitingConfirmation Phase = "awaiting-confirmation"
	PhaseCancelled            Phase = "cancelled"
	PhaseMoving               Phase = "moving"
	PhaseReported             Phase = "reported"
)

// Gate decides whether the previewed plan should be executed. Returning
// false cancels the run before any mutation.
type Gate func(p *plan.Plan) (bool, error)

// Options configures a run. Config, Logger, and the callbacks may be nil;
// a nil Gate declines, so non-interactive callers must supply one.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	Gate   Gate

	// DryRun previews and probes collisions but moves nothing.
	DryRun bool

	// Now supplies the clock, defaulting to time.Now.
	Now func() time.Time

	// OnScanProgress receives the running count of scanned entries.
	OnScanProgress func(count int)
	// OnPreview runs once the plan is built, before the gate.
	OnPreview func(p *plan.Plan)
	// OnMoveResult receives each move outcome as it lands.
	OnMoveResult func(index, total int, result mover.Result)
}

// Outcome is what a completed run reports back to the caller.
type Outcome struct {
	RunID   string
	Phase   Phase
	Plan    *plan.Plan
	Results []mover.Result
	Summary report.Summary

	// NoFiles is set when the scan found nothing to organize; the gate is
	// never consulted in that case.
	NoFiles bool
	// Cancelled is set when the gate declined; nothing was mutated.
	Cancelled bool
}

// Organizer owns one run's context: identity, clock, and collaborators.
type Organizer struct {
	opts   Options
	runID  string
	phase  Phase
	logger *slog.Logger
	now    func() time.Time
}

// New builds an Organizer for a single run and assigns its run ID.
func New(opts Options) *Organizer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	runID := uuid.NewString()
	logger := logging.NewComponentLogger(opts.Logger, "organizer").
		With(logging.String(logging.FieldRunID, runID))
	return &Organizer{
		opts:   opts,
		runID:  runID,
		phase:  PhaseIdle,
		logger: logger,
		now:    now,
	}
}

// RunID returns the identifier correlating this run's log lines and summary.
func (o *Organizer) RunID() string {
	return o.runID
}

// Phase returns the pipeline's current phase.
func (o *Organizer) Phase() Phase {
	return o.phase
}

// Run executes the pipeline against sourceDir. Startup failures (missing or
// unlistable directory) return an error before any mutation; everything
// after the gate is isolated per file and lands in the outcome's summary.
func (o *Organizer) Run(ctx context.Context, sourceDir string) (*Outcome, error) {
	start := o.now()
	outcome := &Outcome{RunID: o.runID}

	o.transition(PhaseScanning)
	scn := scanner.New(o.opts.Config, o.opts.Logger)
	scn.OnEntry = o.opts.OnScanProgress
	entries, err := scn.Scan(ctx, sourceDir)
	if err != nil {
		return nil, err
	}

	outcome.Plan = plan.Build(sourceDir, entries)
	if outcome.Plan.Empty() {
		outcome.NoFiles = true
		outcome.Summary = report.Summarize(o.runID, nil, o.now().Sub(start), o.opts.DryRun)
		o.transition(PhaseReported)
		outcome.Phase = o.phase
		o.logger.Info("nothing to organize", logging.String("source", sourceDir))
		return outcome, nil
	}

	o.transition(PhasePreviewing)
	if o.opts.OnPreview != nil {
		o.opts.OnPreview(outcome.Plan)
	}

	o.transition(PhaseAwaitingConfirmation)
	proceed, err := o.confirm(outcome.Plan)
	if err != nil {
		return nil, err
	}
	if !proceed {
		o.transition(PhaseCancelled)
		outcome.Phase = o.phase
		outcome.Cancelled = true
		o.logger.Info("run cancelled at confirmation",
			logging.String("source", sourceDir),
			logging.Int("files", len(outcome.Plan.Items)),
		)
		return outcome, nil
	}

	o.transition(PhaseMoving)
	mv := mover.New(o.opts.Config, o.opts.Logger)
	mv.DryRun = o.opts.DryRun
	mv.OnResult = o.opts.OnMoveResult
	outcome.Results, err = mv.Move(ctx, outcome.Plan)
	if err != nil {
		return nil, err
	}

	outcome.Summary = report.Summarize(o.runID, outcome.Results, o.now().Sub(start), o.opts.DryRun)
	o.transition(PhaseReported)
	outcome.Phase = o.phase
	o.logger.Info("run complete",
		logging.String("source", sourceDir),
		logging.Int("moved", outcome.Summary.Moved),
		logging.Int("failed", outcome.Summary.Failed),
		logging.Duration("elapsed", outcome.Summary.Elapsed),
		logging.Bool("dry_run", o.opts.DryRun),
	)
	return outcome, nil
}

func (o *Organizer) confirm(p *plan.Plan) (bool, error) {
	if o.opts.Gate == nil {
		return false, nil
	}
	return o.opts.Gate(p)
}

func (o *Organizer) transition(next Phase) {
	o.logger.Debug("phase transition",
		logging.String(logging.FieldPhase, string(next)),
		logging.String("from", string(o.phase)),
	)
	o.phase = next
}
