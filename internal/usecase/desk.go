package usecase

import (
	"context"
	"fmt"
	"time"

	"Commander/internal/desk"
	"Commander/internal/domain/models"
	drepo "Commander/internal/domain/repository"
	domsvc "Commander/internal/domain/service"
	"Commander/pkg/logger"
)

// DeskUseCase runs the 0-DTE desk evaluation. The scanner, simulator and
// command-center surfaces all go through Evaluate here; they only differ
// in how they present the result.
type DeskUseCase struct {
	dealer      domsvc.DealerFlowProvider
	macro       domsvc.MacroProvider
	clock       domsvc.Clock
	metrics     drepo.Metrics
	log         *logger.Logger
	indexTicker string
	location    *time.Location
}

func NewDeskUseCase(
	dealer domsvc.DealerFlowProvider,
	macro domsvc.MacroProvider,
	clock domsvc.Clock,
	metrics drepo.Metrics,
	log *logger.Logger,
) *DeskUseCase {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("ET", -5*3600)
	}
	return &DeskUseCase{
		dealer:      dealer,
		macro:       macro,
		clock:       clock,
		metrics:     metrics,
		log:         log,
		indexTicker: "SPX",
		location:    loc,
	}
}

// Analyze evaluates a caller-supplied dealer snapshot.
func (uc *DeskUseCase) Analyze(ctx context.Context, snap models.DealerSnapshot, useMacro bool) (models.DeskResult, error) {
	var macro *models.MacroContext
	if useMacro {
		m, err := uc.macro.Context(ctx)
		if err != nil {
			uc.log.Warn("macro unavailable, technical-only evaluation", logger.Error(err))
		} else {
			macro = &m
		}
	}

	result := desk.Evaluate(snap, macro)
	uc.metrics.RecordRegime(string(result.Regime))
	if result.MacroOverride {
		uc.metrics.RecordMacroOverride()
	}
	return result, nil
}

// AnalyzeTicker fetches dealer positioning upstream and evaluates it.
func (uc *DeskUseCase) AnalyzeTicker(ctx context.Context, ticker string, useMacro bool) (models.DeskResult, error) {
	snap, err := uc.dealer.Snapshot(ctx, ticker)
	if err != nil {
		return models.DeskResult{}, fmt.Errorf("dealer snapshot: %w", err)
	}
	return uc.Analyze(ctx, snap, useMacro)
}

// WindowReport is the current session window plus the kill switch state.
type WindowReport struct {
	Window     desk.TradingWindow
	MustExit   bool
	KillSwitch desk.KillSwitchResult
}

// Window grades the current time of day and evaluates the kill switch
// from the latest vol readings. Dealer-flow gaps degrade to a
// window-only report.
func (uc *DeskUseCase) Window(ctx context.Context) (WindowReport, error) {
	now := uc.clock.Now()
	window := desk.WindowAt(now, uc.location)

	input := desk.KillSwitchInput{Window: window.Quality}

	if macro, err := uc.macro.Context(ctx); err == nil {
		input.VIXRegimeExtreme = macro.VIXRegime == models.VIXExtreme
	}
	if snap, err := uc.dealer.Snapshot(ctx, uc.indexTicker); err == nil {
		input.VIX1DChangePct = snap.VIXChangePct
		if snap.VIX1D != nil && snap.VIX > 0 {
			input.Backwardation = models.TermStructureFor(snap.VIX, *snap.VIX1D) == models.TermBackwardation
		}
	} else {
		uc.log.Debug("index dealer flow unavailable for kill switch", logger.Error(err))
	}

	return WindowReport{
		Window:     window,
		MustExit:   desk.MustExit(now, uc.location),
		KillSwitch: desk.CheckKillSwitch(input),
	}, nil
}
