package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/railgen/internal/engine"
	"github.com/piwi3910/railgen/internal/importer"
	"github.com/piwi3910/railgen/internal/model"
	"github.com/piwi3910/railgen/internal/project"
	"github.com/piwi3910/railgen/internal/shapes"
)

// generateOpts holds the command-line flags for the generate command.
// Generation parameter fields are applied over the configured defaults only
// when their flag was set explicitly, so a preset or app config value is
// never clobbered by a flag default.
type generateOpts struct {
	// Frame source: a file wins over the shape flags.
	framePath   string
	shapeType   string
	width       float64 // rectangular
	height      float64
	postLength  float64 // parallelogram and staircase
	slopeWidth  float64
	slopeHeight float64
	stairWidth  float64
	stairHeight float64
	numSteps    int
	frameWeight float64 // boundary rod weight, kg/m

	preset string // preset file path or stored preset name

	// Generation parameter overrides.
	rods            int
	layers          int
	minLength       float64
	maxLength       float64
	maxAngle        float64
	anchorVertical  float64
	anchorOther     float64
	directionMin    float64
	directionMax    float64
	randomDeviation float64
	maxIterations   int
	maxDuration     float64
	attempts        int
	evalDuration    float64
	minFitness      float64
	rodWeight       float64
	evalType        string
	maxHoleArea     float64
	minHoleArea     float64

	seed int64
	name string
	out  string

	targets exportTargets
}

// newGenerateCmd creates the generate command. Defaults in the opts literal
// mirror DefaultGenerationParams so --help shows the effective values.
func newGenerateCmd() *cobra.Command {
	defaults := model.DefaultGenerationParams()
	opts := &generateOpts{
		shapeType:   shapes.TypeRectangular,
		width:       200,
		height:      100,
		postLength:  100,
		slopeWidth:  300,
		slopeHeight: 150,
		stairWidth:  280,
		stairHeight: 280,
		numSteps:    10,
		frameWeight: 0.5,

		rods:            defaults.NumRods,
		layers:          defaults.NumLayers,
		minLength:       defaults.MinRodLengthCm,
		maxLength:       defaults.MaxRodLengthCm,
		maxAngle:        defaults.MaxAngleDeviationDeg,
		anchorVertical:  defaults.MinAnchorDistanceVerticalCm,
		anchorOther:     defaults.MinAnchorDistanceOtherCm,
		directionMin:    defaults.MainDirectionRangeMinDeg,
		directionMax:    defaults.MainDirectionRangeMaxDeg,
		randomDeviation: defaults.RandomAngleDeviationDeg,
		maxIterations:   defaults.MaxIterations,
		maxDuration:     defaults.MaxDurationSec,
		attempts:        defaults.MaxEvaluationAttempts,
		evalDuration:    defaults.MaxEvaluationDurationSec,
		minFitness:      defaults.MinAcceptableFitness,
		rodWeight:       defaults.WeightPerMeter,
		evalType:        defaults.Evaluator.Type,
		maxHoleArea:     defaults.Evaluator.MaxHoleAreaCm2,
		minHoleArea:     defaults.Evaluator.MinHoleAreaCm2,

		out: "railing.json",
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a rod infill for a railing frame",
		Long: `Generate a rod infill for a railing frame.

The frame comes either from --frame (a DXF drawing or a CSV/Excel corner
table) or from the shape flags. The generated arrangement is saved as a
project file and can be exported in the same run.

Examples:
  railgen generate --shape rectangular --width 250 --height 100
  railgen generate --frame balcony.dxf --rods 40 --seed 42
  railgen generate --preset terrace.toml --dxf railing.dxf --bom cuts.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.framePath, "frame", "", "frame file (.dxf, .csv or .xlsx) instead of shape flags")
	flags.StringVar(&opts.shapeType, "shape", opts.shapeType, "frame shape type (see 'railgen shapes')")
	flags.Float64Var(&opts.width, "width", opts.width, "rectangular frame width in cm")
	flags.Float64Var(&opts.height, "height", opts.height, "rectangular frame height in cm")
	flags.Float64Var(&opts.postLength, "post-length", opts.postLength, "post length in cm (parallelogram, staircase)")
	flags.Float64Var(&opts.slopeWidth, "slope-width", opts.slopeWidth, "horizontal slope run in cm (parallelogram)")
	flags.Float64Var(&opts.slopeHeight, "slope-height", opts.slopeHeight, "vertical slope rise in cm (parallelogram)")
	flags.Float64Var(&opts.stairWidth, "stair-width", opts.stairWidth, "total stair run in cm (staircase)")
	flags.Float64Var(&opts.stairHeight, "stair-height", opts.stairHeight, "total stair rise in cm (staircase)")
	flags.IntVar(&opts.numSteps, "steps", opts.numSteps, "number of steps (staircase)")
	flags.Float64Var(&opts.frameWeight, "frame-weight", opts.frameWeight, "boundary rod weight in kg/m")

	flags.StringVar(&opts.preset, "preset", "", "preset TOML file or stored preset name")

	flags.IntVar(&opts.rods, "rods", opts.rods, "number of infill rods to place")
	flags.IntVar(&opts.layers, "layers", opts.layers, "number of infill layers (1-5)")
	flags.Float64Var(&opts.minLength, "min-length", opts.minLength, "minimum rod length in cm")
	flags.Float64Var(&opts.maxLength, "max-length", opts.maxLength, "maximum rod length in cm")
	flags.Float64Var(&opts.maxAngle, "max-angle", opts.maxAngle, "maximum rod deviation from vertical in degrees")
	flags.Float64Var(&opts.anchorVertical, "anchor-vertical", opts.anchorVertical, "anchor spacing on near-vertical boundary rods in cm")
	flags.Float64Var(&opts.anchorOther, "anchor-other", opts.anchorOther, "anchor spacing on other boundary rods in cm")
	flags.Float64Var(&opts.directionMin, "direction-min", opts.directionMin, "lower bound of the layer main direction in degrees")
	flags.Float64Var(&opts.directionMax, "direction-max", opts.directionMax, "upper bound of the layer main direction in degrees")
	flags.Float64Var(&opts.randomDeviation, "random-deviation", opts.randomDeviation, "random angle deviation around the main direction in degrees")
	flags.IntVar(&opts.maxIterations, "max-iterations", opts.maxIterations, "placement iteration budget per arrangement")
	flags.Float64Var(&opts.maxDuration, "max-duration", opts.maxDuration, "placement time budget per arrangement in seconds")
	flags.IntVar(&opts.attempts, "attempts", opts.attempts, "maximum arrangements to evaluate")
	flags.Float64Var(&opts.evalDuration, "eval-duration", opts.evalDuration, "total evaluation time budget in seconds")
	flags.Float64Var(&opts.minFitness, "min-fitness", opts.minFitness, "fitness that stops the search early (0-1)")
	flags.Float64Var(&opts.rodWeight, "rod-weight", opts.rodWeight, "infill rod weight in kg/m")
	flags.StringVar(&opts.evalType, "evaluator", opts.evalType, `evaluator type ("passthrough" or "quality")`)
	flags.Float64Var(&opts.maxHoleArea, "max-hole-area", opts.maxHoleArea, "largest acceptable hole in cm² (quality evaluator)")
	flags.Float64Var(&opts.minHoleArea, "min-hole-area", opts.minHoleArea, "smallest acceptable hole in cm² (quality evaluator)")

	flags.Int64Var(&opts.seed, "seed", 0, "random seed (0 derives one from the clock)")
	flags.StringVar(&opts.name, "name", "", "project name (defaults to the output file name)")
	flags.StringVarP(&opts.out, "out", "o", opts.out, "project output file")

	addExportFlags(cmd, &opts.targets)

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	flags := cmd.Flags()

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("Could not read app config, using defaults", "err", err)
		config = model.DefaultAppConfig()
	}

	params := config.DefaultParams
	var shapeBase shapes.Params

	if opts.preset != "" {
		preset, err := resolvePreset(opts.preset)
		if err != nil {
			return err
		}
		logger.Info("Applying preset", "name", preset.Name)
		params = preset.Generation
		shapeBase = preset.Shape
	}

	applyParamFlags(flags, &params, opts)

	frame, err := resolveFrame(ctx, flags, config, shapeBase, opts)
	if err != nil {
		return err
	}
	logger.Info("Frame ready",
		"segments", len(frame.Rods),
		"area", fmt.Sprintf("%.0f cm²", frame.Area()))

	seed := resolveSeed(flags.Changed("seed"), opts.seed, config.DefaultSeed)

	gen, err := engine.New(params, seed)
	if err != nil {
		return err
	}

	logger.Info("Starting generation",
		"rods", params.NumRods,
		"layers", params.NumLayers,
		"evaluator", params.Evaluator.Type,
		"seed", seed)

	sw := newStopwatch(logger)
	infill, history, err := runEngine(ctx, logger, gen, frame)
	if err != nil {
		return err
	}
	stats := gen.Statistics()
	sw.done("Generation finished",
		"rods", len(infill.Rods),
		"fitness", fmt.Sprintf("%.3f", infill.Fitness()),
		"attempts", stats.IterationsUsed)

	if !infill.IsComplete {
		logger.Warn("Arrangement incomplete",
			"placed", len(infill.Rods), "requested", params.NumRods)
	}
	if infill.Fitness() < params.MinAcceptableFitness {
		logger.Warn("Best fitness below the acceptance threshold",
			"fitness", fmt.Sprintf("%.3f", infill.Fitness()),
			"threshold", fmt.Sprintf("%.3f", params.MinAcceptableFitness))
	}
	logger.Debug("Placement counters",
		"success", fmt.Sprintf("%.0f%%", stats.SuccessRate()*100),
		"too_short", stats.TooShort,
		"too_long", stats.TooLong,
		"outside", stats.OutsideBoundary,
		"angle", stats.AngleTooLarge,
		"crossing", stats.CrossesSameLayer,
		"no_anchors", stats.NoAnchorsLeft)
	if stats.EvaluatorRejectionsTotal > 0 {
		logger.Debug("Evaluator rejections",
			"total", stats.EvaluatorRejectionsTotal,
			"incomplete", stats.EvaluatorRejectionsIncomplete,
			"hole_too_large", stats.EvaluatorRejectionsHoleTooLarge,
			"hole_too_small", stats.EvaluatorRejectionsHoleTooSmall)
	}

	estimate := model.CalculatePurchaseEstimate(infill.Rods, defaultStockLengthCm, defaultCutLossCm, defaultWastePercent, 0)
	logger.Info("Material estimate",
		"total_length", fmt.Sprintf("%.0f cm", estimate.TotalRodLengthCm),
		"weight", fmt.Sprintf("%.1f kg", estimate.TotalWeightKg),
		"stock_bars", estimate.BarsWithWaste)

	name := opts.name
	if name == "" {
		base := filepath.Base(opts.out)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	proj := project.New(name, frame, params)
	proj.Seed = seed
	proj.SetResult(infill, stats)
	if err := project.Save(opts.out, proj); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	logger.Info("Project saved", "path", opts.out)

	if abs, err := filepath.Abs(opts.out); err == nil {
		config.AddRecentProject(abs)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
			logger.Debug("Could not update recent projects", "err", err)
		}
	}

	return runExports(ctx, opts.targets, frame, infill, params, history)
}

// Stock purchasing assumptions for the material estimate logged after a run.
const (
	defaultStockLengthCm = 600
	defaultCutLossCm     = 0.5
	defaultWastePercent  = 15
)

// runEngine runs the generator on its own goroutine and drains the progress
// channel, logging fitness improvements. Context cancellation flips the
// engine's cancel flag; the engine then returns its best arrangement so far.
func runEngine(ctx context.Context, logger *log.Logger, gen *engine.Generator, frame *model.Frame) (model.Infill, []engine.ProgressUpdate, error) {
	type runResult struct {
		infill model.Infill
		err    error
	}

	var flag engine.CancelFlag
	progressCh := make(chan engine.ProgressUpdate, 64)
	resultCh := make(chan runResult, 1)

	go func() {
		infill, err := gen.Run(frame, &flag, progressCh)
		close(progressCh)
		resultCh <- runResult{infill: infill, err: err}
	}()

	var history []engine.ProgressUpdate
	bestFitness := -1.0
	done := ctx.Done()
	for progressCh != nil {
		select {
		case <-done:
			logger.Warn("Cancellation requested, keeping the best arrangement so far")
			flag.Cancel()
			done = nil
		case u, ok := <-progressCh:
			if !ok {
				progressCh = nil
				continue
			}
			history = append(history, u)
			if u.BestFitness > bestFitness {
				bestFitness = u.BestFitness
				logger.Info("Improved arrangement",
					"attempt", u.Iteration,
					"fitness", fmt.Sprintf("%.3f", u.BestFitness),
					"elapsed", fmt.Sprintf("%.1fs", u.ElapsedSec))
			} else {
				logger.Debug("Attempt finished",
					"attempt", u.Iteration,
					"best", fmt.Sprintf("%.3f", u.BestFitness))
			}
		}
	}

	res := <-resultCh
	return res.infill, history, res.err
}

// applyParamFlags overrides params with every generation flag the user set
// explicitly. Unset flags leave the baseline (app config or preset) alone.
func applyParamFlags(flags *pflag.FlagSet, params *model.GenerationParams, opts *generateOpts) {
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("rods", func() { params.NumRods = opts.rods })
	set("layers", func() { params.NumLayers = opts.layers })
	set("min-length", func() { params.MinRodLengthCm = opts.minLength })
	set("max-length", func() { params.MaxRodLengthCm = opts.maxLength })
	set("max-angle", func() { params.MaxAngleDeviationDeg = opts.maxAngle })
	set("anchor-vertical", func() { params.MinAnchorDistanceVerticalCm = opts.anchorVertical })
	set("anchor-other", func() { params.MinAnchorDistanceOtherCm = opts.anchorOther })
	set("direction-min", func() { params.MainDirectionRangeMinDeg = opts.directionMin })
	set("direction-max", func() { params.MainDirectionRangeMaxDeg = opts.directionMax })
	set("random-deviation", func() { params.RandomAngleDeviationDeg = opts.randomDeviation })
	set("max-iterations", func() { params.MaxIterations = opts.maxIterations })
	set("max-duration", func() { params.MaxDurationSec = opts.maxDuration })
	set("attempts", func() { params.MaxEvaluationAttempts = opts.attempts })
	set("eval-duration", func() { params.MaxEvaluationDurationSec = opts.evalDuration })
	set("min-fitness", func() { params.MinAcceptableFitness = opts.minFitness })
	set("rod-weight", func() { params.WeightPerMeter = opts.rodWeight })
	set("evaluator", func() { params.Evaluator.Type = opts.evalType })
	set("max-hole-area", func() { params.Evaluator.MaxHoleAreaCm2 = opts.maxHoleArea })
	set("min-hole-area", func() { params.Evaluator.MinHoleAreaCm2 = opts.minHoleArea })
}

// resolveFrame produces the frame to fill: from a file when --frame is set,
// otherwise from the shape parameters.
func resolveFrame(ctx context.Context, flags *pflag.FlagSet, config model.AppConfig, shapeBase shapes.Params, opts *generateOpts) (*model.Frame, error) {
	if opts.framePath != "" {
		frameWeight := opts.frameWeight
		if !flags.Changed("frame-weight") && shapeBase.FrameWeightPerMeter > 0 {
			frameWeight = shapeBase.FrameWeightPerMeter
		}
		return importFrame(ctx, opts.framePath, frameWeight)
	}
	shapeParams, err := resolveShapeParams(flags, config, shapeBase, opts)
	if err != nil {
		return nil, err
	}
	return shapes.Build(shapeParams)
}

// resolveShapeParams assembles the shape parameters: the preset shape or the
// stock defaults for the selected type, overridden by explicitly set flags.
// An explicit --shape different from the preset's type discards the preset's
// dimensions, since they belong to another geometry.
func resolveShapeParams(flags *pflag.FlagSet, config model.AppConfig, base shapes.Params, opts *generateOpts) (shapes.Params, error) {
	shapeType := opts.shapeType
	if !flags.Changed("shape") {
		if base.Type != "" {
			shapeType = base.Type
		} else if config.DefaultShapeType != "" {
			shapeType = config.DefaultShapeType
		}
	}
	if base.Type != shapeType {
		var err error
		base, err = shapes.DefaultParams(shapeType)
		if err != nil {
			return shapes.Params{}, err
		}
	}

	p := base
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("width", func() { p.WidthCm = opts.width })
	set("height", func() { p.HeightCm = opts.height })
	set("post-length", func() { p.PostLengthCm = opts.postLength })
	set("slope-width", func() { p.SlopeWidthCm = opts.slopeWidth })
	set("slope-height", func() { p.SlopeHeightCm = opts.slopeHeight })
	set("stair-width", func() { p.StairWidthCm = opts.stairWidth })
	set("stair-height", func() { p.StairHeightCm = opts.stairHeight })
	set("steps", func() { p.NumSteps = opts.numSteps })
	set("frame-weight", func() { p.FrameWeightPerMeter = opts.frameWeight })
	return p, nil
}

// importFrame reads a frame from a DXF drawing or a CSV/Excel corner table,
// dispatching on the file extension. Import warnings are logged; import
// errors are joined into the returned error.
func importFrame(ctx context.Context, path string, frameWeight float64) (*model.Frame, error) {
	logger := loggerFromContext(ctx)

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf":
		result = importer.ImportFrameDXF(path, frameWeight)
	case ".csv", ".txt":
		result = importer.ImportFrameCSV(path, frameWeight)
	case ".xlsx", ".xlsm":
		result = importer.ImportFrameXLSX(path, frameWeight)
	default:
		return nil, fmt.Errorf("unsupported frame file %q (want .dxf, .csv or .xlsx)", path)
	}

	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	if result.Frame == nil {
		return nil, fmt.Errorf("import %s: %s", filepath.Base(path), strings.Join(result.Errors, "; "))
	}
	return result.Frame, nil
}

// resolvePreset loads a preset from a TOML file path, or by name from the
// preset store under the config directory when no such file exists.
func resolvePreset(ref string) (project.Preset, error) {
	if _, err := os.Stat(ref); err == nil {
		return importer.ReadPresetFile(ref)
	}
	store, err := project.LoadDefaultPresets()
	if err != nil {
		return project.Preset{}, fmt.Errorf("load presets: %w", err)
	}
	if p := store.FindByName(ref); p != nil {
		return *p, nil
	}
	return project.Preset{}, fmt.Errorf("preset %q is neither a file nor a stored preset", ref)
}

// resolveSeed picks the generation seed: an explicit --seed wins over the
// configured default, and 0 falls back to the clock so repeated runs differ.
func resolveSeed(explicit bool, flagSeed, configSeed int64) int64 {
	seed := configSeed
	if explicit {
		seed = flagSeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed
}
