package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vinylshift/core/audio"
	"vinylshift/core/pitch"
	"vinylshift/core/transcode"
	"vinylshift/logger"
)

// State labels the stage a run has reached. Runs move strictly forward;
// DecodeFailed and WriteFailed are terminal.
type State string

const (
	StateLoaded              State = "loaded"
	StateRatioComputed       State = "ratio_computed"
	StateResampled           State = "resampled"
	StatePlannedOutput       State = "planned_output"
	StateWrittenDirect       State = "written_direct"
	StateWrittenIntermediate State = "written_intermediate"
	StateTranscoded          State = "transcoded"
	StateTranscodeFallback   State = "transcode_fallback"
	StateDone                State = "done"
	StateDecodeFailed        State = "decode_failed"
	StateWriteFailed         State = "write_failed"
)

// Shifter resamples a buffer according to a pitch adjustment.
type Shifter interface {
	Process(ctx context.Context, buf *audio.Buffer, adj pitch.Adjustment) (*audio.Buffer, error)
}

// Prober reports best-effort format details for an input file.
type Prober interface {
	Probe(ctx context.Context, path string) audio.FormatInfo
}

// Transcoder runs the lossy delivery encode.
type Transcoder interface {
	Run(ctx context.Context, job transcode.Job, progress chan<- float64) error
}

// Result is what a successful run delivers.
type Result struct {
	State           State
	DeliverablePath string
	NoChange        bool   // zero adjustment, input left untouched
	Warning         string // set when the transcode fell back to the intermediate
}

// Pipeline turns one input file into one pitch-shifted deliverable.
type Pipeline struct {
	decoder    audio.Decoder
	prober     Prober
	encoder    audio.Encoder
	shifter    Shifter
	transcoder Transcoder
}

// New wires a pipeline around the given ffmpeg binary.
func New(ffmpegPath string) *Pipeline {
	prober := audio.NewFormatProber(ffmpegPath)
	return &Pipeline{
		decoder:    audio.NewFFmpegDecoder(ffmpegPath, prober),
		prober:     prober,
		encoder:    audio.NewFileEncoder(ffmpegPath),
		shifter:    pitch.NewChannelProcessor(),
		transcoder: transcode.NewExecutor(ffmpegPath),
	}
}

// Run processes inputPath at the given adjustment. Progress percentages for
// a lossy transcode are delivered on progress when non-nil. A failed or
// interrupted transcode does not fail the run: the lossless intermediate
// becomes the deliverable and Result.Warning says why.
func (p *Pipeline) Run(ctx context.Context, inputPath string, semitones float64, progress chan<- float64) (*Result, error) {
	adj, err := p.validate(inputPath, semitones)
	if err != nil {
		return nil, err
	}

	if adj.IsZero() {
		logger.Info("no adjustment requested, input left untouched",
			logger.String("file", inputPath))
		return &Result{State: StateDone, DeliverablePath: inputPath, NoChange: true}, nil
	}

	buf, err := p.decoder.Decode(ctx, inputPath)
	if err != nil {
		logger.Error("decode failed",
			logger.String("state", string(StateDecodeFailed)),
			logger.String("file", inputPath),
			logger.ErrorField(err))
		return nil, &DecodeError{Path: inputPath, Err: err}
	}
	logger.Debug("pipeline state",
		logger.String("state", string(StateLoaded)),
		logger.Int("sampleRate", buf.SampleRate),
		logger.Int("channels", buf.NumChannels()),
		logger.Int("frames", buf.NumFrames()))

	targetRate := adj.TargetRate(buf.SampleRate)
	logger.Info("pitch shift planned",
		logger.String("semitones", adj.String()),
		logger.Float64("ratio", adj.Ratio()),
		logger.Int("sourceRate", buf.SampleRate),
		logger.Int("targetRate", targetRate))
	logger.Debug("pipeline state", logger.String("state", string(StateRatioComputed)))

	shifted, err := p.shifter.Process(ctx, buf, adj)
	if err != nil {
		return nil, fmt.Errorf("pitch shift failed for %s: %w", inputPath, err)
	}
	logger.Debug("pipeline state",
		logger.String("state", string(StateResampled)),
		logger.Int("frames", shifted.NumFrames()))

	info := p.prober.Probe(ctx, inputPath)
	spec := audio.PlanOutput(inputPath, info, adj.Semitones())
	logger.Info("output planned",
		logger.String("target", spec.TargetPath),
		logger.String("container", string(spec.Container)),
		logger.String("subtype", string(spec.Subtype)),
		logger.Bool("lossyTranscode", spec.RequiresLossyTranscode))
	logger.Debug("pipeline state", logger.String("state", string(StatePlannedOutput)))

	if !spec.RequiresLossyTranscode {
		if err := p.encoder.Encode(ctx, shifted, spec.TargetPath, spec.Container, spec.Subtype); err != nil {
			logger.Error("output write failed",
				logger.String("state", string(StateWriteFailed)),
				logger.String("file", spec.TargetPath),
				logger.ErrorField(err))
			return nil, &WriteError{Path: spec.TargetPath, Err: err}
		}
		logger.Debug("pipeline state", logger.String("state", string(StateWrittenDirect)))
		logger.Info("pitch shift complete", logger.String("output", spec.TargetPath))
		return &Result{State: StateDone, DeliverablePath: spec.TargetPath}, nil
	}

	if err := p.encoder.Encode(ctx, shifted, spec.IntermediatePath, audio.ContainerWAV, spec.Subtype); err != nil {
		logger.Error("intermediate write failed",
			logger.String("state", string(StateWriteFailed)),
			logger.String("file", spec.IntermediatePath),
			logger.ErrorField(err))
		return nil, &WriteError{Path: spec.IntermediatePath, Err: err}
	}
	logger.Debug("pipeline state",
		logger.String("state", string(StateWrittenIntermediate)),
		logger.String("file", spec.IntermediatePath))

	job := transcode.NewJob(spec.IntermediatePath, spec.TargetPath, shifted.Duration())
	if err := p.transcoder.Run(ctx, job, progress); err != nil {
		terr := &TranscodeError{Source: spec.IntermediatePath, Destination: spec.TargetPath, Err: err}
		logger.Warn("transcode failed, delivering lossless intermediate",
			logger.String("state", string(StateTranscodeFallback)),
			logger.String("deliverable", spec.IntermediatePath),
			logger.ErrorField(terr))
		return &Result{
			State:           StateDone,
			DeliverablePath: spec.IntermediatePath,
			Warning:         terr.Error(),
		}, nil
	}
	logger.Debug("pipeline state", logger.String("state", string(StateTranscoded)))

	if err := os.Remove(spec.IntermediatePath); err != nil {
		logger.Warn("could not remove intermediate file",
			logger.String("file", spec.IntermediatePath),
			logger.ErrorField(err))
	}
	logger.Info("pitch shift complete", logger.String("output", spec.TargetPath))
	return &Result{State: StateDone, DeliverablePath: spec.TargetPath}, nil
}

// validate applies the pre-processing checks: the file must exist, carry an
// allow-listed extension, and the adjustment must be inside ±12 semitones.
func (p *Pipeline) validate(inputPath string, semitones float64) (pitch.Adjustment, error) {
	fi, err := os.Stat(inputPath)
	if err != nil {
		return pitch.Adjustment{}, &ValidationError{Path: inputPath, Reason: "file not found"}
	}
	if fi.IsDir() {
		return pitch.Adjustment{}, &ValidationError{Path: inputPath, Reason: "is a directory"}
	}
	if !audio.IsSupportedFile(inputPath) {
		return pitch.Adjustment{}, &ValidationError{
			Path:   inputPath,
			Reason: fmt.Sprintf("unsupported file type %q", filepath.Ext(inputPath)),
		}
	}
	adj, err := pitch.NewAdjustment(semitones)
	if err != nil {
		return pitch.Adjustment{}, &ValidationError{Path: inputPath, Reason: err.Error()}
	}
	return adj, nil
}
