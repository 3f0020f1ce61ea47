package main

import (
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"

	"github.com/justyntemme/pinroute/pkg/dsp"
	"github.com/justyntemme/pinroute/pkg/dsp/gain"
	"github.com/justyntemme/pinroute/pkg/framework/audio"
	"github.com/justyntemme/pinroute/pkg/framework/bus"
	"github.com/justyntemme/pinroute/pkg/framework/debug"
	"github.com/justyntemme/pinroute/pkg/framework/param"
	"github.com/justyntemme/pinroute/pkg/framework/pins"
	"github.com/justyntemme/pinroute/pkg/framework/port"
	"github.com/justyntemme/pinroute/pkg/framework/process"
)

const (
	gainParamID uint32 = iota + 1
	mixParamID
)

// RenderCmd routes a WAV file through a gain test plugin.
type RenderCmd struct {
	PortFlags `embed:""`

	Input   string  `arg:"" type:"existingfile" help:"WAV file to process."`
	Output  string  `arg:"" type:"path" help:"WAV file to write."`
	Gain    float64 `default:"0" help:"Test plugin gain in dB."`
	Mix     float64 `default:"100" help:"Wet amount in percent."`
	Frames  int     `default:"256" help:"Frames per processing period."`
	Bits    int     `default:"16" help:"Output bit depth (16, 24 or 32)."`
	Profile bool    `help:"Print per period processing times."`
}

// Stats summarizes a render.
type Stats struct {
	Frames    int
	Periods   int
	Bypassed  int
	PeakIn    float32
	PeakOut   float32
	Plugin    string
	Connector string
}

// Run implements the render command
func (r *RenderCmd) Run(g *Globals) error {
	if r.Frames <= 0 {
		return fmt.Errorf("frames per period must be positive, got %d", r.Frames)
	}
	switch r.Bits {
	case 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth %d", r.Bits)
	}

	in, err := readWAV(r.Input)
	if err != nil {
		return err
	}
	channels := in.Format.NumChannels
	if need := channels + channels%2; need > r.Hosts {
		r.Hosts = need
	}

	cfg, err := r.Config()
	if err != nil {
		return err
	}
	registry := param.NewRegistry()
	gainParam := param.GainParameter(gainParamID, "Gain", -60, 24, r.Gain)
	mixParam := param.MixParameter(mixParamID, "Mix", r.Mix)
	if err := registry.Add(gainParam, mixParam); err != nil {
		return err
	}
	c, err := r.Connector(cfg, registry, g.logger)
	if err != nil {
		return err
	}

	var prof *debug.Profiler
	if r.Profile {
		prof = debug.NewProfiler(1000)
	}
	job := renderJob{
		src:      in.Data,
		channels: channels,
		period:   r.Frames,
		rate:     float64(in.Format.SampleRate),
		logger:   g.logger,
		profiler: prof,
	}
	var out []float32
	var stats Stats
	if cfg.Kind == audio.F64 {
		out, stats, err = render[float64](cfg, c, registry, job)
	} else {
		out, stats, err = render[float32](cfg, c, registry, job)
	}
	if err != nil {
		return err
	}
	if err := writeWAV(r.Output, out, in.Format.SampleRate, channels, r.Bits); err != nil {
		return err
	}

	fmt.Fprintf(g.out, "%s %s\n", keyStyle.Render("Plugin:"), stats.Plugin)
	fmt.Fprintf(g.out, "%s %s\n", keyStyle.Render("Pins:"), stats.Connector)
	fmt.Fprintf(g.out, "%s %d frames in %d periods, %d bypassed\n", keyStyle.Render("Rendered:"), stats.Frames, stats.Periods, stats.Bypassed)
	fmt.Fprintf(g.out, "%s %.1f dB in, %.1f dB out\n", keyStyle.Render("Peak:"),
		gain.LinearToDb(float64(stats.PeakIn)), gain.LinearToDb(float64(stats.PeakOut)))

	analyzer := debug.NewAudioAnalyzer()
	result := debug.Analyze(analyzer, out)
	g.logger.LogBufferStats(r.Output, result, analyzer)
	if result.Clipping() {
		fmt.Fprintf(g.out, "%s %d samples clipped\n", keyStyle.Render("Warning:"), result.ClippedSamples)
	}
	if prof != nil {
		fmt.Fprint(g.out, prof.Report(debug.PeriodDuration(r.Frames, job.rate)))
	}
	return nil
}

// renderJob is the audio and environment of one render.
type renderJob struct {
	src      []float32
	channels int
	period   int
	rate     float64
	logger   *debug.Logger
	profiler *debug.Profiler
}

// render processes interleaved src period by period. Plugins without
// inputs run as instruments, the rest as effects.
func render[T audio.Sample](cfg bus.Config, c *pins.Connector, registry *param.Registry, job renderJob) ([]float32, Stats, error) {
	src, channels, period := job.src, job.channels, job.period
	buffers, err := port.FromConfig[T](cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	detach := port.Attach[T](c, buffers, period)
	defer detach()

	opts := []process.Option{
		process.WithParams(registry),
		process.WithMix(registry.Get(mixParamID)),
		process.WithSampleRate(job.rate),
		process.WithLogger(job.logger),
	}
	fn := testPlugin[T](registry.Get(gainParamID))
	var run func(audio.CoreBus) process.Result
	if cfg.Inputs == 0 {
		run = process.NewInstrument[T](c, buffers, fn, opts...).Process
	} else {
		run = process.NewEffect[T](c, buffers, period, fn, opts...).Process
	}

	total := len(src) / max(channels, 1)
	out := make([]float32, total*channels)
	host := audio.NewCoreBus(c.HostChannelCount()/2, period)
	stats := Stats{
		Frames:    total,
		Plugin:    cfg.String(),
		Connector: c.ChannelCountText(),
		PeakIn:    dsp.Peak(src),
	}

	for start := 0; start < total; start += period {
		n := min(period, total-start)
		host.Frames = n
		host.Clear()
		for f := 0; f < n; f++ {
			for ch := 0; ch < channels; ch++ {
				host.Set(ch, f, src[(start+f)*channels+ch])
			}
		}

		var res process.Result
		if job.profiler != nil {
			stop := job.profiler.Start("process")
			res = run(host)
			stop()
		} else {
			res = run(host)
		}
		stats.Periods++
		if !res.Processed {
			stats.Bypassed++
		}

		for f := 0; f < n; f++ {
			for ch := 0; ch < channels; ch++ {
				out[(start+f)*channels+ch] = host.At(ch, f)
			}
		}
	}
	stats.PeakOut = dsp.Peak(out)
	return out, stats, nil
}

// testPlugin applies the gain parameter. Extra outputs repeat the last
// input; without inputs it plays a 440 Hz sine.
func testPlugin[T audio.Sample](gainParam *param.Parameter) process.Func[T] {
	var phase float64
	return func(ctx *process.Context[T]) process.Status {
		g := T(gain.DbToLinear(gainParam.PlainValue()))
		ins := ctx.NumInputChannels()
		if ins == 0 {
			step := 2 * math.Pi * 440 / ctx.SampleRate
			start := phase
			ctx.Generate(func(_, f int) T {
				return T(math.Sin(start+float64(f)*step)) * g
			})
			phase = math.Mod(start+float64(ctx.Frames)*step, 2*math.Pi)
			return process.Continue
		}

		if !ctx.ProcessChannels(func(_ int, in, out []T) { gain.ApplyBufferTo(in, g, out) }) {
			ctx.ProcessSamples(func(_, _ int, x T) T { return x * g })
		}
		for ch := ins; ch < ctx.NumOutputChannels(); ch++ {
			for f := 0; f < ctx.Frames; f++ {
				ctx.Out.Set(ch, f, ctx.Out.At(ins-1, f))
			}
		}
		return process.ContinueIfNotQuiet
	}
}

func readWAV(path string) (*goaudio.Float32Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid wav buffer: %s", path)
	}
	if buf.Format.NumChannels > pins.DefaultMaxHostChannels {
		return nil, fmt.Errorf("%s has %d channels, at most %d are supported", path, buf.Format.NumChannels, pins.DefaultMaxHostChannels)
	}
	return buf, nil
}

func writeWAV(path string, data []float32, rate, channels, bits int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, rate, bits, channels, 1)
	buf := &goaudio.Float32Buffer{
		Format: &goaudio.Format{
			SampleRate:  rate,
			NumChannels: channels,
		},
		Data:           data,
		SourceBitDepth: bits,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finish %s: %w", path, err)
	}
	return file.Close()
}
