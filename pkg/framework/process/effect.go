package process

import (
	"sync/atomic"

	"github.com/justyntemme/pinroute/pkg/dsp"
	"github.com/justyntemme/pinroute/pkg/dsp/mix"
	"github.com/justyntemme/pinroute/pkg/framework/audio"
	"github.com/justyntemme/pinroute/pkg/framework/debug"
	"github.com/justyntemme/pinroute/pkg/framework/param"
	"github.com/justyntemme/pinroute/pkg/framework/pins"
	"github.com/justyntemme/pinroute/pkg/framework/port"
)

// Status is what a plugin function asks of the caller after a period.
type Status int

const (
	// Continue keeps the plugin running
	Continue Status = iota
	// ContinueIfNotQuiet keeps the plugin running until its output has
	// been quiet for a while
	ContinueIfNotQuiet
	// Sleep stops processing until the plugin is woken
	Sleep
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case ContinueIfNotQuiet:
		return "continue-if-not-quiet"
	case Sleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// Func processes one period. It reads ctx.In and fills ctx.Out.
type Func[T audio.Sample] func(ctx *Context[T]) Status

// Result describes one processed period.
type Result struct {
	// Processed is false when the period was bypassed and the host bus
	// left untouched.
	Processed bool
	Status    Status
	// MeanSquare is the summed squared amplitude of the routed host
	// channels per frame, set for ContinueIfNotQuiet.
	MeanSquare float64
	// Running reports whether the plugin wants further periods.
	Running bool
}

// Option configures an Effect or Instrument.
type Option func(*options)

type options struct {
	params     *param.Registry
	mix        *param.Parameter
	sampleRate float64
	gate       Gate
	logger     *debug.Logger
}

// WithParams makes a registry available to the plugin function
func WithParams(r *param.Registry) Option {
	return func(o *options) { o.params = r }
}

// WithMix sets the wet/dry parameter of an effect. Its normalized value is
// the wet amount. Without one effects run fully wet.
func WithMix(p *param.Parameter) Option {
	return func(o *options) { o.mix = p }
}

// WithSampleRate sets the rate reported to the plugin function
func WithSampleRate(rate float64) Option {
	return func(o *options) { o.sampleRate = rate }
}

// WithGate sets the quiet gate used for ContinueIfNotQuiet
func WithGate(threshold float64, hold int) Option {
	return func(o *options) { o.gate = Gate{Threshold: threshold, Hold: hold} }
}

// WithLogger sets the logger for state changes
func WithLogger(l *debug.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{sampleRate: 44100, logger: debug.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// runner is shared by effects and instruments.
type runner[T audio.Sample] struct {
	connector *pins.Connector
	buffers   port.Buffers[T]
	router    *pins.Router[T]
	fn        Func[T]
	logger    *debug.Logger

	ctx     Context[T]
	status  Status
	call    func()
	enabled atomic.Bool
}

func (r *runner[T]) setup(c *pins.Connector, b port.Buffers[T], fn Func[T], o options) {
	r.connector = c
	r.buffers = b
	r.fn = fn
	r.logger = o.logger
	r.ctx = Context[T]{SampleRate: o.sampleRate, params: o.params}
	r.call = func() { r.status = r.fn(&r.ctx) }
	r.enabled.Store(true)
}

// process runs one period through the router and reports whether the
// plugin function ran.
func (r *runner[T]) process(inOut audio.CoreBus) bool {
	if !r.enabled.Load() {
		return false
	}
	v := r.buffers.Views()
	if !v.Active() {
		return false
	}
	r.ctx.In, r.ctx.Out, r.ctx.Frames = v.In, v.Out, inOut.Frames
	return r.router.Process(inOut, v.In, v.Out, r.call)
}

// routedMeanSquare sums the squared routed host samples per frame.
func (r *runner[T]) routedMeanSquare(inOut audio.CoreBus) float64 {
	if inOut.Frames == 0 {
		return 0
	}
	pairs := r.connector.HostChannelsUpperBound() / 2
	var sum float64
	for pair := 0; pair < min(pairs, inOut.NumPairs()); pair++ {
		sum += dsp.MeanSquare(inOut.Pairs[pair][:inOut.Frames*2]) * 2
	}
	return sum
}

// Effect processes a host track in place through a plugin with inputs and
// outputs, blending the result with the original by its mix parameter.
type Effect[T audio.Sample] struct {
	runner[T]
	mix  *param.Parameter
	gate Gate
}

// NewEffect creates an effect for periods of up to maxFrames frames.
func NewEffect[T audio.Sample](c *pins.Connector, b port.Buffers[T], maxFrames int, fn Func[T], opts ...Option) *Effect[T] {
	o := buildOptions(opts)
	e := &Effect[T]{mix: o.mix, gate: o.gate}
	e.setup(c, b, fn, o)
	e.router = pins.NewEffectRouter[T](c, maxFrames, 1, 0)
	return e
}

// Connector returns the pin connector
func (e *Effect[T]) Connector() *pins.Connector { return e.connector }

// SetEnabled enables or bypasses the effect
func (e *Effect[T]) SetEnabled(enabled bool) {
	e.enabled.Store(enabled)
	e.logger.Debug("effect enabled changed", "enabled", enabled)
}

// Enabled reports whether the effect processes
func (e *Effect[T]) Enabled() bool { return e.enabled.Load() }

// Sleeping reports whether the quiet gate put the effect to sleep
func (e *Effect[T]) Sleeping() bool { return e.gate.Sleeping() }

// Process runs one period on inOut. Disabled or sleeping effects, buffers
// without channels and buffers that do not match the connector bypass the
// period. A sleeping effect wakes up once a routed input channel carries
// signal again.
//
// Process must be called from the audio thread only.
func (e *Effect[T]) Process(inOut audio.CoreBus) Result {
	if e.gate.Sleeping() {
		if e.routedMeanSquare(inOut) == 0 {
			return Result{Status: Sleep}
		}
		e.gate.Wake()
	}

	amount := float32(1)
	if e.mix != nil {
		amount = float32(e.mix.Value())
	}
	e.router.SetMix(mix.DryWetGains(amount))

	if !e.process(inOut) {
		return Result{Status: Sleep, Running: e.enabled.Load()}
	}

	res := Result{Processed: true, Status: e.status, Running: true}
	switch e.status {
	case ContinueIfNotQuiet:
		res.MeanSquare = e.routedMeanSquare(inOut)
		res.Running = e.gate.Check(res.MeanSquare)
	case Sleep:
		res.Running = false
	}
	return res
}

// Instrument renders into a host track through a plugin that usually has
// no inputs. Routed host channels are replaced by the plugin output.
type Instrument[T audio.Sample] struct {
	runner[T]
}

// NewInstrument creates an instrument
func NewInstrument[T audio.Sample](c *pins.Connector, b port.Buffers[T], fn Func[T], opts ...Option) *Instrument[T] {
	i := &Instrument[T]{}
	i.setup(c, b, fn, buildOptions(opts))
	i.router = pins.NewRouter[T](c)
	return i
}

// Connector returns the pin connector
func (i *Instrument[T]) Connector() *pins.Connector { return i.connector }

// SetEnabled enables or silences the instrument
func (i *Instrument[T]) SetEnabled(enabled bool) { i.enabled.Store(enabled) }

// Process renders one period into inOut.
func (i *Instrument[T]) Process(inOut audio.CoreBus) Result {
	if !i.process(inOut) {
		return Result{Status: Sleep, Running: i.enabled.Load()}
	}
	res := Result{Processed: true, Status: i.status, Running: i.status != Sleep}
	if i.status == ContinueIfNotQuiet {
		res.MeanSquare = i.routedMeanSquare(inOut)
	}
	return res
}
