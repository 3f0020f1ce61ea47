package pins

import (
	"math"
	"sync"
	"testing"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
)

const testFrames = 256

// accessor hides the concrete buffer type so the router takes its generic
// channel accessor path.
type accessor[T audio.Sample] struct {
	audio.Buffer[T]
}

type layout[T audio.Sample] struct {
	name string
	make func(channels, frames int) audio.Buffer[T]
}

func newSplit[T audio.Sample](channels, frames int) *audio.SplitBuffer[T] {
	v := audio.SplitView(make([]T, channels*frames), make([][]T, channels), channels, frames)
	return &v
}

func newInterleaved[T audio.Sample](channels, frames int) *audio.InterleavedBuffer[T] {
	return audio.NewInterleavedBuffer(make([]T, channels*frames), channels, frames)
}

func layouts[T audio.Sample]() []layout[T] {
	return []layout[T]{
		{"Split", func(ch, frames int) audio.Buffer[T] { return newSplit[T](ch, frames) }},
		{"Interleaved", func(ch, frames int) audio.Buffer[T] { return newInterleaved[T](ch, frames) }},
		{"Accessor", func(ch, frames int) audio.Buffer[T] { return accessor[T]{newSplit[T](ch, frames)} }},
	}
}

func forEachLayout(t *testing.T, fn32 func(*testing.T, layout[float32]), fn64 func(*testing.T, layout[float64])) {
	for _, l := range layouts[float32]() {
		t.Run(l.name+"F32", func(t *testing.T) { fn32(t, l) })
	}
	for _, l := range layouts[float64]() {
		t.Run(l.name+"F64", func(t *testing.T) { fn64(t, l) })
	}
}

func fillHost(b audio.CoreBus, fn func(h, f int) float32) {
	for h := 0; h < b.NumChannels(); h++ {
		for f := 0; f < b.Frames; f++ {
			b.Set(h, f, fn(h, f))
		}
	}
}

func fillPlugin[T audio.Sample](b audio.Buffer[T], fn func(p, f int) T) {
	for p := 0; p < b.Channels(); p++ {
		for f := 0; f < b.Frames(); f++ {
			b.Set(p, f, fn(p, f))
		}
	}
}

func clearPins(pc *Connector) {
	for _, dir := range []Direction{In, Out} {
		for h := 0; h < pc.HostChannelCount(); h++ {
			for p := 0; p < pc.ChannelCount(dir); p++ {
				pc.SetPin(dir, h, p, false)
			}
		}
	}
}

func TestRouteToPluginMean(t *testing.T) {
	forEachLayout(t, testRouteToPluginMean[float32], testRouteToPluginMean[float64])
}

func testRouteToPluginMean[T audio.Sample](t *testing.T, l layout[T]) {
	pc := newTestConnector(2, 2, WithHostChannels(4))
	clearPins(pc)
	// Three sources into plugin channel 0, one into plugin channel 1
	pc.SetPin(In, 0, 0, true)
	pc.SetPin(In, 1, 0, true)
	pc.SetPin(In, 2, 0, true)
	pc.SetPin(In, 3, 1, true)

	host := audio.NewCoreBus(2, testFrames)
	fillHost(host, func(h, f int) float32 { return float32((h+1)*10 + f) })

	ins := l.make(2, testFrames)
	fillPlugin(ins, func(p, f int) T { return 99 })
	NewRouter[T](pc).RouteToPlugin(host, ins)

	for f := 0; f < testFrames; f++ {
		if got, want := ins.At(0, f), T(20+f); got != want {
			t.Fatalf("frame %d: channel 0 = %v, want mean %v", f, got, want)
		}
		if got, want := ins.At(1, f), T(40+f); got != want {
			t.Fatalf("frame %d: channel 1 = %v, want unscaled %v", f, got, want)
		}
	}
}

func TestRouteToPluginTwoSources(t *testing.T) {
	forEachLayout(t, testRouteToPluginTwoSources[float32], testRouteToPluginTwoSources[float64])
}

func testRouteToPluginTwoSources[T audio.Sample](t *testing.T, l layout[T]) {
	pc := newTestConnector(2, 2)
	pc.SetPin(In, 1, 0, true)

	host := audio.NewCoreBus(1, testFrames)
	fillHost(host, func(h, f int) float32 { return float32(10 * (h + 1)) })

	ins := l.make(2, testFrames)
	NewRouter[T](pc).RouteToPlugin(host, ins)
	if got := ins.At(0, 7); got != 15 {
		t.Errorf("Expected (10+20)/2 = 15, got %v", got)
	}
	if got := ins.At(1, 7); got != 20 {
		t.Errorf("Expected 20, got %v", got)
	}
}

func TestRouteToPluginSilence(t *testing.T) {
	forEachLayout(t, testRouteToPluginSilence[float32], testRouteToPluginSilence[float64])
}

func testRouteToPluginSilence[T audio.Sample](t *testing.T, l layout[T]) {
	pc := newTestConnector(2, 2)
	pc.SetPin(In, 1, 1, false)

	host := audio.NewCoreBus(1, testFrames)
	fillHost(host, func(h, f int) float32 { return 1 })

	// Longer than the period: the whole buffer is cleared
	ins := l.make(2, testFrames*2)
	fillPlugin(ins, func(p, f int) T { return -1 })
	NewRouter[T](pc).RouteToPlugin(host, ins)

	for f := 0; f < testFrames*2; f++ {
		if got := ins.At(1, f); got != 0 {
			t.Fatalf("frame %d: unconnected channel = %v, want 0", f, got)
		}
		want := T(0)
		if f < testFrames {
			want = 1
		}
		if got := ins.At(0, f); got != want {
			t.Fatalf("frame %d: channel 0 = %v, want %v", f, got, want)
		}
	}
}

func TestRouteFromPluginMean(t *testing.T) {
	forEachLayout(t, testRouteFromPluginMean[float32], testRouteFromPluginMean[float64])
}

func testRouteFromPluginMean[T audio.Sample](t *testing.T, l layout[T]) {
	pc := newTestConnector(2, 2)
	pc.SetPin(Out, 0, 1, true)

	outs := l.make(2, testFrames)
	fillPlugin(outs, func(p, f int) T { return T(10 * (p + 1)) })

	host := audio.NewCoreBus(1, testFrames)
	fillHost(host, func(h, f int) float32 { return 1000 })
	NewRouter[T](pc).RouteFromPlugin(outs, host)

	for f := 0; f < testFrames; f++ {
		if got := host.At(0, f); got != 15 {
			t.Fatalf("frame %d: host left = %v, want 15", f, got)
		}
		if got := host.At(1, f); got != 20 {
			t.Fatalf("frame %d: host right = %v, want 20", f, got)
		}
	}
}

func TestRouteFromPluginBypass(t *testing.T) {
	forEachLayout(t, testRouteFromPluginBypass[float32], testRouteFromPluginBypass[float64])
}

func testRouteFromPluginBypass[T audio.Sample](t *testing.T, l layout[T]) {
	pc := newTestConnector(2, 2, WithHostChannels(4))
	pc.SetPin(Out, 1, 1, false)

	special := []float32{
		float32(math.Copysign(0, -1)),
		math.Float32frombits(0x7fc00123),
		float32(math.Inf(1)),
		math.SmallestNonzeroFloat32,
	}
	host := audio.NewCoreBus(2, testFrames)
	fillHost(host, func(h, f int) float32 { return special[(h+f)%len(special)] })
	orig := host.Clone()

	outs := l.make(2, testFrames)
	fillPlugin(outs, func(p, f int) T { return 5 })
	NewRouter[T](pc).RouteFromPlugin(outs, host)

	for f := 0; f < testFrames; f++ {
		if got := host.At(0, f); got != 5 {
			t.Fatalf("frame %d: routed channel = %v, want 5", f, got)
		}
		for _, h := range []int{1, 2, 3} {
			got, want := math.Float32bits(host.At(h, f)), math.Float32bits(orig.At(h, f))
			if got != want {
				t.Fatalf("frame %d: unrouted channel %d changed from %#x to %#x", f, h, want, got)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	forEachLayout(t, testRoundTrip[float32], testRoundTrip[float64])
}

func testRoundTrip[T audio.Sample](t *testing.T, l layout[T]) {
	pc := newTestConnector(2, 2)
	router := NewRouter[T](pc)

	host := audio.NewCoreBus(1, testFrames)
	// Data on frames 0, 1, and 33
	for _, v := range []struct {
		frame int
		l, r  float32
	}{{0, 123, 321}, {1, 456, 654}, {33, 789, 987}} {
		host.Set(0, v.frame, v.l)
		host.Set(1, v.frame, v.r)
	}
	orig := host.Clone()

	ins := l.make(2, testFrames)
	outs := l.make(2, testFrames)
	router.RouteToPlugin(host, ins)
	if ins.At(0, 0) != 123 || ins.At(1, 0) != 321 || ins.At(0, 33) != 789 || ins.At(1, 33) != 987 {
		t.Fatalf("Plugin inputs missing data: %v %v %v %v", ins.At(0, 0), ins.At(1, 0), ins.At(0, 33), ins.At(1, 33))
	}

	// The plugin doubles the amplitude
	fillPlugin(outs, func(p, f int) T { return ins.At(p, f) * 2 })

	// In    Out
	//  ___   ___
	// |X| | |X| |
	// | |X| | | |
	//  ---   ---
	pc.SetPin(Out, 1, 1, false)
	router.RouteFromPlugin(outs, host)

	// Right passes through, left is overwritten with the plugin output
	for f := 0; f < testFrames; f++ {
		if got, want := host.At(0, f), orig.At(0, f)*2; got != want {
			t.Fatalf("frame %d: left = %v, want %v", f, got, want)
		}
		if got, want := host.At(1, f), orig.At(1, f); got != want {
			t.Fatalf("frame %d: right = %v, want %v", f, got, want)
		}
	}

	// Re-enable the right output and route into a cleared bus to be sure
	// the old values are not read back
	pc.SetPin(Out, 1, 1, true)
	host.Clear()
	router.RouteFromPlugin(outs, host)
	for h := 0; h < 2; h++ {
		for f := 0; f < testFrames; f++ {
			if got, want := host.At(h, f), orig.At(h, f)*2; got != want {
				t.Fatalf("channel %d frame %d: got %v, want %v", h, f, got, want)
			}
		}
	}
}

func TestRouteFromPluginWetDry(t *testing.T) {
	forEachLayout(t, testWetDry[float32], testWetDry[float64])
}

func testWetDry[T audio.Sample](t *testing.T, l layout[T]) {
	pc := newTestConnector(2, 2, WithHostChannels(4))
	pc.SetPin(Out, 1, 0, true)
	router := NewEffectRouter[T](pc, testFrames, 0.25, 0.75)
	if !router.WetDry() {
		t.Fatal("Effect router should blend")
	}

	host := audio.NewCoreBus(2, testFrames)
	fillHost(host, func(h, f int) float32 { return float32(8 * (h + 1)) })

	outs := l.make(2, testFrames)
	fillPlugin(outs, func(p, f int) T { return T(4 + 8*p) })
	router.RouteFromPlugin(outs, host)

	for f := 0; f < testFrames; f++ {
		// 8*0.75 + 4*0.25
		if got := host.At(0, f); got != 7 {
			t.Fatalf("frame %d: left = %v, want 7", f, got)
		}
		// 16*0.75 + (4+12)/2*0.25
		if got := host.At(1, f); got != 14 {
			t.Fatalf("frame %d: right = %v, want 14", f, got)
		}
		if got := host.At(2, f); got != 24 {
			t.Fatalf("frame %d: unrouted channel = %v, want 24", f, got)
		}
	}

	router.SetMix(1, 0)
	if wet, dry := router.Mix(); wet != 1 || dry != 0 {
		t.Errorf("Mix() = %v, %v", wet, dry)
	}
	router.RouteFromPlugin(outs, host)
	if got := host.At(0, 3); got != 4 {
		t.Errorf("Fully wet left = %v, want 4", got)
	}
}

func closeEnough(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 1e-5*math.Max(1, math.Abs(float64(b)))
}

// Every dispatch path has to produce the same result for every
// combination of the four pins of a stereo pair.
func TestRoutePathsAgree(t *testing.T) {
	mk := map[string]func() audio.Buffer[float32]{
		"Split":    func() audio.Buffer[float32] { return newSplit[float32](2, testFrames) },
		"Frames":   func() audio.Buffer[float32] { return newInterleaved[float32](2, testFrames) },
		"Accessor": func() audio.Buffer[float32] { return accessor[float32]{newInterleaved[float32](2, testFrames)} },
	}
	signal := func(h, f int) float32 { return float32(math.Sin(float64(f)*0.1+float64(h))) * 0.8 }

	for mask := 0; mask < 256; mask++ {
		pc := newTestConnector(2, 2)
		for i := 0; i < 4; i++ {
			pc.SetPin(In, i/2, i%2, mask&(1<<i) != 0)
			pc.SetPin(Out, i/2, i%2, mask&(1<<(4+i)) != 0)
		}

		for _, wetDry := range []bool{false, true} {
			results := map[string]audio.CoreBus{}
			for name, newBuf := range mk {
				router := NewRouter[float32](pc)
				if wetDry {
					router = NewEffectRouter[float32](pc, testFrames, 0.6, 0.4)
				}
				host := audio.NewCoreBus(1, testFrames)
				fillHost(host, signal)
				ins, outs := newBuf(), newBuf()
				router.RouteToPlugin(host, ins)
				fillPlugin(outs, func(p, f int) float32 { return ins.At(p, f)*0.5 - float32(p) })
				router.RouteFromPlugin(outs, host)
				results[name] = host
			}

			want := results["Split"]
			for name, got := range results {
				for h := 0; h < 2; h++ {
					for f := 0; f < testFrames; f++ {
						g, w := got.At(h, f), want.At(h, f)
						if wetDry && !closeEnough(g, w) || !wetDry && g != w {
							t.Fatalf("mask %08b wetDry %v: %s channel %d frame %d = %v, split = %v", mask, wetDry, name, h, f, g, w)
						}
					}
				}
			}
		}
	}
}

func TestRouteNoChannels(t *testing.T) {
	host := audio.NewCoreBus(1, testFrames)
	fillHost(host, func(h, f int) float32 { return 3 })

	instrument := newTestConnector(0, 2)
	NewRouter[float32](instrument).RouteToPlugin(host, newSplit[float32](0, testFrames))

	noOutputs := newTestConnector(2, 0)
	NewRouter[float32](noOutputs).RouteFromPlugin(newSplit[float32](0, testFrames), host)
	for h := 0; h < 2; h++ {
		for f := 0; f < testFrames; f++ {
			if host.At(h, f) != 3 {
				t.Fatalf("Plugin without outputs changed host channel %d", h)
			}
		}
	}
}

func TestRouteMismatch(t *testing.T) {
	host := audio.NewCoreBus(1, testFrames)
	pc := newTestConnector(2, 2)
	router := NewRouter[float32](pc)

	expectPanic(t, "input channels", func() {
		router.RouteToPlugin(host, newSplit[float32](3, testFrames))
	})
	expectPanic(t, "output channels", func() {
		router.RouteFromPlugin(newSplit[float32](1, testFrames), host)
	})
	expectPanic(t, "short plugin buffer", func() {
		router.RouteToPlugin(host, newSplit[float32](2, testFrames/2))
	})
	expectPanic(t, "short scratch", func() {
		NewEffectRouter[float32](pc, testFrames/2, 1, 0).RouteFromPlugin(newSplit[float32](2, testFrames), host)
	})

	wide := newTestConnector(2, 2, WithHostChannels(4))
	wide.SetPin(Out, 3, 0, true)
	expectPanic(t, "host pairs", func() {
		NewRouter[float32](wide).RouteFromPlugin(newSplit[float32](2, testFrames), host)
	})
}

func TestRouterProcess(t *testing.T) {
	pc := newTestConnector(2, 2)
	host := audio.NewCoreBus(1, testFrames)
	fillHost(host, func(h, f int) float32 { return float32(h + 1) })
	buf := newSplit[float32](2, testFrames)
	router := NewRouter[float32](pc)

	// In-place plugin doubling its input
	calls := 0
	ok := router.Process(host, buf, buf, func() {
		calls++
		for p := 0; p < 2; p++ {
			for f, v := range buf.Channel(p) {
				buf.Channel(p)[f] = v * 2
			}
		}
	})
	if !ok || calls != 1 {
		t.Fatalf("Expected one processing call, got ok=%v calls=%d", ok, calls)
	}
	for h := 0; h < 2; h++ {
		if got := host.At(h, 5); got != float32(2*(h+1)) {
			t.Errorf("Host channel %d: expected %v, got %v", h, 2*(h+1), got)
		}
	}

	// Buffers from an older configuration are skipped
	pc.SetPluginChannelCount(In, 3)
	ok = router.Process(host, buf, buf, func() { calls++ })
	if ok || calls != 1 {
		t.Error("Mismatched buffers should not be processed")
	}
	if host.At(0, 5) != 2 {
		t.Error("Skipped period changed the host bus")
	}

	short := NewEffectRouter[float32](newTestConnector(2, 2), testFrames/2, 1, 0)
	if short.Process(host, buf, buf, func() {}) {
		t.Error("Short scratch should not be processed")
	}
}

func TestRouteDoesNotAllocate(t *testing.T) {
	pc := newTestConnector(2, 2)
	host := audio.NewCoreBus(1, testFrames)

	split := newSplit[float32](2, testFrames)
	frames := newInterleaved[float32](2, testFrames)
	generic := newInterleaved[float64](2, testFrames)
	plain := NewRouter[float32](pc)
	effect := NewEffectRouter[float32](pc, testFrames, 0.5, 0.5)
	plain64 := NewRouter[float64](pc)

	for name, fn := range map[string]func(){
		"Split": func() {
			plain.RouteToPlugin(host, split)
			effect.RouteFromPlugin(split, host)
		},
		"Frames": func() {
			plain.RouteToPlugin(host, frames)
			effect.RouteFromPlugin(frames, host)
		},
		"Generic": func() {
			plain64.RouteToPlugin(host, generic)
			plain64.RouteFromPlugin(generic, host)
		},
	} {
		if allocs := testing.AllocsPerRun(100, fn); allocs != 0 {
			t.Errorf("%s: %v allocations per period", name, allocs)
		}
	}
}

func TestRouteConcurrentEdits(t *testing.T) {
	pc := newTestConnector(2, 2)
	router := NewEffectRouter[float32](pc, testFrames, 0.5, 0.5)
	host := audio.NewCoreBus(1, testFrames)
	ins, outs := newSplit[float32](2, testFrames), newSplit[float32](2, testFrames)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			pc.Toggle(Direction(i%2), (i/2)%2, (i/4)%2)
			if i%50 == 0 {
				pc.SetHostChannelCount(2 + 2*((i/50)%2))
			}
		}
	}()

	for i := 0; i < 2000; i++ {
		router.RouteToPlugin(host, ins)
		router.RouteFromPlugin(outs, host)
	}
	close(stop)
	wg.Wait()
}

func BenchmarkRouteToPlugin(b *testing.B) {
	pc := newTestConnector(2, 2)
	host := audio.NewCoreBus(1, testFrames)
	router := NewRouter[float32](pc)

	b.Run("Split", func(b *testing.B) {
		buf := newSplit[float32](2, testFrames)
		for i := 0; i < b.N; i++ {
			router.RouteToPlugin(host, buf)
		}
	})
	b.Run("Frames", func(b *testing.B) {
		buf := newInterleaved[float32](2, testFrames)
		for i := 0; i < b.N; i++ {
			router.RouteToPlugin(host, buf)
		}
	})
	b.Run("Accessor", func(b *testing.B) {
		buf := accessor[float32]{newSplit[float32](2, testFrames)}
		for i := 0; i < b.N; i++ {
			router.RouteToPlugin(host, buf)
		}
	})
}

func BenchmarkRouteFromPlugin(b *testing.B) {
	pc := newTestConnector(2, 2)
	host := audio.NewCoreBus(1, testFrames)
	router := NewEffectRouter[float32](pc, testFrames, 0.5, 0.5)

	b.Run("Split", func(b *testing.B) {
		buf := newSplit[float32](2, testFrames)
		for i := 0; i < b.N; i++ {
			router.RouteFromPlugin(buf, host)
		}
	})
	b.Run("Frames", func(b *testing.B) {
		buf := newInterleaved[float32](2, testFrames)
		for i := 0; i < b.N; i++ {
			router.RouteFromPlugin(buf, host)
		}
	})
}
