package port

import (
	"errors"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/justyntemme/pinroute/pkg/framework/audio"
	"github.com/justyntemme/pinroute/pkg/framework/bus"
	"github.com/justyntemme/pinroute/pkg/framework/debug"
	"github.com/justyntemme/pinroute/pkg/framework/pins"
)

func checkViews[T audio.Sample](t *testing.T, name string, v Views[T], in, out, frames int) {
	t.Helper()
	if v.In.Channels() != in || v.Out.Channels() != out || v.Frames != frames {
		t.Errorf("%s: expected %d in, %d out, %d frames, got %d, %d, %d",
			name, in, out, frames, v.In.Channels(), v.Out.Channels(), v.Frames)
	}
	if v.In.Frames() < frames || v.Out.Frames() < frames {
		t.Errorf("%s: buffers shorter than %d frames", name, frames)
	}
}

func TestDefaultBuffers(t *testing.T) {
	for _, layout := range []audio.Layout{audio.Split, audio.Interleaved} {
		d := NewDefault[float64](layout, false)
		if d.Views().Active() {
			t.Errorf("%s: empty buffers should be inactive", layout)
		}

		d.Update(2, 4, 32)
		v := d.Views()
		checkViews(t, layout.String(), v, 2, 4, 32)
		if !v.Active() || v.Shared() {
			t.Errorf("%s: expected active, separate buffers", layout)
		}
		if v.In.Layout() != layout || v.Out.Layout() != layout {
			t.Errorf("%s: wrong buffer layout", layout)
		}

		// Unchanged dimensions keep the same buffers
		d.Update(2, 4, 32)
		if d.Views().In != v.In {
			t.Errorf("%s: identical update replaced buffers", layout)
		}

		// Old views stay intact after a resize
		v.Out.Set(3, 31, 1)
		d.Update(1, 1, 8)
		checkViews(t, layout.String(), d.Views(), 1, 1, 8)
		if v.Out.At(3, 31) != 1 {
			t.Errorf("%s: resize modified retired buffers", layout)
		}
	}
}

func TestDefaultInPlace(t *testing.T) {
	d := NewDefault[float32](audio.Interleaved, true)
	d.Update(2, 2, 16)
	if !d.Views().Shared() {
		t.Error("Expected shared in-place buffers for 2 in, 2 out")
	}
	d.Update(1, 2, 16)
	if d.Views().Shared() {
		t.Error("Buffers with different channel counts cannot be shared")
	}
}

func TestFromConfig(t *testing.T) {
	d, err := FromConfig[float32](bus.NewEffectStereoFrame())
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if d.Layout() != audio.Interleaved {
		t.Errorf("Expected interleaved, got %s", d.Layout())
	}

	if _, err := FromConfig[float64](bus.NewEffectStereo()); err == nil {
		t.Error("Expected error for mismatched sample kind")
	}
}

func TestExternalBuffers(t *testing.T) {
	own := NewDefault[float32](audio.Split, false)
	e := NewExternal(func(in, out, frames int) (Views[float32], bool) {
		if in > 2 {
			return Views[float32]{}, false
		}
		own.Update(in, out, frames)
		return own.Views(), true
	})

	e.Update(2, 2, 64)
	checkViews(t, "served", e.Views(), 2, 2, 64)

	e.Update(4, 2, 64)
	if e.Views().Active() {
		t.Error("Rejected configuration should leave buffers inactive")
	}

	wrong := NewExternal(func(in, out, frames int) (Views[float32], bool) {
		own.Update(1, 1, frames)
		return own.Views(), true
	})
	wrong.Update(2, 2, 64)
	if wrong.Views().Active() {
		t.Error("Mismatched provider buffers should be rejected")
	}
}

type recordingRegion struct {
	HeapRegion
	mem []byte
}

func (r *recordingRegion) Resize(size int) ([]byte, error) {
	r.mem, _ = r.HeapRegion.Resize(size)
	return r.mem, nil
}

func TestSharedLayout(t *testing.T) {
	var names []string
	region := &recordingRegion{}
	s := NewShared(region, debug.Nop())
	s.OnResize = func(name string) { names = append(names, name) }

	s.Update(2, 3, 4)
	v := s.Views()
	checkViews(t, "shared", v, 2, 3, 4)
	if len(region.mem) != (2+3)*4*4 {
		t.Fatalf("Expected %d bytes, got %d", (2+3)*4*4, len(region.mem))
	}

	// Inputs then outputs, channel after channel, in one slab
	slab := unsafe.Slice((*float32)(unsafe.Pointer(&region.mem[0])), 20)
	for ch := 0; ch < 2; ch++ {
		v.In.Set(ch, 1, float32(ch+1))
	}
	for ch := 0; ch < 3; ch++ {
		v.Out.Set(ch, 2, float32(10+ch))
	}
	want := map[int]float32{1: 1, 5: 2, 10: 10, 14: 11, 18: 12}
	for i, x := range slab {
		if x != want[i] {
			t.Errorf("slab[%d] = %v, want %v", i, x, want[i])
		}
	}
	if len(names) != 1 || names[0] != "heap" {
		t.Errorf("Expected one resize notification, got %v", names)
	}

	s.Update(2, 3, 4)
	if len(names) != 1 {
		t.Error("Identical update should not resize")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if s.Views().Active() {
		t.Error("Closed buffers should be inactive")
	}
}

type failingRegion struct{ HeapRegion }

func (failingRegion) Resize(int) ([]byte, error) { return nil, errors.New("no memory") }

func TestSharedResizeFailure(t *testing.T) {
	s := NewShared(&failingRegion{}, debug.Nop())
	s.Update(2, 2, 16)
	if s.Views().Active() {
		t.Error("Failed resize should leave buffers inactive")
	}
}

func TestFileRegion(t *testing.T) {
	base := filepath.Join(t.TempDir(), "pins")
	s := NewShared(NewFileRegion(base), debug.Nop())

	s.Update(1, 1, 8)
	first := s.Region().Name()
	v := s.Views()
	v.Out.Set(0, 7, 0.5)

	s.Update(2, 2, 8)
	if s.Region().Name() == first {
		t.Error("Resize should map a new file")
	}
	// Retired mappings stay readable until Close
	if v.Out.At(0, 7) != 0.5 {
		t.Error("Retired mapping lost its contents")
	}
	checkViews(t, "file", s.Views(), 2, 2, 8)

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if matches, _ := filepath.Glob(base + ".*"); len(matches) != 0 {
		t.Errorf("Close left files behind: %v", matches)
	}
}

func TestConfigurable(t *testing.T) {
	local := NewDefault[float32](audio.Split, false)
	remote := NewShared(NewHeapRegion(), debug.Nop())
	c := NewConfigurable[float32](local, remote)

	c.Update(2, 2, 32)
	if remote.Views().Active() {
		t.Error("Inactive remote buffers should not be sized")
	}

	c.UseRemote(true)
	if !c.Remote() {
		t.Fatal("Expected remote buffers")
	}
	checkViews(t, "remote", c.Views(), 2, 2, 32)
	if c.Views().In != remote.Views().In {
		t.Error("Views should come from the remote buffers")
	}

	c.UseRemote(false)
	if c.Views().In != local.Views().In {
		t.Error("Views should come from the local buffers")
	}
}

func TestAttach(t *testing.T) {
	c := pins.NewConnector(bus.DynamicChannelCount, 2, pins.WithLogger(debug.Nop()))
	d := NewDefault[float32](audio.Split, false)

	detach := Attach[float32](c, d, 128)
	checkViews(t, "attached", d.Views(), 0, 2, 128)

	c.SetPluginChannelCount(pins.In, 4)
	checkViews(t, "resized", d.Views(), 4, 2, 128)

	// Pin edits leave the buffers alone
	before := d.Views().In
	c.Toggle(pins.In, 0, 3)
	if d.Views().In != before {
		t.Error("Pin edit replaced buffers")
	}

	detach()
	c.SetPluginChannelCount(pins.Out, 1)
	checkViews(t, "detached", d.Views(), 4, 2, 128)
}

func TestViewsNoAlloc(t *testing.T) {
	d := NewDefault[float32](audio.Split, false)
	d.Update(2, 2, 64)
	var sink Views[float32]
	if n := testing.AllocsPerRun(100, func() { sink = d.Views() }); n != 0 {
		t.Errorf("Views allocated %v times", n)
	}
	_ = sink
}
