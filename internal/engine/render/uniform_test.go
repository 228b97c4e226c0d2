package render

import (
	"errors"
	"testing"
)

type fakeBuffer struct {
	label    string
	size     int
	writes   []any
	released bool
	fail     error
}

func (b *fakeBuffer) Label() string { return b.label }
func (b *fakeBuffer) Release()      { b.released = true }
func (b *fakeBuffer) Write(v any) error {
	if b.fail != nil {
		return b.fail
	}
	b.writes = append(b.writes, v)
	return nil
}

type fakeTarget struct {
	label    string
	released bool
}

func (t *fakeTarget) Label() string                 { return t.label }
func (t *fakeTarget) Size() (width, height uint32) { return 1, 1 }
func (t *fakeTarget) Release()                      { t.released = true }

// bufferDevice only implements CreateBuffer.
type bufferDevice struct {
	Device
	buffers []*fakeBuffer
	fail    error
}

func (d *bufferDevice) CreateBuffer(label string, size int) (Buffer, error) {
	b := &fakeBuffer{label: label, size: size, fail: d.fail}
	d.buffers = append(d.buffers, b)
	return b, nil
}

func TestNewUniformSizesBuffer(t *testing.T) {
	dev := &bufferDevice{}
	u, err := NewUniform(dev, "screen", [4]float32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewUniform failed: %v", err)
	}

	b := dev.buffers[0]
	if b.size != 16 {
		t.Errorf("buffer size = %d, want 16", b.size)
	}
	if len(b.writes) != 1 {
		t.Fatalf("got %d writes, want initial upload", len(b.writes))
	}
	if u.Label() != "screen" {
		t.Errorf("label = %q", u.Label())
	}
}

func TestUniformSet(t *testing.T) {
	dev := &bufferDevice{}
	u, err := NewUniform(dev, "time", float32(0))
	if err != nil {
		t.Fatal(err)
	}

	if err := u.Set(2.5); err != nil {
		t.Fatal(err)
	}
	if u.Value() != 2.5 {
		t.Errorf("value = %v, want 2.5", u.Value())
	}
	b := dev.buffers[0]
	if got := b.writes[len(b.writes)-1]; got != float32(2.5) {
		t.Errorf("last write = %v, want 2.5", got)
	}
}

func TestNewUniformRejectsUnsized(t *testing.T) {
	if _, err := NewUniform(&bufferDevice{}, "bad", map[string]float32{}); err == nil {
		t.Error("expected error for map uniform")
	}
}

func TestNewUniformWriteFailure(t *testing.T) {
	boom := errors.New("boom")
	dev := &bufferDevice{fail: boom}
	if _, err := NewUniform(dev, "cam", float32(1)); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if !dev.buffers[0].released {
		t.Error("buffer leaked after failed upload")
	}
}

func TestResolve(t *testing.T) {
	dev := &bufferDevice{}
	u, _ := NewUniform(dev, "time", float32(0))
	if Resolve(u) != Binding(dev.buffers[0]) {
		t.Error("uniform did not resolve to its buffer")
	}

	first := &fakeTarget{label: "a"}
	slot := NewTextureSlot("shadow", first)
	if Resolve(slot) != Binding(first) {
		t.Error("slot did not resolve to its target")
	}
}

func TestTextureSlotSwap(t *testing.T) {
	first := &fakeTarget{label: "a"}
	second := &fakeTarget{label: "b"}
	slot := NewTextureSlot("shadow", first)

	if old := slot.Swap(second); old != DepthTarget(first) {
		t.Errorf("Swap returned %v, want first target", old)
	}
	if Resolve(slot) != Binding(second) {
		t.Error("slot does not hold the new target")
	}

	slot.Release()
	if !second.released || first.released {
		t.Error("Release should free only the installed target")
	}
}

func TestConfigAspect(t *testing.T) {
	if got := (Config{Width: 1600, Height: 800}).Aspect(); got != 2 {
		t.Errorf("aspect = %v, want 2", got)
	}
	if got := (Config{Width: 10}).Aspect(); got != 1 {
		t.Errorf("zero-height aspect = %v, want 1", got)
	}
}
