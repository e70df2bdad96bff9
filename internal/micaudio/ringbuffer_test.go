package micaudio

import "testing"

func TestRingBufferFIFO(t *testing.T) {
	r := NewRingBuffer(5)
	for i := 0; i < 3; i++ {
		r.Push([]float32{float32(i)})
	}
	for i := 0; i < 3; i++ {
		frame, ok := r.Pop()
		if !ok {
			t.Fatalf("expected frame %d", i)
		}
		if frame[0] != float32(i) {
			t.Fatalf("frame[0] = %v, want %v", frame[0], i)
		}
	}
	if _, ok := r.Pop(); ok {
		t.Fatal("expected empty buffer")
	}
}

func TestRingBufferDropsOldestOnOverflow(t *testing.T) {
	r := NewRingBuffer(3)
	for i := 0; i < 5; i++ {
		r.Push([]float32{float32(i)})
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	frame, ok := r.Pop()
	if !ok || frame[0] != 2 {
		t.Fatalf("oldest surviving frame = %v, want 2 (frames 0,1 dropped)", frame)
	}
}
