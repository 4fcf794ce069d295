package hal

import "testing"

func TestHostFramebufferPresent(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	if fb.StrideBytes() != 8 || len(fb.Buffer()) != 16 {
		t.Fatalf("unexpected geometry stride=%d len=%d", fb.StrideBytes(), len(fb.Buffer()))
	}

	fb.ClearRGB(255, 0, 0)
	snap := make([]byte, len(fb.Buffer()))
	if seq := fb.snapshotRGB565(snap); seq != 0 {
		t.Fatalf("expected nothing presented, got seq %d", seq)
	}
	if snap[0] != 0 || snap[1] != 0 {
		t.Fatal("expected front buffer untouched before Present")
	}

	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if seq := fb.snapshotRGB565(snap); seq != 1 {
		t.Fatalf("expected seq 1, got %d", seq)
	}
	got := uint16(snap[0]) | uint16(snap[1])<<8
	if got != RGB565(255, 0, 0) {
		t.Fatalf("expected red pixel, got %#04x", got)
	}
}
