package pool

import "testing"

func TestGet_LengthAndCapacity(t *testing.T) {
	tests := []struct {
		size    int
		wantCap int
	}{
		{1, 4096},
		{4096, 4096},
		{4097, 8192},
		{3 * 1024 * 1024, 4 * 1024 * 1024},
		{1<<26 + 1, 1<<26 + 1},
	}
	for _, tt := range tests {
		buf := Get(tt.size)
		if len(buf) != tt.size {
			t.Errorf("Get(%d) len = %d", tt.size, len(buf))
		}
		if cap(buf) != tt.wantCap {
			t.Errorf("Get(%d) cap = %d, want %d", tt.size, cap(buf), tt.wantCap)
		}
		Put(buf)
	}
	if Get(0) != nil {
		t.Error("Get(0) should return nil")
	}
}

func TestGet_ReusedBufferIsZeroed(t *testing.T) {
	for range 4 {
		buf := Get(5000)
		for i := range buf {
			if buf[i] != 0 {
				t.Fatalf("byte %d = %d, want 0", i, buf[i])
			}
			buf[i] = 0xab
		}
		Put(buf)
	}
}

func TestPut_IgnoresForeignSlices(t *testing.T) {
	Put(nil)
	Put(make([]byte, 100))
	Put(make([]byte, 3000, 6000))
}
