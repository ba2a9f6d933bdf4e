package click

import (
	"errors"
	"testing"
	"time"
)

func TestDebouncer_Try(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []time.Duration
		want    []bool
	}{
		{
			name:    "first click always passes",
			offsets: []time.Duration{0},
			want:    []bool{true},
		},
		{
			name:    "held pinch at 30fps clicks once per interval",
			offsets: []time.Duration{0, 33 * time.Millisecond, 66 * time.Millisecond, 299 * time.Millisecond, 300 * time.Millisecond, 301 * time.Millisecond},
			want:    []bool{true, false, false, false, false, true},
		},
		{
			name:    "suppressed attempts do not extend the window",
			offsets: []time.Duration{0, 200 * time.Millisecond, 350 * time.Millisecond},
			want:    []bool{true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(DefaultInterval)
			calls := 0
			emit := func() error { calls++; return nil }

			wantCalls := 0
			for i, off := range tt.offsets {
				got, err := d.Try(base.Add(off), emit)
				if err != nil {
					t.Fatalf("Try() error = %v", err)
				}
				if got != tt.want[i] {
					t.Errorf("attempt %d at +%v: got %v, want %v", i, off, got, tt.want[i])
				}
				if tt.want[i] {
					wantCalls++
				}
			}
			if calls != wantCalls {
				t.Errorf("emit called %d times, want %d", calls, wantCalls)
			}
		})
	}
}

func TestDebouncer_FailedEmitKeepsState(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	d := New(DefaultInterval)

	if ok, _ := d.Try(base, func() error { return nil }); !ok {
		t.Fatal("setup click should pass")
	}

	injectErr := errors.New("injection failed")
	later := base.Add(time.Second)
	ok, err := d.Try(later, func() error { return injectErr })
	if ok {
		t.Error("failed emit must not report success")
	}
	if !errors.Is(err, injectErr) {
		t.Errorf("error = %v, want %v", err, injectErr)
	}
	if !d.Last().Equal(base) {
		t.Errorf("Last() = %v, want %v", d.Last(), base)
	}

	// The retry on the next frame goes through.
	if ok, _ := d.Try(later.Add(33*time.Millisecond), func() error { return nil }); !ok {
		t.Error("retry after a failed emit should pass")
	}
}

func TestDebouncer_Reset(t *testing.T) {
	base := time.Now()
	d := New(time.Hour)
	d.Try(base, func() error { return nil })
	d.Reset()

	if !d.Last().IsZero() {
		t.Errorf("Last() after Reset = %v", d.Last())
	}
	if ok, _ := d.Try(base.Add(time.Millisecond), func() error { return nil }); !ok {
		t.Error("click after Reset should pass")
	}
}
