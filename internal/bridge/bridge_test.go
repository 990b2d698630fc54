package bridge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomz197/rockstorm/internal/object"
	"github.com/tomz197/rockstorm/internal/settings"
)

const pollTimeout = 5 * time.Second

func TestParticlesUnionOfRequests(t *testing.T) {
	p := NewParticles()
	defer p.Close()
	ps := object.NewParticleSystem()

	// More requests than the channel buffers hold, all in one frame.
	const n = 300
	want := 0
	for i := 0; i < n; i++ {
		count := i%7 + 1
		want += count
		p.Request(object.SpawnRequest{X: float64(i), Count: count, Speed: 10, Life: 1, Size: 1})
	}
	if p.State() != Pending {
		t.Fatalf("expected pending after requests, got %v", p.State())
	}

	batches := 0
	deadline := time.Now().Add(pollTimeout)
	for p.State() == Pending {
		if time.Now().After(deadline) {
			t.Fatalf("timed out with %d of %d batches", batches, n)
		}
		batches += p.Poll(ps)
		time.Sleep(time.Millisecond)
	}

	if batches != n {
		t.Errorf("expected %d batches, got %d", n, batches)
	}
	if ps.Len() != want {
		t.Fatalf("expected %d particles, got %d", want, ps.Len())
	}
	seen := make(map[float64]int)
	for _, pt := range ps.Particles() {
		seen[pt.X]++
	}
	for i := 0; i < n; i++ {
		if got := seen[float64(i)]; got != i%7+1 {
			t.Errorf("request %d: expected %d particles, got %d", i, i%7+1, got)
		}
	}
}

func TestParticlesArrivalOrder(t *testing.T) {
	p := NewParticles()
	defer p.Close()
	ps := object.NewParticleSystem()

	for i := 0; i < 10; i++ {
		p.Request(object.SpawnRequest{X: float64(i), Count: 1, Life: 1})
	}
	deadline := time.Now().Add(pollTimeout)
	for p.State() == Pending && time.Now().Before(deadline) {
		p.Poll(ps)
		time.Sleep(time.Millisecond)
	}
	for i, pt := range ps.Particles() {
		if pt.X != float64(i) {
			t.Fatalf("expected batch %d at index %d, got %v", i, i, pt.X)
		}
	}
}

func TestParticlesIdleWithoutRequests(t *testing.T) {
	p := NewParticles()
	defer p.Close()
	if p.State() != Idle {
		t.Errorf("expected idle, got %v", p.State())
	}
	if got := p.Poll(object.NewParticleSystem()); got != 0 {
		t.Errorf("expected no batches, got %d", got)
	}
}

func TestParticlesClosedIsSilent(t *testing.T) {
	p := NewParticles()
	p.Close()
	p.Close()
	p.Request(object.SpawnRequest{Count: 1, Life: 1})

	ps := object.NewParticleSystem()
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		p.Poll(ps)
	}
	if ps.Len() != 0 {
		t.Errorf("expected nothing after close, got %d particles", ps.Len())
	}
}

func TestSettingsLoaderSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.txt")
	if err := os.WriteFile(path, []byte("volume=0.4\ndifficulty=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := LoadSettings(path)
	res := waitSettings(t, l)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Settings.Volume != 0.4 || res.Settings.Difficulty != settings.Easy {
		t.Errorf("unexpected settings %+v", res.Settings)
	}
	if l.State() != Idle {
		t.Errorf("expected idle after result, got %v", l.State())
	}
	if _, ok := l.Poll(); ok {
		t.Error("expected result delivered only once")
	}
}

func TestSettingsLoaderFailure(t *testing.T) {
	boom := errors.New("boom")
	l := NewSettingsLoader(func() (settings.Settings, error) {
		return settings.Default(), boom
	})
	res := waitSettings(t, l)
	if !errors.Is(res.Err, boom) {
		t.Errorf("expected failure reason, got %v", res.Err)
	}
	if res.Settings != settings.Default() {
		t.Errorf("expected defaults on failure, got %+v", res.Settings)
	}
}

func TestSettingsLoaderDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	l := NewSettingsLoader(func() (settings.Settings, error) {
		<-release
		return settings.Default(), nil
	})
	defer close(release)
	if _, ok := l.Poll(); ok {
		t.Error("expected no result while loading")
	}
	if l.State() != Pending {
		t.Errorf("expected pending, got %v", l.State())
	}
}

func waitSettings(t *testing.T, l *SettingsLoader) SettingsResult {
	t.Helper()
	deadline := time.Now().Add(pollTimeout)
	for time.Now().Before(deadline) {
		if res, ok := l.Poll(); ok {
			return res
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for settings")
	return SettingsResult{}
}

func TestScanGated(t *testing.T) {
	s := NewScan(20 * time.Millisecond)
	if !s.Start() {
		t.Fatal("expected first start to succeed")
	}
	if s.Start() {
		t.Error("expected second start to be rejected while pending")
	}
	if _, ok := s.Poll(); ok {
		t.Error("expected no result immediately")
	}

	deadline := time.Now().Add(pollTimeout)
	var bonus int
	for {
		if b, ok := s.Poll(); ok {
			bonus = b
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for scan")
		}
		time.Sleep(time.Millisecond)
	}
	if bonus != ScanBonus {
		t.Errorf("expected bonus %d, got %d", ScanBonus, bonus)
	}
	if s.State() != Idle {
		t.Errorf("expected idle after result, got %v", s.State())
	}
	if !s.Start() {
		t.Error("expected restart after completion")
	}
}

func TestScanPollIdle(t *testing.T) {
	s := NewScan(time.Millisecond)
	if _, ok := s.Poll(); ok {
		t.Error("expected no result before start")
	}
}
