package object

import (
	"math"
	"testing"
)

func TestClampCount(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {-3, 1}, {5, 5}, {250, 250}, {900, 250}}
	for _, tt := range tests {
		if got := ClampCount(tt.in, MinBurstParticles, MaxBurstParticles); got != tt.want {
			t.Errorf("ClampCount(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestGenerateBurstRanges(t *testing.T) {
	req := SpawnRequest{X: 40, Y: 50, Color: Red, Count: 100, Speed: 200, Life: 1.0, Size: 2.0}
	batch := GenerateBurst(req)
	if len(batch) != 100 {
		t.Fatalf("expected 100 particles, got %d", len(batch))
	}
	for i, p := range batch {
		if p.X != 40 || p.Y != 50 {
			t.Errorf("particle %d: expected origin (40, 50), got (%v, %v)", i, p.X, p.Y)
		}
		speed := math.Hypot(p.VX, p.VY)
		if speed < 100-1e-9 || speed >= 200+1e-9 {
			t.Errorf("particle %d: speed %v outside [100, 200)", i, speed)
		}
		if p.Life < 0.6 || p.Life >= 1.0 {
			t.Errorf("particle %d: life %v outside [0.6, 1.0)", i, p.Life)
		}
		if p.Size < 1.2 || p.Size >= 2.4 {
			t.Errorf("particle %d: size %v outside [1.2, 2.4)", i, p.Size)
		}
		if p.Color != Red {
			t.Errorf("particle %d: expected request color", i)
		}
	}
}

func TestGenerateBurstClampsCount(t *testing.T) {
	if got := len(GenerateBurst(SpawnRequest{Count: 0, Life: 1})); got != 1 {
		t.Errorf("expected 1 particle for zero count, got %d", got)
	}
	if got := len(GenerateBurst(SpawnRequest{Count: 10_000, Life: 1})); got != MaxBurstParticles {
		t.Errorf("expected %d particles, got %d", MaxBurstParticles, got)
	}
}

func TestParticleUpdateCullsDead(t *testing.T) {
	ps := NewParticleSystem()
	ps.SpawnBatch([]ParticleInit{{VX: 1, Life: 0.05, Color: White, Size: 1}})
	ps.Update(0.1)
	if ps.Len() != 0 {
		t.Errorf("expected particle culled, got %d", ps.Len())
	}
}

func TestParticleUpdateIntegratesAndFades(t *testing.T) {
	ps := NewParticleSystem()
	ps.SpawnBatch([]ParticleInit{
		{X: 0, Y: 0, VX: 10, VY: -20, Life: 1.0, Size: 1},
		{X: 5, Y: 5, Life: 0.25, Size: 1},
	})
	ps.Update(0.5)

	live := ps.Particles()
	if len(live) != 1 {
		t.Fatalf("expected 1 live particle, got %d", len(live))
	}
	p := live[0]
	if p.X != 5 || p.Y != -10 {
		t.Errorf("expected position (5, -10), got (%v, %v)", p.X, p.Y)
	}
	if a := p.Alpha(); a != 0.5 {
		t.Errorf("expected alpha 0.5, got %v", a)
	}
}

func TestParticleAlphaClamped(t *testing.T) {
	p := Particle{Life: 2, MaxLife: 1}
	if p.Alpha() != 1 {
		t.Errorf("expected alpha clamped to 1, got %v", p.Alpha())
	}
	p = Particle{Life: -1, MaxLife: 1}
	if p.Alpha() != 0 {
		t.Errorf("expected alpha clamped to 0, got %v", p.Alpha())
	}
}

func TestSpawnBatchFloorsMaxLife(t *testing.T) {
	ps := NewParticleSystem()
	ps.SpawnBatch([]ParticleInit{{Life: 0}})
	if got := ps.Particles()[0].MaxLife; got != minParticleLife {
		t.Errorf("expected MaxLife floored to %v, got %v", minParticleLife, got)
	}
}
