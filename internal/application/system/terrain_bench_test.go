package system

import (
	"testing"

	"github.com/younwookim/legion/internal/infrastructure/config"
)

func BenchmarkTerrainProbe(b *testing.B) {
	terrain := NewTerrain(&config.DefaultRules().Physics, testStage(b))
	f := testFighter(1, "Mario", 1, 40)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_ = terrain.CanFall(f)
		_ = terrain.CanMove(f, 1, 0)
	}
}
