package arbor

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-iteration physics metrics. Only populated when the
// scene is in debug mode.
type debugStats struct {
	stepTime       time.Duration
	layerCount     int
	objectCount    int
	rigidBodyRoots int
}

// debugLog prints physics iteration stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.DebugMode() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[arbor] step: %v | layers: %d | objects: %d | rigid body roots: %d\n",
		stats.stepTime, stats.layerCount, stats.objectCount, stats.rigidBodyRoots)
}

// debugMaxTreeDepth is the depth past which debug mode warns about an object
// tree. Deep trees make world transform recomputation expensive.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[arbor] warning: tree depth %d exceeds %d (object %d)\n",
			depth, debugMaxTreeDepth, n.id)
	}
}

// debugStatsLocked gathers this layer's contribution to the iteration stats.
func (l *Layer) debugStatsLocked(stats *debugStats) {
	stats.layerCount++
	stats.objectCount += len(l.objects)
	stats.rigidBodyRoots += len(l.rigidBodyRoots)
}
