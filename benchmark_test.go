package arbor

import (
	"testing"
)

// setupBenchLayer creates a layer with n plain objects in a 100-wide grid.
func setupBenchLayer(b *testing.B, n int) *Layer {
	b.Helper()
	l := NewScene().RootLayer().NewLayer()
	for i := 0; i < n; i++ {
		o := NewObject()
		o.Transform.Position = Vec2{X: float64(i%100) * 2, Y: float64(i/100) * 2}
		if err := o.Init(l); err != nil {
			b.Fatal(err)
		}
	}
	return l
}

// --- Tree benchmarks ---

func BenchmarkInit_1000Objects(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		setupBenchLayer(b, 1000)
	}
}

func BenchmarkDrawOrder_10000Objects(b *testing.B) {
	l := setupBenchLayer(b, 10000)
	l.DrawOrder() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.DrawOrder()
	}
}

func BenchmarkWorldTransform_DeepChain(b *testing.B) {
	l := NewScene().RootLayer().NewLayer()
	leaf := NewObject()
	leaf.Transform.Position = Vec2{1, 0}
	if err := leaf.Init(l); err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 31; i++ {
		child := NewObject()
		child.Transform.Position = Vec2{1, 0}
		parent := leaf
		if err := child.InitWithParent(parent); err != nil {
			b.Fatal(err)
		}
		leaf = child
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := leaf.WorldTransform(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSync(b *testing.B) {
	l := NewScene().RootLayer().NewLayer()
	o := NewObject()
	if err := o.Init(l); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		o.Transform.Position.X = float64(i)
		if err := o.Sync(); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Physics benchmarks ---

func setupBenchBodies(b *testing.B, n int) *Layer {
	b.Helper()
	l := NewScene().RootLayer().NewLayer()
	ground := NewObject()
	ground.Transform.Position = Vec2{X: 0, Y: 50}
	ground.SetCollider(NewCollider(BoxShape(1000, 2)))
	if err := ground.Init(l); err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		o := NewObject()
		o.Transform.Position = Vec2{X: float64(i%30) * 3, Y: float64(i/30) * 3}
		o.SetCollider(NewCollider(BoxShape(1, 1)))
		o.SetRigidBody(NewRigidBody(BodyDynamic))
		if err := o.Init(l); err != nil {
			b.Fatal(err)
		}
	}
	return l
}

func BenchmarkPhysicsStep_100Bodies(b *testing.B) {
	l := setupBenchBodies(b, 100)
	l.physicsIteration(nil) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.physicsIteration(nil)
	}
}

func BenchmarkQueryNearestCollider(b *testing.B) {
	l := setupBenchBodies(b, 100)
	l.physicsIteration(nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.QueryNearestColliderAt(Vec2{X: float64(i % 90), Y: 5})
	}
}

func BenchmarkCastRay(b *testing.B) {
	l := setupBenchBodies(b, 100)
	l.physicsIteration(nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.CastRay(Vec2{X: -10, Y: 5}, Vec2{X: 1, Y: 0}, 200, true)
	}
}
