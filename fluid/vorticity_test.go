package fluid

import "testing"

// setVortex seeds a solid-body rotation around (cx, cy).
func setVortex(s *Solver, cx, cy, strength float32) {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x <= s.Width(); x++ {
			// u on the left face, located at (x, y+0.5)
			s.SetU(x, y, -strength*(float32(y)+0.5-cy))
		}
	}
	for y := 0; y <= s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			// v on the top face, located at (x+0.5, y)
			s.SetV(x, y, strength*(float32(x)+0.5-cx))
		}
	}
}

func TestComputeVorticityRigidRotation(t *testing.T) {
	s := openAll(t, 12, 12)
	setVortex(s, 6, 6, 0.5)

	w := s.ComputeVorticity()

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			got := w[y*12+x]
			if x == 0 || y == 0 || x == 11 || y == 11 {
				if got != 0 {
					t.Errorf("edge cell (%d,%d) vorticity %g, want 0", x, y, got)
				}
				continue
			}
			// curl of (-k y, k x) is 2k
			if !approx(got, 1, 1e-4) {
				t.Errorf("cell (%d,%d) vorticity %g, want 1", x, y, got)
			}
		}
	}
}

func TestConfineUniformVorticityIsNoop(t *testing.T) {
	s := openAll(t, 12, 12)
	s.p.Confinement = 10
	setVortex(s, 6, 6, 0.5)
	u := append([]float32(nil), s.u...)

	// |w| only varies next to the zero edge ring
	s.Confine()

	for y := 3; y < 9; y++ {
		for x := 3; x < 9; x++ {
			i := y*13 + x
			if !approx(s.u[i], u[i], 1e-5) {
				t.Errorf("u(%d,%d) changed from %g to %g", x, y, u[i], s.u[i])
			}
		}
	}
}

func TestConfineModifiesVortexEdge(t *testing.T) {
	s := openAll(t, 16, 16)
	s.p.Confinement = 10
	// localised spin in the middle of a still field
	for y := 6; y < 10; y++ {
		for x := 6; x <= 10; x++ {
			s.SetU(x, y, -(float32(y) + 0.5 - 8))
		}
	}
	for y := 6; y <= 10; y++ {
		for x := 6; x < 10; x++ {
			s.SetV(x, y, float32(x)+0.5-8)
		}
	}
	before := s.KineticEnergy()

	s.Confine()

	if s.KineticEnergy() == before {
		t.Error("expected confinement to change the field around a vortex")
	}
}

func TestConfineSkipsSolidFaces(t *testing.T) {
	p := testParams(16, 16, LayoutClosed)
	p.Confinement = 10
	s := newTestSolver(t, p)
	s.PlaceCircle(8, 8, 2)
	setVortex(s, 5, 5, 1)
	s.Enforce()

	s.Confine()

	for _, c := range s.Boundaries() {
		if f := s.readFaces(c.X, c.Y); f != (cellFaces{}) {
			t.Fatalf("static (%d,%d) faces %+v after confinement", c.X, c.Y, f)
		}
	}
}
