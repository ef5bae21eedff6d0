package briansbrain

import "testing"

func TestFiringCellsDecay(t *testing.T) {
	b := New(6, 6)
	b.Cells()[b.w*2+2] = stateOn

	b.Step()
	if got := b.Cells()[b.w*2+2]; got != stateDying {
		t.Fatalf("firing cell became %d, want dying", got)
	}
	b.Step()
	if got := b.Cells()[b.w*2+2]; got != stateDead {
		t.Fatalf("dying cell became %d, want dead", got)
	}
}

func TestFactoryDefaults(t *testing.T) {
	sim := Factory(nil)
	if s := sim.Size(); s.W != 256 || s.H != 256 {
		t.Fatalf("size = %+v, want 256x256", s)
	}
	sim.Reset(3)
	firing := 0
	for _, c := range sim.Cells() {
		if c == stateOn {
			firing++
		}
	}
	if firing == 0 {
		t.Fatal("reset should seed some firing cells")
	}
}
