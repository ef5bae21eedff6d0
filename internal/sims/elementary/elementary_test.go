package elementary

import "testing"

func TestRule90SierpinskiRow(t *testing.T) {
	e := New(9, 3, 90)
	e.Reset(0)
	e.Step()

	row := e.Cells()[:9]
	want := []uint8{0, 0, 0, 1, 0, 1, 0, 0, 0}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("row = %v, want %v", row, want)
		}
	}
	// The seed row scrolls down by one.
	if e.Cells()[9+4] != 1 {
		t.Fatal("previous generation should scroll into the second row")
	}
}

func TestFromMapRejectsOutOfRangeRule(t *testing.T) {
	c := FromMap(map[string]string{"rule": "300"})
	if c.Rule != DefaultConfig().Rule {
		t.Fatalf("rule = %d, want default %d", c.Rule, DefaultConfig().Rule)
	}
	c = FromMap(map[string]string{"rule": "30", "w": "64"})
	if c.Rule != 30 || c.Width != 64 {
		t.Fatalf("unexpected config %+v", c)
	}
}
