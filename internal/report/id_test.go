package report

import (
	"testing"
	"time"
)

func TestComputeRunID_Deterministic(t *testing.T) {
	when := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	a := ComputeRunID("/repo", "a.py", "pytest a.py", when)
	b := ComputeRunID("/repo", "a.py", "pytest a.py", when)

	if a != b {
		t.Errorf("same inputs produced %s and %s", a, b)
	}
	if len(a) != 12 {
		t.Errorf("len = %d, want 12", len(a))
	}
}

func TestComputeRunID_InputsDistinguished(t *testing.T) {
	when := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	base := ComputeRunID("/repo", "a.py", "pytest", when)

	variants := []string{
		ComputeRunID("/other", "a.py", "pytest", when),
		ComputeRunID("/repo", "b.py", "pytest", when),
		ComputeRunID("/repo", "a.py", "make check", when),
		ComputeRunID("/repo", "a.py", "pytest", when.Add(time.Second)),
	}

	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base ID %s", i, base)
		}
	}
}

func TestComputeRunID_NoConcatenationAmbiguity(t *testing.T) {
	when := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// Shifting a character across the field boundary must change the ID.
	a := ComputeRunID("/repoa", ".py", "pytest", when)
	b := ComputeRunID("/repo", "a.py", "pytest", when)
	if a == b {
		t.Error("field boundary ambiguity detected")
	}
}
