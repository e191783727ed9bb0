package efkt

import "testing"

func TestRunScopedReturnsBodyResult(t *testing.T) {
	calls := 0
	m := runScoped(func() Either[string, int] {
		calls++
		return Right[string, int](9)
	})
	result := m(func(e Either[string, int]) Resumed { return e })
	either := result.(Either[string, int])
	if !either.IsRight() {
		t.Fatal("expected Right")
	}
	v, _ := either.GetRight()
	if v != 9 {
		t.Fatalf("v = %v, want 9", v)
	}
	if calls != 1 {
		t.Fatalf("body ran %d times, want 1", calls)
	}
}

func TestRunScopedPropagatesLeft(t *testing.T) {
	m := runScoped(func() Either[string, int] {
		return Left[string, int]("broken")
	})
	result := m(func(e Either[string, int]) Resumed { return e })
	either := result.(Either[string, int])
	if !either.IsLeft() {
		t.Fatal("expected Left")
	}
	errVal, _ := either.GetLeft()
	if errVal != "broken" {
		t.Fatalf("errVal = %v, want broken", errVal)
	}
}

func TestDeferOpTagAndOpcode(t *testing.T) {
	var op deferOp[string, int]
	if op.Tag() != TagDefer {
		t.Fatal("deferOp.Tag() must be TagDefer")
	}
	if op.Opcode() != 0 {
		t.Fatalf("Opcode() = %v, want 0", op.Opcode())
	}
}

func TestRunScopedRunsCleanupExactlyOnceViaBracketPattern(t *testing.T) {
	acquired, released := 0, 0
	m := runScoped(func() Either[string, int] {
		acquired++
		defer func() { released++ }()
		return Right[string, int](1)
	})
	m(func(e Either[string, int]) Resumed { return e })
	if acquired != 1 || released != 1 {
		t.Fatalf("acquired=%d released=%d, want 1 and 1", acquired, released)
	}
}
