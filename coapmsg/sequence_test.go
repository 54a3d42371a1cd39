package coapmsg

import "testing"

func collectNums(s *OptionSequence) []OptionNumber {
	var out []OptionNumber
	for opt := s.First(); opt != nil; opt = opt.Next() {
		out = append(out, opt.Num)
	}
	return out
}

func TestOptionSequenceAppendLast(t *testing.T) {
	s := &OptionSequence{}
	s.AppendLast(11, []byte("a"))
	s.AppendLast(12, []byte("b"))
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if got := collectNums(s); got[0] != 11 || got[1] != 12 {
		t.Fatalf("unexpected order: %v", got)
	}
	if s.Last().Num != 12 {
		t.Fatalf("Last().Num = %d, want 12", s.Last().Num)
	}
}

func TestOptionSequenceInsertOrderedHeadCase(t *testing.T) {
	// Open Question 1: inserting a number smaller than everything
	// already present must land at the head, not the tail.
	s := &OptionSequence{}
	s.InsertOrdered(11, []byte("a"))
	s.InsertOrdered(12, []byte("b"))
	s.InsertOrdered(3, []byte("c"))

	got := collectNums(s)
	want := []OptionNumber{3, 11, 12}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if s.First().Num != 3 {
		t.Fatalf("First().Num = %d, want 3", s.First().Num)
	}
}

func TestOptionSequenceInsertOrderedKeepsTiesInInsertionOrder(t *testing.T) {
	s := &OptionSequence{}
	s.InsertOrdered(11, []byte("x"))
	s.InsertOrdered(11, []byte("y"))

	opt := s.First()
	if opt == nil || string(opt.Value) != "x" {
		t.Fatalf("expected first tied option to be 'x'")
	}
	opt = opt.Next()
	if opt == nil || string(opt.Value) != "y" {
		t.Fatalf("expected second tied option to be 'y'")
	}
}

func TestOptionSequenceInsertOrderedMiddle(t *testing.T) {
	s := &OptionSequence{}
	s.InsertOrdered(1, nil)
	s.InsertOrdered(10, nil)
	s.InsertOrdered(5, nil)

	got := collectNums(s)
	want := []OptionNumber{1, 5, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if s.Last().Num != 10 {
		t.Fatalf("Last().Num = %d, want 10", s.Last().Num)
	}
}

func TestOptionSequenceRemoveMatching(t *testing.T) {
	s := &OptionSequence{}
	s.AppendLast(1, []byte("a"))
	s.AppendLast(2, []byte("b"))
	s.AppendLast(1, []byte("c"))

	s.removeMatching(1)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.First().Num != 2 {
		t.Fatalf("expected only option 2 to remain")
	}
}

func TestOptionSequenceCloneIsIndependent(t *testing.T) {
	s := &OptionSequence{}
	s.AppendLast(1, []byte("a"))
	clone := s.clone()
	s.AppendLast(2, []byte("b"))

	if clone.Len() != 1 {
		t.Fatalf("clone.Len() = %d, want 1 (clone must not see later mutations)", clone.Len())
	}
}

func TestOptionSequenceNilIsSafe(t *testing.T) {
	var s *OptionSequence
	if s.Len() != 0 {
		t.Fatalf("nil sequence Len() = %d, want 0", s.Len())
	}
	if s.First() != nil || s.Last() != nil {
		t.Fatalf("nil sequence First()/Last() must be nil")
	}
}
