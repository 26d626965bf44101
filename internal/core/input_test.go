package core

import "testing"

func TestInputFrameSelect(t *testing.T) {
	f := NewInputFrame()
	if _, ok := f.Selected(); ok {
		t.Fatal("Empty frame should have no selection")
	}

	f.Set(SelectAction(5))
	f.Set(SelectAction(2))

	idx, ok := f.Selected()
	if !ok || idx != 2 {
		t.Errorf("Selected() = (%d, %v), expected lowest index 2", idx, ok)
	}

	if SelectAction(8) != ActionNone || SelectAction(-1) != ActionNone {
		t.Error("SelectAction out of range should be ActionNone")
	}
	if ActionSelect3.String() != "Select3" {
		t.Errorf("ActionSelect3.String() = %q", ActionSelect3.String())
	}
}

func TestInputFrameClearKeepsPointer(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionConfirm)
	f.MovePointer(12, 7)
	f.Pointer.Click = true

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionConfirm) {
		t.Error("Clear should drop actions")
	}
	if f.Pointer.Click {
		t.Error("Clear should drop clicks")
	}
	if !f.Pointer.Valid || f.Pointer.X != 12 || f.Pointer.Y != 7 {
		t.Errorf("Clear should keep pointer position, got %+v", f.Pointer)
	}
	if !clone.Has(ActionConfirm) || !clone.Pointer.Click {
		t.Error("Clone should be independent of later Clear")
	}
}
