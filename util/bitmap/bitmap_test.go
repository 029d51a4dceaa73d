package bitmap_test

import (
	"testing"

	"github.com/simplefs/simplefs/util/bitmap"
)

func TestSetClearIsSet(t *testing.T) {
	bm := bitmap.NewBits(20)
	if set, err := bm.IsSet(5); err != nil || set {
		t.Fatalf("IsSet(5) = %v, %v; want false, nil", set, err)
	}
	if err := bm.Set(5); err != nil {
		t.Fatalf("Set(5): %v", err)
	}
	if set, err := bm.IsSet(5); err != nil || !set {
		t.Fatalf("IsSet(5) after Set = %v, %v; want true, nil", set, err)
	}
	if err := bm.Clear(5); err != nil {
		t.Fatalf("Clear(5): %v", err)
	}
	if set, err := bm.IsSet(5); err != nil || set {
		t.Fatalf("IsSet(5) after Clear = %v, %v; want false, nil", set, err)
	}
}

func TestFirstFree(t *testing.T) {
	bm := bitmap.NewBits(16)
	for _, loc := range []int{0, 1, 2, 3} {
		if err := bm.Set(loc); err != nil {
			t.Fatalf("Set(%d): %v", loc, err)
		}
	}
	if got := bm.FirstFree(0); got != 4 {
		t.Errorf("FirstFree(0) = %d, want 4", got)
	}
	if err := bm.Set(4); err != nil {
		t.Fatalf("Set(4): %v", err)
	}
	if got := bm.FirstFree(0); got != 5 {
		t.Errorf("FirstFree(0) = %d, want 5", got)
	}
}

func TestFirstFreeExhausted(t *testing.T) {
	bm := bitmap.NewBits(8)
	for i := 0; i < 8; i++ {
		_ = bm.Set(i)
	}
	if got := bm.FirstFree(0); got != -1 {
		t.Errorf("FirstFree(0) on full bitmap = %d, want -1", got)
	}
}

func TestCount(t *testing.T) {
	bm := bitmap.NewBits(10)
	for _, loc := range []int{0, 2, 4} {
		_ = bm.Set(loc)
	}
	set, clear := bm.Count(10)
	if set != 3 || clear != 7 {
		t.Errorf("Count = %d set, %d clear; want 3, 7", set, clear)
	}
}

func TestFreeList(t *testing.T) {
	bm := bitmap.NewBits(8)
	_ = bm.Set(0)
	_ = bm.Set(3)
	_ = bm.Set(4)
	list := bm.FreeList()
	want := []bitmap.Contiguous{{Position: 1, Count: 2}, {Position: 5, Count: 3}}
	if len(list) != len(want) {
		t.Fatalf("FreeList = %+v, want %+v", list, want)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("FreeList[%d] = %+v, want %+v", i, list[i], want[i])
		}
	}
}

func TestToBytesFromBytesRoundTrip(t *testing.T) {
	bm := bitmap.NewBits(16)
	_ = bm.Set(1)
	_ = bm.Set(15)
	b := bm.ToBytes()

	bm2 := bitmap.FromBytes(b)
	for _, loc := range []int{1, 15} {
		if set, err := bm2.IsSet(loc); err != nil || !set {
			t.Errorf("IsSet(%d) after round trip = %v, %v; want true, nil", loc, set, err)
		}
	}
	if set, _ := bm2.IsSet(2); set {
		t.Errorf("IsSet(2) after round trip = true, want false")
	}
}
