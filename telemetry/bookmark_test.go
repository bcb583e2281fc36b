package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_MergeFrenzy(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndFrame: int64(i * 600), Population: 15, Merges: 3})
	}

	bookmarks := bd.Check(WindowStats{WindowEndFrame: 3000, Population: 15, Merges: 9})
	if !hasBookmark(bookmarks, BookmarkMergeFrenzy) {
		t.Error("expected merge_frenzy bookmark")
	}
}

func TestBookmarkDetector_PopulationCollapse(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndFrame: int64(i * 600), Population: 40})
	}

	bookmarks := bd.Check(WindowStats{WindowEndFrame: 3000, Population: 20})
	if !hasBookmark(bookmarks, BookmarkPopulationCollapse) {
		t.Fatal("expected population_collapse bookmark")
	}

	// Peak resets, so the same level does not trigger again
	bookmarks = bd.Check(WindowStats{WindowEndFrame: 3600, Population: 20})
	if hasBookmark(bookmarks, BookmarkPopulationCollapse) {
		t.Error("collapse triggered twice for one drop")
	}
}

func TestBookmarkDetector_PopulationBoom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{WindowEndFrame: int64(i * 600), Population: 12})
	}

	bookmarks := bd.Check(WindowStats{WindowEndFrame: 2400, Population: 30})
	if !hasBookmark(bookmarks, BookmarkPopulationBoom) {
		t.Error("expected population_boom bookmark")
	}
}

func TestBookmarkDetector_BlackHoleFeast(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndFrame: 600, Population: 15})
	bookmarks := bd.Check(WindowStats{WindowEndFrame: 1200, Population: 10, BlackHoles: 1, Consumptions: 6})
	if !hasBookmark(bookmarks, BookmarkBlackHoleFeast) {
		t.Error("expected black_hole_feast bookmark")
	}

	bookmarks = bd.Check(WindowStats{WindowEndFrame: 1800, Population: 10, BlackHoles: 1, Consumptions: 2})
	if hasBookmark(bookmarks, BookmarkBlackHoleFeast) {
		t.Error("feast triggered below the threshold")
	}
}

func TestBookmarkDetector_Equilibrium(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggered := -1
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndFrame: int64(i * 600), Population: 20 + i%2})
		if hasBookmark(bookmarks, BookmarkEquilibrium) {
			if triggered >= 0 {
				t.Fatalf("equilibrium triggered again at window %d", i)
			}
			triggered = i
		}
	}
	// Four windows of history, then five steady checks
	if triggered != 8 {
		t.Errorf("equilibrium triggered at window %d, want 8", triggered)
	}
}

func TestBookmarkDetector_RecentWrapsInOrder(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i := 0; i < 7; i++ {
		bd.Check(WindowStats{WindowEndFrame: int64(i)})
	}

	got := bd.recent(3)
	for i, want := range []int64{4, 5, 6} {
		if got[i].WindowEndFrame != want {
			t.Errorf("recent[%d] = %d, want %d", i, got[i].WindowEndFrame, want)
		}
	}
}
