package pagination

import "testing"

func TestGetMeta(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of many", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty", 1, 20, 0, 0, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := GetMeta(&Params{Page: tc.page, Limit: tc.limit}, tc.total)
			if meta.TotalPages != tc.totalPages {
				t.Errorf("total pages = %d, want %d", meta.TotalPages, tc.totalPages)
			}
			if meta.HasNext != tc.hasNext {
				t.Errorf("has_next = %v, want %v", meta.HasNext, tc.hasNext)
			}
			if meta.HasPrev != tc.hasPrev {
				t.Errorf("has_prev = %v, want %v", meta.HasPrev, tc.hasPrev)
			}
		})
	}
}
