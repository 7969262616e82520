package types

import "testing"

func TestNewPagination(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		name  string
		page  int
		limit int
		total int64
		pages int
	}{
		{"exact fit", 1, 10, 20, 2},
		{"remainder rounds up", 2, 10, 25, 3},
		{"single partial page", 1, 12, 5, 1},
		{"empty", 1, 10, 0, 0},
		{"zero limit", 1, 0, 40, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			if p.Pages != tc.pages {
				t.Fatalf("pages: got=%d want=%d", p.Pages, tc.pages)
			}
			if p.Page != tc.page || p.Limit != tc.limit || p.Total != tc.total {
				t.Fatalf("echoed fields wrong: %+v", p)
			}
		})
	}
}
