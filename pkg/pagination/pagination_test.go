package pagination

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   error
	}{
		{"defaults", "", DefaultPage, DefaultLimit, nil},
		{"explicit page and limit", "page=3&limit=25", 3, 25, nil},
		{"limit at maximum", "limit=100", DefaultPage, 100, nil},
		{"limit above maximum", "limit=101", 0, 0, ErrInvalidLimit},
		{"limit zero", "limit=0", 0, 0, ErrInvalidLimit},
		{"page zero", "page=0", 0, 0, ErrInvalidPage},
		{"negative page", "page=-1", 0, 0, ErrInvalidPage},
		{"non-numeric page", "page=abc", 0, 0, ErrInvalidPage},
		{"bad sort order", "sortOrder=sideways", 0, 0, ErrInvalidSortOrder},
		{"valid sort order", "sortOrder=desc", DefaultPage, DefaultLimit, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tt.query, nil)
			params, err := Parse(r)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if params.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", params.Page, tt.wantPage)
			}
			if params.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", params.Limit, tt.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := &Params{Page: 3, Limit: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestBuild(t *testing.T) {
	pg := Build(2, 10, 35)

	if pg.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", pg.TotalPages)
	}
	if !pg.HasNextPage || !pg.HasPrevPage {
		t.Errorf("HasNextPage = %v, HasPrevPage = %v, want both true", pg.HasNextPage, pg.HasPrevPage)
	}
	if pg.NextPage == nil || *pg.NextPage != 3 {
		t.Errorf("NextPage = %v, want 3", pg.NextPage)
	}
	if pg.PrevPage == nil || *pg.PrevPage != 1 {
		t.Errorf("PrevPage = %v, want 1", pg.PrevPage)
	}
}

func TestBuildLastPage(t *testing.T) {
	pg := Build(4, 10, 35)

	if pg.HasNextPage {
		t.Error("HasNextPage = true on last page")
	}
	if pg.NextPage != nil {
		t.Errorf("NextPage = %v, want nil", pg.NextPage)
	}
}
