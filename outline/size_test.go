package outline

import (
	"strings"
	"testing"

	"github.com/tsawler/contour/model"
)

// wordsSpan builds a span whose text holds exactly n words at the given
// size, for exercising word-count tallies.
func wordsSpan(page int, size float64, n int) model.Span {
	return model.Span{
		Page:      page,
		Text:      strings.TrimSpace(strings.Repeat("w ", n)),
		FontSize:  size,
		LineSpans: 1,
	}
}

func TestSizeSelectExcludesBodySize(t *testing.T) {
	// 12pt carries the bulk of the words and must be treated as body
	// text; 24pt and 18pt become the top two heading buckets.
	spans := []model.Span{
		wordsSpan(1, 24.0, 10),
		wordsSpan(1, 12.0, 500),
		wordsSpan(2, 18.0, 40),
	}
	buckets := NewSizeStrategy().Select(spans)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(buckets), buckets)
	}
	if buckets[0].Size != 24.0 || buckets[0].Rank != 0 {
		t.Errorf("rank 0 bucket = %+v, want size 24", buckets[0])
	}
	if buckets[1].Size != 18.0 || buckets[1].Rank != 1 {
		t.Errorf("rank 1 bucket = %+v, want size 18", buckets[1])
	}
	if buckets[0].Key != "24.0" {
		t.Errorf("bucket key = %q, want %q", buckets[0].Key, "24.0")
	}
	if buckets[0].MemberCount != 10 || buckets[1].MemberCount != 40 {
		t.Errorf("member counts = %d, %d, want 10, 40", buckets[0].MemberCount, buckets[1].MemberCount)
	}
}

func TestSizeSelectCapsAtMaxLevel(t *testing.T) {
	// Five sizes: one body plus four candidates. Only the three largest
	// candidates may become buckets.
	spans := []model.Span{
		wordsSpan(1, 10.0, 900),
		wordsSpan(1, 24.0, 4),
		wordsSpan(1, 20.0, 4),
		wordsSpan(1, 16.0, 4),
		wordsSpan(1, 14.0, 4),
	}
	buckets := NewSizeStrategy().Select(spans)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	want := []float64{24.0, 20.0, 16.0}
	for i, b := range buckets {
		if b.Size != want[i] {
			t.Errorf("bucket %d size = %v, want %v", i, b.Size, want[i])
		}
	}
}

func TestSizeSelectBodyTieKeepsFirstSeen(t *testing.T) {
	// 12pt and 14pt tie on word count; 12pt was seen first, so it is the
	// body size and 14pt stays a heading candidate.
	spans := []model.Span{
		wordsSpan(1, 12.0, 100),
		wordsSpan(1, 14.0, 100),
		wordsSpan(1, 20.0, 5),
	}
	buckets := NewSizeStrategy().Select(spans)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(buckets), buckets)
	}
	if buckets[0].Size != 20.0 || buckets[1].Size != 14.0 {
		t.Errorf("bucket sizes = %v, %v, want 20, 14", buckets[0].Size, buckets[1].Size)
	}
}

func TestSizeSelectRoundsToOneDecimal(t *testing.T) {
	// 11.96 and 12.04 collapse into the 12.0 bucket.
	spans := []model.Span{
		wordsSpan(1, 11.96, 30),
		wordsSpan(1, 12.04, 30),
		wordsSpan(1, 17.98, 2),
	}
	buckets := NewSizeStrategy().Select(spans)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket after body removal, got %d: %+v", len(buckets), buckets)
	}
	if buckets[0].Size != 18.0 || buckets[0].Key != "18.0" {
		t.Errorf("bucket = %+v, want rounded size 18.0", buckets[0])
	}
}

func TestSizeSelectEmpty(t *testing.T) {
	if buckets := NewSizeStrategy().Select(nil); buckets != nil {
		t.Errorf("Select(nil) = %+v, want nil", buckets)
	}
	// A single size is consumed entirely by body removal.
	spans := []model.Span{wordsSpan(1, 12.0, 40), wordsSpan(2, 12.0, 60)}
	if buckets := NewSizeStrategy().Select(spans); len(buckets) != 0 {
		t.Errorf("single-size Select = %+v, want empty", buckets)
	}
}

func TestSizeAssign(t *testing.T) {
	st := NewSizeStrategy()
	buckets := []model.SignalBucket{
		{Key: "24.0", Size: 24.0, Rank: 0},
		{Key: "18.0", Size: 18.0, Rank: 1},
	}
	tests := []struct {
		name      string
		size      float64
		wantLevel int
		wantOK    bool
	}{
		{"rank 0 bucket", 24.0, 1, true},
		{"rank 1 bucket", 18.0, 2, true},
		{"rounds before matching", 23.96, 1, true},
		{"body size", 12.0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := st.Assign(model.Span{Text: "X", FontSize: tt.size}, buckets, 612)
			if level != tt.wantLevel || ok != tt.wantOK {
				t.Errorf("Assign(size=%v) = (%d, %v), want (%d, %v)",
					tt.size, level, ok, tt.wantLevel, tt.wantOK)
			}
		})
	}
}

func TestSizeAssignRespectsMaxLevel(t *testing.T) {
	// Buckets ranked past MaxLevel never yield entries, even if a caller
	// hands Assign a deeper bucket list than Select would produce.
	st := NewSizeStrategy()
	buckets := []model.SignalBucket{
		{Size: 24.0, Rank: 0}, {Size: 20.0, Rank: 1},
		{Size: 18.0, Rank: 2}, {Size: 16.0, Rank: 3},
	}
	if level, ok := st.Assign(model.Span{Text: "X", FontSize: 16.0}, buckets, 0); ok {
		t.Errorf("Assign for rank-3 bucket = (%d, true), want rejection", level)
	}
	if level, ok := st.Assign(model.Span{Text: "X", FontSize: 18.0}, buckets, 0); !ok || level != 3 {
		t.Errorf("Assign for rank-2 bucket = (%d, %v), want (3, true)", level, ok)
	}
}
