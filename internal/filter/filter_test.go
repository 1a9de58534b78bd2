package filter

import "testing"

func TestSet_Match_Table(t *testing.T) {
	s, err := New([]string{"*.tmp", "*/.git/**"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"scratch.tmp", false},
		{"project/.git/HEAD", false},
		{"project/src/main.go", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := s.Match(tt.path)
			if got != tt.want {
				t.Fatalf("Match(%q): want %v, got %v", tt.path, tt.want, got)
			}
		})
	}
}

func TestNew_RejectsMalformedPattern(t *testing.T) {
	if _, err := New([]string{"["}); err == nil {
		t.Fatal("want error for malformed glob pattern")
	}
}

func TestNew_EmptyPatternsMatchesEverything(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Match("anything/at/all.txt") {
		t.Fatal("want empty pattern set to match everything")
	}
}
