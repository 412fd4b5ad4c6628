package normalize

import "testing"

func TestEmail(t *testing.T) {
	if got := Email("  Ada@Example.EDU "); got != "ada@example.edu" {
		t.Errorf("Email = %q", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := map[string]string{
		"  plain  ":                       "plain",
		"<b>bold</b> move":                "bold move",
		"<script>alert(1)</script>Chess":  "Chess",
		"Tom &amp; Jerry":                 "Tom & Jerry",
		`<a href="javascript:x()">go</a>`: "go",
		"<p></p>":                         "",
	}
	for in, want := range tests {
		if got := PlainText(in); got != want {
			t.Errorf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestName(t *testing.T) {
	if got := Name("  Ada \n  Lovelace "); got != "Ada Lovelace" {
		t.Errorf("Name = %q", got)
	}
}

func TestCategory(t *testing.T) {
	for _, in := range []string{"sports", "SPORTS", " Sports ", "<i>sports</i>"} {
		if got := Category(in); got != "Sports" {
			t.Errorf("Category(%q) = %q, want Sports", in, got)
		}
	}
	if got := Category("board games"); got != "Board Games" {
		t.Errorf("Category = %q", got)
	}
	if got := Category("   "); got != "" {
		t.Errorf("blank Category = %q", got)
	}
}

func TestCategoryFilter(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"all":    "",
		" ALL ":  "",
		"sports": "Sports",
	}
	for in, want := range tests {
		if got := CategoryFilter(in); got != want {
			t.Errorf("CategoryFilter(%q) = %q, want %q", in, got, want)
		}
	}
}
