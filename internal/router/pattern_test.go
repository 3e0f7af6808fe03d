package router_test

import (
	"testing"

	"slaved/internal/router"
)

func TestCompileRejectsMalformedPatterns(t *testing.T) {
	bad := []string{
		"framework/{id:num}",            // missing leading slash
		"/framework/{id}",               // placeholder without kind
		"/framework/{id:guid}",          // unknown kind
		"/framework/{id:num",            // unterminated
		"/static/{filename:rest}/extra", // rest not final
		"//double",                      // empty segment
		"/a/{x:num}/{x:lower}",          // duplicate name
	}
	for _, pattern := range bad {
		if _, err := router.Compile(pattern); err == nil {
			t.Errorf("Compile(%q) should fail", pattern)
		}
	}
}

func TestNumericSegmentMatching(t *testing.T) {
	pattern, err := router.Compile("/framework/{id:num}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	cases := []struct {
		path  string
		match bool
		id    int64
	}{
		{"/framework/42", true, 42},
		{"/framework/0", true, 0},
		{"/framework/007", true, 7},
		{"/framework/", false, 0},
		{"/framework/4x2", false, 0},
		{"/framework/-1", false, 0},
		{"/framework/42/extra", false, 0},
		{"/framework", false, 0},
	}
	for _, tc := range cases {
		params, ok := pattern.Match(tc.path)
		if ok != tc.match {
			t.Errorf("Match(%q) = %v, want %v", tc.path, ok, tc.match)
			continue
		}
		if !tc.match {
			continue
		}
		id, err := params.Int("id")
		if err != nil {
			t.Errorf("Int(id) for %q: %v", tc.path, err)
			continue
		}
		if id != tc.id {
			t.Errorf("Match(%q) id = %d, want %d", tc.path, id, tc.id)
		}
	}
}

func TestAlphaSegmentMatching(t *testing.T) {
	pattern, err := router.Compile("/log/{level:upper}/{lines:num}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	params, ok := pattern.Match("/log/INFO/100")
	if !ok {
		t.Fatal("expected match")
	}
	if params.Get("level") != "INFO" {
		t.Fatalf("unexpected level: %q", params.Get("level"))
	}
	if lines, err := params.Int("lines"); err != nil || lines != 100 {
		t.Fatalf("unexpected lines: %d (%v)", lines, err)
	}

	for _, path := range []string{"/log/info/100", "/log/Info/100", "/log/IN2FO/100", "/log//100"} {
		if _, ok := pattern.Match(path); ok {
			t.Errorf("Match(%q) should fail", path)
		}
	}

	lower, err := router.Compile("/framework-logs/{fid:num}/{type:lower}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, ok := lower.Match("/framework-logs/3/stdout"); !ok {
		t.Fatal("expected lowercase match")
	}
	if _, ok := lower.Match("/framework-logs/3/STDOUT"); ok {
		t.Fatal("uppercase must not match a lower segment")
	}
}

func TestRestSegmentSpansSlashes(t *testing.T) {
	pattern, err := router.Compile("/static/{filename:rest}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	params, ok := pattern.Match("/static/css/site/main.css")
	if !ok {
		t.Fatal("expected match")
	}
	if params.Get("filename") != "css/site/main.css" {
		t.Fatalf("unexpected filename: %q", params.Get("filename"))
	}
}

func TestRootPattern(t *testing.T) {
	pattern, err := router.Compile("/")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, ok := pattern.Match("/"); !ok {
		t.Fatal("root must match /")
	}
	if _, ok := pattern.Match("/anything"); ok {
		t.Fatal("root must not match other paths")
	}
}
