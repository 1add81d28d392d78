package cookies

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NetscapeFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.txt")
	content := "# Netscape HTTP Cookie File\n" +
		".example.com\tTRUE\t/\tTRUE\t0\tsession\tabc123\n" +
		"#HttpOnly_.example.com\tTRUE\t/\tFALSE\t0\tauth\txyz789\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	jar, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	u := &url.URL{Scheme: "https", Host: "example.com"}
	got := jar.Cookies(u)
	if len(got) != 2 {
		t.Fatalf("Cookies() returned %d cookies, want 2", len(got))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	jar, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	u := &url.URL{Scheme: "https", Host: "example.com"}
	jar.SetCookies(u, []*http.Cookie{{Name: "session", Value: "abc123", Path: "/"}})

	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	if err := jar.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save() error = %v", err)
	}
	if got := reloaded.Cookies(u); len(got) != 1 {
		t.Fatalf("reloaded Cookies() = %d, want 1", len(got))
	}
}
