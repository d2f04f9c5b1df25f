package pathx

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// testHome builds a fake home directory and points $HOME at it.
func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	for _, dir := range []string{"Documents", "Downloads", "zeta", ".config"} {
		if err := os.Mkdir(filepath.Join(home, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, file := range []string{"notes.txt", "script.sh", ".hidden.txt"} {
		if err := os.WriteFile(filepath.Join(home, file), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return home
}

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/Documents", filepath.Join(home, "Documents")},
		{"~Documents", filepath.Join(home, "Documents")},
		{"/etc/fstab", "/etc/fstab"},
		{"relative/path", "relative/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollapseTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{home, "~"},
		{filepath.Join(home, "notes.txt"), "~/notes.txt"},
		{"/etc/fstab", "/etc/fstab"},
		{home + "sibling", home + "sibling"},
	}
	for _, tt := range tests {
		if got := CollapseTilde(tt.in); got != tt.want {
			t.Errorf("CollapseTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListMatchesPrefix(t *testing.T) {
	testHome(t)

	got := List("~/Do", true)
	want := []string{"~/Documents", "~/Downloads"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List(~/Do) = %v, want %v", got, want)
	}
}

func TestListWholeDirectorySkipsHidden(t *testing.T) {
	testHome(t)

	got := List("~/", true)
	want := []string{"~/Documents", "~/Downloads", "~/zeta", "~/notes.txt", "~/script.sh"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List(~/) = %v, want %v", got, want)
	}
}

func TestListPlainAlphabetical(t *testing.T) {
	testHome(t)

	got := List("~/", false)
	want := []string{"~/Documents", "~/Downloads", "~/notes.txt", "~/script.sh", "~/zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List(~/) = %v, want %v", got, want)
	}
}

func TestListDotPrefixShowsHidden(t *testing.T) {
	testHome(t)

	got := List("~/.con", true)
	want := []string{"~/.config"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List(~/.con) = %v, want %v", got, want)
	}
}

func TestListSubsequenceNotPrefix(t *testing.T) {
	testHome(t)

	// "nt" occurs in order in Documents and notes.txt only.
	got := List("~/nt", true)
	want := []string{"~/Documents", "~/notes.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List(~/nt) = %v, want %v", got, want)
	}
}

func TestListAbsoluteInputKeepsAbsoluteOutput(t *testing.T) {
	home := testHome(t)

	got := List(filepath.Join(home, "no"), true)
	want := []string{filepath.Join(home, "notes.txt")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List(%s/no) = %v, want %v", home, got, want)
	}
}

func TestListUnreadableDirectory(t *testing.T) {
	testHome(t)

	if got := List("~/nope/x", true); len(got) != 0 {
		t.Errorf("List on missing directory = %v, want empty", got)
	}
}

func TestIsDir(t *testing.T) {
	testHome(t)

	if !IsDir("~/Documents") {
		t.Error("IsDir(~/Documents) = false, want true")
	}
	if IsDir("~/notes.txt") {
		t.Error("IsDir(~/notes.txt) = true, want false")
	}
	if IsDir("~/missing") {
		t.Error("IsDir(~/missing) = true, want false")
	}
}
