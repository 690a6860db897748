package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileWritable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "chars.dict.yaml")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckFileWritable("target", f); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckFileWritable("target", dir); r.Passed {
		t.Fatal("expected failure for directory")
	}
	if r := CheckFileWritable("target", filepath.Join(dir, "missing")); r.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestRunAllInPlaceChecksEachDirectoryOnce(t *testing.T) {
	dir := t.TempDir()
	var targets []string
	for _, name := range []string{"a.txt", "b.txt"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		targets = append(targets, p)
	}

	results := RunAll(Request{InPlace: true, Targets: targets, StateDir: t.TempDir()})
	// state dir + one target dir + two target files
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	if failed, ok := FirstFailure(results); ok {
		t.Fatalf("unexpected failure: %+v", failed)
	}
}

func TestRunAllOutputDirMode(t *testing.T) {
	results := RunAll(Request{OutputDir: filepath.Join(t.TempDir(), "missing")})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	failed, ok := FirstFailure(results)
	if !ok || failed.Name != "Output directory" {
		t.Fatalf("expected output directory failure, got %+v", failed)
	}
}

func TestRunAllInPlaceChecksSymlinkTarget(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}
	base := t.TempDir()
	store := filepath.Join(base, "store")
	links := filepath.Join(base, "links")
	for _, d := range []string{store, links} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	target := filepath.Join(store, "a.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(links, "a.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(store, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(store, 0o755) })

	results := RunAll(Request{InPlace: true, Targets: []string{link}})
	failed, ok := FirstFailure(results)
	if !ok || failed.Name != "Target directory" {
		t.Fatalf("expected read-only store directory to fail, got %+v", results)
	}
}
