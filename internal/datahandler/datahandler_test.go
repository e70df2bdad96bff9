package datahandler

import (
	"os"
	"path/filepath"
	"testing"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func TestWriteReadRoundTrip(t *testing.T) {
	withTempHome(t)
	if err := Write("speakers/alice/speaker.json", []byte(`{"name":"alice"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := Read("speakers/alice/speaker.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != `{"name":"alice"}` {
		t.Fatalf("Read = %q, want %q", data, `{"name":"alice"}`)
	}
}

func TestReadMissingFile(t *testing.T) {
	withTempHome(t)
	if _, err := Read("nope.txt"); err == nil {
		t.Fatal("expected error reading missing file")
	}
}

func TestListSortedWithDirSuffix(t *testing.T) {
	withTempHome(t)
	Write("speakers/bob/speaker.json", []byte("{}"))
	Write("settings.toml", []byte("model = \"gpt\""))

	items, err := List(".")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"settings.toml", "speakers/"}
	if len(items) != len(want) {
		t.Fatalf("List = %v, want %v", items, want)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("List = %v, want %v", items, want)
		}
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	withTempHome(t)
	items, err := List("nowhere")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("List = %v, want empty", items)
	}
}

func TestRenameMovesWithinParent(t *testing.T) {
	withTempHome(t)
	Write("a.txt", []byte("hello"))
	newPath, err := Rename("a.txt", "b.txt")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if newPath != "b.txt" {
		t.Fatalf("Rename returned %q, want %q", newPath, "b.txt")
	}
	if _, err := Read("b.txt"); err != nil {
		t.Fatalf("Read renamed file: %v", err)
	}
}

func TestRenameRejectsExistingTarget(t *testing.T) {
	withTempHome(t)
	Write("a.txt", []byte("1"))
	Write("b.txt", []byte("2"))
	if _, err := Rename("a.txt", "b.txt"); err == nil {
		t.Fatal("expected error renaming onto an existing file")
	}
}

func TestDeleteFileAndTree(t *testing.T) {
	withTempHome(t)
	Write("dir/file.txt", []byte("x"))
	if err := Delete("dir"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := Read("dir/file.txt"); err == nil {
		t.Fatal("expected file gone after deleting its directory")
	}
}

func TestCopyFileIntoTargetDir(t *testing.T) {
	home := withTempHome(t)
	Write("source.pdf", []byte("pdf-bytes"))
	if err := Copy("source.pdf", "speakers/alice"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	copied, err := os.ReadFile(filepath.Join(home, ".moves", "speakers", "alice", "source.pdf"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(copied) != "pdf-bytes" {
		t.Fatalf("copied content = %q", copied)
	}
}

func TestCopyFromAbsoluteSourceOutsideRoot(t *testing.T) {
	home := withTempHome(t)
	outside := t.TempDir()
	sourcePath := filepath.Join(outside, "slides.pdf")
	if err := os.WriteFile(sourcePath, []byte("outside-bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := CopyFrom(sourcePath, "speakers/alice"); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	copied, err := os.ReadFile(filepath.Join(home, ".moves", "speakers", "alice", "slides.pdf"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(copied) != "outside-bytes" {
		t.Fatalf("copied content = %q", copied)
	}
}
