package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestSizeLimitedWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.log")
	writer, err := newSizeLimitedWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer writer.Close()

	first := bytes.Repeat([]byte("a"), 512*1024)
	second := bytes.Repeat([]byte("b"), 512*1024)
	third := bytes.Repeat([]byte("c"), 512*1024)
	for _, chunk := range [][]byte{first, second, third} {
		if _, err := writer.Write(chunk); err != nil {
			t.Fatalf("write chunk: %v", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if info.Size() != int64(len(third)) {
		t.Fatalf("expected current log to hold only the last chunk, got %d bytes", info.Size())
	}
	backup, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if len(backup) != 1024*1024 || backup[0] != 'a' || backup[len(backup)-1] != 'b' {
		t.Fatalf("unexpected backup contents, size %d", len(backup))
	}
}

func TestSizeLimitedWriterAppendsToExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	writer, err := newSizeLimitedWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	if _, err := writer.Write([]byte("new\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = writer.Close()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(got) != "old\nnew\n" {
		t.Fatalf("log = %q", got)
	}
}

func TestSizeLimitedWriterOversizedWriteOnEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	writer, err := newSizeLimitedWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer writer.Close()

	big := bytes.Repeat([]byte("x"), 2*1024*1024)
	if _, err := writer.Write(big); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Fatalf("empty file should not be rotated, stat err = %v", err)
	}
}
