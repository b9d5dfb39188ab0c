package tally

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := newMemStore(t)

	if err := store.Set("history", []byte(`[]`)); err != nil {
		t.Fatalf("failed to set blob: %v", err)
	}

	got, err := store.Get("history")
	if err != nil {
		t.Fatalf("failed to get blob: %v", err)
	}
	if !bytes.Equal(got, []byte(`[]`)) {
		t.Fatalf("blob = %q, want %q", got, `[]`)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	store := newMemStore(t)

	_, err := store.Get("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(nope) error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store := newMemStore(t)

	if err := store.Set("settings", []byte(`{"a":true}`)); err != nil {
		t.Fatalf("failed to set blob: %v", err)
	}
	if err := store.Set("settings", []byte(`{"a":false}`)); err != nil {
		t.Fatalf("failed to overwrite blob: %v", err)
	}

	got, err := store.Get("settings")
	if err != nil {
		t.Fatalf("failed to get blob: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"a":false}`)) {
		t.Fatalf("blob = %q, want %q", got, `{"a":false}`)
	}
}

func TestFileStoreSkipsUnchangedWrites(t *testing.T) {
	fs := &countingFs{Fs: afero.NewMemMapFs()}
	store, err := NewFileStore("/tally-test", WithStoreFs(fs))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	blob := []byte(`{"sound":true}`)
	if err := store.Set("settings", blob); err != nil {
		t.Fatalf("failed to set blob: %v", err)
	}
	if err := store.Set("settings", blob); err != nil {
		t.Fatalf("failed to re-set blob: %v", err)
	}
	if fs.opens != 1 {
		t.Fatalf("identical content written %d times, want 1", fs.opens)
	}

	if err := store.Set("settings", []byte(`{"sound":false}`)); err != nil {
		t.Fatalf("failed to set changed blob: %v", err)
	}
	if fs.opens != 2 {
		t.Fatalf("changed content should write, got %d opens, want 2", fs.opens)
	}
}

// countingFs counts OpenFile calls, which afero.WriteFile goes through.
type countingFs struct {
	afero.Fs
	opens int
}

func (c *countingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	c.opens++
	return c.Fs.OpenFile(name, flag, perm)
}
