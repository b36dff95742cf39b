package data

import (
	"os"
	"testing"
	"time"
)

func TestSnapshotStoreLoad(t *testing.T) {
	os.Setenv("HOME", t.TempDir())
	ResetForTest()

	// nothing stored yet
	payload, _, _, err := LoadSnapshot("catalog")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if payload != nil {
		t.Fatal("expected no snapshot before first store")
	}

	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if err := StoreSnapshot("catalog", "snap-1", at, []byte(`[{"name":"Warung"}]`)); err != nil {
		t.Fatalf("StoreSnapshot failed: %v", err)
	}

	payload, id, fetchedAt, err := LoadSnapshot("catalog")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if string(payload) != `[{"name":"Warung"}]` {
		t.Errorf("payload: got %s", payload)
	}
	if id != "snap-1" {
		t.Errorf("snapshot id: got %s", id)
	}
	if !fetchedAt.Equal(at) {
		t.Errorf("fetched at: got %v, want %v", fetchedAt, at)
	}
}

func TestSnapshotReplace(t *testing.T) {
	os.Setenv("HOME", t.TempDir())
	ResetForTest()

	if err := StoreSnapshot("catalog", "snap-1", time.Now(), []byte(`["old"]`)); err != nil {
		t.Fatalf("StoreSnapshot failed: %v", err)
	}
	if err := StoreSnapshot("catalog", "snap-2", time.Now(), []byte(`["new"]`)); err != nil {
		t.Fatalf("StoreSnapshot failed: %v", err)
	}

	payload, id, _, err := LoadSnapshot("catalog")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if id != "snap-2" || string(payload) != `["new"]` {
		t.Errorf("expected wholesale replacement, got %s / %s", id, payload)
	}
}

func TestSnapshotNames(t *testing.T) {
	os.Setenv("HOME", t.TempDir())
	ResetForTest()

	StoreSnapshot("catalog", "a", time.Now(), []byte("1"))
	StoreSnapshot("boundary", "b", time.Now(), []byte("2"))

	payload, _, _, _ := LoadSnapshot("catalog")
	if string(payload) != "1" {
		t.Errorf("catalog payload: got %s", payload)
	}
	payload, _, _, _ = LoadSnapshot("boundary")
	if string(payload) != "2" {
		t.Errorf("boundary payload: got %s", payload)
	}
}

func TestSnapshotDelete(t *testing.T) {
	os.Setenv("HOME", t.TempDir())
	ResetForTest()

	StoreSnapshot("catalog", "a", time.Now(), []byte("1"))
	if err := DeleteSnapshot("catalog"); err != nil {
		t.Fatalf("DeleteSnapshot failed: %v", err)
	}

	payload, _, _, err := LoadSnapshot("catalog")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if payload != nil {
		t.Error("expected no snapshot after delete")
	}
}

func TestSaveLoad(t *testing.T) {
	os.Setenv("HOME", t.TempDir())

	if err := Save("test.html", "<h1>Desa</h1>"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	b, err := Load("test.html")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(b) != "<h1>Desa</h1>" {
		t.Errorf("got %s", b)
	}

	if _, err := Load("missing.html"); err == nil {
		t.Error("expected error for missing key")
	}
}
