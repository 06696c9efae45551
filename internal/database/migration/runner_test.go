package migration

import (
	"testing"
	"testing/fstest"
)

func TestLoad_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("  SELECT 1;\n")},
		"README.md":      {Data: []byte("docs")},
		"V3_bad.sql":     {Data: []byte("SELECT 3;")},
	}

	migs, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "first" || migs[0].SQL != "SELECT 1;" {
		t.Fatalf("unexpected first migration %+v", migs[0])
	}
	if migs[1].Version != 2 {
		t.Fatalf("unexpected order %+v", migs)
	}
	if len(migs[0].Checksum) != 64 {
		t.Fatalf("unexpected checksum %q", migs[0].Checksum)
	}
}

func TestLoad_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	}
	if _, err := Load(fsys); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	fsys := fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}}
	if _, err := Load(fsys); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestDefault_EmbedsSchema(t *testing.T) {
	migs, err := Load(Default(nil).FS)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(migs) < 2 || migs[0].Version != 1 {
		t.Fatalf("expected embedded migrations, got %+v", migs)
	}
}
