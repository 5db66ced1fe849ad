package pebblestore

import (
	"context"
	"testing"
)

func TestUpsertReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Upsert(ctx, "7453", true); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, "7518", false); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, "7453", false); err != nil {
		t.Fatal(err)
	}

	m, err := s.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 2 || m["7453"] != false || m["7518"] != false {
		t.Fatalf("overlay: %+v", m)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, "42", true); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	m, err := s2.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 1 || !m["42"] {
		t.Fatalf("overlay after reopen: %+v", m)
	}
}

func TestReadEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	m, err := s.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 0 {
		t.Fatalf("overlay: %+v", m)
	}
}
