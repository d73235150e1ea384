package cache

import (
	"testing"

	"github.com/phpray/phpray/internal/phpparse"
	"github.com/phpray/phpray/internal/source"
	"github.com/phpray/phpray/internal/symbols"
)

func TestPutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	src := []byte(`<?php function greet() {} class Widget extends Base {}`)
	p := phpparse.New(source.FileID(0), src)
	tree := p.Parse()
	decls := symbols.ScanFile(tree)

	key := Key(src)
	if err := d.Put(key, "w.php", decls); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := d.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if len(got.Functions) != 1 || got.Functions[0] != "greet" {
		t.Fatalf("unexpected functions: %+v", got.Functions)
	}
	if len(got.Classes) != 1 || got.Classes[0].Name != "Widget" {
		t.Fatalf("unexpected classes: %+v", got.Classes)
	}
}

func TestGetMissReturnsFalseNotError(t *testing.T) {
	d, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, ok, err := d.Get(Key([]byte("anything")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected cache miss")
	}
}
