package fsstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestList_SortedJSONOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "zz-consensus.json", `{}`)
	writeFile(t, dir, "aa-network.json", `{}`)
	writeFile(t, dir, "notes.txt", "not a dashboard")

	names, err := New(dir).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"aa-network.json", "zz-consensus.json"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestList_EmptyDir(t *testing.T) {
	t.Parallel()

	names, err := New(t.TempDir()).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() = %v, want empty", names)
	}
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{"panels": [`)

	_, err := New(dir).Load(context.Background(), "bad.json")
	if err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := New(t.TempDir()).Load(context.Background(), "nope.json")
	if err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestSave_Formatting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "dash.json", `{"uid":"abc","panels":[{"type":"row","title":"Consensus"},{"title":"Tip","targets":[{"expr":"consensus_tip_height"}]}],"schemaVersion":39}`)

	store := New(dir)
	ctx := context.Background()

	doc, err := store.Load(ctx, "dash.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := doc.Panels()[1].SetTitle("Tip — height"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "dash.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if !bytes.HasSuffix(out, []byte("\n")) {
		t.Error("saved document is missing the trailing newline")
	}
	if !bytes.Contains(out, []byte("  \"uid\"")) {
		t.Error("saved document is not two-space indented")
	}
	// key order must survive the rewrite: uid, panels, schemaVersion
	uid := bytes.Index(out, []byte(`"uid"`))
	panels := bytes.Index(out, []byte(`"panels"`))
	schema := bytes.Index(out, []byte(`"schemaVersion"`))
	if uid == -1 || panels == -1 || schema == -1 || !(uid < panels && panels < schema) {
		t.Errorf("key order not preserved: uid=%d panels=%d schemaVersion=%d", uid, panels, schema)
	}

	snaps.MatchSnapshot(t, string(out))
}

func TestSave_RoundTripUnchangedDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "dash.json", `{"panels":[{"title":"A"}]}`)

	store := New(dir)
	ctx := context.Background()

	doc, err := store.Load(ctx, "dash.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	doc2, err := store.Load(ctx, "dash.json")
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if got, _ := doc2.Panels()[0].Title(); got != "A" {
		t.Errorf("Title() after round trip = %q, want %q", got, "A")
	}
}
