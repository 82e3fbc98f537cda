package discovery

import "testing"

func TestDocument_AllMethods(t *testing.T) {
	doc, err := Parse([]byte(zooDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	refs := doc.AllMethods()
	if len(refs) != 5 {
		t.Fatalf("AllMethods() returned %d methods, want 5", len(refs))
	}

	// Sorted by resource path, then method name. Document-level methods
	// (empty resource) come first.
	want := []struct {
		resource string
		name     string
		id       string
	}{
		{"", "ping", "zoo.ping"},
		{"animals", "delete", "zoo.animals.delete"},
		{"animals", "get", "zoo.animals.get"},
		{"animals", "insert", "zoo.animals.insert"},
		{"animals.photos", "list", "zoo.animals.photos.list"},
	}
	for i, w := range want {
		ref := refs[i]
		if ref.Resource != w.resource || ref.Name != w.name || ref.Method.ID != w.id {
			t.Errorf("refs[%d] = %s/%s (%s), want %s/%s (%s)",
				i, ref.Resource, ref.Name, ref.Method.ID, w.resource, w.name, w.id)
		}
	}
}

func TestDocument_AllMethodsDeterministic(t *testing.T) {
	doc, err := Parse([]byte(zooDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	first := doc.AllMethods()
	for i := 0; i < 10; i++ {
		again := doc.AllMethods()
		for j := range first {
			if first[j].Method.ID != again[j].Method.ID {
				t.Fatalf("AllMethods() order changed between calls at %d", j)
			}
		}
	}
}
