package docs

import (
	"reflect"
	"testing"
)

func TestTopics(t *testing.T) {
	got := Topics()
	want := []string{"keys", "storage"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics() = %v; want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	for _, topic := range []string{"keys", " KEYS ", "storage"} {
		body, ok := Get(topic)
		if !ok || body == "" {
			t.Fatalf("expected topic %q to exist", topic)
		}
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected unknown topic to be missing")
	}
	for _, topic := range []string{"", "../docs", "content/keys"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("expected topic %q to be missing", topic)
		}
	}
}
