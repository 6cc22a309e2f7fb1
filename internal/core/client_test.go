package core

import "testing"

func TestNewClientBufferSizing(t *testing.T) {
	configured := NewClient("c", 32)
	if cap(configured.Commands) != 32 || cap(configured.Events) != 32 {
		t.Fatalf("configured buffer not applied: commands=%d events=%d",
			cap(configured.Commands), cap(configured.Events))
	}

	defaulted := NewClient("c", 0)
	if cap(defaulted.Events) != 16 {
		t.Fatalf("zero buffer should fall back to default, got %d", cap(defaulted.Events))
	}
}
