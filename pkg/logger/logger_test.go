package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCapturesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.json")
	Init(path)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.Println("attempt 1")

	got := GetLogs()
	if len(got) != 1 || !strings.Contains(got[0].Msg, "attempt 1") {
		t.Fatalf("GetLogs = %+v", got)
	}

	// a new Init picks the persisted entries back up
	Init(path)
	if got := GetLogs(); len(got) != 1 {
		t.Errorf("reloaded %d entries, want 1", len(got))
	}
}

func TestRingIsBounded(t *testing.T) {
	Init(filepath.Join(t.TempDir(), "logs.json"))
	log.SetOutput(w)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	for i := 0; i < maxLogs+25; i++ {
		io.WriteString(w, "line\n")
	}
	if got := len(GetLogs()); got != maxLogs {
		t.Errorf("kept %d entries, want %d", got, maxLogs)
	}
}
