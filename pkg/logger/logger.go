package logger

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Last attempts are worth keeping; the data partition is small
const maxLogs = 200

type Entry struct {
	Time string `json:"time"`
	Msg  string `json:"msg"`
}

type writer struct {
	mu   sync.Mutex
	path string
	logs []Entry
}

var w *writer

// Init routes the standard logger to stdout and to a ring of recent entries
// persisted as JSON at path
func Init(path string) {
	w = &writer{path: path, logs: load(path)}
	log.SetOutput(io.MultiWriter(os.Stdout, w))
}

func (wr *writer) Write(p []byte) (int, error) {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	wr.logs = append(wr.logs, Entry{
		Time: time.Now().Format("2006-01-02 15:04:05"),
		Msg:  string(p),
	})

	if len(wr.logs) > maxLogs {
		wr.logs = wr.logs[len(wr.logs)-maxLogs:]
	}

	save(wr.path, wr.logs)
	return len(p), nil
}

func GetLogs() []Entry {
	if w == nil {
		return []Entry{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Entry{}, w.logs...)
}

func load(path string) []Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Entry{}
	}
	var logs []Entry
	json.Unmarshal(data, &logs)
	return logs
}

func save(path string, logs []Entry) {
	data, _ := json.Marshal(logs)
	os.WriteFile(path, data, 0644)
}
