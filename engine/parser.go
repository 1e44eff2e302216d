package engine

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// TestEvent mirrors the event stream emitted by `go test -json`.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// Event actions of interest in the go test JSON stream.
const (
	ActionRun    = "run"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionOutput = "output"
)

// parseEventStream folds a go test JSON event stream into ordered raw
// records. Record order is the order of first "run" events, which is the
// engine's discovery order; it is never re-sorted.
func parseEventStream(output []byte) *RawResult {
	result := &RawResult{}
	byName := make(map[string]*RawRecord)
	order := make([]string, 0)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var event TestEvent
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}
		if event.Test == "" {
			// Package-level events carry no per-test information.
			continue
		}

		key := event.Package + "." + event.Test
		rec, ok := byName[key]
		if !ok {
			rec = &RawRecord{Name: qualifiedName(event.Package, event.Test)}
			byName[key] = rec
			order = append(order, key)
		}

		switch event.Action {
		case ActionPass:
			rec.Status = RawStatusPass
			rec.Elapsed = time.Duration(event.Elapsed * float64(time.Second))
		case ActionFail:
			rec.Status = RawStatusFail
			rec.Elapsed = time.Duration(event.Elapsed * float64(time.Second))
		case ActionSkip:
			rec.Status = RawStatusSkip
			rec.Elapsed = time.Duration(event.Elapsed * float64(time.Second))
		case ActionOutput:
			if out := strings.TrimRight(event.Output, "\n"); out != "" {
				if rec.Output != "" {
					rec.Output += "\n"
				}
				rec.Output += out
			}
		}
	}

	for _, key := range order {
		rec := byName[key]
		result.Records = append(result.Records, *rec)
		result.Total++
		switch rec.Status {
		case RawStatusPass:
			result.Passed++
		case RawStatusFail:
			result.Failed++
		case RawStatusSkip:
			result.Skipped++
		}
	}
	return result
}

func qualifiedName(pkg, test string) string {
	if pkg == "" {
		return test
	}
	return pkg + "." + test
}
