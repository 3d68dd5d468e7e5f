package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// resetFlags restores every flag variable to its zero value.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	configURL, logLevel = "", "error"
	totalSize, blockMin, blockMax, seed, exclusive = 0, 0, 0, 0, false
	fitCapacities, fitRequests, fitPolicy, fitExclusive = nil, nil, "", false
	generateScenario = false
	simulatePolicy = ""
	trialsCount, trialsWorkers, trialsStore, trialsDetails = 0, 0, "", false
	reportsStore, reportsPolicy, reportsSeed = "", "", ""
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return <-done, fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
