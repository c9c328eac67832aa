// Command smoke probes a running PMory API instance and verifies that the
// public surface answers with well-formed envelopes. Intended as a quick
// post-deploy check; exits non-zero when a critical endpoint misbehaves.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type probe struct {
	Path       string
	WantStatus int
	Envelope   bool
	Critical   bool
}

var probes = []probe{
	{Path: "/health", WantStatus: http.StatusOK, Critical: true},
	{Path: "/ready", WantStatus: http.StatusOK, Critical: true},
	{Path: "/metrics", WantStatus: http.StatusOK},
	{Path: "/api/v1/mentors", WantStatus: http.StatusOK, Envelope: true, Critical: true},
	{Path: "/api/v1/jobs", WantStatus: http.StatusOK, Envelope: true, Critical: true},
	{Path: "/api/v1/links", WantStatus: http.StatusOK, Envelope: true, Critical: true},
	{Path: "/api/v1/subscriptions/status?email=probe@example.com", WantStatus: http.StatusOK, Envelope: true},
	{Path: "/api/v1/admin/mentors", WantStatus: http.StatusUnauthorized, Envelope: true, Critical: true},
}

func main() {
	var (
		base    string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "PMory API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	failures := 0

	for _, p := range probes {
		status, elapsed, err := check(client, base, p)
		switch {
		case err != nil:
			fmt.Printf("FAIL %-55s %v\n", p.Path, err)
			if p.Critical {
				failures++
			}
		default:
			fmt.Printf("ok   %-55s %d (%s)\n", p.Path, status, elapsed.Round(time.Millisecond))
		}
	}

	if failures > 0 {
		fmt.Printf("%d critical probe(s) failed\n", failures)
		os.Exit(1)
	}
}

func check(client *http.Client, base string, p probe) (int, time.Duration, error) {
	url := strings.TrimRight(base, "/") + p.Path

	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck
	elapsed := time.Since(start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, elapsed, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != p.WantStatus {
		return resp.StatusCode, elapsed, fmt.Errorf("status %d, want %d", resp.StatusCode, p.WantStatus)
	}

	if p.Envelope {
		var envelope struct {
			Data  json.RawMessage `json:"data"`
			Error json.RawMessage `json:"error"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return resp.StatusCode, elapsed, fmt.Errorf("malformed envelope: %w", err)
		}
		if envelope.Data == nil && envelope.Error == nil {
			return resp.StatusCode, elapsed, fmt.Errorf("envelope carries neither data nor error")
		}
	}

	return resp.StatusCode, elapsed, nil
}
