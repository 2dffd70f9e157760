//go:build ignore
// +build ignore

// Package main provides a manual concurrency stress test for the blood bank portal API.
//
// Usage:
//
//	go run ./scripts/concurrency_test.go [workers]
//
// Environment:
//
//	SERVER_ADDR=http://localhost:8080  WORKERS=25  go run ./scripts/concurrency_test.go
//
// What it does:
//  1. Fires N goroutines that all register the same username at once. Exactly one must get 201,
//     the rest 409.
//  2. Registers N distinct donors, each of which registers one donation camp simultaneously.
//  3. Verifies every camp got its own id, every camp is pending, and /api/statistics counts
//     the donors that were created.
//
// Prerequisites:
//   - Server must be running (go run ./cmd).
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strconv"
	"sync"
	"time"
)

const defaultServerAddr = "http://localhost:8080"

type result struct {
	Worker     int
	StatusCode int
	ID         int64
	Status     string
	Err        error
}

func main() {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = defaultServerAddr
	}
	workers := 25
	if v := os.Getenv("WORKERS"); v != "" {
		workers = mustAtoi(v)
	}
	if len(os.Args) > 1 {
		workers = mustAtoi(os.Args[1])
	}

	run := time.Now().UnixNano()
	fmt.Printf("=== Blood Portal Concurrency Test ===\n")
	fmt.Printf("Server  : %s\n", serverAddr)
	fmt.Printf("Workers : %d\n\n", workers)

	before := donorsRegistered(serverAddr)

	// Phase 1: everyone races for one username.
	contested := fmt.Sprintf("race-%d", run)
	results := fanOut(workers, func(i int) result {
		code, _, err := register(newClient(), serverAddr, contested)
		return result{Worker: i, StatusCode: code, Err: err}
	})
	var created, conflicts, failures int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failures++
			fmt.Printf("  [ERR ] worker=%-3d err=%v\n", r.Worker, r.Err)
		case r.StatusCode == http.StatusCreated:
			created++
		case r.StatusCode == http.StatusConflict:
			conflicts++
		default:
			failures++
			fmt.Printf("  [FAIL] worker=%-3d status=%d\n", r.Worker, r.StatusCode)
		}
	}
	fmt.Printf("--- Username race ---\n")
	fmt.Printf("Created   : %d\n", created)
	fmt.Printf("Conflicts : %d\n\n", conflicts)

	// Phase 2: distinct donors register camps at the same time.
	camps := fanOut(workers, func(i int) result {
		client := newClient()
		code, _, err := register(client, serverAddr, fmt.Sprintf("donor-%d-%d", run, i))
		if err != nil || code != http.StatusCreated {
			return result{Worker: i, StatusCode: code, Err: err}
		}
		return registerCamp(client, serverAddr, i)
	})
	ids := make(map[int64]int)
	var notPending int
	for _, r := range camps {
		if r.Err != nil || r.StatusCode != http.StatusCreated {
			failures++
			fmt.Printf("  [FAIL] worker=%-3d status=%d err=%v\n", r.Worker, r.StatusCode, r.Err)
			continue
		}
		if prev, dup := ids[r.ID]; dup {
			failures++
			fmt.Printf("  [DUP ] camp id %d handed to workers %d and %d\n", r.ID, prev, r.Worker)
		}
		ids[r.ID] = r.Worker
		if r.Status != "pending" {
			notPending++
		}
	}
	fmt.Printf("--- Camp registrations ---\n")
	fmt.Printf("Distinct ids : %d\n", len(ids))
	fmt.Printf("Not pending  : %d\n\n", notPending)

	after := donorsRegistered(serverAddr)
	wantDonors := before + created + workers

	fmt.Println("--- Invariant Check ---")
	fmt.Printf("donorsRegistered: %d -> %d (expected %d)\n", before, after, wantDonors)

	if created != 1 || notPending != 0 || after != wantDonors || failures > 0 {
		fmt.Printf("\n[WARNING] invariants violated: created=%d notPending=%d failures=%d\n", created, notPending, failures)
		os.Exit(1)
	}
	fmt.Println("All invariants hold.")
}

func fanOut(n int, fn func(i int) result) []result {
	results := make([]result, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			results[idx] = fn(idx)
		}(i)
	}
	close(start)
	wg.Wait()
	return results
}

func newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Timeout: 10 * time.Second, Jar: jar}
}

func register(client *http.Client, serverAddr, username string) (int, map[string]any, error) {
	return postJSON(client, serverAddr+"/api/register", map[string]any{
		"username":   username,
		"password":   "stress-test",
		"name":       "Stress Donor",
		"email":      username + "@example.com",
		"phone":      "9876543210",
		"bloodGroup": "O+",
	})
}

func registerCamp(client *http.Client, serverAddr string, worker int) result {
	code, body, err := postJSON(client, serverAddr+"/api/donation-camps", map[string]any{
		"name":          fmt.Sprintf("Stress Camp %d", worker),
		"organizer":     "Load Test",
		"address":       "Test Grounds",
		"city":          "Bangalore",
		"state":         "Karnataka",
		"date":          time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
		"startTime":     "09:00",
		"endTime":       "17:00",
		"contactPerson": "Tester",
		"contactPhone":  "9876543210",
	})
	r := result{Worker: worker, StatusCode: code, Err: err}
	if body != nil {
		if id, ok := body["id"].(float64); ok {
			r.ID = int64(id)
		}
		r.Status, _ = body["status"].(string)
	}
	return r
}

func postJSON(client *http.Client, url string, payload any) (int, map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("bad JSON: %w", err)
	}
	return resp.StatusCode, body, nil
}

func donorsRegistered(serverAddr string) int {
	resp, err := newClient().Get(serverAddr + "/api/statistics")
	if err != nil {
		log.Fatalf("statistics: %v", err)
	}
	defer resp.Body.Close()
	var stats struct {
		DonorsRegistered int `json:"donorsRegistered"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		log.Fatalf("statistics: %v", err)
	}
	return stats.DonorsRegistered
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		log.Fatalf("invalid worker count %q", s)
	}
	return n
}
