package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"
)

// CreateTransactionRequest is the creation payload
type CreateTransactionRequest struct {
	PropertyCode string `json:"propertyCode"`
	SaleValue    string `json:"saleValue"`
}

// TransactionResponse is the API response for a created transaction
type TransactionResponse struct {
	ID           string `json:"id"`
	PropertyCode string `json:"propertyCode"`
	SaleValue    string `json:"saleValue"`
	Status       string `json:"status"`
}

// TokenResponse is the credential endpoint response
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// SaleScenario defines a transaction creation scenario
type SaleScenario struct {
	Name         string
	PropertyCode string
	SaleValue    string
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	scenarios := []SaleScenario{
		{"Apartment Small", "APT-0101", "250000.00"},
		{"Apartment Medium", "APT-0202", "480000.00"},
		{"Apartment Large", "APT-0303", "910000.00"},
		{"House Small", "HSE-0404", "320000.00"},
		{"House Medium", "HSE-0505", "650000.00"},
		{"Commercial", "COM-0606", "1850000.00"},
	}

	fmt.Printf("Load testing %s\n", *baseURL)
	fmt.Printf("Sale scenarios: %d different combinations\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	client := &http.Client{Timeout: 10 * time.Second}

	token, err := fetchToken(client, *baseURL)
	if err != nil {
		fmt.Printf("Failed to obtain a token: %v\n", err)
		return
	}

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		ScenarioStats:   make(map[string]int),
	}
	for _, scenario := range scenarios {
		stats.ScenarioStats[scenario.Name] = 0
	}

	requests := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		requests <- i
	}
	close(requests)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range requests {
				scenario := scenarios[rand.Intn(len(scenarios))]
				result := createTransaction(client, *baseURL, token, scenario)
				recordResult(stats, scenario, result)
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}()
	}
	wg.Wait()
	stats.TotalTime = time.Since(start)

	printStats(stats)
}

func fetchToken(client *http.Client, baseURL string) (string, error) {
	resp, err := client.Get(baseURL + "/api/v1/token")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from token endpoint", resp.StatusCode)
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func createTransaction(client *http.Client, baseURL, token string, scenario SaleScenario) TestResult {
	payload, err := json.Marshal(CreateTransactionRequest{
		PropertyCode: scenario.PropertyCode,
		SaleValue:    scenario.SaleValue,
	})
	if err != nil {
		return TestResult{Error: err}
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/transactions", bytes.NewReader(payload))
	if err != nil {
		return TestResult{Error: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return TestResult{ResponseTime: elapsed, Error: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var created TransactionResponse
	_ = json.NewDecoder(resp.Body).Decode(&created)

	return TestResult{
		Success:      resp.StatusCode == http.StatusCreated,
		ResponseTime: elapsed,
		StatusCode:   resp.StatusCode,
	}
}

func recordResult(stats *TestStats, scenario SaleScenario, result TestResult) {
	stats.Lock.Lock()
	defer stats.Lock.Unlock()

	stats.ScenarioStats[scenario.Name]++
	stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
	stats.TotalResponseTime += result.ResponseTime
	if result.ResponseTime < stats.MinResponseTime {
		stats.MinResponseTime = result.ResponseTime
	}
	if result.ResponseTime > stats.MaxResponseTime {
		stats.MaxResponseTime = result.ResponseTime
	}

	if result.Success {
		stats.SuccessfulRequests++
		return
	}

	stats.FailedRequests++
	key := fmt.Sprintf("status %d", result.StatusCode)
	if result.Error != nil {
		key = result.Error.Error()
	}
	stats.ErrorCounts[key]++
}

func printStats(stats *TestStats) {
	fmt.Println()
	fmt.Println("=== Results ===")
	fmt.Printf("Total requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful:          %d\n", stats.SuccessfulRequests)
	fmt.Printf("Failed:              %d\n", stats.FailedRequests)
	fmt.Printf("Total time:          %v\n", stats.TotalTime)
	if stats.TotalRequests > 0 {
		fmt.Printf("Requests per second: %.2f\n", float64(stats.TotalRequests)/stats.TotalTime.Seconds())
	}

	if len(stats.ResponseTimes) > 0 {
		average := stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
		fmt.Printf("Min response time:   %v\n", stats.MinResponseTime)
		fmt.Printf("Max response time:   %v\n", stats.MaxResponseTime)
		fmt.Printf("Avg response time:   %v\n", average)

		sorted := make([]time.Duration, len(stats.ResponseTimes))
		copy(sorted, stats.ResponseTimes)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		fmt.Printf("P95 response time:   %v\n", sorted[len(sorted)*95/100])
	}

	fmt.Println()
	fmt.Println("Requests per scenario:")
	for name, count := range stats.ScenarioStats {
		fmt.Printf("  %-20s %d\n", name, count)
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for message, count := range stats.ErrorCounts {
			fmt.Printf("  %-40s %d\n", message, count)
		}
	}
}
