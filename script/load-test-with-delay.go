// Command load-test-with-delay drives concurrent bets and withdrawals against a
// running server, settles the round, and checks that no money was created or lost.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/spf13/pflag"
)

// client wraps the API calls the test needs
type client struct {
	baseURL string
	http    *http.Client
}

type apiError struct {
	Status  int
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("HTTP %d code %d: %s", e.Status, e.Code, e.Message)
}

func (c *client) call(method, path, token string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &apiError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type user struct {
	ID    string
	Token string
}

func (c *client) login(username, password string) (user, error) {
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	err := c.call(http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password}, &resp)
	return user{ID: resp.User.ID, Token: resp.Token}, err
}

func (c *client) registerAndFund(admin user, username string, amount int64) (user, error) {
	creds := map[string]string{"username": username, "password": "load-test-pw"}
	if err := c.call(http.MethodPost, "/api/register", "", creds, nil); err != nil {
		return user{}, err
	}
	u, err := c.login(username, "load-test-pw")
	if err != nil {
		return user{}, err
	}

	var dep struct {
		Request struct {
			ID string `json:"id"`
		} `json:"request"`
	}
	if err := c.call(http.MethodPost, "/api/deposits", u.Token, map[string]int64{"amount": amount}, &dep); err != nil {
		return user{}, err
	}
	return u, c.call(http.MethodPost, "/api/admin/deposits/"+dep.Request.ID+"/approve", admin.Token, nil, nil)
}

func (c *client) balance(u user) (int64, error) {
	var resp struct {
		Balance int64 `json:"balance"`
	}
	err := c.call(http.MethodGet, "/api/users/"+u.ID+"/balance", u.Token, nil, &resp)
	return resp.Balance, err
}

// Scenario is one kind of request a worker can send
type Scenario struct {
	Name   string
	Kind   string // bet or withdraw
	Color  string
	Amount int64
}

// TestResult contains metrics for a single request
type TestResult struct {
	Scenario     Scenario
	Success      bool
	ResponseTime time.Duration
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int
	Staked             map[string]int64 // by color
	Withdrawn          int64
	Lock               sync.Mutex
}

func main() {
	concurrency := pflag.IntP("concurrency", "c", 5, "Number of concurrent goroutines")
	totalRequests := pflag.IntP("requests", "n", 200, "Total number of requests to make")
	users := pflag.IntP("users", "u", 3, "Number of users to register and fund")
	funding := pflag.Int64("fund", 1000, "Amount deposited for each user")
	baseURL := pflag.String("url", "http://localhost:8080", "Base URL for the API")
	adminUser := pflag.String("admin-user", "admin", "Admin username")
	adminPass := pflag.String("admin-password", "admin123", "Admin password")
	delayMs := pflag.Int("delay", 50, "Delay between requests in milliseconds")
	pflag.Parse()

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 10 * time.Second}}

	admin, err := c.login(*adminUser, *adminPass)
	if err != nil {
		fail("admin login", err)
	}

	suffix := time.Now().UnixNano()
	players := make([]user, 0, *users)
	for i := 0; i < *users; i++ {
		u, err := c.registerAndFund(admin, fmt.Sprintf("load-%d-%d", suffix, i), *funding)
		if err != nil {
			fail("register and fund", err)
		}
		players = append(players, u)
	}

	var round struct {
		ID string `json:"id"`
	}
	if err := c.call(http.MethodPost, "/api/admin/rounds/create", admin.Token, nil, &round); err != nil {
		fail("create round", err)
	}

	scenarios := []Scenario{
		{"Bet red small", "bet", "red", 5},
		{"Bet red large", "bet", "red", 40},
		{"Bet black small", "bet", "black", 5},
		{"Bet black large", "bet", "black", 40},
		{"Bet green", "bet", "green", 10},
		{"Withdraw", "withdraw", "", 25},
	}

	fmt.Printf("Load testing %s with %d users, round %s\n", *baseURL, len(players), round.ID)
	fmt.Printf("Concurrency: %d, requests: %d, delay: %d ms\n", *concurrency, *totalRequests, *delayMs)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ErrorCounts:   make(map[string]int),
		ScenarioStats: make(map[string]int),
		Staked:        make(map[string]int64),
	}

	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	results := make(chan TestResult, *totalRequests)
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(c, round.ID, players, scenarios, *delayMs, jobs, results)
		}()
	}
	wg.Wait()
	close(results)
	stats.TotalTime = time.Since(startTime)

	for r := range results {
		stats.ScenarioStats[r.Scenario.Name]++
		stats.ResponseTimes = append(stats.ResponseTimes, r.ResponseTime)
		if !r.Success {
			stats.FailedRequests++
			stats.ErrorCounts[errorKey(r.Error)]++
			continue
		}
		stats.SuccessfulRequests++
		if r.Scenario.Kind == "bet" {
			stats.Staked[r.Scenario.Color] += r.Scenario.Amount
		} else {
			stats.Withdrawn += r.Scenario.Amount
		}
	}

	var settlement struct {
		TotalPayout int64 `json:"total_payout"`
		Failures    []any `json:"failures"`
	}
	result := scenarios[rand.Intn(len(scenarios)-1)].Color
	if err := c.call(http.MethodPost, "/api/admin/rounds/"+round.ID+"/settle", admin.Token, map[string]string{"result_color": result}, &settlement); err != nil {
		fail("settle round", err)
	}

	var final int64
	for _, u := range players {
		b, err := c.balance(u)
		if err != nil {
			fail("read balance", err)
		}
		if b < 0 {
			fail("balance check", fmt.Errorf("user %s has negative balance %d", u.ID, b))
		}
		final += b
	}

	printResults(stats)

	var staked int64
	for _, v := range stats.Staked {
		staked += v
	}
	expected := int64(len(players))*(*funding) - staked - stats.Withdrawn + settlement.TotalPayout

	fmt.Println("\n================= CONSERVATION =================")
	fmt.Printf("Result color:        %s\n", result)
	fmt.Printf("Funded:              %d\n", int64(len(players))*(*funding))
	fmt.Printf("Staked:              %d %v\n", staked, stats.Staked)
	fmt.Printf("Withdrawn (locked):  %d\n", stats.Withdrawn)
	fmt.Printf("Paid out:            %d (%d failed payouts)\n", settlement.TotalPayout, len(settlement.Failures))
	fmt.Printf("Expected balances:   %d\n", expected)
	fmt.Printf("Actual balances:     %d\n", final)
	if expected != final {
		fmt.Println("❌ Balances do not reconcile")
		os.Exit(1)
	}
	fmt.Println("✅ Balances reconcile")
}

func worker(c *client, roundID string, players []user, scenarios []Scenario, delayMs int,
	jobs <-chan int, results chan<- TestResult) {

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		u := players[rand.Intn(len(players))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		start := time.Now()
		var err error
		switch scenario.Kind {
		case "bet":
			err = c.call(http.MethodPost, "/api/bets", u.Token, map[string]any{
				"round_id": roundID,
				"color":    scenario.Color,
				"amount":   scenario.Amount,
			}, nil)
		default:
			err = c.call(http.MethodPost, "/api/withdraws", u.Token, map[string]int64{"amount": scenario.Amount}, nil)
		}

		results <- TestResult{
			Scenario:     scenario,
			Success:      err == nil,
			ResponseTime: time.Since(start),
			Error:        err,
		}
	}
}

func errorKey(err error) string {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("HTTP %d (code %d)", apiErr.Status, apiErr.Code)
	}
	return err.Error()
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	sorted := append([]time.Duration(nil), stats.ResponseTimes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = total / time.Duration(len(sorted))
	}
	tps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d\n", stats.SuccessfulRequests)
	fmt.Printf("Rejected Requests:   %d\n", stats.FailedRequests)
	fmt.Printf("Total Test Time:     %.2f seconds (%.2f TPS)\n", stats.TotalTime.Seconds(), tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avg)
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-16s: %d\n", scenario, count)
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- REJECTIONS -----------------")
		for key, count := range stats.ErrorCounts {
			fmt.Printf("%-30s: %d\n", key, count)
		}
	}
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s failed: %v\n", step, err)
	os.Exit(1)
}
