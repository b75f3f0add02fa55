package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numDatasets  = 20
	numFields    = 12
)

var windows = []string{"1 day", "1 week", "1 month", "3 months", "1 year"}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== profiled Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Datasets: %d | Fields per profile: %d\n\n", numDatasets, numFields)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding profiles (POST /profiles) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doPostProfile(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (30% POST, 70% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.30:
			return doPostProfile(rng)
		case r < 0.80:
			return doGetHistory(rng)
		case r < 0.95:
			return doGetProfiles(rng)
		default:
			return doGet("/urns")
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (history only) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGetHistory(rng)
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func urn(rng *rand.Rand) string {
	return fmt.Sprintf("urn:li:dataset:(urn:li:dataPlatform:hive,db.table_%d,PROD)", rng.Intn(numDatasets))
}

func doPostProfile(rng *rand.Rand) result {
	rows := rng.Int63n(1_000_000)
	fields := make([]map[string]interface{}, numFields)
	for i := range fields {
		nulls := rng.Int63n(rows + 1)
		fields[i] = map[string]interface{}{
			"fieldPath":        fmt.Sprintf("col_%d", i),
			"nullCount":        nulls,
			"nullProportion":   float64(nulls) / float64(rows+1),
			"uniqueCount":      rng.Int63n(rows + 1),
			"uniqueProportion": rng.Float64(),
		}
	}
	body := map[string]interface{}{
		"urn": urn(rng),
		"profile": map[string]interface{}{
			"timestampMillis": time.Now().Add(-time.Duration(rng.Int63n(int64(365 * 24 * time.Hour)))).UnixMilli(),
			"rowCount":        rows,
			"columnCount":     numFields,
			"fieldProfiles":   fields,
		},
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/profiles", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /profiles", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /profiles", resp.StatusCode, lat, resp.StatusCode != http.StatusCreated}
}

func doGetHistory(rng *rand.Rand) result {
	q := url.Values{}
	q.Set("urn", urn(rng))
	q.Set("window", windows[rng.Intn(len(windows))])
	if rng.Float64() < 0.5 {
		q.Set("field", fmt.Sprintf("col_%d", rng.Intn(numFields)))
	}
	res := doGet("/history?" + q.Encode())
	res.endpoint = "GET /history"
	// a dataset may not have the requested column yet
	if res.status == http.StatusBadRequest {
		res.err = false
	}
	return res
}

func doGetProfiles(rng *rand.Rand) result {
	end := time.Now()
	start := end.AddDate(0, -1, 0)
	q := url.Values{}
	q.Set("urn", urn(rng))
	q.Set("start", fmt.Sprint(start.UnixMilli()))
	q.Set("end", fmt.Sprint(end.Truncate(time.Minute).UnixMilli()))
	res := doGet("/profiles/query?" + q.Encode())
	res.endpoint = "GET /profiles/query"
	return res
}

func doGet(path string) result {
	endpoint := "GET " + strings.SplitN(path, "?", 2)[0]
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
