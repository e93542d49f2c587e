package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/spf13/cobra"

	"github.com/volley-http/volley/client"
)

var benchCmd = &cobra.Command{
	Use:   "bench [url]",
	Short: "Benchmark a URL with repeated requests",
	Long: `Send repeated requests to a URL from concurrent workers and report
latency percentiles from an HDR histogram.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		count, _ := cmd.Flags().GetInt("requests")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		method, _ := cmd.Flags().GetString("method")
		headers, _ := cmd.Flags().GetStringArray("header")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		raw, _ := cmd.Flags().GetString("data")

		if err := runBench(args[0], method, count, concurrency, timeout, parseHeaderFlags(headers), parseDataFlag(raw)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	benchCmd.Flags().IntP("requests", "n", 100, "Total number of requests")
	benchCmd.Flags().IntP("concurrency", "c", 10, "Number of concurrent workers")
	benchCmd.Flags().StringP("method", "X", "GET", "HTTP method")
	benchCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	benchCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	benchCmd.Flags().StringP("data", "d", "", "Request body (parsed as JSON when possible)")
}

// benchResult is one completed call as seen by the collector.
type benchResult struct {
	latency time.Duration
	err     error
}

func runBench(target, method string, count, concurrency int, timeout time.Duration, headers map[string]string, data interface{}) error {
	if count <= 0 {
		return fmt.Errorf("request count must be positive")
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > count {
		concurrency = count
	}

	baseURL, path := parseURL(target)

	c := client.NewClient().
		SetPrefix(baseURL).
		SetTimeout(timeout).
		Configure("responseType", "raw").
		Headers(headers)

	jobs := make(chan struct{}, count)
	for i := 0; i < count; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	results := make(chan benchResult, count)
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				callStart := time.Now()
				_, err := c.Send(context.Background(), path, &client.CallOptions{Method: method, Data: data})
				results <- benchResult{latency: time.Since(callStart), err: err}
			}
		}()
	}
	wg.Wait()
	close(results)
	elapsed := time.Since(start)

	// 1µs to 10min covers any latency the timeout allows.
	hist := hdrhistogram.New(1, 10*time.Minute.Microseconds(), 3)
	failures := 0
	statusFailures := 0
	for result := range results {
		hist.RecordValue(result.latency.Microseconds())
		if result.err != nil {
			var rerr *client.RequestError
			if errors.As(result.err, &rerr) && rerr.Kind == client.KindHTTPStatus {
				statusFailures++
			} else {
				failures++
			}
		}
	}

	succeeded := count - failures - statusFailures
	fmt.Printf("Benchmark: %s %s\n", method, target)
	fmt.Printf("  Requests:    %d (%d ok, %d non-2xx, %d failed)\n", count, succeeded, statusFailures, failures)
	fmt.Printf("  Concurrency: %d\n", concurrency)
	fmt.Printf("  Duration:    %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  Throughput:  %.1f req/s\n", float64(count)/elapsed.Seconds())
	fmt.Println("  Latency:")
	fmt.Printf("    min:  %s\n", time.Duration(hist.Min())*time.Microsecond)
	fmt.Printf("    mean: %s\n", time.Duration(hist.Mean())*time.Microsecond)
	fmt.Printf("    p50:  %s\n", time.Duration(hist.ValueAtQuantile(50))*time.Microsecond)
	fmt.Printf("    p95:  %s\n", time.Duration(hist.ValueAtQuantile(95))*time.Microsecond)
	fmt.Printf("    p99:  %s\n", time.Duration(hist.ValueAtQuantile(99))*time.Microsecond)
	fmt.Printf("    max:  %s\n", time.Duration(hist.Max())*time.Microsecond)

	return nil
}
