package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dalfonso89/auth-currency-gateway/internal/logger"
)

// LoadTestConfig holds configuration for load testing
type LoadTestConfig struct {
	URL             string
	Token           string
	ConcurrentUsers int
	RequestsPerUser int
	Timeout         time.Duration
	TestDuration    time.Duration
	RampUpDuration  time.Duration
	ThinkTime       time.Duration
}

// LoadTestResult holds the result of a single request
type LoadTestResult struct {
	UserID     int
	RequestID  int
	StatusCode int
	Duration   time.Duration
	Success    bool
	Error      error
}

func main() {
	var config LoadTestConfig

	flag.StringVar(&config.URL, "url", "http://localhost:8080/converterMoeda?valor=1&de=USD&para=BRL", "Target URL to test")
	flag.StringVar(&config.Token, "token", os.Getenv("GATEWAY_ID_TOKEN"), "ID token sent as a bearer credential")
	flag.IntVar(&config.ConcurrentUsers, "users", 10, "Number of concurrent users")
	flag.IntVar(&config.RequestsPerUser, "requests", 100, "Number of requests per user")
	flag.DurationVar(&config.Timeout, "timeout", 30*time.Second, "Request timeout")
	flag.DurationVar(&config.TestDuration, "duration", 0, "Test duration (0 = run until all requests complete)")
	flag.DurationVar(&config.RampUpDuration, "rampup", 5*time.Second, "Ramp-up duration")
	flag.DurationVar(&config.ThinkTime, "think", 100*time.Millisecond, "Think time between requests")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log := logger.New(*logLevel)
	log.WithFields(logrus.Fields{
		"url":       config.URL,
		"users":     config.ConcurrentUsers,
		"requests":  config.RequestsPerUser,
		"timeout":   config.Timeout.String(),
		"rampup":    config.RampUpDuration.String(),
		"think":     config.ThinkTime.String(),
		"duration":  config.TestDuration.String(),
		"has_token": config.Token != "",
	}).Info("Starting load test")

	ctx := context.Background()
	if config.TestDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.TestDuration)
		defer cancel()
	}

	summary, err := runLoadTest(ctx, config, &http.Client{Timeout: config.Timeout})
	if err != nil {
		log.WithError(err).Fatal("Load test aborted")
	}

	reportSummary(log, summary)
}

func runLoadTest(ctx context.Context, config LoadTestConfig, client *http.Client) (LoadTestSummary, error) {
	if config.ConcurrentUsers <= 0 {
		return LoadTestSummary{}, nil
	}

	results := make(chan LoadTestResult, config.ConcurrentUsers*config.RequestsPerUser)
	startTime := time.Now()
	rampUpDelay := config.RampUpDuration / time.Duration(config.ConcurrentUsers)

	group, groupCtx := errgroup.WithContext(ctx)
	for userID := 0; userID < config.ConcurrentUsers; userID++ {
		uid := userID
		group.Go(func() error {
			if !sleepContext(groupCtx, time.Duration(uid)*rampUpDelay) {
				return nil
			}

			for reqID := 0; reqID < config.RequestsPerUser; reqID++ {
				if groupCtx.Err() != nil {
					return nil
				}

				result, err := makeRequest(groupCtx, client, config, uid, reqID)
				if err != nil {
					return err
				}
				results <- result

				if !sleepContext(groupCtx, config.ThinkTime) {
					return nil
				}
			}
			return nil
		})
	}

	err := group.Wait()
	close(results)
	if err != nil {
		return LoadTestSummary{}, err
	}

	return summarize(results, time.Since(startTime)), nil
}

// makeRequest only fails for requests that cannot be built; transport errors are recorded as results
func makeRequest(ctx context.Context, client *http.Client, config LoadTestConfig, userID, requestID int) (LoadTestResult, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, config.URL, nil)
	if err != nil {
		return LoadTestResult{}, err
	}
	if config.Token != "" {
		request.Header.Set("Authorization", "Bearer "+config.Token)
	}

	start := time.Now()
	response, err := client.Do(request)
	result := LoadTestResult{
		UserID:    userID,
		RequestID: requestID,
		Duration:  time.Since(start),
		Error:     err,
	}
	if err != nil {
		return result, nil
	}
	defer response.Body.Close()

	result.StatusCode = response.StatusCode
	result.Success = response.StatusCode >= 200 && response.StatusCode < 300
	return result, nil
}

func sleepContext(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
