package main

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// LoadTestSummary holds the summary of load test results
type LoadTestSummary struct {
	TotalRequests       int
	SuccessfulRequests  int
	FailedRequests      int
	StatusCounts        map[int]int
	TotalDuration       time.Duration
	AverageResponseTime time.Duration
	MinResponseTime     time.Duration
	MaxResponseTime     time.Duration
	RequestsPerSecond   float64
	ErrorRate           float64
	ResponseTime95th    time.Duration
	ResponseTime99th    time.Duration
}

func summarize(results <-chan LoadTestResult, totalDuration time.Duration) LoadTestSummary {
	summary := LoadTestSummary{
		TotalDuration: totalDuration,
		StatusCounts:  make(map[int]int),
	}
	var responseTimes []time.Duration

	for result := range results {
		summary.TotalRequests++
		summary.StatusCounts[result.StatusCode]++
		responseTimes = append(responseTimes, result.Duration)

		if result.Success {
			summary.SuccessfulRequests++
		} else {
			summary.FailedRequests++
		}
	}

	if summary.TotalRequests == 0 {
		return summary
	}

	summary.ErrorRate = float64(summary.FailedRequests) / float64(summary.TotalRequests) * 100
	if totalDuration > 0 {
		summary.RequestsPerSecond = float64(summary.TotalRequests) / totalDuration.Seconds()
	}

	sort.Slice(responseTimes, func(i, j int) bool { return responseTimes[i] < responseTimes[j] })

	var totalResponseTime time.Duration
	for _, responseTime := range responseTimes {
		totalResponseTime += responseTime
	}
	summary.MinResponseTime = responseTimes[0]
	summary.MaxResponseTime = responseTimes[len(responseTimes)-1]
	summary.AverageResponseTime = totalResponseTime / time.Duration(len(responseTimes))
	summary.ResponseTime95th = percentile(responseTimes, 95)
	summary.ResponseTime99th = percentile(responseTimes, 99)

	return summary
}

// percentile expects sorted input
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)) * float64(p) / 100.0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func reportSummary(log *logrus.Logger, summary LoadTestSummary) {
	log.WithFields(logrus.Fields{
		"total":      summary.TotalRequests,
		"successful": summary.SuccessfulRequests,
		"failed":     summary.FailedRequests,
		"statuses":   summary.StatusCounts,
		"duration":   summary.TotalDuration.String(),
		"rps":        summary.RequestsPerSecond,
		"avg":        summary.AverageResponseTime.String(),
		"min":        summary.MinResponseTime.String(),
		"max":        summary.MaxResponseTime.String(),
		"p95":        summary.ResponseTime95th.String(),
		"p99":        summary.ResponseTime99th.String(),
		"error_rate": summary.ErrorRate,
	}).Info("Load test results")

	if summary.ErrorRate > 5.0 {
		log.Warnf("High error rate: %.2f%% (target: < 5%%)", summary.ErrorRate)
	}
	if summary.AverageResponseTime > 2*time.Second {
		log.Warnf("High average response time: %v (target: < 2s)", summary.AverageResponseTime)
	}
	if summary.TotalRequests > 0 && summary.RequestsPerSecond < 10 {
		log.Warnf("Low throughput: %.2f req/s (target: > 10 req/s)", summary.RequestsPerSecond)
	}
}
