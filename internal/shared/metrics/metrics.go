package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	applicationsCreatedTotal  atomic.Uint64
	quizStartedTotal          atomic.Uint64
	quizSubmittedTotal        atomic.Uint64
	quizPassedTotal           atomic.Uint64
	interviewQuestionsTotal   atomic.Uint64
	analysisCallsTotal        atomic.Uint64
	analysisCallsFailedTotal  atomic.Uint64
	interviewsCompletedTotal  atomic.Uint64

	analysisCallDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncApplicationsCreated increments the created-applications counter.
func IncApplicationsCreated() {
	applicationsCreatedTotal.Add(1)
}

// IncQuizStarted increments the started-quizzes counter.
func IncQuizStarted() {
	quizStartedTotal.Add(1)
}

// IncQuizSubmitted increments the submitted-quizzes counter.
func IncQuizSubmitted() {
	quizSubmittedTotal.Add(1)
}

// IncQuizPassed increments the passed-quizzes counter.
func IncQuizPassed() {
	quizPassedTotal.Add(1)
}

// IncInterviewQuestionRecorded increments the recorded interview questions counter.
func IncInterviewQuestionRecorded() {
	interviewQuestionsTotal.Add(1)
}

// IncAnalysisCall increments the outbound analysis calls counter.
func IncAnalysisCall() {
	analysisCallsTotal.Add(1)
}

// IncAnalysisCallFailed increments the failed outbound analysis calls counter.
func IncAnalysisCallFailed() {
	analysisCallsFailedTotal.Add(1)
}

// IncInterviewCompleted increments the finished-interviews counter.
func IncInterviewCompleted() {
	interviewsCompletedTotal.Add(1)
}

// ObserveAnalysisCallMs records an outbound analysis call duration in milliseconds.
func ObserveAnalysisCallMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisCallDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "applications_created_total", "Total applications created", applicationsCreatedTotal.Load())
	writeCounter(&buf, "quiz_started_total", "Total quizzes started", quizStartedTotal.Load())
	writeCounter(&buf, "quiz_submitted_total", "Total quizzes submitted", quizSubmittedTotal.Load())
	writeCounter(&buf, "quiz_passed_total", "Total quizzes passed", quizPassedTotal.Load())
	writeCounter(&buf, "interview_questions_recorded_total", "Total interview question records ingested", interviewQuestionsTotal.Load())
	writeCounter(&buf, "analysis_calls_total", "Total outbound analysis service calls", analysisCallsTotal.Load())
	writeCounter(&buf, "analysis_calls_failed_total", "Total failed outbound analysis service calls", analysisCallsFailedTotal.Load())
	writeCounter(&buf, "interviews_completed_total", "Total interviews driven to final result", interviewsCompletedTotal.Load())
	writeHistogram(&buf, "analysis_call_duration_ms", "Outbound analysis call duration in milliseconds", analysisCallDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
