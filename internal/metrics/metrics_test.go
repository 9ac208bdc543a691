// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test", "200"))

	RecordAPIRequest("GET", "/test", "200", 50*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServed.WithLabelValues("personalized"))

	RecordRecommendation("personalized", 10*time.Millisecond)

	after := testutil.ToFloat64(RecommendationsServed.WithLabelValues("personalized"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestRecordRecommendationError(t *testing.T) {
	before := testutil.ToFloat64(RecommendationErrors.WithLabelValues("schema"))

	RecordRecommendationError("schema")

	after := testutil.ToFloat64(RecommendationErrors.WithLabelValues("schema"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestRecordCollectionFetch(t *testing.T) {
	for _, result := range []string{"success", "failure", "rejected"} {
		before := testutil.ToFloat64(CollectionFetchesTotal.WithLabelValues(result))

		RecordCollectionFetch(result, time.Millisecond)

		after := testutil.ToFloat64(CollectionFetchesTotal.WithLabelValues(result))
		if after != before+1 {
			t.Errorf("counter[%s] = %v, want %v", result, after, before+1)
		}
	}
}

func TestRecordHistoryWrite(t *testing.T) {
	successBefore := testutil.ToFloat64(HistoryWritesTotal.WithLabelValues("success"))
	failureBefore := testutil.ToFloat64(HistoryWritesTotal.WithLabelValues("failure"))

	RecordHistoryWrite(true)
	RecordHistoryWrite(false)

	if got := testutil.ToFloat64(HistoryWritesTotal.WithLabelValues("success")); got != successBefore+1 {
		t.Errorf("success counter = %v, want %v", got, successBefore+1)
	}
	if got := testutil.ToFloat64(HistoryWritesTotal.WithLabelValues("failure")); got != failureBefore+1 {
		t.Errorf("failure counter = %v, want %v", got, failureBefore+1)
	}
}

func TestCircuitBreakerState(t *testing.T) {
	CircuitBreakerState.WithLabelValues("bar-service").Set(2)

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("bar-service")); got != 2 {
		t.Errorf("gauge = %v, want 2", got)
	}
}
