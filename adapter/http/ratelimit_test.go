package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimit{Window: time.Minute, Max: 2})
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"), "clients are limited independently")

	now = now.Add(time.Minute)
	assert.True(t, l.allow("10.0.0.1"))
}

func TestWithRateLimit_Disabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := withRateLimit(newLimiter(RateLimit{}), next)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.EqualValues(t, http.StatusOK, rec.Code)
	}
}

func TestClientAddr(t *testing.T) {
	testCases := []struct {
		name      string
		remote    string
		forwarded string
		expect    string
	}{
		{name: "remote address", remote: "192.0.2.7:5123", expect: "192.0.2.7"},
		{name: "forwarded by trusted proxy", remote: "10.0.0.1:80", forwarded: "203.0.113.9", expect: "203.0.113.9"},
		{name: "spoofed leading hops ignored", remote: "10.0.0.1:80", forwarded: "1.2.3.4, 203.0.113.7", expect: "203.0.113.7"},
		{name: "no port", remote: "192.0.2.8", expect: "192.0.2.8"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			assert.EqualValues(t, tc.expect, clientAddr(req))
		})
	}
}

func TestWithRateLimit_SpoofedForwardedFor(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := withRateLimit(newLimiter(RateLimit{Window: time.Minute, Max: 2, Message: "slow down"}), next)
	rejected := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:80"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("1.2.3.%d, 203.0.113.7", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			rejected++
		}
	}
	assert.EqualValues(t, 8, rejected)
}
