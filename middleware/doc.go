// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms),
and records the latency under the matched route pattern in the metrics package.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization. The request origin is echoed back.

# Rate Limiting

Vote submission is limited per client IP with a token bucket:

	limiter := middleware.NewRateLimiter(cfg.VoteRateLimit, cfg.VoteRateBurst)
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(limiter.Wrap(h.SubmitVote)))

Requests over the limit get 429 with a Retry-After header. Idle clients are
forgotten after a few minutes.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationErrorResponse(w, "Invalid selections", violations)

Parse JSON request bodies:

	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

The rate limiter keys clients on the connection address:

	ip := middleware.RemoteIP(r)

Behind a proxy that rewrites forwarded headers, -trust-proxy switches the key
to GetClientIP, which reads X-Forwarded-For, then X-Real-IP:

	limiter.TrustProxyHeaders()
*/
package middleware
