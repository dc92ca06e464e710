// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/menu-vote/cliparse"
	"github.com/danielhkuo/menu-vote/handlers"
	"github.com/danielhkuo/menu-vote/metrics"
	"github.com/danielhkuo/menu-vote/middleware"
	"github.com/danielhkuo/menu-vote/voting"
)

func NewRouter(svc *voting.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)

	voteLimiter := middleware.NewRateLimiter(cfg.VoteRateLimit, cfg.VoteRateBurst)
	if cfg.TrustProxy {
		voteLimiter.TrustProxyHeaders()
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Event management
	mux.HandleFunc("GET /api/events", middleware.WithLogging(eventHandler.ListEvents))
	mux.HandleFunc("POST /api/events", middleware.WithLogging(eventHandler.CreateEvent))
	mux.HandleFunc("GET /api/events/{eventId}", middleware.WithLogging(eventHandler.GetEvent))
	mux.HandleFunc("PUT /api/events/{eventId}", middleware.WithLogging(eventHandler.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{eventId}", middleware.WithLogging(eventHandler.DeleteEvent))
	mux.HandleFunc("PUT /api/events/{eventId}/status", middleware.WithLogging(eventHandler.SetStatus))
	mux.HandleFunc("PUT /api/events/{eventId}/menu", middleware.WithLogging(eventHandler.SaveMenu))
	mux.HandleFunc("POST /api/events/{eventId}/voters", middleware.WithLogging(eventHandler.AddVoter))
	mux.HandleFunc("DELETE /api/events/{eventId}/voters/{name}", middleware.WithLogging(eventHandler.RemoveVoter))

	// Voting (rate limited per client)
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(voteLimiter.Wrap(votingHandler.SubmitVote)))
	mux.HandleFunc("GET /api/votes/{eventId}/{name}", middleware.WithLogging(votingHandler.GetVoterVotes))

	// Results and resets
	mux.HandleFunc("GET /api/results/{eventId}", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("DELETE /api/events/{eventId}/votes", middleware.WithLogging(resultsHandler.ClearEventVotes))
	mux.HandleFunc("DELETE /api/votes", middleware.WithLogging(resultsHandler.ClearAllVotes))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("menu-vote API v1"))
	})

	return mux
}
