package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"teamcoin/service"
)

// NewRouter wires all endpoints. Routes split into three rings: public,
// authenticated, and manager-only.
func NewRouter(h *Handler, authService service.AuthService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/auth/signup", h.SignUp)
	r.Post("/auth/signin", h.SignIn)

	r.Group(func(r chi.Router) {
		r.Use(authenticate(authService))

		r.Get("/me", h.Me)
		r.Get("/users", h.ListUsers)
		r.Get("/users/{userID}", h.GetUser)
		r.Get("/transactions", h.ListTransactions)

		r.Get("/leaderboard", h.Leaderboard)
		r.Get("/leaderboard/monthly", h.MonthlyLeaderboard)
		r.Get("/leaderboard/champions", h.MonthlyChampions)

		r.Post("/lottery/play", h.PlayLottery)
		r.Get("/lottery/multiplier", h.LotteryMultiplier)

		r.Post("/tasks", h.SubmitTask)
		r.Get("/tasks/mine", h.ListMyTasks)

		r.Get("/rewards", h.ListRewards)
		r.Post("/rewards/{rewardID}/redeem", h.RedeemReward)

		r.Get("/campaigns/current", h.CurrentGame)
		r.Get("/campaigns/contributions", h.TeamContributions)

		r.Group(func(r chi.Router) {
			r.Use(requireManager)

			r.Get("/tasks", h.ListTasks)
			r.Post("/tasks/{taskID}/approve", h.ApproveTask)
			r.Post("/tasks/{taskID}/reject", h.RejectTask)

			r.Post("/rewards", h.CreateReward)
			r.Put("/rewards/{rewardID}", h.UpdateReward)
			r.Post("/rewards/{rewardID}/toggle", h.ToggleReward)

			r.Get("/redemptions", h.ListRedemptions)
			r.Post("/redemptions/{redemptionID}/fulfill", h.FulfillRedemption)
			r.Post("/redemptions/{redemptionID}/cancel", h.CancelRedemption)

			r.Post("/campaigns", h.CreateGame)
			r.Put("/campaigns/{gameID}", h.UpdateGame)
			r.Post("/campaigns/{gameID}/end", h.EndGame)
		})
	})

	return r
}
