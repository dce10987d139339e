package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"teamcoin/models"
	"teamcoin/service"
)

// Handler wraps the application services and exposes HTTP handlers.
type Handler struct {
	authService        service.AuthService
	userService        service.UserService
	lotteryService     service.LotteryService
	taskService        service.TaskService
	rewardService      service.RewardService
	gameService        service.GameService
	leaderboardService service.LeaderboardService
}

// NewHandler returns a new Handler over the given services.
func NewHandler(
	authService service.AuthService,
	userService service.UserService,
	lotteryService service.LotteryService,
	taskService service.TaskService,
	rewardService service.RewardService,
	gameService service.GameService,
	leaderboardService service.LeaderboardService,
) *Handler {
	return &Handler{
		authService:        authService,
		userService:        userService,
		lotteryService:     lotteryService,
		taskService:        taskService,
		rewardService:      rewardService,
		gameService:        gameService,
		leaderboardService: leaderboardService,
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// --- Auth ---

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, token, err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.Name, req.Nickname)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, authDTO{User: toUserDTO(user), Token: token})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, token, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, authDTO{User: toUserDTO(user), Token: token})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	// Re-read so the balance reflects mutations since the token was issued
	fresh, err := h.userService.GetUser(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toUserDTO(fresh))
}

// --- Users & transactions ---

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toUserDTOs(users))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toUserDTO(user))
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	var userID *int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		userID = &id
	}

	// Employees only ever see their own entries
	if !caller.IsManager() {
		userID = &caller.ID
	}

	entries, err := h.userService.ListTransactions(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toTransactionDTOs(entries))
}

// --- Leaderboards ---

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.AllTime(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toLeaderboardDTOs(entries))
}

func (h *Handler) MonthlyLeaderboard(w http.ResponseWriter, r *http.Request) {
	month := time.Now().UTC()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
			return
		}
		month = parsed
	}

	entries, err := h.leaderboardService.Monthly(r.Context(), month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toMonthlyEntryDTOs(entries))
}

func (h *Handler) MonthlyChampions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.Champions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toMonthlyEntryDTOs(entries))
}

// --- Lottery ---

type playLotteryRequest struct {
	Low   int   `json:"low"`
	High  int   `json:"high"`
	Stake int64 `json:"stake"`
}

func (h *Handler) PlayLottery(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	var req playLotteryRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.lotteryService.PlayLottery(r.Context(), caller.ID, req.Low, req.High, req.Stake)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, toLotteryResultDTO(result))
}

func (h *Handler) LotteryMultiplier(w http.ResponseWriter, r *http.Request) {
	low, errLow := strconv.Atoi(r.URL.Query().Get("low"))
	high, errHigh := strconv.Atoi(r.URL.Query().Get("high"))
	if errLow != nil || errHigh != nil {
		respondError(w, http.StatusBadRequest, "low and high query params required")
		return
	}

	respondData(w, http.StatusOK, map[string]float64{
		"multiplier": h.lotteryService.Multiplier(low, high),
	})
}

// --- Tasks ---

type submitTaskRequest struct {
	Title   string `json:"title"`
	Outcome string `json:"outcome"`
}

func (h *Handler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	var req submitTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	task, err := h.taskService.SubmitTask(r.Context(), caller.ID, req.Title, req.Outcome)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, toTaskDTO(task))
}

func (h *Handler) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	tasks, err := h.taskService.ListUserTasks(r.Context(), caller.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toTaskDTOs(tasks))
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toTaskDTOs(tasks))
}

type approveTaskRequest struct {
	Reward int64 `json:"reward"`
}

func (h *Handler) ApproveTask(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req approveTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.taskService.ApproveTask(r.Context(), taskID, caller.ID, req.Reward); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil)
}

func (h *Handler) RejectTask(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	taskID, ok := pathID(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.taskService.RejectTask(r.Context(), taskID, caller.ID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil)
}

// --- Rewards & redemptions ---

func (h *Handler) ListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewardService.ListRewards(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toRewardDTOs(rewards))
}

type rewardRequest struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int64  `json:"cost"`
	Category    string `json:"category"`
	Stock       *int64 `json:"stock"`
}

func (h *Handler) CreateReward(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	var req rewardRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	reward := &models.Reward{
		Icon:        req.Icon,
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		Category:    req.Category,
		Stock:       req.Stock,
		CreatedBy:   caller.ID,
	}

	if err := h.rewardService.CreateReward(r.Context(), reward); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, toRewardDTO(reward))
}

func (h *Handler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	rewardID, ok := pathID(r, "rewardID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid reward id")
		return
	}

	var req rewardRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Activation state and creator are preserved by the service; the
	// toggle endpoint is the only way to flip IsActive.
	reward := &models.Reward{
		ID:          rewardID,
		Icon:        req.Icon,
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		Category:    req.Category,
		Stock:       req.Stock,
	}

	if err := h.rewardService.UpdateReward(r.Context(), reward); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, toRewardDTO(reward))
}

func (h *Handler) ToggleReward(w http.ResponseWriter, r *http.Request) {
	rewardID, ok := pathID(r, "rewardID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid reward id")
		return
	}

	reward, err := h.rewardService.ToggleReward(r.Context(), rewardID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, toRewardDTO(reward))
}

func (h *Handler) RedeemReward(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	rewardID, ok := pathID(r, "rewardID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid reward id")
		return
	}

	redemption, err := h.rewardService.Redeem(r.Context(), caller.ID, rewardID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, toRedemptionDTO(redemption))
}

func (h *Handler) ListRedemptions(w http.ResponseWriter, r *http.Request) {
	redemptions, err := h.rewardService.ListRedemptions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toRedemptionDTOs(redemptions))
}

func (h *Handler) FulfillRedemption(w http.ResponseWriter, r *http.Request) {
	redemptionID, ok := pathID(r, "redemptionID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid redemption id")
		return
	}

	if err := h.rewardService.FulfillRedemption(r.Context(), redemptionID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil)
}

func (h *Handler) CancelRedemption(w http.ResponseWriter, r *http.Request) {
	redemptionID, ok := pathID(r, "redemptionID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid redemption id")
		return
	}

	if err := h.rewardService.CancelRedemption(r.Context(), redemptionID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil)
}

// --- Campaigns ---

func (h *Handler) CurrentGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameService.GetCurrentGame(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if game == nil {
		respondData(w, http.StatusOK, nil)
		return
	}
	respondData(w, http.StatusOK, toGameDTO(game))
}

func (h *Handler) TeamContributions(w http.ResponseWriter, r *http.Request) {
	contributions, err := h.gameService.TeamContributions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, toContributionDTOs(contributions))
}

type gameRequest struct {
	Name        string    `json:"name"`
	TargetCoins int64     `json:"target_coins"`
	Reward      string    `json:"reward"`
	SponsorType string    `json:"sponsor_type"`
	Sponsor     string    `json:"sponsor"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	BonusTop1   int64     `json:"bonus_top1"`
	BonusTop2   int64     `json:"bonus_top2"`
	BonusTop3   int64     `json:"bonus_top3"`
}

func (req *gameRequest) toModel() *models.Game {
	return &models.Game{
		Name:        req.Name,
		TargetCoins: req.TargetCoins,
		Reward:      req.Reward,
		SponsorType: models.SponsorType(req.SponsorType),
		Sponsor:     req.Sponsor,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		BonusTop1:   req.BonusTop1,
		BonusTop2:   req.BonusTop2,
		BonusTop3:   req.BonusTop3,
	}
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	game := req.toModel()
	if err := h.gameService.CreateGame(r.Context(), game); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusCreated, toGameDTO(game))
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathID(r, "gameID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var req gameRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	game := req.toModel()
	game.ID = gameID
	if err := h.gameService.UpdateGame(r.Context(), game); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, toGameDTO(game))
}

func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathID(r, "gameID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	if err := h.gameService.EndGame(r.Context(), gameID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondData(w, http.StatusOK, nil)
}
