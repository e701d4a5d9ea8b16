package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"stakebook/internal/models"
	"stakebook/internal/repository"
	"stakebook/internal/service"
)

type SessionHandler struct {
	Repo     repository.Repository
	Sessions *service.SessionService
}

func (h *SessionHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/sessions")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:external_id", h.get)
	g.PUT("/:external_id", h.replace)
	g.DELETE("/:external_id", h.remove)
}

type stakingDealRequest struct {
	Percentage decimal.Decimal  `json:"percentage"`
	Markup     *decimal.Decimal `json:"markup"`
}

type sessionRequest struct {
	BankrollID uint64 `json:"bankroll_id"`
	GameType   string `json:"game_type"`
	Location   string `json:"location"`
	Stakes     string `json:"stakes"`

	Date          string  `json:"date"`
	StartAt       string  `json:"start_at"`
	EndAt         string  `json:"end_at"`
	DayTwoStartAt *string `json:"day_two_start_at"`
	DayTwoEndAt   *string `json:"day_two_end_at"`

	BuyIn         int64 `json:"buy_in"`
	CashOut       int64 `json:"cash_out"`
	Expenses      int64 `json:"expenses"`
	HighHandBonus int64 `json:"high_hand_bonus"`

	RebuyCount   *int    `json:"rebuy_count"`
	Bounties     *int64  `json:"bounties"`
	Entrants     *int    `json:"entrants"`
	Finish       *int    `json:"finish"`
	TourneySize  *string `json:"tourney_size"`
	TourneySpeed *string `json:"tourney_speed"`
	DayCount     *int    `json:"day_count"`

	HandsPerHour int      `json:"hands_per_hour"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`

	StakingDeals []stakingDealRequest `json:"staking_deals"`
}

func (req sessionRequest) toModel() (*models.Session, error) {
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartAt))
	if err != nil {
		return nil, errors.New("invalid start_at")
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(req.EndAt))
	if err != nil {
		return nil, errors.New("invalid end_at")
	}
	date := start
	if strings.TrimSpace(req.Date) != "" {
		date, err = time.Parse(time.RFC3339, strings.TrimSpace(req.Date))
		if err != nil {
			return nil, errors.New("invalid date")
		}
	}

	item := &models.Session{
		BankrollID:    req.BankrollID,
		GameType:      strings.TrimSpace(strings.ToLower(req.GameType)),
		Location:      strings.TrimSpace(req.Location),
		Stakes:        strings.TrimSpace(req.Stakes),
		Date:          date.UTC(),
		StartAt:       start.UTC(),
		EndAt:         end.UTC(),
		BuyIn:         req.BuyIn,
		CashOut:       req.CashOut,
		Expenses:      req.Expenses,
		HighHandBonus: req.HighHandBonus,
		RebuyCount:    req.RebuyCount,
		Bounties:      req.Bounties,
		Entrants:      req.Entrants,
		Finish:        req.Finish,
		TourneySize:   req.TourneySize,
		TourneySpeed:  req.TourneySpeed,
		DayCount:      req.DayCount,
		HandsPerHour:  req.HandsPerHour,
		Notes:         strings.TrimSpace(req.Notes),
	}

	if req.DayTwoStartAt != nil && req.DayTwoEndAt != nil {
		d2start, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.DayTwoStartAt))
		if err != nil {
			return nil, errors.New("invalid day_two_start_at")
		}
		d2end, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.DayTwoEndAt))
		if err != nil {
			return nil, errors.New("invalid day_two_end_at")
		}
		u1, u2 := d2start.UTC(), d2end.UTC()
		item.DayTwoStartAt = &u1
		item.DayTwoEndAt = &u2
	}

	tagsRaw, _ := json.Marshal(req.Tags)
	item.Tags = datatypes.JSON(tagsRaw)

	for _, d := range req.StakingDeals {
		item.StakingDeals = append(item.StakingDeals, models.StakingDeal{
			Percentage: d.Percentage,
			Markup:     d.Markup,
		})
	}

	return item, nil
}

func (h *SessionHandler) create(c *gin.Context) {
	if h.Sessions == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item, err := req.toModel()
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Sessions.Create(c.Request.Context(), item); err != nil {
		writeServiceError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *SessionHandler) replace(c *gin.Context) {
	if h.Sessions == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	externalID := strings.TrimSpace(c.Param("external_id"))
	if externalID == "" {
		Error(c, http.StatusBadRequest, "invalid external_id", nil)
		return
	}
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item, err := req.toModel()
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Sessions.Replace(c.Request.Context(), externalID, item); err != nil {
		writeServiceError(c, err)
		return
	}
	Ok(c, item, nil)
}

func (h *SessionHandler) remove(c *gin.Context) {
	if h.Sessions == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	externalID := strings.TrimSpace(c.Param("external_id"))
	if externalID == "" {
		Error(c, http.StatusBadRequest, "invalid external_id", nil)
		return
	}
	if err := h.Sessions.Delete(c.Request.Context(), externalID); err != nil {
		writeServiceError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": externalID}, nil)
}

func (h *SessionHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	externalID := strings.TrimSpace(c.Param("external_id"))
	item, err := h.Repo.GetSessionByExternalID(c.Request.Context(), externalID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "session not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *SessionHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.ListSessionsParams{
		BankrollID: uint64QueryPtr(c, "bankroll_id"),
		GameType:   strQueryPtr(c, "game_type"),
		Since:      timeQueryPtr(c, "since"),
		Until:      timeQueryPtr(c, "until"),
		Limit:      intQuery(c, "limit", 50),
		Offset:     intQuery(c, "offset", 0),
		OrderBy:    "date",
		Asc:        boolPtr(false),
	}
	items, err := h.Repo.ListSessions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountSessions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBankrollNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidGameType):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		Error(c, http.StatusBadGateway, err.Error(), nil)
	}
}
