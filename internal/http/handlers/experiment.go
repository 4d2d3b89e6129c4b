package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bandit-backend/internal/http/response"
	"github.com/yungbote/bandit-backend/internal/platform/ctxutil"
	"github.com/yungbote/bandit-backend/internal/platform/dbctx"
	"github.com/yungbote/bandit-backend/internal/services"
)

type ExperimentHandler struct {
	experiments services.ExperimentService
}

func NewExperimentHandler(experiments services.ExperimentService) *ExperimentHandler {
	return &ExperimentHandler{experiments: experiments}
}

// POST /api/session/start
func (h *ExperimentHandler) StartSession(c *gin.Context) {
	var req services.StartSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, services.CodeInvalidRequest, err)
		return
	}
	ctxutil.SetPlayerID(c.Request.Context(), req.PlayerID)
	session, err := h.experiments.StartSession(dbctx.Context{Ctx: c.Request.Context()}, req)
	if err != nil {
		response.RespondServiceError(c, err, "start_session_failed")
		return
	}
	response.RespondOK(c, session)
}

// POST /api/trials/
func (h *ExperimentHandler) LogTrial(c *gin.Context) {
	var req services.TrialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, services.CodeInvalidRequest, err)
		return
	}
	ctxutil.SetPlayerID(c.Request.Context(), req.PlayerID)
	trial, err := h.experiments.LogTrial(dbctx.Context{Ctx: c.Request.Context()}, req)
	if err != nil {
		response.RespondServiceError(c, err, "log_trial_failed")
		return
	}
	response.RespondOK(c, trial)
}

// POST /api/ratings/
func (h *ExperimentHandler) LogRating(c *gin.Context) {
	var req services.RatingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, services.CodeInvalidRequest, err)
		return
	}
	ctxutil.SetPlayerID(c.Request.Context(), req.PlayerID)
	rating, err := h.experiments.LogRating(dbctx.Context{Ctx: c.Request.Context()}, req)
	if err != nil {
		response.RespondServiceError(c, err, "log_rating_failed")
		return
	}
	response.RespondOK(c, rating)
}

// PUT /api/session/end/:player_id
//
// Closing with nothing open answers 200 with a null body.
func (h *ExperimentHandler) EndSession(c *gin.Context) {
	session, err := h.experiments.EndSession(dbctx.Context{Ctx: c.Request.Context()}, c.Param("player_id"))
	if err != nil {
		response.RespondServiceError(c, err, "end_session_failed")
		return
	}
	if session == nil {
		response.RespondOK(c, nil)
		return
	}
	response.RespondOK(c, session)
}
