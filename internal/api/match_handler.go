package api

import (
	"net/http"

	"CricketSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MatchHandler 比赛、球队、场馆与同步记录的只读接口
type MatchHandler struct {
	queryService *service.QueryService
	logger       *logrus.Logger
}

func NewMatchHandler(queryService *service.QueryService, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{
		queryService: queryService,
		logger:       logger,
	}
}

// ListMatches GET /matches
func (h *MatchHandler) ListMatches(c *gin.Context) {
	list, err := h.queryService.ListMatches(c.Request.Context())
	if err != nil {
		h.fail(c, "ListMatches", err)
		return
	}
	respondItems(c, list)
}

// ListTeams GET /teams
func (h *MatchHandler) ListTeams(c *gin.Context) {
	list, err := h.queryService.ListTeams(c.Request.Context())
	if err != nil {
		h.fail(c, "ListTeams", err)
		return
	}
	respondItems(c, list)
}

// ListVenues GET /venues
func (h *MatchHandler) ListVenues(c *gin.Context) {
	list, err := h.queryService.ListVenues(c.Request.Context())
	if err != nil {
		h.fail(c, "ListVenues", err)
		return
	}
	respondItems(c, list)
}

// ingestionsQuery limit 缺省 20，范围 1~100
type ingestionsQuery struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// ListIngestions 最近的同步记录
// GET /ingestions?limit=20
func (h *MatchHandler) ListIngestions(c *gin.Context) {
	var q ingestionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.WithError(err).WithField("limit", c.Query("limit")).Debug("ListIngestions 参数非法")
		respondError(c, http.StatusBadRequest, msgBadRequest)
		return
	}
	list, err := h.queryService.ListRuns(c.Request.Context(), q.Limit)
	if err != nil {
		h.fail(c, "ListIngestions", err)
		return
	}
	respondItems(c, list)
}

func (h *MatchHandler) fail(c *gin.Context, op string, err error) {
	h.logger.WithError(err).WithField("path", c.FullPath()).Errorf("%s failed", op)
	respondError(c, http.StatusInternalServerError, msgInternalError)
}
