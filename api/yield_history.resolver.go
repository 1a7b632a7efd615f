package api

import (
	"time"

	"dotyield/internal/domain"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) yieldHistory(c *gin.Context) {
	asset := c.Query("asset")
	if asset == "" {
		returnErrorJson(domain.InvalidRequestError{Reason: "asset query param is required"}, c)
		return
	}

	start := time.Time{}
	if raw := c.Query("start"); raw != "" {
		parsed, err := parseDateParam(raw, "start")
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		start = parsed
	}

	end := time.Now().UTC()
	if raw := c.Query("end"); raw != "" {
		parsed, err := parseDateParam(raw, "end")
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		end = parsed
	}

	yields, err := m.YieldSnapshotRepository.ListDailyYields(m.Db, asset, start, end)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"asset":  asset,
		"yields": yields,
	})
}
