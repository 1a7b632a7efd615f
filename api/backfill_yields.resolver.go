package api

import (
	"dotyield/internal/domain"

	"github.com/gin-gonic/gin"
)

type backfillYieldsRequest struct {
	Assets []string `json:"assets"`
}

func (m ApiHandler) backfillYields(c *gin.Context) {
	var requestBody backfillYieldsRequest
	if err := prettyBind(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if len(requestBody.Assets) == 0 {
		returnErrorJson(domain.InvalidRequestError{Reason: "at least one asset is required"}, c)
		return
	}

	counts := map[string]int{}
	for _, asset := range requestBody.Assets {
		count, err := m.YieldDerivationService.BackfillYieldHistory(c.Request.Context(), asset)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		counts[asset] = count
	}

	c.JSON(200, gin.H{"snapshotsByAsset": counts})
}
