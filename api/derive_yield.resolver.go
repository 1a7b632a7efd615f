package api

import (
	"time"

	"dotyield/internal/domain"

	"github.com/gin-gonic/gin"
)

type deriveYieldRequest struct {
	Asset string  `json:"asset"`
	AsOf  *string `json:"asOf"`
}

func (m ApiHandler) deriveYield(c *gin.Context) {
	var requestBody deriveYieldRequest
	if err := prettyBind(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if requestBody.Asset == "" {
		returnErrorJson(domain.InvalidRequestError{Reason: "asset is required"}, c)
		return
	}

	var asOf *time.Time
	if requestBody.AsOf != nil {
		parsed, err := parseDateParam(*requestBody.AsOf, "asOf")
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		asOf = &parsed
	}

	snapshot, err := m.YieldDerivationService.DeriveYield(c.Request.Context(), requestBody.Asset, asOf)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	if snapshot == nil {
		c.JSON(200, gin.H{"snapshot": nil, "message": "no rate observations for asset"})
		return
	}

	c.JSON(200, gin.H{"snapshot": snapshot})
}
