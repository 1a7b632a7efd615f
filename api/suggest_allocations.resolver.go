package api

import (
	"dotyield/internal/domain"

	"github.com/gin-gonic/gin"
)

type suggestAllocationsRequest struct {
	RiskProfile string   `json:"riskProfile"`
	Assets      []string `json:"assets"`
}

func (m ApiHandler) suggestAllocations(c *gin.Context) {
	var requestBody suggestAllocationsRequest
	if err := prettyBind(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if requestBody.RiskProfile == "" {
		returnErrorJson(domain.InvalidRequestError{Reason: "riskProfile is required"}, c)
		return
	}
	if len(requestBody.Assets) == 0 {
		returnErrorJson(domain.InvalidRequestError{Reason: "at least one asset is required"}, c)
		return
	}

	allocations, err := m.SuggestionService.SuggestAllocations(c.Request.Context(), requestBody.RiskProfile, requestBody.Assets)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"allocations": allocations})
}
