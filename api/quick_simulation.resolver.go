package api

import (
	"dotyield/internal/domain"
	l3_service "dotyield/internal/service/l3"

	"github.com/gin-gonic/gin"
)

type quickSimulationRequest struct {
	InitialAmountUsd float64                 `json:"initialAmountUsd"`
	StartDate        string                  `json:"startDate"`
	EndDate          string                  `json:"endDate"`
	Allocations      []domain.AllocationSpec `json:"allocations"`
}

func (m ApiHandler) quickSimulation(c *gin.Context) {
	var requestBody quickSimulationRequest
	if err := prettyBind(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	startDate, err := parseDateParam(requestBody.StartDate, "startDate")
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	endDate, err := parseDateParam(requestBody.EndDate, "endDate")
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := m.BacktestService.RunQuickSimulation(c.Request.Context(), l3_service.QuickSimulationRequest{
		InitialAmountUsd: requestBody.InitialAmountUsd,
		StartDate:        startDate,
		EndDate:          endDate,
		Allocations:      requestBody.Allocations,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
