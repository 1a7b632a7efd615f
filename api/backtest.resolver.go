package api

import (
	"dotyield/internal/domain"
	l3_service "dotyield/internal/service/l3"

	"github.com/gin-gonic/gin"
)

type backtestRequest struct {
	InitialAmountUsd       float64                 `json:"initialAmountUsd"`
	StartDate              string                  `json:"startDate"`
	EndDate                string                  `json:"endDate"`
	Allocations            []domain.AllocationSpec `json:"allocations"`
	RebalanceIntervalDays  int                     `json:"rebalanceIntervalDays"`
	IncludeImpermanentLoss bool                    `json:"includeImpermanentLoss"`
	XcmFeeUsd              float64                 `json:"xcmFeeUsd"`
	CompoundFrequencyDays  int                     `json:"compoundFrequencyDays"`
	RiskFreeAnnualPercent  float64                 `json:"riskFreeAnnualPercent"`
}

func (m ApiHandler) backtest(c *gin.Context) {
	var requestBody backtestRequest
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

	result, err := m.BacktestService.RunBacktest(c.Request.Context(), l3_service.BacktestRequest{
		InitialAmountUsd:       requestBody.InitialAmountUsd,
		StartDate:              startDate,
		EndDate:                endDate,
		Allocations:            requestBody.Allocations,
		RebalanceIntervalDays:  requestBody.RebalanceIntervalDays,
		IncludeImpermanentLoss: requestBody.IncludeImpermanentLoss,
		XcmFeeUsd:              requestBody.XcmFeeUsd,
		CompoundFrequencyDays:  requestBody.CompoundFrequencyDays,
		RiskFreeAnnualPercent:  requestBody.RiskFreeAnnualPercent,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
