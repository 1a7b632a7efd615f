package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"dotyield/api"
	"dotyield/internal/repository"
	l1_service "dotyield/internal/service/l1"
	l2_service "dotyield/internal/service/l2"
	l3_service "dotyield/internal/service/l3"
	"dotyield/internal/util"
	coingecko_client "dotyield/pkg/coingecko"
	cryptocompare_client "dotyield/pkg/cryptocompare"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	gptRepository, err := repository.NewGptRepository(secrets.ChatGPTApiKey)
	if err != nil {
		return nil, err
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	rateHistoryRepository := repository.NewRateHistoryRepository()
	yieldSnapshotRepository := repository.NewYieldSnapshotRepository()
	backtestRunRepository := repository.NewBacktestRunRepository()

	geckoClient := coingecko_client.NewClient(secrets.CoinGeckoApiKey)
	compareClient := cryptocompare_client.NewClient()
	priceService := l1_service.NewPriceService(geckoClient, compareClient)

	yieldDerivationService := l2_service.NewYieldDerivationService(
		dbConn,
		rateHistoryRepository,
		yieldSnapshotRepository,
		priceService,
	)
	backtestService := l3_service.NewBacktestService(
		dbConn,
		yieldSnapshotRepository,
		backtestRunRepository,
	)
	suggestionService := l3_service.NewSuggestionService(gptRepository)

	return &api.ApiHandler{
		Db:                      dbConn,
		BacktestService:         backtestService,
		SuggestionService:       suggestionService,
		YieldDerivationService:  yieldDerivationService,
		YieldSnapshotRepository: yieldSnapshotRepository,
		ApiRequestRepository:    repository.ApiRequestRepositoryHandler{},
		JwtDecodeToken:          secrets.Jwt,
	}, nil
}
