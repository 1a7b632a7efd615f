package repository

import (
	"dotyield/internal/db/models/postgres/public/model"
	. "dotyield/internal/db/models/postgres/public/table"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
)

// BacktestRunRepository persists completed runs verbatim for audit. The
// engines never read these rows back during a run.
type BacktestRunRepository interface {
	Add(db qrm.Queryable, run model.BacktestRun) (*model.BacktestRun, error)
}

type backtestRunRepositoryHandler struct{}

func NewBacktestRunRepository() BacktestRunRepository {
	return backtestRunRepositoryHandler{}
}

func (h backtestRunRepositoryHandler) Add(db qrm.Queryable, run model.BacktestRun) (*model.BacktestRun, error) {
	query := BacktestRun.
		INSERT(BacktestRun.MutableColumns).
		MODEL(run).
		RETURNING(BacktestRun.AllColumns)

	out := &model.BacktestRun{}
	err := query.Query(db, out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert backtest run: %w", err)
	}

	return out, nil
}
