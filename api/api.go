package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"dotyield/internal/db/models/postgres/public/model"
	"dotyield/internal/domain"
	"dotyield/internal/logger"
	"dotyield/internal/repository"
	l2_service "dotyield/internal/service/l2"
	l3_service "dotyield/internal/service/l3"
	"dotyield/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	Db                      *sql.DB
	BacktestService         l3_service.BacktestService
	SuggestionService       l3_service.SuggestionService
	YieldDerivationService  l2_service.YieldDerivationService
	YieldSnapshotRepository repository.YieldSnapshotRepository
	ApiRequestRepository    repository.ApiRequestRepository
	JwtDecodeToken          string
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to dotyield"})
	})
	router.POST("/backtest", m.backtest)
	router.POST("/simulate", m.quickSimulation)
	router.POST("/deriveYield", m.deriveYield)
	router.POST("/backfillYields", m.backfillYields)
	router.GET("/yieldHistory", m.yieldHistory)
	router.POST("/suggestAllocations", m.suggestAllocations)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	var invalidRequest domain.InvalidRequestError
	if errors.As(err, &invalidRequest) {
		returnErrorJsonCode(err, c, 400)
		return
	}
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Warnf("request failed: %s", err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	log := logger.FromContext(ctx.Request.Context())

	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		log.Warnf("failed to get raw data: %s", err.Error())
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	userID := m.userIDFromRequest(ctx)

	start := time.Now().UTC()
	req, err := m.ApiRequestRepository.Add(m.Db, model.APIRequest{
		UserID:      userID,
		IPAddress:   util.StringPointer(ctx.ClientIP()),
		Method:      ctx.Request.Method,
		Route:       ctx.Request.URL.Path,
		RequestBody: util.StringPointer(string(body)),
		StartTs:     start,
	})
	if err != nil {
		log.Warnf("failed to record api request: %s", err.Error())
	}

	ctx.Next()

	if req != nil {
		durationMs := time.Since(start).Milliseconds()
		statusCode := int32(ctx.Writer.Status())
		req.DurationMs = &durationMs
		req.StatusCode = &statusCode
		req.ResponseBody = util.StringPointer(w.body.String())

		err = m.ApiRequestRepository.Update(m.Db, *req)
		if err != nil {
			log.Warnf("failed to update api request: %s", err.Error())
		}
	}
}

func parseDateParam(raw string, name string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, domain.InvalidRequestError{Reason: fmt.Sprintf("could not parse %s %q, expected YYYY-MM-DD", name, raw)}
	}
	return t, nil
}

func prettyBind(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return domain.InvalidRequestError{Reason: "request body is not valid JSON"}
		}
		return domain.InvalidRequestError{Reason: err.Error()}
	}
	return nil
}
