package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"portfoliobacktest/internal"
	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/logger"
	l2_service "portfoliobacktest/internal/service/l2"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	PortfolioService l2_service.PortfolioService
	BenchmarkHandler internal.BenchmarkHandler
	// Now anchors lookbacks and trailing periods. defaults to time.Now
	Now func() time.Time
}

func (m ApiHandler) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now()
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(m.requestMiddleware)

	engine.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to portfoliobacktest"})
	})
	engine.POST("/api/portfolio/calculate", m.calculatePortfolio)
	engine.POST("/api/portfolio/chart", m.portfolioChart)
	engine.POST("/api/portfolio/export", m.exportPortfolio)
	engine.POST("/benchmark", m.benchmark)

	return engine
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorf("request failed: %s", err.Error())
	} else {
		log.Warnf("bad request: %s", err.Error())
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// returnServiceError maps caller mistakes to 400 and everything else
// to 500
func returnServiceError(err error, c *gin.Context) {
	if domain.IsValidationError(err) {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	if errors.Is(err, context.Canceled) {
		// client went away, nobody is reading the body
		c.AbortWithStatus(499)
		return
	}
	returnErrorJson(err, c)
}

// requestMiddleware tags every request with an id, a request scoped logger
// and a timing profile, then logs the outcome
func (m ApiHandler) requestMiddleware(c *gin.Context) {
	requestID := uuid.New()
	c.Set("requestID", requestID.String())
	c.Header("X-Request-ID", requestID.String())

	log := logger.FromContext(context.Background()).With("requestID", requestID.String())
	profile, endProfile := domain.NewProfile()

	ctx := logger.NewContext(c.Request.Context(), log)
	ctx = domain.NewCtxWithProfile(ctx, profile)
	c.Request = c.Request.WithContext(ctx)

	start := time.Now()
	c.Next()
	endProfile()

	spans, err := profile.ToJsonBytes()
	if err != nil {
		log.Warnf("failed to marshal profile: %s", err.Error())
	}
	log.Debugw("request profile", "spans", string(spans))
	log.Infow(
		"handled request",
		"method", c.Request.Method,
		"route", c.FullPath(),
		"status", c.Writer.Status(),
		"latencyMs", time.Since(start).Milliseconds(),
		"ip", c.ClientIP(),
	)
}
