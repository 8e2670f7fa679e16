package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"portfoliobacktest/internal/util"

	"github.com/gin-gonic/gin"
)

type benchmarkResponse map[string]float64

type benchmarkRequest struct {
	Symbol      string `json:"symbol"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Granularity string `json:"granularity"`
}

func (h ApiHandler) benchmark(c *gin.Context) {
	var requestBody benchmarkRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(requestBody.Symbol) == "" {
		returnErrorJsonCode(fmt.Errorf("symbol is required"), c, http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.DateOnly, requestBody.Start)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.DateOnly, requestBody.End)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}

	granularity := time.Hour * 24
	if strings.EqualFold(requestBody.Granularity, "weekly") {
		granularity *= 7
	} else if strings.EqualFold(requestBody.Granularity, "monthly") {
		granularity *= 30
	}

	results, err := h.BenchmarkHandler.GetIntraPeriodChange(
		c.Request.Context(),
		requestBody.Symbol,
		start,
		end,
		granularity,
	)
	if err != nil {
		returnServiceError(err, c)
		return
	}

	out := benchmarkResponse{}
	for k, v := range results {
		out[util.FormatDate(k)] = v
	}

	c.JSON(200, out)
}
