package api

import (
	"fmt"

	"portfoliobacktest/internal/report"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) exportPortfolio(c *gin.Context) {
	_, perf, ok := h.computeFromRequest(c)
	if !ok {
		return
	}

	out, err := report.CurveCsv(*perf)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportFilename("csv")))
	c.Data(200, "text/csv", out)
}
