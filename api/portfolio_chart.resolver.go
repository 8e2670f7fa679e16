package api

import (
	"fmt"

	"portfoliobacktest/internal/domain"
	"portfoliobacktest/internal/report"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) portfolioChart(c *gin.Context) {
	requestBody, perf, ok := h.computeFromRequest(c)
	if !ok {
		return
	}

	endSpan := domain.StartSpan(c.Request.Context(), "render chart")
	png, err := report.RenderChart(*perf, requestBody.Assets)
	endSpan()
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to render portfolio chart: %w", err), c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", h.exportFilename("png")))
	c.Data(200, "image/png", png)
}
