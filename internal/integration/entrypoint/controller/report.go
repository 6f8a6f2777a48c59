package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/report"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/dto"
)

// ReportUseCases groups the report use cases served by ReportController.
type ReportUseCases struct {
	List       *report.ListReportsUseCase
	Get        *report.GetReportUseCase
	Generate   *report.GenerateReportUseCase
	Delete     *report.DeleteReportUseCase
	Compare    *report.CompareReportsUseCase
	Yearly     *report.YearlySummaryUseCase
	Categories *report.CategoryBreakdownUseCase
	Export     *report.ExportReportUseCase
}

// ReportController handles monthly report endpoints.
type ReportController struct {
	uc    ReportUseCases
	clock adapter.Clock
}

// NewReportController creates a new report controller instance.
func NewReportController(uc ReportUseCases, clock adapter.Clock) *ReportController {
	return &ReportController{uc: uc, clock: clock}
}

// List handles GET /reports?year= requests. The year defaults to the current one.
func (c *ReportController) List(ctx *gin.Context) {
	userID, year, ok := c.userAndYear(ctx)
	if !ok {
		return
	}

	output, err := c.uc.List.Execute(ctx.Request.Context(), report.ListReportsInput{UserID: userID, Year: year})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToReportListResponse(year, output))
}

// Generate handles POST /reports/generate requests. An existing report is replaced.
func (c *ReportController) Generate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.GenerateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidReportPeriod))
		return
	}

	r, err := c.uc.Generate.Execute(ctx.Request.Context(), report.PeriodInput{
		UserID: userID,
		Year:   req.Year,
		Month:  req.Month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToReportResponse(r, true))
}

// Compare handles GET /reports/compare requests.
// Query: year1, month1, year2, month2. Without them the current month is compared with the previous one.
func (c *ReportController) Compare(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := report.CompareInput{UserID: userID}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"year1", &input.Year1},
		{"month1", &input.Month1},
		{"year2", &input.Year2},
		{"month2", &input.Month2},
	} {
		if *p.dst, ok = queryInt(ctx, p.name, 0); !ok {
			return
		}
	}

	output, err := c.uc.Compare.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCompareResponse(output))
}

// Summary handles GET /reports/summary?year= requests.
func (c *ReportController) Summary(ctx *gin.Context) {
	userID, year, ok := c.userAndYear(ctx)
	if !ok {
		return
	}

	summary, err := c.uc.Yearly.Execute(ctx.Request.Context(), report.YearInput{UserID: userID, Year: year})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToYearlySummaryResponse(summary))
}

// Categories handles GET /reports/categories?year= requests.
func (c *ReportController) Categories(ctx *gin.Context) {
	userID, year, ok := c.userAndYear(ctx)
	if !ok {
		return
	}

	stats, err := c.uc.Categories.Execute(ctx.Request.Context(), report.YearInput{UserID: userID, Year: year})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"year": year, "category_stats": stats})
}

// Get handles GET /reports/:year/:month requests. A missing report is generated on demand.
func (c *ReportController) Get(ctx *gin.Context) {
	in, ok := periodInput(ctx)
	if !ok {
		return
	}

	r, err := c.uc.Get.Execute(ctx.Request.Context(), in)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToReportResponse(r, true))
}

// Delete handles DELETE /reports/:year/:month requests.
func (c *ReportController) Delete(ctx *gin.Context) {
	in, ok := periodInput(ctx)
	if !ok {
		return
	}

	if err := c.uc.Delete.Execute(ctx.Request.Context(), in); err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Export handles GET /reports/:year/:month/export?format=json|xlsx requests.
func (c *ReportController) Export(ctx *gin.Context) {
	in, ok := periodInput(ctx)
	if !ok {
		return
	}

	format := adapter.ExportFormat(strings.ToLower(ctx.DefaultQuery("format", string(adapter.ExportJSON))))
	output, err := c.uc.Export.Execute(ctx.Request.Context(), report.ExportInput{PeriodInput: in, Format: format})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, output.ContentType, output.Body)
}

func (c *ReportController) userAndYear(ctx *gin.Context) (uuid.UUID, int, bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return uuid.Nil, 0, false
	}
	year, ok := queryInt(ctx, "year", c.clock.Now().Year())
	if !ok {
		return uuid.Nil, 0, false
	}
	return userID, year, true
}

func periodInput(ctx *gin.Context) (report.PeriodInput, bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return report.PeriodInput{}, false
	}
	year, ok := pathInt(ctx, "year")
	if !ok {
		return report.PeriodInput{}, false
	}
	month, ok := pathInt(ctx, "month")
	if !ok {
		return report.PeriodInput{}, false
	}
	return report.PeriodInput{UserID: userID, Year: year, Month: month}, true
}
