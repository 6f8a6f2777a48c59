package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/dashboard"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	overviewUseCase *dashboard.GetOverviewUseCase
	statsUseCase    *dashboard.StatsUseCase
	clock           adapter.Clock
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	overviewUseCase *dashboard.GetOverviewUseCase,
	statsUseCase *dashboard.StatsUseCase,
	clock adapter.Clock,
) *DashboardController {
	return &DashboardController{
		overviewUseCase: overviewUseCase,
		statsUseCase:    statsUseCase,
		clock:           clock,
	}
}

// Overview handles GET /dashboard requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	overview, err := c.overviewUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(overview))
}

// QuickStats handles GET /dashboard/quick-stats requests.
func (c *DashboardController) QuickStats(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	stats, err := c.statsUseCase.QuickStats(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// Monthly handles GET /dashboard/monthly?year=&month= requests. Both default to the current month.
func (c *DashboardController) Monthly(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	now := c.clock.Now()
	year, ok := queryInt(ctx, "year", now.Year())
	if !ok {
		return
	}
	month, ok := queryInt(ctx, "month", int(now.Month()))
	if !ok {
		return
	}

	stats, err := c.statsUseCase.Monthly(ctx.Request.Context(), userID, year, month)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// CategoryTrend handles GET /dashboard/categories/:id/trend?months= requests.
func (c *DashboardController) CategoryTrend(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	categoryID, ok := pathUUID(ctx, "id", "category")
	if !ok {
		return
	}
	months, ok := queryInt(ctx, "months", 0)
	if !ok {
		return
	}

	totals, err := c.statsUseCase.CategoryTrend(ctx.Request.Context(), userID, categoryID, months)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryTrendResponse(categoryID.String(), totals))
}

// SpendingReport handles GET /dashboard/spending-report requests.
func (c *DashboardController) SpendingReport(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	report, err := c.statsUseCase.SpendingReport(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// AverageDailyExpense handles GET /dashboard/average-daily?days= requests.
func (c *DashboardController) AverageDailyExpense(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	days, ok := queryInt(ctx, "days", 0)
	if !ok {
		return
	}

	avg, err := c.statsUseCase.AverageDailyExpense(ctx.Request.Context(), userID, days)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AverageDailyExpenseResponse{Days: days, Average: avg})
}
