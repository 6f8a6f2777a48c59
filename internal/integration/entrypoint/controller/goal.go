package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/goal"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/dto"
)

// GoalUseCases groups the goal use cases served by GoalController.
type GoalUseCases struct {
	List        *goal.ListGoalsUseCase
	Create      *goal.CreateGoalUseCase
	Get         *goal.GetGoalUseCase
	Update      *goal.UpdateGoalUseCase
	Delete      *goal.DeleteGoalUseCase
	Refresh     *goal.RefreshGoalUseCase
	Status      *goal.ChangeGoalStatusUseCase
	Summary     *goal.ActiveSummaryUseCase
	Statistics  *goal.GoalStatisticsUseCase
	History     *goal.GoalHistoryUseCase
	Suggestions *goal.GoalSuggestionsUseCase
}

// GoalController handles goal endpoints.
type GoalController struct {
	uc    GoalUseCases
	clock adapter.Clock
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(uc GoalUseCases, clock adapter.Clock) *GoalController {
	return &GoalController{uc: uc, clock: clock}
}

// List handles GET /goals requests. An optional ?status= filters the result.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := goal.ListGoalsInput{UserID: userID}
	if s := ctx.Query("status"); s != "" {
		status := entity.GoalStatus(s)
		input.Status = &status
	}

	output, err := c.uc.List.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests. Period defaults to monthly and start_date to today.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	target, err := parseAmount(req.TargetAmount)
	if err != nil {
		badRequest(ctx, "Invalid target amount", string(domainerror.ErrCodeInvalidTargetAmount))
		return
	}
	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "Invalid start_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidGoalDates))
		return
	}
	if start == nil {
		today := valueobject.DateOf(c.clock.Now())
		start = &today
	}

	input := goal.CreateGoalInput{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: target,
		Type:         entity.GoalType(req.GoalType),
		Period:       entity.GoalPeriod(req.Period),
		StartDate:    *start,
	}
	if input.Period == "" {
		input.Period = entity.GoalPeriodMonthly
	}
	if req.EndDate != nil {
		if input.EndDate, err = parseOptionalDate(*req.EndDate); err != nil {
			badRequest(ctx, "Invalid end_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidGoalDates))
			return
		}
	}

	output, err := c.uc.Create.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Summary handles GET /goals/summary requests.
func (c *GoalController) Summary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	summary, err := c.uc.Summary.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalSummaryResponse(summary))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	in, ok := goalQuery(ctx)
	if !ok {
		return
	}

	output, err := c.uc.Get.Execute(ctx.Request.Context(), goal.GetGoalInput(in))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	in, ok := goalQuery(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	input := goal.UpdateGoalInput{
		GoalID: in.GoalID,
		UserID: in.UserID,
		Name:   req.Name,
	}
	if req.TargetAmount != nil {
		target, err := parseAmount(*req.TargetAmount)
		if err != nil {
			badRequest(ctx, "Invalid target amount", string(domainerror.ErrCodeInvalidTargetAmount))
			return
		}
		input.TargetAmount = &target
	}
	if req.EndDate != nil {
		end, err := parseOptionalDate(*req.EndDate)
		if err != nil || end == nil {
			badRequest(ctx, "Invalid end_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidGoalDates))
			return
		}
		input.EndDate = end
	}

	output, err := c.uc.Update.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	in, ok := goalQuery(ctx)
	if !ok {
		return
	}

	if err := c.uc.Delete.Execute(ctx.Request.Context(), goal.DeleteGoalInput(in)); err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Refresh handles POST /goals/:id/refresh requests.
func (c *GoalController) Refresh(ctx *gin.Context) {
	in, ok := goalQuery(ctx)
	if !ok {
		return
	}

	output, err := c.uc.Refresh.Execute(ctx.Request.Context(), goal.RefreshGoalInput(in))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// ChangeStatus returns the handler for POST /goals/:id/{cancel,complete,reactivate}.
func (c *GoalController) ChangeStatus(action goal.StatusAction) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		in, ok := goalQuery(ctx)
		if !ok {
			return
		}

		output, err := c.uc.Status.Execute(ctx.Request.Context(), goal.ChangeGoalStatusInput{
			GoalID: in.GoalID,
			UserID: in.UserID,
			Action: action,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
	}
}

// Statistics handles GET /goals/:id/statistics requests.
func (c *GoalController) Statistics(ctx *gin.Context) {
	in, ok := goalQuery(ctx)
	if !ok {
		return
	}

	stats, err := c.uc.Statistics.Execute(ctx.Request.Context(), in)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalStatisticsResponse(stats))
}

// History handles GET /goals/:id/history requests.
func (c *GoalController) History(ctx *gin.Context) {
	in, ok := goalQuery(ctx)
	if !ok {
		return
	}

	points, err := c.uc.History.Execute(ctx.Request.Context(), in)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"history": dto.ToGoalHistoryResponse(points)})
}

// Suggestions handles GET /goals/:id/suggestions requests.
func (c *GoalController) Suggestions(ctx *gin.Context) {
	in, ok := goalQuery(ctx)
	if !ok {
		return
	}

	suggestions, err := c.uc.Suggestions.Execute(ctx.Request.Context(), in)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"suggestions": dto.ToGoalSuggestionsResponse(suggestions)})
}

func goalQuery(ctx *gin.Context) (goal.GoalQueryInput, bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return goal.GoalQueryInput{}, false
	}
	id, ok := pathUUID(ctx, "id", "goal")
	if !ok {
		return goal.GoalQueryInput{}, false
	}
	return goal.GoalQueryInput{GoalID: id, UserID: userID}, true
}
