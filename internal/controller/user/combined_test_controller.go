package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/is-richmond/course-v1/internal/dto"
	"github.com/is-richmond/course-v1/internal/service"
	"github.com/rs/zerolog/log"
)

type CombinedTestController struct {
	combinedTestService service.CombinedTestService
	submissionService   service.SubmissionService
	statisticsService   service.StatisticsService
}

func NewCombinedTestController(
	combinedTestService service.CombinedTestService,
	submissionService service.SubmissionService,
	statisticsService service.StatisticsService,
) *CombinedTestController {
	return &CombinedTestController{
		combinedTestService: combinedTestService,
		submissionService:   submissionService,
		statisticsService:   statisticsService,
	}
}

// Generate godoc
// @Summary Generate a combined test from selected source tests
// @Description Draws questions proportionally from the chosen source tests, shuffles them and stores the composition.
// @Tags Combined Tests
// @Accept json
// @Produce json
// @Param request body dto.CombinedTestGenerateRequest true "Source test ids and requested question count"
// @Success 201 {object} dto.CombinedTestResponse
// @Failure 400 {object} dto.ErrorResponse "Empty source or capacity exceeded"
// @Failure 404 {object} dto.ErrorResponse "A source test does not exist"
// @Failure 500 {object} dto.ErrorResponse
// @Router /combined-tests/generate [post]
func (c *CombinedTestController) Generate(ctx *gin.Context) {
	var req dto.CombinedTestGenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Generate: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.combinedTestService.Generate(req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to generate combined test")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetMyTests godoc
// @Summary List the caller's combined tests
// @Tags Combined Tests
// @Produce json
// @Param user_id query string true "Learner id"
// @Success 200 {array} dto.CombinedTestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /combined-tests/my-tests [get]
func (c *CombinedTestController) GetMyTests(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	tests, err := c.combinedTestService.GetUserTests(userID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to retrieve combined tests")
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetCombinedTest godoc
// @Summary Get a combined test with its full question list
// @Tags Combined Tests
// @Produce json
// @Param test_id path int true "Combined test ID"
// @Param user_id query string true "Learner id"
// @Success 200 {object} dto.CombinedTestDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the test"
// @Failure 404 {object} dto.ErrorResponse
// @Router /combined-tests/{test_id} [get]
func (c *CombinedTestController) GetCombinedTest(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	resp, err := c.combinedTestService.GetTestDetails(testID, userID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to retrieve combined test")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteCombinedTest godoc
// @Summary Delete a combined test and everything derived from it
// @Tags Combined Tests
// @Param test_id path int true "Combined test ID"
// @Param user_id query string true "Learner id"
// @Success 204 "Deleted"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /combined-tests/{test_id} [delete]
func (c *CombinedTestController) DeleteCombinedTest(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	if err := c.combinedTestService.Delete(testID, userID); err != nil {
		respondServiceError(ctx, err, "Failed to delete combined test")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Submit godoc
// @Summary Submit answers for a combined test
// @Description Grades the answer set deterministically and returns the scored attempt.
// @Tags Combined Tests
// @Accept json
// @Produce json
// @Param test_id path int true "Combined test ID"
// @Param submission body dto.CombinedTestSubmission true "Learner id and answers"
// @Success 200 {object} dto.CombinedTestResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /combined-tests/{test_id}/submit [post]
func (c *CombinedTestController) Submit(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.CombinedTestSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Submit: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.Submit(testID, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to submit combined test")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAttemptHistory godoc
// @Summary List the caller's completed attempts
// @Tags Combined Tests
// @Produce json
// @Param user_id query string true "Learner id"
// @Param skip query int false "Offset into the history" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} dto.CombinedTestAttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /combined-tests/attempts/history [get]
func (c *CombinedTestController) GetAttemptHistory(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	attempts, err := c.submissionService.GetUserAttempts(userID, skip, limit)
	if err != nil {
		respondServiceError(ctx, err, "Failed to retrieve attempt history")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttemptDetails godoc
// @Summary Get a completed attempt with all graded answers
// @Tags Combined Tests
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query string true "Learner id"
// @Success 200 {object} dto.CombinedTestAttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /combined-tests/attempts/{attempt_id} [get]
func (c *CombinedTestController) GetAttemptDetails(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	resp, err := c.submissionService.GetAttemptDetails(attemptID, userID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to retrieve attempt")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttemptStatistics godoc
// @Summary Per-topic statistics for one attempt
// @Tags Combined Tests - Statistics
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query string true "Learner id"
// @Success 200 {object} dto.AttemptTopicStatistics
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /combined-tests/statistics/attempt/{attempt_id} [get]
func (c *CombinedTestController) GetAttemptStatistics(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	resp, err := c.statisticsService.AttemptStatistics(attemptID, userID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to compute attempt statistics")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetOverallStatistics godoc
// @Summary Overall statistics across all completed attempts
// @Tags Combined Tests - Statistics
// @Produce json
// @Param user_id query string true "Learner id"
// @Success 200 {object} dto.OverallStatistics
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /combined-tests/statistics/overall [get]
func (c *CombinedTestController) GetOverallStatistics(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	resp, err := c.statisticsService.OverallStatistics(userID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to compute overall statistics")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
