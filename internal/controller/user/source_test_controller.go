package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/is-richmond/course-v1/internal/service"
)

type SourceTestController struct {
	userTestService service.UserTestService
}

func NewSourceTestController(userTestService service.UserTestService) *SourceTestController {
	return &SourceTestController{userTestService: userTestService}
}

// GetAllTests godoc
// @Summary List all source tests
// @Description Returns the catalog of source tests with their question counts.
// @Tags Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *SourceTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.userTestService.GetAllTests()
	if err != nil {
		respondServiceError(ctx, err, "Failed to retrieve tests")
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get a source test with questions and options
// @Description Option correctness flags are never exposed through this endpoint.
// @Tags Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id} [get]
func (c *SourceTestController) GetTestDetails(ctx *gin.Context) {
	testID, ok := parseIDParam(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := c.userTestService.GetTestDetails(testID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to retrieve test")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
