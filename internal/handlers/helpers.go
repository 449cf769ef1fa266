package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// parseID reads the :id path parameter, answering 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.Respond(c, apierrors.BadRequest("Invalid ID"))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apierrors.Respond(c, apierrors.Wrap(apierrors.KindValidation, "Invalid request body", err))
		return false
	}
	return true
}

func setTotalCount(c *gin.Context, n int) {
	c.Header(constants.HeaderTotalCount, strconv.Itoa(n))
}
