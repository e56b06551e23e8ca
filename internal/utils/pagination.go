package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageLimit = 100

// ParsePagination reads page/limit query parameters. On invalid input it
// writes a 400 and returns ok=false.
func ParsePagination(c *gin.Context) (page, limit int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "Invalid page number"))
		return 0, 0, false
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return 0, 0, false
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit, true
}

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
