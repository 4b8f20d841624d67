package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/response"
	"github.com/sangkips/smartventory-api/pkg/pagination"
)

// parseIDParam reads a positive numeric path parameter. It writes a 400
// response and returns false when the value is malformed.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// pageParams builds validated pagination parameters from query values
func pageParams(page, perPage int) *pagination.PaginationParams {
	p := &pagination.PaginationParams{Page: page, PerPage: perPage}
	p.Validate()
	return p
}
