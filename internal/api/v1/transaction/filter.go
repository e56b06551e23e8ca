package transaction

import (
	"net/http"
	"strconv"
	"strings"

	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ParseFilter reads the transaction list filters from the query string. The
// user_id filter is honoured only when allowUserFilter is set. On invalid
// input it writes a 400 and returns ok=false.
func ParseFilter(c *gin.Context, allowUserFilter bool) (services.TransactionFilter, bool) {
	var filter services.TransactionFilter

	badRequest := func(message string) (services.TransactionFilter, bool) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, message))
		return filter, false
	}

	if allowUserFilter {
		if userIDStr, exists := c.GetQuery("user_id"); exists {
			userID, err := strconv.ParseUint(userIDStr, 10, 64)
			if err != nil {
				return badRequest("Invalid user_id")
			}
			uid := uint(userID)
			filter.UserID = &uid
		}
	}

	if typeStr, exists := c.GetQuery("type"); exists {
		t := models.TransactionType(strings.ToLower(typeStr))
		if !t.Valid() {
			return badRequest("Invalid type, expected income or expense")
		}
		filter.Type = &t
	}

	if categoryStr, exists := c.GetQuery("category_id"); exists {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 64)
		if err != nil {
			return badRequest("Invalid category_id")
		}
		cid := uint(categoryID)
		filter.CategoryID = &cid
	}

	for _, p := range []struct {
		key string
		dst **models.Date
	}{
		{"start_date", &filter.StartDate},
		{"end_date", &filter.EndDate},
	} {
		if raw, exists := c.GetQuery(p.key); exists {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				return badRequest("Invalid " + p.key + " format")
			}
			d := models.DateOf(parsed)
			*p.dst = &d
		}
	}

	for _, p := range []struct {
		key string
		dst **decimal.Decimal
	}{
		{"min_amount", &filter.MinAmount},
		{"max_amount", &filter.MaxAmount},
	} {
		if raw, exists := c.GetQuery(p.key); exists {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return badRequest("Invalid " + p.key)
			}
			*p.dst = &amount
		}
	}

	return filter, true
}

// CategoryNamesFor loads display names for the categories of transactions.
func CategoryNamesFor(transactions []models.Transaction) (map[uint]string, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, t := range transactions {
		if !seen[t.CategoryID] {
			seen[t.CategoryID] = true
			ids = append(ids, t.CategoryID)
		}
	}
	return services.CategoryNames(ids)
}
