package utils

import (
	"mediport-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
	"strings"
)

// BuildQueryParamsRequest parses the shared list filters from the query
// string. Unparseable numbers fall back to sane defaults rather than
// failing the request.
func BuildQueryParamsRequest(r *http.Request) *requests.QueryParams {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(query.Get("page_size"))
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	days, err := strconv.Atoi(query.Get("days"))
	if err != nil || days <= 0 {
		days = 30
	}

	return &requests.QueryParams{
		Page:           page,
		PageSize:       pageSize,
		Search:         strings.TrimSpace(query.Get("search")),
		Status:         strings.TrimSpace(query.Get("status")),
		Specialization: strings.TrimSpace(query.Get("specialization")),
		DateFrom:       strings.TrimSpace(query.Get("date_from")),
		DateTo:         strings.TrimSpace(query.Get("date_to")),
		Date:           strings.TrimSpace(query.Get("date")),
		Format:         strings.TrimSpace(query.Get("format")),
		Days:           days,
	}
}
