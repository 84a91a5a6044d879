package handler

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type pageParams struct {
	Page int
	Size int
}

func parsePageParams(query url.Values) (pageParams, error) {
	page, err := parseIntParam(query.Get("page"), 1)
	if err != nil || page < 1 {
		return pageParams{}, fmt.Errorf("invalid page")
	}

	size, err := parseIntParam(query.Get("size"), defaultPageSize)
	if err != nil || size < 1 {
		return pageParams{}, fmt.Errorf("invalid size")
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return pageParams{Page: page, Size: size}, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func parseBoolParam(value string, fallback bool) (bool, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

func parseUUIDParam(value string) (string, bool) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func totalPages(total int64, size int) int64 {
	if total <= 0 || size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return pages
}
