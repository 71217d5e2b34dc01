package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

func ParsePaginationParams(params url.Values) (limit uint64, offset uint64, err error) {
	limit = DefaultLimit
	offset = 0

	if raw := params.Get("limit"); raw != "" {
		limit, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return DefaultLimit, 0, err
		}
		if limit == 0 || limit > MaxLimit {
			limit = DefaultLimit
		}
	}

	if raw := params.Get("offset"); raw != "" {
		offset, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return limit, 0, err
		}
	}

	return limit, offset, nil
}
