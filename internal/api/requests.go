// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/cinematch/internal/validation"
)

// RecommendationQuery holds the query parameters of GET /recommendations.
type RecommendationQuery struct {
	Title     string  `query:"title" validate:"notblank,max=500"`
	K         int     `query:"k" validate:"min=1,max=10"`
	MinRating float64 `query:"min_rating" validate:"gte=0,lte=10"`
}

// PopularQuery holds the query parameters of GET /catalog/popular.
type PopularQuery struct {
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// TitlesQuery holds the query parameters of GET /catalog/titles.
type TitlesQuery struct {
	Prefix string `query:"prefix" validate:"max=500"`
	Limit  int    `query:"limit" validate:"min=1,max=100"`
}

// paramError is a query parameter that failed to parse.
type paramError struct {
	field string
	value string
	kind  string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s must be %s", e.field, e.kind)
}

func (e *paramError) details() map[string]interface{} {
	return map[string]interface{}{"field": e.field, "value": e.value}
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{field: name, value: raw, kind: "an integer"}
	}
	return v, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &paramError{field: name, value: raw, kind: "a number"}
	}
	return v, nil
}

// parseRecommendationQuery reads and validates the recommendation parameters.
// Missing k and min_rating take the given defaults.
func parseRecommendationQuery(q url.Values, defaultK int, defaultMinRating float64) (RecommendationQuery, error) {
	var out RecommendationQuery
	var err error

	out.Title = q.Get("title")
	if out.K, err = intParam(q, "k", defaultK); err != nil {
		return out, err
	}
	if out.MinRating, err = floatParam(q, "min_rating", defaultMinRating); err != nil {
		return out, err
	}
	if verr := validation.ValidateStruct(&out); verr != nil {
		return out, verr
	}
	return out, nil
}

func parsePopularQuery(q url.Values, defaultLimit int) (PopularQuery, error) {
	var out PopularQuery
	var err error
	if out.Limit, err = intParam(q, "limit", defaultLimit); err != nil {
		return out, err
	}
	if verr := validation.ValidateStruct(&out); verr != nil {
		return out, verr
	}
	return out, nil
}

func parseTitlesQuery(q url.Values, defaultLimit int) (TitlesQuery, error) {
	out := TitlesQuery{Prefix: q.Get("prefix")}
	var err error
	if out.Limit, err = intParam(q, "limit", defaultLimit); err != nil {
		return out, err
	}
	if verr := validation.ValidateStruct(&out); verr != nil {
		return out, verr
	}
	return out, nil
}
