// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-storefront/models"
)

const defaultSortOrder = "name asc"

// Request parameters read by the preferences gate.
const (
	ParamLimit      = "limit"
	ParamOrder      = "order"
	ParamOrderDir   = "orderdir"
	ParamViewType   = "viewtype"
	ParamCategoryID = "category_id"
	ParamSearch     = "search"
)

type preferencesService struct {
	defaultPageSize int
}

func NewPreferencesService(defaultPageSize int) PreferencesService {
	return &preferencesService{defaultPageSize: defaultPageSize}
}

func (p *preferencesService) defaults() models.ViewPreferences {
	return models.ViewPreferences{
		PageSize:  p.defaultPageSize,
		SortOrder: defaultSortOrder,
		ViewType:  models.ViewTypeList,
	}
}

// Load returns the preferences stored under key with params applied on top,
// and stores the result back. Malformed parameters are ignored.
func (p *preferencesService) Load(sess *models.BrowserSession, key string, params url.Values) models.ViewPreferences {
	prefs, ok := sess.Preferences(key)
	if !ok {
		prefs = p.defaults()
	}

	if raw := params.Get(ParamLimit); raw != "" {
		// 0 lists everything on one page
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 0 {
			prefs.PageSize = limit
		}
	}

	if order := strings.TrimSpace(params.Get(ParamOrder)); order != "" {
		prefs.SortOrder = strings.TrimSpace(order + " " + params.Get(ParamOrderDir))
	}

	switch viewType := params.Get(ParamViewType); viewType {
	case models.ViewTypeList, models.ViewTypeIcon:
		prefs.ViewType = viewType
	}

	if params.Has(ParamSearch) {
		prefs.Filters.Search = strings.TrimSpace(params.Get(ParamSearch))
		prefs.Filters.CategoryID = 0
	} else if raw := params.Get(ParamCategoryID); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id >= 0 {
			prefs.Filters.CategoryID = id
		}
	}

	sess.SetPreferences(key, prefs)
	return prefs
}

// Reset forgets the preferences stored under key.
func (p *preferencesService) Reset(sess *models.BrowserSession, key string) {
	if _, ok := sess.Preferences(key); ok {
		sess.SetPreferences(key, p.defaults())
	}
}

// ClearCategoryFilters drops the category filter from every stored key.
func (p *preferencesService) ClearCategoryFilters(sess *models.BrowserSession) {
	for key, prefs := range sess.Prefs {
		if prefs.Filters.CategoryID != 0 {
			prefs.Filters.CategoryID = 0
			sess.Prefs[key] = prefs
		}
	}
}
