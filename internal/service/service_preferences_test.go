package service

import (
	"net/url"
	"testing"

	"github.com/MKhiriev/go-storefront/models"
	"github.com/stretchr/testify/assert"
)

const prefsKey = "order_products_show"

func TestPreferencesService_Load_Defaults(t *testing.T) {
	svc := NewPreferencesService(10)
	sess := models.NewBrowserSession("s")

	prefs := svc.Load(sess, prefsKey, url.Values{})

	assert.Equal(t, models.ViewPreferences{PageSize: 10, SortOrder: "name asc", ViewType: models.ViewTypeList}, prefs)
	stored, ok := sess.Preferences(prefsKey)
	assert.True(t, ok, "defaults are persisted")
	assert.Equal(t, prefs, stored)
}

func TestPreferencesService_Load_Params(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		check  func(t *testing.T, p models.ViewPreferences)
	}{
		{
			name:   "limit",
			params: url.Values{"limit": {"25"}},
			check:  func(t *testing.T, p models.ViewPreferences) { assert.Equal(t, 25, p.PageSize) },
		},
		{
			name:   "limit zero lists everything",
			params: url.Values{"limit": {"0"}},
			check:  func(t *testing.T, p models.ViewPreferences) { assert.Equal(t, 0, p.PageSize) },
		},
		{
			name:   "malformed limit is ignored",
			params: url.Values{"limit": {"ten"}},
			check:  func(t *testing.T, p models.ViewPreferences) { assert.Equal(t, 10, p.PageSize) },
		},
		{
			name:   "order with direction",
			params: url.Values{"order": {"price"}, "orderdir": {"desc"}},
			check:  func(t *testing.T, p models.ViewPreferences) { assert.Equal(t, "price desc", p.SortOrder) },
		},
		{
			name:   "order without direction",
			params: url.Values{"order": {"price"}},
			check:  func(t *testing.T, p models.ViewPreferences) { assert.Equal(t, "price", p.SortOrder) },
		},
		{
			name:   "icon view",
			params: url.Values{"viewtype": {"icon"}},
			check:  func(t *testing.T, p models.ViewPreferences) { assert.Equal(t, models.ViewTypeIcon, p.ViewType) },
		},
		{
			name:   "unknown view type is ignored",
			params: url.Values{"viewtype": {"grid"}},
			check:  func(t *testing.T, p models.ViewPreferences) { assert.Equal(t, models.ViewTypeList, p.ViewType) },
		},
		{
			name:   "category",
			params: url.Values{"category_id": {"4"}},
			check:  func(t *testing.T, p models.ViewPreferences) { assert.Equal(t, int64(4), p.Filters.CategoryID) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPreferencesService(10)
			tt.check(t, svc.Load(models.NewBrowserSession("s"), prefsKey, tt.params))
		})
	}
}

func TestPreferencesService_Load_SearchClearsCategory(t *testing.T) {
	svc := NewPreferencesService(10)
	sess := models.NewBrowserSession("s")

	svc.Load(sess, prefsKey, url.Values{"category_id": {"4"}})
	prefs := svc.Load(sess, prefsKey, url.Values{"search": {" lamp "}})

	assert.Equal(t, "lamp", prefs.Filters.Search)
	assert.Zero(t, prefs.Filters.CategoryID)
}

func TestPreferencesService_Load_RemembersAcrossRequests(t *testing.T) {
	svc := NewPreferencesService(10)
	sess := models.NewBrowserSession("s")

	svc.Load(sess, prefsKey, url.Values{"limit": {"50"}, "viewtype": {"icon"}})
	prefs := svc.Load(sess, prefsKey, url.Values{"order": {"price"}})

	assert.Equal(t, 50, prefs.PageSize)
	assert.Equal(t, models.ViewTypeIcon, prefs.ViewType)
	assert.Equal(t, "price", prefs.SortOrder)

	other := svc.Load(sess, "order_products_search", url.Values{})
	assert.Equal(t, 10, other.PageSize, "keys are independent")
}

func TestPreferencesService_Reset(t *testing.T) {
	svc := NewPreferencesService(10)
	sess := models.NewBrowserSession("s")
	svc.Load(sess, prefsKey, url.Values{"order": {"password"}})

	svc.Reset(sess, prefsKey)

	prefs, _ := sess.Preferences(prefsKey)
	assert.Equal(t, "name asc", prefs.SortOrder)
}

func TestPreferencesService_ClearCategoryFilters(t *testing.T) {
	svc := NewPreferencesService(10)
	sess := models.NewBrowserSession("s")
	sess.SetPreferences("a", models.ViewPreferences{Filters: models.ProductFilter{CategoryID: 2, Search: "x"}})
	sess.SetPreferences("b", models.ViewPreferences{Filters: models.ProductFilter{CategoryID: 5}})

	svc.ClearCategoryFilters(sess)

	a, _ := sess.Preferences("a")
	b, _ := sess.Preferences("b")
	assert.Zero(t, a.Filters.CategoryID)
	assert.Equal(t, "x", a.Filters.Search)
	assert.Zero(t, b.Filters.CategoryID)
}
