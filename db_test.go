package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *WebsiteDB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, execSchema(db))

	return &WebsiteDB{db}
}

// seedWebsites inserts n rows in reverse display order under one category.
func seedWebsites(t *testing.T, d *WebsiteDB, n int) {
	t.Helper()

	_, err := d.db.Exec(`INSERT INTO categories (id, name) VALUES (1, 'Tools');`)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		_, err := d.InsertWebsite(Website{
			Name:       fmt.Sprintf("site %d", i),
			URL:        fmt.Sprintf("https://site%d.example.com", i),
			IconURL:    "icons/x.png",
			Order:      n - i,
			CategoryID: 1,
		})
		require.NoError(t, err)
	}
}

func TestListWebsitesOrdering(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	seedWebsites(t, d, 5)

	sites, err := d.ListWebsites()
	require.NoError(t, err)
	require.Len(t, sites, 5)

	for i := 1; i < len(sites); i++ {
		assert.GreaterOrEqual(t, sites[i].Order, sites[i-1].Order)
	}
}

func TestListWebsitesPage(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	seedWebsites(t, d, 25)

	total, err := d.CountWebsites()
	require.NoError(t, err)
	assert.Equal(t, 25, total)

	page, err := d.ListWebsitesPage(0, 10)
	require.NoError(t, err)
	assert.Len(t, page, 10)

	last, err := d.ListWebsitesPage(20, 10)
	require.NoError(t, err)
	assert.Len(t, last, 5)
}

func TestGetWebsiteJoinsCategoryName(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	seedWebsites(t, d, 1)

	site, err := d.GetWebsite(1)
	require.NoError(t, err)
	require.NotNil(t, site.CategoryName)
	assert.Equal(t, "Tools", *site.CategoryName)
}

func TestGetWebsiteDanglingCategory(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)

	id, err := d.InsertWebsite(Website{
		Name:       "orphan",
		URL:        "https://orphan.example.com",
		CategoryID: 99,
	})
	require.NoError(t, err)

	site, err := d.GetWebsite(id)
	require.NoError(t, err)
	assert.Nil(t, site.CategoryName)
}

func TestUpdateWebsitePartial(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	seedWebsites(t, d, 1)

	before, err := d.GetWebsite(1)
	require.NoError(t, err)

	name := "renamed"
	require.NoError(t, d.UpdateWebsite(1, WebsiteUpdate{Name: &name}))

	after, err := d.GetWebsite(1)
	require.NoError(t, err)
	assert.Equal(t, "renamed", after.Name)
	assert.Equal(t, before.URL, after.URL)
	assert.Equal(t, before.Order, after.Order)
	assert.Equal(t, before.Description, after.Description)
}

func TestUpdateWebsiteClearsField(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)

	id, err := d.InsertWebsite(Website{
		Name:        "x",
		URL:         "https://x.example.com",
		Description: "something",
		CategoryID:  1,
	})
	require.NoError(t, err)

	empty := ""
	require.NoError(t, d.UpdateWebsite(id, WebsiteUpdate{Description: &empty}))

	after, err := d.GetWebsite(id)
	require.NoError(t, err)
	assert.Equal(t, "", after.Description)
}

func TestUpdateWebsiteNotFound(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)

	name := "ghost"
	err := d.UpdateWebsite(42, WebsiteUpdate{Name: &name})
	assert.True(t, errors.Is(err, errNotFound))
}

func TestDeleteWebsiteTwice(t *testing.T) {
	t.Parallel()

	d := newTestDB(t)
	seedWebsites(t, d, 1)

	require.NoError(t, d.DeleteWebsite(1))

	err := d.DeleteWebsite(1)
	assert.True(t, errors.Is(err, errNotFound))
}
