package main

import (
	"database/sql"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var errNotFound = errors.New("website not found")

type WebsiteDB struct {
	db *sqlx.DB
}

// sort_order is the JSON "order" field; ORDER is reserved in SQL.
const selectWebsites = `
SELECT w.website_id, w.name, w.url, w.icon_url, w.description, w.sort_order, w.category_id,
       c.name AS category_name
FROM websites w
LEFT JOIN categories c ON w.category_id = c.id`

func (d *WebsiteDB) GetWebsite(id int) (Website, error) {
	var site Website
	if err := d.db.Get(&site, selectWebsites+` WHERE w.website_id = ?;`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Website{}, errNotFound
		}
		return Website{}, err
	}

	return site, nil
}

func (d *WebsiteDB) ListWebsites() ([]Website, error) {
	sites := []Website{}
	if err := d.db.Select(&sites,
		selectWebsites+` ORDER BY w.sort_order ASC;`); err != nil {
		return nil, err
	}

	return sites, nil
}

func (d *WebsiteDB) ListWebsitesPage(skip, limit int) ([]Website, error) {
	sites := []Website{}
	if err := d.db.Select(&sites,
		selectWebsites+` ORDER BY w.sort_order ASC LIMIT ? OFFSET ?;`, limit, skip); err != nil {
		return nil, err
	}

	return sites, nil
}

func (d *WebsiteDB) CountWebsites() (int, error) {
	var total int
	if err := d.db.Get(&total, `SELECT COUNT(*) FROM websites;`); err != nil {
		return 0, err
	}

	return total, nil
}

func (d *WebsiteDB) InsertWebsite(site Website) (int, error) {
	res, err := d.db.Exec(
		`INSERT INTO websites (name, url, icon_url, description, sort_order, category_id)
		 VALUES (?, ?, ?, ?, ?, ?);`,
		site.Name, site.URL, site.IconURL, site.Description, site.Order, site.CategoryID)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

// UpdateWebsite applies only the fields set in upd to an existing row.
// Returns errNotFound when the row does not exist.
func (d *WebsiteDB) UpdateWebsite(id int, upd WebsiteUpdate) error {
	if _, err := d.GetWebsite(id); err != nil {
		return err
	}

	var (
		sets []string
		args []interface{}
	)
	set := func(col string, v interface{}) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}

	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.URL != nil {
		set("url", *upd.URL)
	}
	if upd.IconURL != nil {
		set("icon_url", *upd.IconURL)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Order != nil {
		set("sort_order", *upd.Order)
	}
	if upd.CategoryID != nil {
		set("category_id", *upd.CategoryID)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := `UPDATE websites SET ` + strings.Join(sets, ", ") + ` WHERE website_id=?;`
	if _, err := d.db.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (d *WebsiteDB) DeleteWebsite(id int) error {
	res, err := d.db.Exec(`DELETE FROM websites WHERE website_id=?;`, id)
	if err != nil {
		return err
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return errNotFound
	}

	return nil
}

func newDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func initDB(dbFilePath string) {
	file, err := os.Create(dbFilePath)
	if err != nil {
		log.Fatal(err)
	}
	file.Close()

	db, err := sqlx.Connect("sqlite", dbFilePath)
	if err != nil {
		log.Fatal(err)
	}

	if err := execSchema(db); err != nil {
		log.Fatal(err)
	}

	if err := db.Close(); err != nil {
		log.Fatal(err)
	}
}

func execSchema(db *sqlx.DB) error {
	schemaFile, err := setupFS.Open("schema.sql")
	if err != nil {
		return err
	}

	schema, err := io.ReadAll(schemaFile)
	if err != nil {
		return err
	}

	if err := schemaFile.Close(); err != nil {
		return err
	}

	if _, err := db.Exec(string(schema)); err != nil {
		return err
	}

	return nil
}
