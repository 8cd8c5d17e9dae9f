package embed

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TheLab-ms/styler/db"
	"github.com/TheLab-ms/styler/internal/chartstyle"
	"github.com/google/uuid"
)

//go:embed schema.sql
var migration string

// ErrNotFound is returned when a widget instance doesn't exist.
var ErrNotFound = errors.New("widget instance not found")

// Layout is a widget's position on the dashboard grid.
type Layout struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Instance is a widget placed on the dashboard, along with whatever was last
// saved for it by the editor. Kind is empty until the first save.
type Instance struct {
	ID           string                  `json:"id"`
	Created      int64                   `json:"created"`
	Updated      int64                   `json:"updated"`
	CatalogID    string                  `json:"catalogId"`
	Title        string                  `json:"title"`
	Layout       Layout                  `json:"layout"`
	Kind         Kind                    `json:"kind,omitempty"`
	WidgetOid    string                  `json:"widgetOid,omitempty"`
	DashboardOid string                  `json:"dashboardOid,omitempty"`
	Style        *chartstyle.StyleConfig `json:"styleConfig,omitempty"`
	EmbedCode    string                  `json:"embedCode,omitempty"`
}

// Existing converts the saved state into what the editor loads.
func (i *Instance) Existing() Existing {
	switch i.Kind {
	case KindStyled:
		style := chartstyle.Default()
		if i.Style != nil {
			style = *i.Style
		}
		return Existing{Styled: &StyledConfig{WidgetOid: i.WidgetOid, DashboardOid: i.DashboardOid, Style: style}}
	case KindSDK, KindHTML:
		return Existing{EmbedCode: i.EmbedCode}
	}
	return Existing{}
}

// Store persists widget instances in sqlite.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) *Store {
	db.MustMigrate(database, migration)
	return &Store{db: database}
}

// Create places a new, not yet configured widget on the dashboard.
func (s *Store) Create(ctx context.Context, catalogID, title string, layout Layout) (*Instance, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO widget_instances (id, catalog_id, title, layout_x, layout_y, layout_w, layout_h)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, catalogID, title, layout.X, layout.Y, layout.W, layout.H)
	if err != nil {
		return nil, fmt.Errorf("inserting widget instance: %w", err)
	}
	return s.Get(ctx, id)
}

// Put saves a target. An empty id creates a new instance, otherwise the
// instance must exist (ErrNotFound). Saving replaces whatever the instance
// held before, including targets of another kind.
func (s *Store) Put(ctx context.Context, target Target, id string) (string, error) {
	var widgetOid, dashboardOid, styleJSON, embedCode any
	switch t := target.(type) {
	case Styled:
		js, err := json.Marshal(t.Config.Style)
		if err != nil {
			return "", fmt.Errorf("encoding style: %w", err)
		}
		widgetOid, dashboardOid, styleJSON = t.Config.WidgetOid, t.Config.DashboardOid, string(js)
	case SDK:
		embedCode = t.EmbedCode
	case HTML:
		embedCode = t.EmbedCode
	default:
		return "", fmt.Errorf("unknown embed target %T", target)
	}

	kind := string(target.Kind())
	if id == "" {
		id = uuid.NewString()
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO widget_instances (id, kind, widget_oid, dashboard_oid, style_json, embed_code)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, kind, widgetOid, dashboardOid, styleJSON, embedCode)
		if err != nil {
			return "", fmt.Errorf("inserting widget instance: %w", err)
		}
		return id, nil
	}

	// A widget removed while its save was pending stays removed.
	res, err := s.db.ExecContext(ctx, `
		UPDATE widget_instances SET
			kind = ?, widget_oid = ?, dashboard_oid = ?, style_json = ?, embed_code = ?,
			updated = unixepoch()
		WHERE id = ?`,
		kind, widgetOid, dashboardOid, styleJSON, embedCode, id)
	if err := affectedOne(res, err); err != nil {
		return "", fmt.Errorf("saving widget instance %s: %w", id, err)
	}
	return id, nil
}

const instanceColumns = `id, created, updated, catalog_id, title, layout_x, layout_y, layout_w, layout_h,
	kind, COALESCE(widget_oid, ''), COALESCE(dashboard_oid, ''), style_json, COALESCE(embed_code, '')`

type scanner interface{ Scan(...any) error }

func scanInstance(row scanner) (*Instance, error) {
	inst := &Instance{}
	var kind string
	var styleJSON sql.NullString
	err := row.Scan(&inst.ID, &inst.Created, &inst.Updated, &inst.CatalogID, &inst.Title,
		&inst.Layout.X, &inst.Layout.Y, &inst.Layout.W, &inst.Layout.H,
		&kind, &inst.WidgetOid, &inst.DashboardOid, &styleJSON, &inst.EmbedCode)
	if err != nil {
		return nil, err
	}
	inst.Kind = Kind(kind)

	if styleJSON.Valid {
		style, err := chartstyle.Merge(chartstyle.Default(), []byte(styleJSON.String))
		if err != nil {
			return nil, fmt.Errorf("decoding style of widget %s: %w", inst.ID, err)
		}
		inst.Style = &style
	}
	return inst, nil
}

// Get returns one instance or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Instance, error) {
	inst, err := scanInstance(s.db.QueryRowContext(ctx, "SELECT "+instanceColumns+" FROM widget_instances WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return inst, err
}

// LoadExisting returns the saved state of an instance for the editor.
func (s *Store) LoadExisting(ctx context.Context, id string) (Existing, error) {
	inst, err := s.Get(ctx, id)
	if err != nil {
		return Existing{}, err
	}
	return inst.Existing(), nil
}

// List returns every instance in the order they were added.
func (s *Store) List(ctx context.Context) ([]*Instance, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+instanceColumns+" FROM widget_instances ORDER BY created, rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := []*Instance{}
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, rows.Err()
}

func (s *Store) UpdateLayout(ctx context.Context, id string, layout Layout) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE widget_instances SET layout_x = ?, layout_y = ?, layout_w = ?, layout_h = ?, updated = unixepoch()
		WHERE id = ?`, layout.X, layout.Y, layout.W, layout.H, id)
	return affectedOne(res, err)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM widget_instances WHERE id = ?", id)
	return affectedOne(res, err)
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
