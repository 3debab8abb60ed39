package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vijay-prabhu/listgrid/internal/arrange"
	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/database"
	"github.com/vijay-prabhu/listgrid/internal/grid"
	"github.com/vijay-prabhu/listgrid/internal/listing"
	"github.com/vijay-prabhu/listgrid/internal/scoring"
)

func (s *Server) registerHandlers() {
	s.handlers["arrange_listings"] = s.handleArrangeListings
	s.handlers["explain_listing"] = s.handleExplainListing
	s.handlers["list_listings"] = s.handleListListings
}

// referenceTime parses an optional "now" argument
func (s *Server) referenceTime(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return s.now().UTC(), nil
	}
	return listing.ParseTime(raw)
}

type arrangeParams struct {
	Policy        string `json:"policy"`
	SortMode      string `json:"sort_mode"`
	Category      string `json:"category"`
	GroupID       string `json:"group_id"`
	Badge         string `json:"badge"`
	Tag           string `json:"tag"`
	MinTiledItems *int   `json:"min_tiled_items"`
	Now           string `json:"now"`
}

func (s *Server) handleArrangeListings(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p arrangeParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	now, err := s.referenceTime(p.Now)
	if err != nil {
		return nil, err
	}

	opts := s.config.ArrangeOptions()
	if p.Policy != "" {
		opts.ScoringPolicy = p.Policy
	}
	if p.SortMode != "" {
		opts.SortMode = p.SortMode
	}
	if p.Category != "" {
		opts.Filters.Category = p.Category
	}
	if p.GroupID != "" {
		opts.Filters.GroupID = p.GroupID
	}
	if p.Badge != "" {
		opts.Filters.BadgeLabel = p.Badge
	}
	if p.Tag != "" {
		opts.Filters.Tag = p.Tag
	}
	if p.MinTiledItems != nil {
		opts.MinTiledItems = *p.MinTiledItems
	}

	engine, err := arrange.New(opts)
	if err != nil {
		return nil, err
	}

	items, err := s.db.ListListings(ctx, database.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := engine.Arrange(items, now)
	s.log.Debug("arranged listings", "total", result.Filter.Total, "kept", result.Filter.Kept, "layout", result.Layout)

	return result, nil
}

type explainParams struct {
	ID  string `json:"id"`
	Now string `json:"now"`
}

func (s *Server) handleExplainListing(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p explainParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	now, err := s.referenceTime(p.Now)
	if err != nil {
		return nil, err
	}

	item, err := s.db.GetListing(ctx, p.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("listing not found: %s", p.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return arrange.Explain(*item, now, s.config.Engine.RisingRule())
}

type listParams struct {
	Category  string `json:"category"`
	GroupID   string `json:"group_id"`
	SinceDays int    `json:"since_days"`
	Limit     int    `json:"limit"`
}

func (s *Server) handleListListings(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := database.ListOptions{}

	if p.Category != "" {
		opts.Category = &p.Category
	}
	if p.GroupID != "" {
		opts.GroupID = &p.GroupID
	}
	if p.SinceDays > 0 {
		since := s.now().AddDate(0, 0, -p.SinceDays)
		opts.Since = &since
	}

	if p.Limit > 0 {
		opts.Limit = p.Limit
	} else {
		opts.Limit = 50
	}

	items, err := s.db.ListListings(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if items == nil {
		items = []listing.Item{}
	}

	return items, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	var content interface{}
	switch uri {
	case "listgrid://template":
		content = templateResource()
	case "listgrid://policies":
		content = s.policiesResource()
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type templateInfo struct {
	Columns int                          `json:"columns"`
	Rows    int                          `json:"rows"`
	Slots   grid.Template                `json:"slots"`
	Spans   map[grid.SizeClass]grid.Span `json:"spans"`
}

func templateResource() templateInfo {
	t := grid.DefaultTemplate
	spans := make(map[grid.SizeClass]grid.Span)
	for _, size := range []grid.SizeClass{grid.SizeXL, grid.SizeL, grid.SizeM, grid.SizeS} {
		spans[size] = size.Span()
	}
	return templateInfo{
		Columns: t.Cols(),
		Rows:    t.Rows(),
		Slots:   t,
		Spans:   spans,
	}
}

type policiesInfo struct {
	Active     string            `json:"active"`
	Thresholds []grid.Thresholds `json:"thresholds"`
	Rising     badge.RisingRule  `json:"rising"`
	Badges     []badge.Badge     `json:"badges"`
}

func (s *Server) policiesResource() policiesInfo {
	info := policiesInfo{
		Active: s.config.Engine.ScoringPolicy,
		Rising: s.config.Engine.RisingRule(),
		Badges: badge.All(),
	}
	for _, name := range scoring.Names() {
		info.Thresholds = append(info.Thresholds, arrange.ThresholdsFor(name))
	}
	return info
}
