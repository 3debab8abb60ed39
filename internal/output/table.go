package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/listgrid/internal/arrange"
	"github.com/vijay-prabhu/listgrid/internal/badge"
	"github.com/vijay-prabhu/listgrid/internal/database"
	"github.com/vijay-prabhu/listgrid/internal/listing"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *arrange.Result:
		return resultTable(w, v)
	case []listing.Item:
		return listingsTable(w, v, time.Now())
	case *listing.Item:
		return listingDetail(w, v, time.Now())
	case *arrange.Report:
		return reportTable(w, v)
	case []database.CategoryCount:
		return categoriesTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func resultTable(w io.Writer, r *arrange.Result) error {
	if r.Len() == 0 {
		fmt.Fprintln(w, "No listings matched.")
		return summary(w, r)
	}

	table := tablewriter.NewWriter(w)

	if r.Layout == arrange.LayoutGrid {
		table.Header("#", "Size", "Row", "Col", "Span", "Score", "ID", "Title", "Badges", "Listed")
		for i, t := range r.Tiles {
			row := []string{
				strconv.Itoa(i + 1),
				string(t.Size),
				strconv.Itoa(t.Position.Row),
				strconv.Itoa(t.Position.Col),
				fmt.Sprintf("%dx%d", t.Position.RowSpan, t.Position.ColSpan),
				formatScore(t.Score),
				t.Item.ID,
				truncate(t.Item.Title, 32),
				badgeList(t.Badges),
				listed(t.Item.CreatedAt, r.Now),
			}
			if err := table.Append(row); err != nil {
				return err
			}
		}
	} else {
		table.Header("#", "Score", "ID", "Title", "Category", "Badges", "Listed")
		for i, e := range r.Items {
			score := "-"
			if e.Score != nil {
				score = formatScore(*e.Score)
			}
			row := []string{
				strconv.Itoa(i + 1),
				score,
				e.Item.ID,
				truncate(e.Item.Title, 32),
				e.Item.Category,
				badgeList(e.Badges),
				listed(e.Item.CreatedAt, r.Now),
			}
			if err := table.Append(row); err != nil {
				return err
			}
		}
	}

	if err := table.Render(); err != nil {
		return err
	}
	return summary(w, r)
}

func summary(w io.Writer, r *arrange.Result) error {
	layout := string(r.Layout)
	if r.Fallback {
		layout += " (too few listings to tile)"
	}
	_, err := fmt.Fprintf(w, "%d of %d listings, sort=%s policy=%s layout=%s\n",
		r.Filter.Kept, r.Filter.Total, r.SortMode, r.Policy, layout)
	return err
}

func listingsTable(w io.Writer, items []listing.Item, now time.Time) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No listings found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Category", "Group", "Engagement", "Promotion", "Listed")

	for _, item := range items {
		group := ""
		if item.GroupID != nil {
			group = *item.GroupID
		}
		row := []string{
			item.ID,
			truncate(item.Title, 32),
			item.Category,
			group,
			humanize.Comma(int64(item.EngagementCount)),
			formatPromotion(&item),
			listed(item.CreatedAt, now),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}

func listingDetail(w io.Writer, item *listing.Item, now time.Time) error {
	fmt.Fprintf(w, "ID:          %s\n", item.ID)
	if item.Title != "" {
		fmt.Fprintf(w, "Title:       %s\n", item.Title)
	}
	if item.Category != "" {
		fmt.Fprintf(w, "Category:    %s\n", item.Category)
	}
	if len(item.Tags) > 0 {
		fmt.Fprintf(w, "Tags:        %s\n", strings.Join(item.Tags, ", "))
	}
	if item.GroupID != nil {
		fmt.Fprintf(w, "Group:       %s\n", *item.GroupID)
	}
	fmt.Fprintf(w, "Promotion:   %s\n", formatPromotion(item))
	fmt.Fprintf(w, "Engagement:  %s", humanize.Comma(int64(item.EngagementCount)))
	if item.EngagementDelta24h != nil {
		fmt.Fprintf(w, " (%+g in 24h)", *item.EngagementDelta24h)
	}
	fmt.Fprintln(w)
	if item.IsEditorsPick {
		fmt.Fprintln(w, "Editor's pick: yes")
	}
	fmt.Fprintf(w, "Listed:      %s (%s)\n", item.CreatedAt.Format("Jan 02, 2006 15:04"), listed(item.CreatedAt, now))

	return nil
}

func reportTable(w io.Writer, r *arrange.Report) error {
	if err := listingDetail(w, &r.Item, r.Now); err != nil {
		return err
	}

	fmt.Fprintf(w, "Badges:      %s\n", badgeList(r.Badges))

	for _, p := range r.Policies {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s: %s (size %s)\n", p.Policy, formatScore(p.Score), p.Size)

		table := tablewriter.NewWriter(w)
		table.Header("Clause", "Points")
		for _, c := range p.Contributions {
			if err := table.Append([]string{c.Reason, formatScore(c.Points)}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	return nil
}

func categoriesTable(w io.Writer, counts []database.CategoryCount) error {
	if len(counts) == 0 {
		fmt.Fprintln(w, "No listings found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Category", "Listings")
	for _, c := range counts {
		name := c.Category
		if name == "" {
			name = "(none)"
		}
		if err := table.Append([]string{name, humanize.Comma(int64(c.Count))}); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPromotion(item *listing.Item) string {
	level := string(item.PromotionLevel)
	if level == "" {
		level = string(listing.PromotionNone)
	}
	if item.IsPromoted {
		return level + ", promoted"
	}
	return level
}

func badgeList(badges []badge.Badge) string {
	return strings.Join(badge.Labels(badges), ", ")
}

func listed(createdAt, now time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	return humanize.RelTime(createdAt, now, "ago", "from now")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
