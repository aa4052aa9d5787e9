package simupersona

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/viant/simupersona/internal/store"
)

// PersonasCmd lists the personas a user can see: their own followed by
// other owners' public ones.
type PersonasCmd struct {
	UserID     string `short:"u" long:"user" description:"caller user ID" required:"yes"`
	Profession string `long:"profession" description:"profession substring filter"`
	Tone       string `long:"tone" description:"tone substring filter"`
	Limit      int    `short:"l" long:"limit" description:"page size" default:"10"`
	Offset     int    `short:"o" long:"offset" description:"page offset" default:"0"`
	Stats      bool   `long:"stats" description:"print persona statistics instead"`
}

func (c *PersonasCmd) Execute(_ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if c.Stats {
		stats, err := a.personas.Stats(ctx)
		if err != nil {
			return err
		}
		printStats(os.Stdout, stats)
		return nil
	}
	page, err := a.personas.Visible(ctx, c.UserID, c.Profession, c.Tone, c.Limit, c.Offset)
	if err != nil {
		return err
	}
	printPage(os.Stdout, page, c.UserID)
	return nil
}

func printPage(out io.Writer, page *store.Page, callerID string) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Profession")+"\t"+titleStyle.Render("Tone")+"\t"+titleStyle.Render("Access")+"\t")
	for _, p := range page.Items {
		access := "public"
		if p.Owns(callerID) {
			access = "own"
		}
		_, _ = fmt.Fprintln(w, idStyle.Render(p.ID)+"\t"+p.Name+"\t"+p.Profession+"\t"+p.Tone+"\t"+access+"\t")
	}
	_ = w.Flush()
	more := ""
	if page.Pagination.HasMore {
		more = ", more available"
	}
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d of %d (offset %d%s)", len(page.Items), page.Pagination.Total, page.Pagination.Offset, more)))
}

func printStats(out io.Writer, stats *store.Stats) {
	fmt.Fprintln(out, titleStyle.Render("Total"), stats.Total, dimStyle.Render(fmt.Sprintf("(%d created in the last 7 days)", stats.RecentlyCreated)))
	for _, group := range []struct {
		name   string
		counts map[string]int
	}{{"By profession", stats.ByProfession}, {"By tone", stats.ByTone}} {
		fmt.Fprintln(out, titleStyle.Render(group.name))
		for key, count := range group.counts {
			fmt.Fprintf(out, "  %s: %d\n", key, count)
		}
	}
}
