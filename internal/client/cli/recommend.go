package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dramahub/internal/client/api"
)

// Recommend asks for genre, episode count, mood and popularity and prints
// the recommended titles.
func (a *App) Recommend(ctx context.Context) error {
	var p api.Preferences

	for _, q := range []struct {
		prompt string
		dst    *string
	}{
		{"Genre (e.g. romance, thriller)", &p.Genre},
		{"Episode count (e.g. 16, under 12)", &p.Length},
		{"Mood (e.g. lighthearted tone)", &p.Mood},
	} {
		v, err := getSimpleText(a.reader, q.prompt, a.out)
		if err != nil {
			return err
		}
		*q.dst = v
	}

	gems, err := getYesNo(a.reader, "Hidden gems instead of popular titles?", a.out)
	if err != nil {
		return err
	}
	p.Gems = gems

	rec, err := a.api.Recommend(ctx, p)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, rec.Text)
	if len(rec.Titles) > 0 {
		fmt.Fprintln(a.out, "Titles:")
		for _, t := range rec.Titles {
			fmt.Fprintf(a.out, "  %s [%s]\n", t.Name, t.Slug)
		}
	}
	return nil
}
