package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dramahub/internal/client/api"
	"github.com/goccy/go-json"
)

var errSetUsage = errors.New("usage: fav|watch add <id> | rm <id> | ls | details")

// SetCommand runs one of add, rm, ls or details against a set.
func (a *App) SetCommand(ctx context.Context, set api.Set, args []string) error {
	if len(args) == 0 {
		return errSetUsage
	}

	switch args[0] {
	case "add", "rm":
		if len(args) != 2 {
			return errSetUsage
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[1])
		}

		var ids []int64
		if args[0] == "add" {
			ids, err = a.api.Add(ctx, set, a.user.ID, id)
		} else {
			ids, err = a.api.Remove(ctx, set, a.user.ID, id)
		}
		if err != nil {
			return err
		}
		a.printIDs(set, ids)
		return nil

	case "ls", "list":
		ids, err := a.api.List(ctx, set, a.user.ID)
		if err != nil {
			return err
		}
		a.printIDs(set, ids)
		return nil

	case "details":
		docs, err := a.api.Details(ctx, set, a.user.ID)
		if err != nil {
			return err
		}
		a.printDetails(set, docs)
		return nil
	}

	return errSetUsage
}

func (a *App) printIDs(set api.Set, ids []int64) {
	if len(ids) == 0 {
		fmt.Fprintf(a.out, "%s: empty\n", set)
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	fmt.Fprintf(a.out, "%s: %s\n", set, strings.Join(parts, ", "))
}

// catalogSummary picks the few catalog fields worth showing in a terminal.
type catalogSummary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	FirstAirDate string  `json:"first_air_date"`
	Episodes     int     `json:"number_of_episodes"`
	Vote         float64 `json:"vote_average"`
}

func (a *App) printDetails(set api.Set, docs []json.RawMessage) {
	if len(docs) == 0 {
		fmt.Fprintf(a.out, "%s: empty\n", set)
		return
	}
	for _, d := range docs {
		var s catalogSummary
		if err := json.Unmarshal(d, &s); err != nil {
			fmt.Fprintf(a.out, "  (unreadable entry: %v)\n", err)
			continue
		}
		year := s.FirstAirDate
		if len(year) >= 4 {
			year = year[:4]
		}
		fmt.Fprintf(a.out, "  %-8d %s (%s) %d eps, %.1f\n", s.ID, s.Name, year, s.Episodes, s.Vote)
	}
}
