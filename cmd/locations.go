package cmd

import (
	"github.com/playdeck/playdeck/history"
	"github.com/playdeck/playdeck/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// location is a file or directory playdeck owns.
type location struct {
	title string
	flag  string
	short mo.Option[string]
	path  func() string

	// listed locations show up in a bare `where`.
	listed bool
	// removable locations can be deleted by `clear`.
	removable bool
	// empty replaces deleting the path, for stores that must stay readable.
	empty func() error
}

var locations = []location{
	{title: "Config", flag: "config", short: mo.Some("c"), path: where.Config, listed: true},
	{title: "Logs", flag: "logs", short: mo.Some("l"), path: where.Logs, listed: true, removable: true},
	{title: "History", flag: "history", short: mo.Some("s"), path: where.History, listed: true, removable: true, empty: history.Clear},
	{title: "Movie cache", flag: "movies", short: mo.Some("m"), path: where.Movies, removable: true},
	{title: "Cache", flag: "cache", path: where.Cache, removable: true},
	{title: "Engine sockets", flag: "sockets", path: where.Sockets, removable: true},
}

// bindLocationFlags adds one boolean flag per location accepted by keep.
func bindLocationFlags(cmd *cobra.Command, usage string, keep func(location) bool) []location {
	kept := lo.Filter(locations, func(l location, _ int) bool { return keep(l) })

	for _, l := range kept {
		if short, ok := l.short.Get(); ok {
			cmd.Flags().BoolP(l.flag, short, false, usage+" "+l.title)
		} else {
			cmd.Flags().Bool(l.flag, false, usage+" "+l.title)
		}
	}
	return kept
}

func selectedLocations(cmd *cobra.Command, from []location) []location {
	return lo.Filter(from, func(l location, _ int) bool {
		return lo.Must(cmd.Flags().GetBool(l.flag))
	})
}
