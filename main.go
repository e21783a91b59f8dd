// Package main is the playdeck entry point.
package main

import (
	"github.com/playdeck/playdeck/cmd"
	"github.com/playdeck/playdeck/config"
	"github.com/playdeck/playdeck/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
