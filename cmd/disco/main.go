package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/discokit/disco/cmd/disco/internal/check"
	"github.com/discokit/disco/cmd/disco/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate a Go client package from a discovery document."`
	Check   check.Cmd  `cmd:"" help:"Validate a discovery document without generating files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("disco"),
		kong.Description("Disco CLI for generating API client packages from discovery documents."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
