// Command pinroute inspects pin connections and routes WAV files through a
// test plugin with them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/justyntemme/pinroute/pkg/framework/debug"
)

var version = "0.1.0"

// Globals are shared by every command.
type Globals struct {
	logger *debug.Logger
	out    io.Writer
}

// CLI defines the command-line interface
type CLI struct {
	LogLevel string           `default:"warn" enum:"debug,info,warn,error,off" help:"Log level (${enum})."`
	Version  kong.VersionFlag `short:"v" help:"Show version information."`

	Matrix MatrixCmd `cmd:"" help:"Print the pin matrices."`
	Render RenderCmd `cmd:"" help:"Route a WAV file through a gain test plugin."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pinroute"),
		kong.Description("Plugin pin connector for host track channels"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	level, err := debug.ParseLevel(cli.LogLevel)
	ctx.FatalIfErrorf(err)
	logger := debug.New(os.Stderr, "pinroute", debug.DefaultFlags)
	logger.SetLevel(level)

	if err := ctx.Run(&Globals{logger: logger, out: os.Stdout}); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
