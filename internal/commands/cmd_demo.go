package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/veil/internal/demo"
)

// ErrNoTerminal is returned when the demo is started without a terminal.
var ErrNoTerminal = errors.New("the demo needs an interactive terminal")

type DemoCmd struct {
	flags *Flags
	name  string
}

// NewDemoCmd creates a new demo command
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{
		flags: flags,
	}
}

// Register adds the demo command to the application
func (cmd *DemoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "demo",
		Usage:     "Open the interactive overlay demo",
		UsageText: "veil demo [options]",
		Description: `Runs a small page that opens modal and drawer overlays on top of itself.

Keys: n opens a modal, d a drawer, c a confirm form, esc closes the top
overlay and q quits. The result of the last closed overlay is shown on the page.`,
		Action: cmd.run,
	})

	return app
}

// Flags returns the demo flags for registration on the root command. Root
// flags are inherited by the demo subcommand.
func (cmd *DemoCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Usage:       "name used by the greeting overlay",
			Sources:     cli.EnvVars("VEIL_NAME"),
			Value:       "from veil",
			Destination: &cmd.name,
		},
	}
}

// Run executes the demo. Exported for use as default command.
func (cmd *DemoCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *DemoCmd) run(ctx context.Context, _ *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := demo.New(ctx, demo.Options{
		Config:  cmd.flags.Config,
		Greeter: demo.StaticGreeter{Name: cmd.name},
		Logger:  log.With().Str("component", "overlay").Logger(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run demo: %w", err)
	}

	return nil
}
