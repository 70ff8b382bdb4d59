package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/bl/internal/config"
	"github.com/you-not-fish/bl/internal/syntax"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	verbose bool

	conf *config.Config
	log  *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "blc",
		Short: "BL parser toolkit",
		Long: `blc parses programs written in BL, the block-structured language of
the BL virtual machine, and reports what it finds.

Configuration is read from --config, from $BL_CONFIG, or from ./bl.toml.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $BL_CONFIG or ./bl.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newTokensCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newCountCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.cfgFile != "" {
		a.conf, err = config.Load(a.cfgFile)
	} else {
		a.conf, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	a.log, err = a.conf.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
	a.log.WithField("max_depth", a.conf.Parser.MaxDepth).Debug("configuration loaded")
	return nil
}

// readSource returns the contents of filename, or of standard input when
// filename is "-".
func readSource(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(filename)
}

// displayName is the file name used in positions.
func displayName(filename string) string {
	if filename == "-" {
		return "<stdin>"
	}
	return filename
}

// parseFile parses filename as a complete program. Diagnostics are
// printed to the command's error stream; on failure the returned error
// only carries the exit status.
func (a *app) parseFile(cmd *cobra.Command, filename string) (*syntax.Program, error) {
	src, err := readSource(cmd, filename)
	if err != nil {
		return nil, err
	}

	stderr := cmd.ErrOrStderr()
	errh := func(pos syntax.Pos, msg string) {
		errorColor.Fprintf(stderr, "%s: ", pos)
		fmt.Fprintln(stderr, msg)
	}

	prog, err := syntax.ParseProgramDepth(displayName(filename), bytes.NewReader(src), a.conf.Parser.MaxDepth, errh)
	if err != nil {
		a.log.WithError(err).Debug("parse failed")
		return nil, &exitError{code: 1}
	}
	a.log.WithFields(logrus.Fields{
		"program":      prog.Name(),
		"instructions": prog.Context().Len(),
	}).Debug("parsed program")
	return prog, nil
}
