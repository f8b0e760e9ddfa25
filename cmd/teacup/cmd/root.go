package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/foundation/engine/grammar"
	"github.com/msto63/teacup/foundation/teacup"
	"github.com/msto63/teacup/internal/history"
	"github.com/msto63/teacup/pkg/core/config"
	"github.com/msto63/teacup/pkg/core/logging"
)

// app carries the state shared by all commands
type app struct {
	cfgFile     string
	grammarFile string
	verbose     bool

	cfg     *config.Config
	logger  *mdwlog.Logger
	doc     *grammar.Document
	grammar *engine.Grammar
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "teacup",
		Short: "teacup - eine grammatikgesteuerte Ausdruckssprache",
		Long: `teacup zerlegt, parst und wertet eine kleine Ausdruckssprache aus,
gesteuert durch eine Operator-Prioritätstabelle.

  teacup eval 'let sq(x) = x * x in for x in 1..5 do sq(x) end end'
  teacup parse --format brackets 'a - b - c'
  teacup repl`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config-Datei (default: $TEACUP_CONFIG oder ./teacup.toml)")
	root.PersistentFlags().StringVar(&a.grammarFile, "grammar", "", "Grammatik-Datei statt der eingebauten Token- und Prioritätstabellen")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose Output")

	root.AddCommand(
		newEvalCommand(a),
		newParseCommand(a),
		newTokensCommand(a),
		newReplCommand(a),
		newServeCommand(a),
		newHistoryCommand(a),
		newGrammarCommand(a),
		newVersionCommand(),
	)
	return root, a
}

// Execute runs the root command and reports errors on stderr
func Execute() error {
	root, a := newRoot()
	err := root.Execute()
	if err != nil {
		printError(root.ErrOrStderr(), err, a.verbose)
	}
	return err
}

// setup loads configuration, logger and grammar
func (a *app) setup() error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	lc := logging.FromConfig("teacup", a.cfg.General)
	if a.verbose {
		lc.Level = "debug"
	}
	a.logger = logging.NewLogger(lc)
	mdwlog.SetDefault(a.logger)

	path := a.grammarFile
	if path == "" {
		path = a.cfg.Engine.GrammarFile
	}
	if path == "" {
		return nil
	}

	a.doc, err = grammar.Load(path)
	if err != nil {
		return err
	}
	g, err := a.doc.Compile()
	if err != nil {
		return err
	}
	a.grammar = &g
	a.logger.Debug("grammar loaded", mdwlog.Fields{"path": path, "name": g.Name})
	return nil
}

// newEngine creates an engine whose print writes to out
func (a *app) newEngine(out io.Writer) (*engine.Engine, error) {
	return teacup.New(teacup.Options{
		Logger:         a.logger,
		MaxInputLength: a.cfg.Engine.MaxInputLength,
		MaxDepth:       a.cfg.Engine.MaxDepth,
		CacheSize:      a.cfg.Engine.CacheSize,
		Output:         out,
		Grammar:        a.grammar,
	})
}

// openStore opens the history store when history is enabled
func (a *app) openStore() (history.Store, error) {
	if !a.cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.NewSQLiteStore(history.Config{Path: a.cfg.History.Path})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// printError reports err on w. With verbose set, errors not caused by the
// program text also print where they were raised.
func printError(w io.Writer, err error, verbose bool) {
	red := color.New(color.FgRed, color.Bold)
	code := mdwerror.GetCode(err)
	if code != mdwerror.CodeUnknown {
		red.Fprintf(w, "Fehler [%s]: ", code)
	} else {
		red.Fprint(w, "Fehler: ")
	}
	fmt.Fprintln(w, err.Error())

	if !verbose || code.IsEngine() {
		return
	}
	e, ok := mdwerror.As(err)
	if !ok {
		return
	}
	faint := color.New(color.Faint)
	for _, f := range e.StackTrace() {
		faint.Fprintf(w, "  at %s (%s:%d)\n", f.Function, f.File, f.Line)
	}
}
