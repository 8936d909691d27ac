package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/descent/rd"
	"github.com/npillmayer/descent/sexp"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'descent.sexp'.
func tracer() tracing.Trace {
	return tracing.Select("descent.sexp")
}

var (
	tlevel   string // trace level flag
	patsfile string // pattern-overrides file flag
	initf    string // init file flag
)

// main starts an interactive CLI ("SREPL"), where users may enter
// s-expressions which are read with the descent kernel and echoed back in
// their parsed form. SREPL is intended as a sandbox for experiments during
// the early phase of grammar development: pattern overrides may be loaded
// from a YAML file to see how they change tokenization.
func main() {
	root := &cobra.Command{
		Use:           "srepl",
		Short:         "Read s-expressions with the descent parser kernel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&tlevel, "trace", "Info", "Trace level [Debug|Info|Error]")
	root.PersistentFlags().StringVar(&patsfile, "patterns", "", "YAML file with pattern overrides")
	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive read loop",
		RunE:  runRepl,
	}
	replCmd.Flags().StringVar(&initf, "init", "", "Initial load")
	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Read all s-expressions from a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	root.AddCommand(replCmd, parseCmd)
	if err := root.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// setup wires up logging and creates the reader, applying any pattern
// overrides from the --patterns file.
func setup() (*sexp.Reader, error) {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(traceLevel(tlevel))
	opts, err := patternOptions(patsfile)
	if err != nil {
		return nil, err
	}
	return sexp.NewReader(opts...)
}

// patternOptions loads a YAML map of pattern-name to pattern-source from
// path and turns it into parser options.
func patternOptions(path string) ([]rd.Option, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("cannot read pattern overrides: %v", err)
	}
	tracer().Infof("Loaded %d pattern override(s) from %s", len(overrides), path)
	return []rd.Option{rd.WithPatterns(overrides)}, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	reader, err := setup()
	if err != nil {
		return err
	}
	forms, err := reader.ParseFile(args[0])
	if err != nil {
		return err
	}
	for _, form := range forms {
		pterm.Info.Println(format(form))
	}
	return nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	reader, err := setup()
	if err != nil {
		return err
	}
	pterm.Info.Println("Welcome to SREPL")
	repl, err := readline.New("srepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{reader: reader, repl: repl}
	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(initf)
	intp.REPL()
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	lastValue interface{}
	reader    *sexp.Reader
	repl      *readline.Instance
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := scanner.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: "+err.Error(), lineno)
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: " + err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err := intp.Eval(line); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	pterm.Info.Println("Good bye!")
}

// Eval reads one line of input and prints the parsed forms.
func (intp *Intp) Eval(line string) error {
	forms, err := intp.reader.Parse(line)
	if err != nil {
		return err
	}
	for _, form := range forms {
		intp.lastValue = form
		pterm.Info.Println(format(form))
	}
	return nil
}

// format renders a parsed form back in list notation.
func format(form interface{}) string {
	switch v := form.(type) {
	case []interface{}:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = format(e)
		}
		return "(" + strings.Join(parts, " ") + ")"
	case sexp.Symbol:
		return string(v)
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
