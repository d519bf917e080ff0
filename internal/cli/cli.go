// Package cli implements the figcon command line tool.
package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-figcon"
	"github.com/goliatone/go-figcon/pkg/zaplog"
)

type commands struct {
	get      *kingpin.CmdClause
	getName  *string
	dump     *kingpin.CmdClause
	trace    *kingpin.CmdClause
	traceArg *string
	describe *kingpin.CmdClause
	call     *kingpin.CmdClause
	callName *string
	callArgs *[]string
}

// Run parses args, loads the options and executes the selected command.
// Results go to stdout; logs and usage go to stderr.
func Run(args []string, stdout, stderr io.Writer) error {
	app := kingpin.New("figcon", "Inspect layered configuration built from default, secondary and primary locations.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Terminate(nil)

	var flags Settings
	app.Flag("default", "Default location (weakest).").Short('d').StringVar(&flags.Default)
	app.Flag("secondary", "Secondary location. Defaults to the home directory.").StringVar(&flags.Secondary)
	app.Flag("primary", "Primary location (strongest). Defaults to the working directory.").StringVar(&flags.Primary)
	app.Flag("config-name", "Definition file name searched in location directories.").StringVar(&flags.ConfigName)
	app.Flag("format", "Output format: yaml or json.").Short('o').StringVar(&flags.Format)
	app.Flag("verbose", "Log location loads to stderr.").Short('v').BoolVar(&flags.Verbose)

	cmds := commands{}
	cmds.get = app.Command("get", "Print one option, dotted paths reach into records.")
	cmds.getName = cmds.get.Arg("name", "Option name or dotted path.").Required().String()
	cmds.dump = app.Command("dump", "Print the merged options.")
	cmds.trace = app.Command("trace", "Print which locations defined a top level option.")
	cmds.traceArg = cmds.trace.Arg("name", "Top level option name.").Required().String()
	cmds.describe = app.Command("describe", "Print every option path and its kind.")
	cmds.call = app.Command("call", "Invoke a callable option.")
	cmds.callName = cmds.call.Arg("name", "Callable option name or dotted path.").Required().String()
	cmds.callArgs = cmds.call.Arg("args", "Arguments, parsed as YAML scalars.").Strings()

	selected, err := app.Parse(args)
	if err != nil {
		return err
	}
	if selected == "" {
		// --help was handled by kingpin.
		return nil
	}

	envSettings, err := parseEnv()
	if err != nil {
		return err
	}
	settings, err := resolveSettings(envSettings, flags)
	if err != nil {
		return err
	}

	logger := newLogger(settings.Verbose, stderr)
	defer func() {
		_ = logger.Sync()
	}()

	fc, err := figcon.New(settings.Default, figconOptions(settings, zaplog.New(logger))...)
	if err != nil {
		return err
	}

	out := newPrinter(stdout, settings.Format)
	switch selected {
	case cmds.get.FullCommand():
		value, err := fc.Lookup(*cmds.getName)
		if err != nil {
			return err
		}
		return out.print(figcon.Export(value))
	case cmds.dump.FullCommand():
		return out.print(figcon.ExportNamespace(fc.Snapshot()))
	case cmds.trace.FullCommand():
		trace, err := fc.Trace(*cmds.traceArg)
		if err != nil {
			return err
		}
		return out.printPlain(trace)
	case cmds.describe.FullCommand():
		return out.printPlain(fc.Describe())
	case cmds.call.FullCommand():
		callArgs, err := parseArgs(*cmds.callArgs)
		if err != nil {
			return err
		}
		result, err := fc.Call(*cmds.callName, callArgs...)
		if err != nil {
			return err
		}
		return out.print(result)
	default:
		return fmt.Errorf("unknown command %q", selected)
	}
}

func figconOptions(settings Settings, logger *zaplog.Logger) []figcon.Option {
	opts := []figcon.Option{
		figcon.WithLogger(logger),
		figcon.WithEvaluatorLogger(logger),
	}
	if settings.Primary != "" {
		opts = append(opts, figcon.WithPrimaryLocation(settings.Primary))
	}
	if settings.Secondary != "" {
		opts = append(opts, figcon.WithSecondaryLocation(settings.Secondary))
	}
	if settings.ConfigName != "" {
		opts = append(opts, figcon.WithConfigName(settings.ConfigName))
	}
	return opts
}

func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// parseArgs decodes each argument as a YAML scalar so numbers and booleans
// reach callables typed.
func parseArgs(raw []string) ([]any, error) {
	args := make([]any, 0, len(raw))
	for _, item := range raw {
		var value any
		if err := yaml.Unmarshal([]byte(item), &value); err != nil {
			return nil, fmt.Errorf("parse argument %q: %w", item, err)
		}
		args = append(args, value)
	}
	return args, nil
}
