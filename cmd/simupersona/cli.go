package simupersona

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/viant/simupersona/internal/log"
)

// Run parses flags and executes the selected command.
func Run(args []string) {
	setup(extractConfigPath(args), extractEnvFiles(args))

	opts := &Options{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}
	opts.Init(first)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.SubcommandsOptional = true
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		log.Logger().Fatal(err.Error())
	}

	if opts.Version {
		fmt.Println(Version())
		os.Exit(0)
	}
}

// extractConfigPath scans raw args for -f/--config before full parsing so
// that sub-command Execute can load the configuration.
func extractConfigPath(args []string) string {
	for i, a := range args {
		switch a {
		case "-f", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		default:
			if strings.HasPrefix(a, "--config=") {
				return strings.TrimPrefix(a, "--config=")
			}
		}
	}
	return ""
}

// extractEnvFiles collects every -e/--env value.
func extractEnvFiles(args []string) []string {
	var ret []string
	for i, a := range args {
		switch a {
		case "-e", "--env":
			if i+1 < len(args) {
				ret = append(ret, args[i+1])
			}
		default:
			if strings.HasPrefix(a, "--env=") {
				ret = append(ret, strings.TrimPrefix(a, "--env="))
			}
		}
	}
	return ret
}
