package config

import (
	"github.com/arthur-debert/lovely/pkg/errors"
	"github.com/spf13/pflag"
)

// ParseArgs reads the injector's flags out of the host process arguments,
// excluding the program name. Flags it does not know belong to the host and
// are ignored. Only flags present in args appear in the result, keyed like
// Config fields so it can be passed to Load.
func ParseArgs(args []string) (map[string]interface{}, error) {
	fs := pflag.NewFlagSet("lovely", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist = pflag.ParseErrorsWhitelist{UnknownFlags: true}
	fs.Usage = func() {}

	modDir := fs.String("mod-dir", "", "mod directory")
	dumpAll := fs.Bool("dump-all", false, "dump every loaded buffer")
	vanilla := fs.BoolP("vanilla", "v", false, "run without mods")
	disableMods := fs.BoolP("disable-mods", "d", false, "run without mods")
	disableConsole := fs.Bool("disable-console", false, "do not log to the console")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to parse arguments")
	}

	out := make(map[string]interface{})
	if fs.Changed("mod-dir") {
		out["mod_dir"] = *modDir
	}
	if fs.Changed("dump-all") {
		out["dump_all"] = *dumpAll
	}
	if fs.Changed("vanilla") || fs.Changed("disable-mods") {
		out["vanilla"] = *vanilla || *disableMods
	}
	if fs.Changed("disable-console") {
		out["disable_console"] = *disableConsole
	}
	return out, nil
}
