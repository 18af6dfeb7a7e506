package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/lovely/internal/version"
	"github.com/arthur-debert/lovely/pkg/config"
	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/arthur-debert/lovely/pkg/lovely"
	"github.com/arthur-debert/lovely/pkg/luahost"
	"github.com/arthur-debert/lovely/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "lovely",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(logging.Options{Verbosity: verbosity})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	flags.String("mod-dir", "", MsgFlagModDir)
	flags.Bool("dump-all", false, MsgFlagDumpAll)
	flags.Bool("vanilla", false, MsgFlagVanilla)
	flags.Bool("integrity", false, MsgFlagIntegrity)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPatchCmd())
	rootCmd.AddCommand(newListCmd())

	return rootCmd
}

// loadRuntime builds a runtime from the configuration layers, with the
// global flags that were set on top.
func loadRuntime(cmd *cobra.Command) (*lovely.Runtime, error) {
	flags := cmd.Root().PersistentFlags()
	overrides := make(map[string]interface{})
	if flags.Changed("mod-dir") {
		v, _ := flags.GetString("mod-dir")
		overrides["mod_dir"] = v
	}
	for _, name := range []string{"dump-all", "vanilla", "integrity"} {
		if flags.Changed(name) {
			v, _ := flags.GetBool(name)
			overrides[flagKey(name)] = v
		}
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return nil, fmt.Errorf(MsgErrRuntime, err)
	}
	rt, err := lovely.New(lovely.Options{Config: cfg})
	if err != nil {
		return nil, fmt.Errorf(MsgErrRuntime, err)
	}
	return rt, nil
}

func flagKey(name string) string {
	switch name {
	case "dump-all":
		return "dump_all"
	default:
		return name
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lovely version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newRunCmd() *cobra.Command {
	var entry string

	cmd := &cobra.Command{
		Use:   "run <game-dir>",
		Short: MsgRunShort,
		Long:  MsgRunLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			gameDir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			log.Info().Str("game", gameDir).Str("entry", entry).Msg("Starting game")

			L := lua.NewState()
			defer L.Close()
			host := luahost.New(L, rt, afero.NewBasePathFs(afero.NewOsFs(), gameDir))
			host.Install()

			if err := host.DoFile(entry); err != nil {
				return fmt.Errorf(MsgErrRun, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&entry, "entry", "main.lua", MsgFlagEntry)
	return cmd
}

func newPatchCmd() *cobra.Command {
	var (
		name   string
		out    string
		report bool
	)

	cmd := &cobra.Command{
		Use:   "patch <file>",
		Short: MsgPatchShort,
		Long:  MsgPatchLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf(MsgErrReadFile, args[0], err)
			}
			if name == "" {
				name = filepath.ToSlash(args[0])
			}

			patched, rep := rt.NewLoader(nil).Apply(name, src)
			if report {
				fmt.Fprintln(cmd.ErrOrStderr(), style.RenderReport(rep))
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(patched)
				return err
			}
			if err := os.WriteFile(out, patched, 0644); err != nil {
				return fmt.Errorf(MsgErrWriteFile, out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", MsgFlagName)
	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	cmd.Flags().BoolVar(&report, "report", false, MsgFlagReport)
	return cmd
}

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Example: MsgListExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf(MsgErrOutputFormat, format)
			}

			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			inv := rt.Inventory()
			if format == "yaml" {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(inv); err != nil {
					return err
				}
				return enc.Close()
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.RenderInventory(inv))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", MsgFlagOutput)
	return cmd
}
