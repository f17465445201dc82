package cli

import (
	"github.com/spf13/cobra"
)

// DefaultLogPath is opened when no file is given, relative to a Laravel
// project root
const DefaultLogPath = "storage/logs/laravel.log"

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandView CommandType = iota
	CommandExport
	CommandInit
	CommandHelp
)

// ExportOptions contains the arguments of the export subcommand
type ExportOptions struct {
	Output   string
	Format   string
	Levels   []string
	MinLevel string
	Cutoff   int
}

// Options contains the parsed command-line arguments
type Options struct {
	Type       CommandType
	Path       string
	ConfigPath string
	Follow     bool
	Force      bool
	Filters    []string
	Export     ExportOptions
}

// Parse parses command-line args and returns an Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type: CommandView,
		Path: DefaultLogPath,
	}

	root := buildRootCommand(result)
	root.AddCommand(buildExportCommand(result))
	root.AddCommand(buildInitCommand(result))

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logdeck [file]",
		Short: "Browse and follow a Laravel log file entry by entry",
		Long: `logdeck splits a Laravel log into timestamped entries, follows the file
as it grows or rotates, and lets you filter, clear and export what you see.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandView
			if len(args) > 0 {
				result.Path = args[0]
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&result.ConfigPath, "config", "c", "", "Config file (default is the XDG config path)")
	cmd.PersistentFlags().StringArrayVar(&result.Filters, "filter", nil, "Only show entries whose body contains this text (repeatable, all must match)")
	cmd.Flags().BoolVarP(&result.Follow, "follow", "f", false, "Start in follow mode")

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		result.Type = CommandHelp
		defaultHelp(c, args)
	})

	return cmd
}

// buildExportCommand creates the export subcommand
func buildExportCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export [file]",
		Aliases: []string{"e"},
		Short:   "Write the entries that pass the filters to a file or stdout",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandExport
			if len(args) > 0 {
				result.Path = args[0]
			}
		},
	}

	cmd.Flags().StringVarP(&result.Export.Output, "output", "o", "-", "Output path; .gz and .zst are compressed, - is stdout")
	cmd.Flags().StringVar(&result.Export.Format, "format", "", "Output format: text or jsonl (default from config)")
	cmd.Flags().StringArrayVar(&result.Export.Levels, "level", nil, "Only export entries at this level (repeatable)")
	cmd.Flags().StringVar(&result.Export.MinLevel, "min-level", "", "Only export entries at this level or more severe")
	cmd.Flags().IntVar(&result.Export.Cutoff, "cutoff", 0, "Skip entries before this position")
	cmd.MarkFlagsMutuallyExclusive("level", "min-level")

	return cmd
}

// buildInitCommand creates the init subcommand
func buildInitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i"},
		Short:   "Write the default config to the config path",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandInit
		},
	}

	cmd.Flags().BoolVar(&result.Force, "force", false, "Overwrite an existing config file")

	return cmd
}
