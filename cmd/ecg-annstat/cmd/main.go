package cmd

import (
	"fmt"
	"log"

	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

// loadFlags are the annotation-parsing options every subcommand shares.
type loadFlags struct {
	oneBased *bool
	invert   *bool
}

func registerLoadFlags(cmd *cmdline.Command) loadFlags {
	return loadFlags{
		oneBased: cmd.Flags.Bool("one-based", false, "Interpret annotation boundaries as 1-based closed intervals instead of 0-based half-open ones"),
		invert:   cmd.Flags.Bool("invert", false, "Operate on the complement of each label's regions"),
	}
}

func newCmdStats() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "stats",
		Short:    "Show per-label region stats of rhythm annotation files",
		ArgsName: "path...",
	}
	flags := statsFlags{loadFlags: registerLoadFlags(cmd)}
	flags.window = cmd.Flags.String("window", "", `Restrict stats to one window.
Format is 'label:start-end' with a 1-based closed sample range, 'label:pos'
for a single sample, or 'label' for that label's full extent.  The label
names which annotation label supplies the window; stats are still reported
for every label.`)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return fmt.Errorf("stats takes at least one pathname argument")
		}
		return stats(env.Stdout, flags, argv)
	})
	return cmd
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "checksum",
		Short: `Compute a checksum of rhythm annotation files.
Annotations are canonicalized first, so two files describing the same
labeled regions hash identically regardless of formatting or region
splits.`,
		ArgsName: "path...",
	}
	flags := registerLoadFlags(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return fmt.Errorf("checksum takes at least one pathname argument")
		}
		return checksum(env.Stdout, flags, argv)
	})
	return cmd
}

func newCmdMask() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "mask",
		Short: `Render a rhythm annotation file into a per-sample class mask snapshot.
The snapshot is snappy-compressed and checksummed; training loaders read
it back instead of re-parsing the annotation.`,
		ArgsName: "annotation-path snapshot-path",
	}
	flags := maskFlags{loadFlags: registerLoadFlags(cmd)}
	flags.classes = cmd.Flags.String("classes", "", "Comma-separated label=classID assignments, e.g. 'N=0,AFIB=1,AFL=2' (required)")
	flags.background = cmd.Flags.Int("background", 0, "Class ID for samples no mapped label covers")
	flags.from = cmd.Flags.Int("from", 0, "First sample (0-based) of the rendered window")
	flags.to = cmd.Flags.Int("to", 0, "Limit sample of the rendered window (required)")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("mask takes annotation-path and snapshot-path arguments, but got %v", argv)
		}
		return renderMask(flags, argv[0], argv[1])
	})
	return cmd
}

func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "ecg-annstat",
			Short:    "Tools for working with ECG rhythm annotation files",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdStats(),
				newCmdChecksum(),
				newCmdMask(),
			},
		})
}
