package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var opts pipelineOptions

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "subtrans <url> --target <code>",
		Short: "Download subtitles for a video and translate them",
		Long: "subtrans asks yt-dlp for the subtitle track of a video, then writes a copy\n" +
			"of the SRT file with every text line translated to the target language.\n" +
			"Index and timing lines are kept byte for byte.",
		Example:       "  subtrans https://www.youtube.com/watch?v=dQw4w9WgXcQ --target fa\n  subtrans --from-clipboard --target de --source en",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx, opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.target, "target", "t", "", "Target language code (for example fa, de, pt-BR)")
	flags.StringVarP(&opts.source, "source", "s", "", "Source language code; omitted means auto-detect")
	flags.StringVarP(&opts.outputDir, "outdir", "o", "", "Directory for downloaded and translated subtitles (default paths.output_dir); holds a .subtrans.lock file used to keep concurrent runs apart")
	flags.StringVar(&opts.backend, "backend", "", "Translation backend: google or llm (default translate.backend)")
	flags.BoolVar(&opts.fromClipboard, "from-clipboard", false, "Read the video URL from the clipboard when no argument is given")
	_ = rootCmd.MarkFlagRequired("target")

	rootCmd.AddCommand(newTranslateFileCommand(ctx))
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
