package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "speakup",
	Short: "English verb and sentence practice for kids",
	Long:  "SpeakUp: a terminal quiz that drills English verb forms and word order, with pronunciation feedback.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/speakup/config.yaml)")
	flags.String("content", "", "Path to a catalog JSON file (overrides the built-in catalog)")
	flags.String("log-file", "", `Log file path ("-" for stderr)`)
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Uint64("seed", 0, "Fix question order (0 shuffles randomly)")
	flags.String("speech", "", "Speech provider: openai, gemini, mock, none")
	flags.Bool("no-audio", false, "Do not open the microphone or speakers")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(previewCmd)
}
