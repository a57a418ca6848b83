/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/serdebench/pkg/codec"
)

var codecDescriptions = map[codec.Kind]string{
	codec.KindJSON:    "JSON array document, parsed after the stream is drained",
	codec.KindCSV:     "header row plus one comma-separated row per record",
	codec.KindMsgpack: "MessagePack array of maps, decoded straight from the stream",
}

// codecsCmd represents the codecs command
var codecsCmd = &cobra.Command{
	Use:   "codecs",
	Short: "List the available codecs",
	Run: func(cmd *cobra.Command, args []string) {
		for _, kind := range codec.Kinds() {
			cmd.Printf("%-8s %s\n", kind, codecDescriptions[kind])
		}
	},
}

func init() {
	rootCmd.AddCommand(codecsCmd)
}
