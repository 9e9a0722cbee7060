package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	biome "github.com/anatolykoptev/go-biome"
)

func newThreadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "thread <entryID>",
		Short: "Print the reply thread of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			b, err := client.GetThread(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printThread(cmd.OutOrStdout(), b)
			return nil
		},
	}
}

func printThread(w io.Writer, b *biome.Biome) {
	b.Walk(func(_, depth int, e biome.Entity) bool {
		line := fmt.Sprintf("%s@%s: %s", strings.Repeat("  ", depth), e.Username, e.Text)
		if s, ok := e.SongAttachment(); ok {
			line += fmt.Sprintf(" [♪ %s - %s]", s.ArtistName, s.Name)
		}
		if n := len(e.PhotoAttachments()); n > 0 {
			line += fmt.Sprintf(" [%d photo(s)]", n)
		}
		if _, ok := e.VoiceAttachment(); ok {
			line += " [voice]"
		}
		fmt.Fprintln(w, line)
		return true
	})
}
