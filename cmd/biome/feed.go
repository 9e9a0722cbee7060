package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	biome "github.com/anatolykoptev/go-biome"
)

func newFeedCmd(opts *options) *cobra.Command {
	var (
		pageUser string
		pages    int
	)

	cmd := &cobra.Command{
		Use:   "feed <userID>",
		Short: "Page through a user's feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}

			cursor := biome.NewFeedCursor(client, args[0], pageUser)
			for i := 0; pages <= 0 || i < pages; i++ {
				if !cursor.CanLoadMore() {
					break
				}
				if err := cursor.FetchEntries(cmd.Context()); err != nil {
					return err
				}
			}

			entries := cursor.Entries()
			for _, e := range entries {
				printEntry(cmd.OutOrStdout(), e)
			}
			slog.Info("feed loaded",
				slog.Int("entries", len(entries)),
				slog.Int("next_page", cursor.CurrentPage()),
				slog.String("state", cursor.State().String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&pageUser, "page-user", "", "user whose profile page the feed is viewed from")
	cmd.Flags().IntVar(&pages, "pages", 1, "pages to load, 0 for all")
	return cmd
}

func printEntry(w io.Writer, e biome.Entry) {
	sound := "-"
	if e.Sound != nil {
		sound = e.Sound.ArtistName + " - " + e.Sound.Name
	}
	created := e.CreatedAtRaw
	if !e.CreatedAt.IsZero() {
		created = e.CreatedAt.Format(time.DateTime)
	}
	fmt.Fprintf(w, "%s\t%s\t@%s\t%s\t♥%d 🔥%d 👎%d\t%s\n",
		e.ID, created, e.Author.Username, sound,
		e.HeartCount, e.FlameCount, e.ThumbsDownCount,
		strings.ReplaceAll(e.Text, "\n", " "))
}
