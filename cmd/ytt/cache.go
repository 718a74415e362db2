package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *cli) cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local cache",
	}

	var recent int
	info := &cobra.Command{
		Use:   "info",
		Short: "Show cached record counts and recently cached videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts, videos, err := c.app.library.CacheInfo(cmd.Context(), recent)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.app.out, "Videos:   %d\nChannels: %d\n", counts.VideoCount, counts.ChannelCount)
			if len(videos) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(videos))
			for _, v := range videos {
				rows = append(rows, []string{
					v.VideoID,
					truncate(v.VideoInfo.Title, maxTitleWidth),
					time.UnixMilli(v.Timestamp).Local().Format("2006-01-02 15:04"),
				})
			}
			return renderTable(c.app.out, []string{"Video", "Title", "Cached"}, rows)
		},
	}
	info.Flags().IntVar(&recent, "recent", 5, "number of recently cached videos to list")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached video, channel and library read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.library.ClearCache(cmd.Context()); err != nil {
				return err
			}
			_, _ = successColor.Fprintln(c.app.out, "Cache cleared")
			return nil
		},
	}

	cmd.AddCommand(info, clearCmd)
	return cmd
}
