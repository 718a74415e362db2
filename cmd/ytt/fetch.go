package main

import (
	"fmt"
	"io"
	"strconv"

	"transcript-app/infrastructure/clients/api"
	"transcript-app/usecase"

	"github.com/spf13/cobra"
)

func (c *cli) fetchCmd() *cobra.Command {
	var (
		save   bool
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "fetch <video-url>",
		Short: "Fetch a video's details and transcript",
		Long: `Fetch a video's details and transcript, from the local cache when it holds a fresh copy.

With --format the transcript is exported (srt, txt or json) instead of printed.
With --save it is also added to your library.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Streaming an export keeps stdout for the file content alone.
			status := c.app.out
			if format != "" && output == "-" {
				status = cmd.ErrOrStderr()
			}
			result, err := c.app.library.FetchVideo(ctx, args[0])
			if result != nil {
				printVideo(status, result)
			}
			if err != nil {
				return err
			}

			if format != "" {
				content, name, err := usecase.ExportTranscript(format, result.Info, result.Transcript, c.app.now())
				if err != nil {
					return err
				}
				if err := writeExport(c.app, content, name, output); err != nil {
					return err
				}
			} else {
				_, _ = fmt.Fprintln(c.app.out)
				for _, s := range result.Transcript {
					_, _ = mutedColor.Fprint(c.app.out, formatOffset(s.Offset)+" ")
					_, _ = fmt.Fprintln(c.app.out, s.Text)
				}
			}

			if save {
				saved, err := c.app.library.SaveFetched(ctx, result)
				if err != nil {
					return fmt.Errorf("save transcript: %w", err)
				}
				_, _ = successColor.Fprintf(status, "Saved to library (%s)\n", saved.ID.Hex())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save the transcript to your library")
	cmd.Flags().StringVar(&format, "format", "", "export format: srt, txt or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", `export destination; defaults to the suggested file name, "-" for stdout`)
	return cmd
}

func printVideo(out io.Writer, v *usecase.VideoResult) {
	_, _ = titleColor.Fprintln(out, v.Info.Title)
	_, _ = fmt.Fprintf(out, "%s · %s · %s views\n", v.Info.Author, formatDuration(v.Info.LengthSeconds), v.Info.ViewCount)
	if v.IsShort {
		_, _ = warnColor.Fprintln(out, "YouTube Short")
	}
	if v.FromCache {
		_, _ = mutedColor.Fprintln(out, "(from cache)")
	}
}

func (c *cli) channelCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "channel <channel-url>",
		Short: "List a channel's latest uploads",
		Long:  "List a channel's latest uploads. Channel URLs look like https://www.youtube.com/@handle or /channel/<id>.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.library.FetchChannel(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			_, _ = titleColor.Fprintln(c.app.out, result.Data.ChannelName)
			if result.FromCache {
				_, _ = mutedColor.Fprintln(c.app.out, "(from cache)")
			}
			rows := make([][]string, 0, len(result.Data.Videos))
			for i, v := range result.Data.Videos {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					v.VideoID,
					truncate(v.Title, maxTitleWidth),
					formatDuration(v.LengthSeconds),
					v.ViewCount,
					v.UploadDate,
				})
			}
			return renderTable(c.app.out, []string{"#", "Video", "Title", "Length", "Views", "Uploaded"}, rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", api.DefaultChannelLimit, "number of videos to list")
	return cmd
}
