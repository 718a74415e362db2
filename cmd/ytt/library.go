package main

import (
	"fmt"
	"strconv"

	"transcript-app/domain/model"
	"transcript-app/usecase"

	"github.com/spf13/cobra"
)

func (c *cli) libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage saved transcripts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved transcripts, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				transcripts, err := c.app.api.GetTranscripts(cmd.Context())
				if err != nil {
					return err
				}
				if len(transcripts) == 0 {
					_, _ = mutedColor.Fprintln(c.app.out, "No saved transcripts")
					return nil
				}
				rows := make([][]string, 0, len(transcripts))
				for _, t := range transcripts {
					rows = append(rows, []string{
						t.ID.Hex(),
						truncate(t.Title, maxTitleWidth),
						t.Author,
						strconv.Itoa(len(t.Transcript)),
						t.CreatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				return renderTable(c.app.out, []string{"ID", "Title", "Author", "Lines", "Saved"}, rows)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a saved transcript",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				msg, err := c.app.api.DeleteTranscript(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = successColor.Fprintln(c.app.out, msg)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every saved transcript",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				msg, err := c.app.api.DeleteAllTranscripts(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = successColor.Fprintln(c.app.out, msg)
				return nil
			},
		},
		c.libraryExportCmd(),
	)
	return cmd
}

func (c *cli) libraryExportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved transcript as srt, txt or json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcripts, err := c.app.api.GetTranscripts(cmd.Context())
			if err != nil {
				return err
			}
			t, ok := findTranscript(transcripts, args[0])
			if !ok {
				return fmt.Errorf("transcript %s not found in your library", args[0])
			}
			info := model.VideoInfo{
				VideoID:       t.VideoID,
				Title:         t.Title,
				Author:        t.Author,
				LengthSeconds: t.LengthSeconds,
				ViewCount:     t.ViewCount,
				UploadDate:    t.UploadDate,
				Description:   t.Description,
				Thumbnails:    t.Thumbnails,
			}
			content, name, err := usecase.ExportTranscript(format, info, t.Transcript, c.app.now())
			if err != nil {
				return err
			}
			return writeExport(c.app, content, name, output)
		},
	}
	cmd.Flags().StringVar(&format, "format", usecase.FormatTXT, "export format: srt, txt or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", `destination; defaults to the suggested file name, "-" for stdout`)
	return cmd
}

func findTranscript(transcripts []model.Transcript, id string) (model.Transcript, bool) {
	for _, t := range transcripts {
		if t.ID.Hex() == id {
			return t, true
		}
	}
	return model.Transcript{}, false
}
