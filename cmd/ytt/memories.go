package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/usecase"

	"github.com/spf13/cobra"
)

func (c *cli) memoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "memories",
		Aliases: []string{"memory"},
		Short:   "Manage saved AI tool results",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved memories, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				memories, err := c.app.api.GetMemories(cmd.Context())
				if err != nil {
					return err
				}
				if len(memories) == 0 {
					_, _ = mutedColor.Fprintln(c.app.out, "No saved memories")
					return nil
				}
				rows := make([][]string, 0, len(memories))
				for _, m := range memories {
					rows = append(rows, []string{
						m.ID.Hex(),
						m.Type,
						truncate(m.Title, maxTitleWidth),
						truncate(m.VideoTitle, maxTitleWidth/2),
						m.CreatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				return renderTable(c.app.out, []string{"ID", "Type", "Title", "Video", "Saved"}, rows)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a memory",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				msg, err := c.app.api.DeleteMemory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = successColor.Fprintln(c.app.out, msg)
				return nil
			},
		},
		c.memoryAddCmd(),
		c.memoryExportCmd(),
	)
	return cmd
}

func (c *cli) memoryAddCmd() *cobra.Command {
	var req dto.SaveMemoryRequest
	var file string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a tool result as a memory",
		Long: `Save a tool result as a memory. The result is read from --file, or from stdin with "-".
Flashcard and question results may be a JSON array of cards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !model.IsValidMemoryType(req.Type) {
				return fmt.Errorf("invalid --type %q", req.Type)
			}
			if strings.TrimSpace(req.Title) == "" {
				return fmt.Errorf("--title is required")
			}
			if file != "" {
				var (
					raw []byte
					err error
				)
				if file == "-" {
					raw, err = io.ReadAll(cmd.InOrStdin())
				} else {
					raw, err = os.ReadFile(file)
				}
				if err != nil {
					return fmt.Errorf("read result: %w", err)
				}
				req.Result = string(raw)
			}
			saved, err := c.app.api.SaveMemory(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, _ = successColor.Fprintf(c.app.out, "Memory saved (%s)\n", saved.ID.Hex())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&req.Type, "type", model.MemoryTypeSummary, "chat, questions, flashcards, summary, keypoints, rewrite or translate")
	flags.StringVar(&req.Title, "title", "", "memory title")
	flags.StringVar(&req.TranscriptID, "transcript", "", "id of the library transcript the result belongs to")
	flags.StringVar(&req.VideoTitle, "video-title", "", "title of the source video")
	flags.StringVar(&req.ToolName, "tool", "", "name of the tool that produced the result")
	flags.StringVarP(&file, "file", "f", "", `file holding the result, "-" for stdin`)
	return cmd
}

func (c *cli) memoryExportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a memory as txt, md or json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memories, err := c.app.api.GetMemories(cmd.Context())
			if err != nil {
				return err
			}
			m, ok := findMemory(memories, args[0])
			if !ok {
				return fmt.Errorf("memory %s not found", args[0])
			}
			content, name, err := usecase.ExportMemory(format, m)
			if err != nil {
				return err
			}
			return writeExport(c.app, content, name, output)
		},
	}
	cmd.Flags().StringVar(&format, "format", usecase.FormatMD, "export format: txt, md or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", `destination; defaults to the suggested file name, "-" for stdout`)
	return cmd
}

func findMemory(memories []model.Memory, id string) (model.Memory, bool) {
	for _, m := range memories {
		if m.ID.Hex() == id {
			return m, true
		}
	}
	return model.Memory{}, false
}
