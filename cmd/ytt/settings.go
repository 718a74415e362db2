package main

import (
	"fmt"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"

	"github.com/spf13/cobra"
)

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change AI provider settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show AI provider settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				settings, err := c.app.api.GetAISettings(cmd.Context())
				if err != nil {
					return err
				}
				c.printSettings(settings)
				return nil
			},
		},
		c.settingsSetCmd(),
	)
	return cmd
}

func (c *cli) settingsSetCmd() *cobra.Command {
	var (
		groqKey, geminiKey           string
		groqUnlocked, geminiUnlocked bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change AI provider settings; only the given flags are updated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.AISettingsUpdateRequest
			flags := cmd.Flags()
			if flags.Changed("groq-key") {
				req.GroqAPIKey = &groqKey
			}
			if flags.Changed("gemini-key") {
				req.GeminiAPIKey = &geminiKey
			}
			if flags.Changed("groq-unlocked") {
				req.GroqUnlocked = &groqUnlocked
			}
			if flags.Changed("gemini-unlocked") {
				req.GeminiUnlocked = &geminiUnlocked
			}
			if req == (dto.AISettingsUpdateRequest{}) {
				return fmt.Errorf("nothing to update, see --help")
			}
			settings, err := c.app.api.UpdateAISettings(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, _ = successColor.Fprintln(c.app.out, "Settings updated")
			c.printSettings(settings)
			return nil
		},
	}
	cmd.Flags().StringVar(&groqKey, "groq-key", "", "Groq API key")
	cmd.Flags().StringVar(&geminiKey, "gemini-key", "", "Gemini API key")
	cmd.Flags().BoolVar(&groqUnlocked, "groq-unlocked", false, "mark Groq as unlocked")
	cmd.Flags().BoolVar(&geminiUnlocked, "gemini-unlocked", false, "mark Gemini as unlocked")
	return cmd
}

func (c *cli) printSettings(s *model.AISettings) {
	_, _ = fmt.Fprintf(c.app.out, "Groq:   %s (unlocked: %t)\n", maskKey(s.GroqAPIKey), s.GroqUnlocked)
	_, _ = fmt.Fprintf(c.app.out, "Gemini: %s (unlocked: %t)\n", maskKey(s.GeminiAPIKey), s.GeminiUnlocked)
	if !s.UpdatedAt.IsZero() {
		_, _ = mutedColor.Fprintf(c.app.out, "updated %s\n", s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}
