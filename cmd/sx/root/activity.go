package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"synthevix/internal/engine"
	"synthevix/internal/storage"
	"synthevix/internal/ui"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Brain: knowledge base entries",
	}

	var (
		kind  string
		title string
	)
	add := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a note, journal entry, snippet or bookmark",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("content is required")
			}
			return nil
		},
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			in := engine.BrainEntryInput{Kind: kind, Content: strings.Join(args, " ")}
			if title != "" {
				in.Title = &title
			}
			id, err := a.svc.AddBrainEntry(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Good.Render(ui.IconBrain+" Saved "+strings.ToLower(strings.TrimSpace(kind))), id)
			return nil
		}),
	}
	add.Flags().StringVarP(&kind, "kind", "k", "note", "Entry type ("+strings.Join(engine.BrainKinds, "|")+")")
	add.Flags().StringVarP(&title, "title", "t", "", "Optional title")

	cmd.AddCommand(add)
	return cmd
}

func newMoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Cosmos: mood journal",
	}

	var (
		energy int
		note   string
	)
	logCmd := &cobra.Command{
		Use:   "log <1-6>",
		Short: "Log today's mood (1 terrible … 6 amazing)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mood score is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("mood must be an integer")
			}
			return nil
		},
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			mood, _ := strconv.Atoi(args[0])
			in := engine.MoodInput{Mood: mood}
			if cmd.Flags().Changed("energy") {
				in.Energy = &energy
			}
			if note != "" {
				in.Note = &note
			}
			if _, err := a.svc.LogMood(cmd.Context(), in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconMood+" Mood logged:"), ui.Mood(mood))
			return nil
		}),
	}
	logCmd.Flags().IntVarP(&energy, "energy", "e", 0, "Energy level (1-10)")
	logCmd.Flags().StringVar(&note, "note", "", "Optional note")

	cmd.AddCommand(logCmd)
	return cmd
}

func newForgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forge",
		Short: "Forge: developer workflow helpers",
	}

	var (
		day     string
		commits int
		repos   []string
	)
	logDay := &cobra.Command{
		Use:   "log-day",
		Short: "Record commits for a coding day",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			d, err := parseDayFlag("date", day)
			if err != nil {
				return err
			}
			if err := a.svc.RecordCodingDay(cmd.Context(), d, commits, repos); err != nil {
				return err
			}
			if d.IsZero() {
				d = a.svc.Today()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconForge+" Coding day recorded:"),
				storage.FormatDay(d), ui.Muted.Render(fmt.Sprintf("(+%d commits)", commits)))
			return nil
		}),
	}
	logDay.Flags().StringVar(&day, "date", "", "Day to record (YYYY-MM-DD, default today)")
	logDay.Flags().IntVarP(&commits, "commits", "c", 1, "Commits made")
	logDay.Flags().StringSliceVarP(&repos, "repo", "r", nil, "Repository touched (repeatable)")

	cmd.AddCommand(logDay)
	return cmd
}
