package root

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"synthevix/internal/engine"
	"synthevix/internal/storage"
	"synthevix/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		difficulty string
		desc       string
		due        string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			d, err := engine.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			in := engine.AddQuestInput{Title: args[0], Difficulty: d}
			if cmd.Flags().Changed("desc") {
				in.Description = &desc
			}
			dueDate, err := parseDayFlag("due", due)
			if err != nil {
				return err
			}
			if !dueDate.IsZero() {
				in.DueDate = &dueDate
			}

			id, err := a.svc.AddQuest(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconPlus+" Quest added"), id, strings.TrimSpace(args[0]),
				ui.Muted.Render(fmt.Sprintf("(%s, %d XP base)", ui.DifficultyText(string(d)), engine.BaseXP(d))))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(engine.DifficultyMedium), "Difficulty (trivial|easy|medium|hard|epic|legendary)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func newListCmd() *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			st, err := engine.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			quests, err := a.svc.ListQuests(cmd.Context(), st, limit)
			if err != nil {
				return err
			}
			title := "Quests"
			if st != "" {
				title += " (" + string(st) + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, title))
			printQuests(cmd.OutOrStdout(), quests)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&status, "status", "s", string(engine.StatusActive), "Status filter (active|completed|failed|archived|all)")
	cmd.Flags().IntVarP(&limit, "limit", "n", engine.DefaultListLimit, "Maximum quests to show")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var (
		last  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show completed and failed quests",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if last != "" {
				if _, ok := engine.ParseDuration(last); !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(fmt.Sprintf("%s could not read %q, showing the last %d days", ui.IconWarn, last, engine.DefaultHistoryDays)))
				}
			}
			quests, err := a.svc.GetQuestHistory(cmd.Context(), last, limit)
			if err != nil {
				return err
			}
			title := "Quest history"
			if last != "" {
				title += " (last " + last + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, title))
			printQuests(cmd.OutOrStdout(), quests)
			return nil
		}),
	}

	cmd.Flags().StringVar(&last, "last", "", "Only quests created within this window (e.g. 3d, 2w, 1m, 1y)")
	cmd.Flags().IntVarP(&limit, "limit", "n", engine.DefaultListLimit, "Maximum quests to show")
	return cmd
}

func printQuests(w io.Writer, quests []storage.Quest) {
	if len(quests) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("No quests found."))
		return
	}
	for _, q := range quests {
		xp := "—"
		if q.XPEarned > 0 {
			xp = fmt.Sprintf("%d XP", q.XPEarned)
		}
		line := fmt.Sprintf("%s %4d  %s  %s  %s", ui.StatusIcon(q.Status), q.ID, q.Title,
			ui.DifficultyText(q.Difficulty), ui.Muted.Render(xp))
		if q.DueDate != nil && q.Status == string(engine.StatusActive) {
			line += ui.Muted.Render("  due " + storage.FormatDay(*q.DueDate))
		}
		line += ui.Muted.Render("  " + q.CreatedAt.Local().Format("Jan 02"))
		fmt.Fprintln(w, line)
	}
}

func newCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"do"},
		Short:   "Complete a quest",
		Args:    idArg,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			res, err := a.svc.CompleteQuest(cmd.Context(), parseID(args[0]), a.cfg.Quest.XPMultiplier)
			if err != nil {
				return err
			}
			printCompletion(cmd.OutOrStdout(), res)
			return nil
		}),
	}
	return cmd
}

func printCompletion(w io.Writer, res *engine.CompleteResult) {
	fmt.Fprintf(w, "%s #%d %s\n", ui.Good.Render(ui.IconDone+" Quest complete"), res.QuestID,
		ui.Title.Render(fmt.Sprintf("+%d XP", res.XPEarned)))
	fmt.Fprintf(w, "%s %d day(s)\n", ui.Key.Render(ui.IconFire+" Streak:"), res.NewStreak)
	if res.ShieldsUsed > 0 {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconShield+"  A streak shield saved your streak."))
	}
	if res.ShieldsEarned > 0 {
		fmt.Fprintln(w, ui.Good.Render(ui.IconShield+"  Streak shield earned!"))
	}
	for _, ach := range res.NewAchievements {
		fmt.Fprintf(w, "%s %s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement unlocked:"), ach.Emoji, ach.Name,
			ui.Muted.Render(fmt.Sprintf("(+%d XP)", ach.XPReward)))
	}
	if res.LeveledUp {
		fmt.Fprintf(w, "%s %d → %d\n", ui.BadgeLevelUp, res.OldLevel, res.NewLevel)
	}
}

func newFailCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "fail <id>",
		Short: "Mark a quest as failed (XP penalty)",
		Args:  idArg,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id := parseID(args[0])
			if !force {
				ok, err := confirm(cmd, fmt.Sprintf("Fail quest #%d? You will lose XP.", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Cancelled."))
					return nil
				}
			}
			res, err := a.svc.FailQuest(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Bad.Render(ui.IconFailed+" Quest failed"), res.QuestID,
				ui.Muted.Render(fmt.Sprintf("(-%d XP)", res.XPPenalty)))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}

func newDailyCmd() *cobra.Command {
	var add bool

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Suggest today's daily challenges",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			out := cmd.OutOrStdout()
			if !a.cfg.Quest.DailyChallengeEnabled {
				fmt.Fprintln(out, ui.Muted.Render("Daily challenges are disabled (quest.daily_challenge_enabled)."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Daily challenges for "+a.svc.Today().Format("Mon Jan 02")))
			for _, c := range a.svc.GenerateDailyQuests() {
				line := fmt.Sprintf("- %s %s", c.Title, ui.DifficultyText(string(c.Difficulty)))
				if add {
					id, err := a.svc.AddQuest(cmd.Context(), engine.AddQuestInput{Title: c.Title, Difficulty: c.Difficulty})
					if err != nil {
						return err
					}
					line += ui.Muted.Render(fmt.Sprintf("  → #%d", id))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&add, "add", false, "Add the suggestions as active quests")
	return cmd
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and streak",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			p, err := a.svc.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			lp := engine.LevelFromXP(p.TotalXP)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quest Stats · "+p.Username))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("Total XP", p.TotalXP))
			fmt.Fprintln(out, ui.Title.Render(ui.XPBar(lp.XPIntoLevel, lp.XPForNext, 24)))
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d / %d XP to level %d", lp.XPIntoLevel, lp.XPForNext, lp.Level+1)))
			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "%s %d day(s)\n", ui.Key.Render(ui.IconFire+" Current streak:"), p.CurrentStreak)
			fmt.Fprintf(out, "%s %d day(s)\n", ui.Key.Render(ui.IconMedal+" Longest streak:"), p.LongestStreak)
			fmt.Fprintf(out, "%s %d\n", ui.Key.Render(ui.IconShield+"  Streak shields:"), p.StreakShields)
			if p.LastQuestDate != nil {
				fmt.Fprintln(out, ui.Muted.Render("Last quest day: "+storage.FormatDay(*p.LastQuestDate)))
			}
			return nil
		}),
	}
	return cmd
}

func newAchievementsCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if check {
				unlocked, err := a.svc.CheckAchievements(ctx)
				if err != nil {
					return err
				}
				if len(unlocked) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No new achievements."))
				}
				for _, ach := range unlocked {
					fmt.Fprintf(out, "%s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Unlocked:"), ach.Emoji, ach.Name)
				}
				fmt.Fprintln(out, "")
			}

			list, err := a.svc.Achievements(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, st := range list {
				icon, name, when := ui.IconLock, ui.Muted.Render(st.Name), ui.Muted.Render("—")
				if st.Unlocked {
					icon, name = st.Emoji, ui.H2.Render(st.Name)
					when = st.UnlockedAt.Local().Format("Jan 02")
				}
				fmt.Fprintf(out, "%s %s  %s  %s  %s\n", icon, name, st.Description,
					ui.Muted.Render(fmt.Sprintf("+%d XP", st.XPReward)), when)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&check, "check", false, "Run an unlock check first")
	return cmd
}

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive quest board",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errors.New("board needs an interactive terminal")
			}
			return runBoard(cmd, a)
		}),
	}
	return cmd
}

// parseDayFlag reads a YYYY-MM-DD flag value; empty yields the zero time.
func parseDayFlag(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := storage.ParseDay(s)
	if err != nil {
		return time.Time{}, engine.ValidationError{Field: field, Reason: "must be YYYY-MM-DD"}
	}
	return t, nil
}
