package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pbl/internal/core/intent"
	"pbl/internal/core/version"
	"pbl/internal/platform/metrics"
	"pbl/internal/services/api"
	adomain "pbl/internal/services/assistant/domain"
	ndomain "pbl/internal/services/notices/domain"
)

func newRoot(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:          "pblctl",
		Short:        "Operate the PBL campus assistant",
		Version:      version.Info().Version,
		SilenceUsage: true,
	}
	root.PersistentPostRunE = func(*cobra.Command, []string) error {
		if a.assistant == nil {
			return nil
		}
		return a.close()
	}
	root.SetIn(in)
	root.SetOut(out)

	f := root.PersistentFlags()
	f.StringVarP(&a.envFile, "env", "e", ".env", "Env file path")
	f.StringVarP(&a.who.ID, "user", "u", "", "Acting user id (empty is anonymous)")
	f.StringVar(&a.who.Name, "name", "", "Acting user display name")
	f.StringVarP(&a.who.Department, "dept", "d", "", "Acting user department code")
	f.BoolVar(&a.who.Admin, "admin", false, "Act as an administrator")
	f.BoolVar(&a.pretty, "pretty", false, "Indent JSON output")

	root.AddCommand(
		newAskCommand(a),
		newClassifyCommand(),
		newRemindersCommand(a),
		newNoticesCommand(a),
		newRulesCommand(),
	)
	return root
}

// ask answers the joined args, or every stdin line when there are none
func newAskCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [text...]",
		Short: "Send a command to the assistant and print the reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := adomain.WithChannel(cmd.Context(), adomain.ChannelCLI)
			if err := a.boot(ctx); err != nil {
				return err
			}
			svc := a.assistant.Service()

			if len(args) > 0 {
				res, err := svc.Ask(ctx, a.user(), adomain.AskInput{Text: strings.Join(args, " ")})
				if err != nil {
					return err
				}
				return a.print(res)
			}

			sc := bufio.NewScanner(a.in)
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				res, err := svc.Ask(ctx, a.user(), adomain.AskInput{Text: line})
				if err != nil {
					return err
				}
				if err := a.print(res); err != nil {
					return err
				}
			}
			return sc.Err()
		},
	}
}

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text...>",
		Short: "Show the intent and keyword hits for a command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := intent.MustDefault()
			text := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "intent: %s\n", c.Classify(text))
			for _, h := range c.Explain(text) {
				fmt.Fprintf(out, "  %-12s %q\n", h.Intent, h.Keyword)
			}
			return nil
		},
	}
}

func newRemindersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "List the acting user's reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.boot(cmd.Context()); err != nil {
				return err
			}
			rs, err := a.assistant.Service().Reminders(cmd.Context(), a.user())
			if err != nil {
				return err
			}
			return a.print(rs)
		},
	}
}

func newNoticesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notices",
		Short: "Read and import notices",
	}

	var in ndomain.QueryInput
	list := &cobra.Command{
		Use:   "list",
		Short: "List notices visible to the acting user, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.boot(cmd.Context()); err != nil {
				return err
			}
			items, err := a.notices.Service().Query(cmd.Context(), a.who, in)
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}
	list.Flags().StringVarP(&in.Filter, "filter", "f", ndomain.FilterAll, "all, my or a department code")
	list.Flags().StringVarP(&in.Search, "query", "q", "", "Search title, content and author")

	imp := &cobra.Command{
		Use:   "import",
		Short: "Pull every FEED_URLS source into the notice board once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.boot(cmd.Context()); err != nil {
				return err
			}
			im, err := api.Importer(a.root, a.notices.Service(), metrics.Default())
			if err != nil {
				return err
			}
			if im == nil {
				return fmt.Errorf("no feeds configured, set FEED_URLS")
			}
			reports, err := im.RunOnce(cmd.Context())
			if perr := a.print(reports); perr != nil {
				return perr
			}
			return err
		},
	}

	cmd.AddCommand(list, imp)
	return cmd
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the intent keyword pack in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := intent.MustDefault().Pack()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s v%d (%d keywords)\n", p.Name, p.Version, p.KeywordCount())
			for i, r := range p.Rules {
				fmt.Fprintf(out, "%d. %s: %s\n", i+1, r.Name, strings.Join(r.Keywords, ", "))
			}
			return nil
		},
	}
}
