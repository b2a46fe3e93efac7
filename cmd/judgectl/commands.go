package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/app"
	"github.com/aliskhannn/spicy-vs-sweet/internal/config"
	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
	"github.com/aliskhannn/spicy-vs-sweet/internal/infra/postgres"
	"github.com/aliskhannn/spicy-vs-sweet/internal/repository"
	"github.com/aliskhannn/spicy-vs-sweet/internal/service"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "judgectl",
		Short:         "Spicy vs Sweet answer judge and database tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	newLogger := func() *zap.Logger {
		if !verbose {
			return zap.NewNop()
		}
		lg, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return lg
	}

	root.AddCommand(
		newValidateCmd(newLogger),
		newMigrateCmd(newLogger),
		newQuestionsCmd(),
	)
	return root
}

type validateResult struct {
	Accepted           bool   `json:"accepted"`
	MatchedOn          string `json:"matched_on"`
	MatchedAlternative string `json:"matched_alternative,omitempty"`
}

func newValidateCmd(newLogger func() *zap.Logger) *cobra.Command {
	var (
		c    entities.AnswerComparison
		alts []string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Judge a player answer against the correct answer",
		Example: `  judgectl validate --answer "leonardo da vinci" --correct "Leonardo da Vinci"
  judgectl validate --answer "Chomolangma" --correct "Mount Everest" --alt Chomolungma --locale de`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadBase()
			if err != nil {
				return err
			}
			lg := newLogger()
			defer func() { _ = lg.Sync() }()

			fuzzy, err := app.NewFuzzyJudge(cmd.Context(), cfg, lg)
			if err != nil {
				return err
			}
			defer func() { _ = fuzzy.Close() }()

			c.Alternatives = alts
			v := service.NewAnswerValidator(fuzzy, cfg.Retry.Options(), lg)

			verdict, err := v.Validate(cmd.Context(), c)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(validateResult{
				Accepted:           verdict.Accepted,
				MatchedOn:          string(verdict.MatchedOn),
				MatchedAlternative: verdict.MatchedAlternative,
			})
		},
	}

	cmd.Flags().StringVar(&c.PlayerAnswer, "answer", "", "player answer")
	cmd.Flags().StringVar(&c.CorrectAnswer, "correct", "", "correct answer")
	cmd.Flags().StringArrayVar(&alts, "alt", nil, "accepted alternative (repeatable)")
	cmd.Flags().StringVar(&c.Locale, "locale", "en", "content locale")
	_ = cmd.MarkFlagRequired("answer")
	_ = cmd.MarkFlagRequired("correct")

	return cmd
}

func newMigrateCmd(newLogger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadBase()
			if err != nil {
				return err
			}
			dsn, err := cfg.DB.DSN()
			if err != nil {
				return fmt.Errorf("%w: DATABASE_URL", err)
			}

			lg := newLogger()
			defer func() { _ = lg.Sync() }()

			pool, err := postgres.NewPool(cmd.Context(), dsn, postgres.PoolConfig{MaxConns: 1})
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.Migrate(cmd.Context(), pool); err != nil {
				return err
			}

			lg.Info("migrations applied")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}
}

func newQuestionsCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Check the question bank and count questions per locale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				cfg, err := config.LoadBase()
				if err != nil {
					return err
				}
				path = cfg.QuestionsPath
			}

			bank, err := repository.NewQuestionRepository(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range bank.Locales() {
				if _, err := fmt.Fprintf(out, "%s\t%d\n", l, bank.Count(l)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "question bank file (defaults to questions_path)")

	return cmd
}
