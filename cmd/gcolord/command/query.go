package command

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DrmagicE/gcolor"
	"github.com/DrmagicE/gcolor/config"
	"github.com/DrmagicE/gcolor/pkg/packedcolor"
	"github.com/DrmagicE/gcolor/server"
)

type queryOptions struct {
	seed    int64
	n       int
	test    int
	subject int
	color   string
	lang    string
}

// newQueryService builds a randomized store from the store configuration.
func newQueryService(c config.Config, seed int64) server.ColorService {
	if seed == 0 {
		seed = c.Store.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := packedcolor.New(c.Store.NumUsers, c.Store.NumTests, c.Store.NumSubjects)
	s.Randomize(rand.New(rand.NewSource(seed)))
	return server.NewColorService(s, c.Query)
}

// NewQueryCmd creates a *cobra.Command object for query command.
// It runs one aggregation over a freshly randomized store and prints the result.
func NewQueryCmd() *cobra.Command {
	opts := &queryOptions{}
	var svc server.ColorService
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run an aggregation over a randomized store",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadConfig()
			if err != nil {
				return err
			}
			if err = c.Validate(); err != nil {
				return err
			}
			svc = newQueryService(c, opts.seed)
			return nil
		},
	}
	cmd.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "The random seed, 0 means store.seed or time seeded")
	cmd.PersistentFlags().IntVarP(&opts.n, "n", "n", 0, "The number of participants to return, 0 means query.default_top_n")
	cmd.PersistentFlags().StringVar(&opts.lang, "lang", gcolor.DefaultLang, "The label language, one of: "+strings.Join(gcolor.Languages(), ", "))

	cmd.AddCommand(&cobra.Command{
		Use:   "averages",
		Short: "Print the average color of every test and subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			avg, err := svc.Averages(context.Background())
			if err != nil {
				return err
			}
			printAverages(cmd.OutOrStdout(), avg)
			return nil
		},
	})

	topColor := &cobra.Command{
		Use:   "top-color",
		Short: "Print the first n participants holding the color in a test and subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := gcolor.ParseColor(opts.color)
			if err != nil {
				return err
			}
			users, err := svc.TopByColor(context.Background(), opts.test, opts.subject, c, opts.n)
			if err != nil {
				return err
			}
			printTopByColor(cmd.OutOrStdout(), opts.test, opts.subject, c.Label(opts.lang), users)
			return nil
		},
	}
	topColor.Flags().IntVar(&opts.test, "test", 1, "The test number, 1-based")
	topColor.Flags().IntVar(&opts.subject, "subject", 1, "The subject number, 1-based")
	topColor.Flags().StringVar(&opts.color, "color", gcolor.Blue.String(), "The color label or code")
	cmd.AddCommand(topColor)

	topTest := &cobra.Command{
		Use:   "top-test",
		Short: "Print the n best participants of a test by subject weighted score",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := svc.TopInTest(context.Background(), opts.test, opts.n)
			if err != nil {
				return err
			}
			printRankings(cmd.OutOrStdout(), fmt.Sprintf("top %d participants in test %d", len(rs), opts.test), rs)
			return nil
		},
	}
	topTest.Flags().IntVar(&opts.test, "test", 1, "The test number, 1-based")
	cmd.AddCommand(topTest)

	cmd.AddCommand(&cobra.Command{
		Use:   "top-overall",
		Short: "Print the n best participants over all tests by subject weighted score",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := svc.TopOverall(context.Background(), opts.n)
			if err != nil {
				return err
			}
			printRankings(cmd.OutOrStdout(), fmt.Sprintf("top %d participants over all tests", len(rs)), rs)
			return nil
		},
	})
	return cmd
}

func printAverages(w io.Writer, avg [][]float64) {
	fmt.Fprintf(w, "average color (0=%s .. 3=%s):\n", gcolor.Red, gcolor.Blue)
	for t, row := range avg {
		fmt.Fprintf(w, "test %d:\n", t+1)
		for s, v := range row {
			fmt.Fprintf(w, "  subject %d: %.3f\n", s+1, v)
		}
	}
}

func printTopByColor(w io.Writer, test, subject int, label string, users []int) {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = fmt.Sprint(u)
	}
	fmt.Fprintf(w, "first %d participants with %s in test %d subject %d:\n%s\n",
		len(users), label, test, subject, strings.Join(ids, ", "))
}

func printRankings(w io.Writer, title string, rs []server.Ranking) {
	items := make([]string, len(rs))
	for i, r := range rs {
		items[i] = fmt.Sprintf("%d (%d)", r.Participant, r.Score)
	}
	fmt.Fprintf(w, "%s:\n%s\n", title, strings.Join(items, ", "))
}
