package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/domain/standings"
	"github.com/riskibarqy/league-standings/internal/infrastructure/source"
	"github.com/riskibarqy/league-standings/internal/interfaces/render"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "standings",
		Usage:     "compute the league table from a results document",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:  "table",
				Usage: "print the ranked standings table",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					snapshot, err := computeSnapshot(c)
					if err != nil {
						return err
					}
					if strings.EqualFold(strings.TrimSpace(c.String("format")), formatJSON) {
						return render.WriteTableJSON(c.App.Writer, snapshot)
					}
					return render.WriteTable(c.App.Writer, snapshot.Table)
				},
			},
			{
				Name:  "matchdays",
				Usage: "print every matchday with its counters and flags",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					snapshot, err := computeSnapshot(c)
					if err != nil {
						return err
					}
					if strings.EqualFold(strings.TrimSpace(c.String("format")), formatJSON) {
						return render.WriteMatchdaysJSON(c.App.Writer, snapshot)
					}
					return render.WriteMatchdays(c.App.Writer, snapshot.Matchdays)
				},
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: "results.json", EnvVars: []string{"RESULTS_FILE"}, Usage: "results document path"},
		&cli.StringFlag{Name: "format", Value: formatText, Usage: "output format: text or json"},
		&cli.StringFlag{Name: "participant", Aliases: []string{"p"}, Usage: "only show teams and matches of this participant code"},
		&cli.StringFlag{Name: "codes", Value: strings.Join(standings.DefaultParticipantCodes, ","), EnvVars: []string{"PARTICIPANT_CODES"}, Usage: "comma separated participant codes"},
		&cli.StringFlag{Name: "locale", Value: "es", EnvVars: []string{"STANDINGS_LOCALE"}, Usage: "collation locale for team names"},
		&cli.StringFlag{Name: "rules", EnvVars: []string{"LEAGUE_RULES_FILE"}, Usage: "optional YAML rules file overriding codes and locale"},
		&cli.IntFlag{Name: "workers", Usage: "aggregate matchdays on a worker pool of this size"},
	}
}

func computeSnapshot(c *cli.Context) (standings.Snapshot, error) {
	format := strings.ToLower(strings.TrimSpace(c.String("format")))
	if format != formatText && format != formatJSON {
		return standings.Snapshot{}, fmt.Errorf("unsupported format %q", c.String("format"))
	}

	logger := logging.NewNop()
	if c.Bool("verbose") {
		logger = logging.NewConsole(c.App.ErrWriter, logging.LevelDebug)
	}

	codes := splitCodes(c.String("codes"))
	localeName := c.String("locale")
	if path := strings.TrimSpace(c.String("rules")); path != "" {
		rules, err := config.LoadLeagueRules(path)
		if err != nil {
			return standings.Snapshot{}, err
		}
		if len(rules.ParticipantCodes) > 0 {
			codes = rules.ParticipantCodes
		}
		if rules.Locale != "" {
			localeName = rules.Locale
		}
	}

	locale, err := language.Parse(localeName)
	if err != nil {
		return standings.Snapshot{}, fmt.Errorf("parse locale %q: %w", localeName, err)
	}

	var aggregator usecase.Aggregator = usecase.SequentialAggregator{}
	if workers := c.Int("workers"); workers > 0 {
		aggregator = usecase.NewPoolAggregator(workers)
	}

	svc := usecase.NewStandingsService(source.NewFileSource(c.String("file"), logger), usecase.StandingsServiceConfig{
		Rules:      standings.NewRules(codes),
		Locale:     locale,
		Aggregator: aggregator,
		Logger:     logger,
	})

	snapshot, err := svc.Snapshot(c.Context)
	if err != nil {
		return standings.Snapshot{}, err
	}
	return svc.Filter(snapshot, c.String("participant"))
}

func splitCodes(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if code := strings.TrimSpace(part); code != "" {
			out = append(out, code)
		}
	}
	return out
}
