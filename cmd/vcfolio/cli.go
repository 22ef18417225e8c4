package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"vcfolio"
	"vcfolio/csvutil"
	"vcfolio/fs"
	"vcfolio/gemini"
	"vcfolio/goquery"
	"vcfolio/htmltomarkdown"
	vchttp "vcfolio/http"
	"vcfolio/rod"
	"vcfolio/scrape"
	"vcfolio/sqlite"
)

// defaultPortfolioURL is scraped when no URLs are given on the command line.
const defaultPortfolioURL = "https://www.blackbird.vc/portfolio"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs      []string      `arg:"" optional:"" name:"url" help:"Portfolio page URLs to scrape."`
	Output    string        `short:"o" default:"companies.csv" help:"Output CSV path."`
	DB        string        `help:"SQLite database recording run history."`
	DumpPages string        `placeholder:"DIR" help:"Write markdown snapshots of fetched pages under DIR."`
	Timeout   time.Duration `default:"20s" help:"Per-page fetch timeout."`
	RPS       float64       `default:"1" help:"Max requests per second per domain."`
	Sitemap   bool          `help:"Also mine the site's sitemap for candidate links."`
	Model     string        `default:"${model}" help:"Gemini model for link classification and extraction."`
	Verbose   bool          `short:"v" help:"Enable debug logging."`
	Runs      bool          `help:"List runs recorded in --db and exit."`
	ShowRun   string        `placeholder:"ID" help:"Print the records of a recorded run and exit."`
}

// Main represents the program.
type Main struct {
	// Fetcher and Completer can be set before Run for end-to-end
	// testing; nil fields are wired from flags and the environment.
	Fetcher   vcfolio.Fetcher
	Completer vcfolio.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vcfolio"),
		kong.Description("Scrape VC portfolio pages into structured company records."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"model": gemini.DefaultModel},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if len(cli.URLs) == 0 {
		cli.URLs = []string{defaultPortfolioURL}
	}

	// Run inspection needs no browser and no model credential.
	if cli.Runs || cli.ShowRun != "" {
		if cli.DB == "" {
			return vcfolio.Errorf(vcfolio.EINVALID, "--db is required to inspect runs")
		}
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer db.Close()

		if cli.ShowRun != "" {
			return showRun(ctx, sqlite.NewRunService(db), cli.ShowRun, stdout)
		}
		return listRuns(ctx, sqlite.NewRunService(db), stdout)
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	completer := m.Completer
	if completer == nil {
		// .env is optional; the environment wins over it.
		_ = godotenv.Load()

		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return vcfolio.Errorf(vcfolio.EINVALID, "GEMINI_API_KEY environment variable is required")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		completer = gemini.NewCompleter(client, cli.Model)
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		browser, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = scrape.NewFallbackFetcher(
			rod.NewLoggingFetcher(browser, logger),
			vchttp.NewFetcher(vchttp.WithTimeout(cli.Timeout)),
			logger,
		)
	}
	defer fetcher.Close()

	scraper := &scrape.Scraper{
		Fetcher:    fetcher,
		Harvester:  goquery.NewHarvester(),
		Classifier: scrape.NewClassifier(completer, logger),
		Normalizer: goquery.NewNormalizer(),
		Extractor:  scrape.NewExtractor(completer, logger),
		Limiter:    scrape.NewDomainLimiter(cli.RPS),
		Logger:     logger,
		Progress:   progressPrinter(stdout),
	}
	if cli.Sitemap {
		scraper.Sitemaps = vchttp.NewSitemapService(nil)
	}
	if cli.DumpPages != "" {
		scraper.Converter = htmltomarkdown.NewConverter()
		scraper.Pages = fs.NewFileStore(cli.DumpPages)
	}

	records, err := scraper.Run(ctx, cli.URLs)
	if err != nil {
		return err
	}

	if err := csvutil.NewWriter(cli.Output).WriteRecords(ctx, records); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d records to %s\n", len(records), cli.Output)

	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer db.Close()

		if err := sqlite.NewRunService(db).WriteRecords(ctx, records); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		fmt.Fprintf(stdout, "Recorded run in %s\n", cli.DB)
	}

	return nil
}

// listRuns prints the recorded runs, newest first.
func listRuns(ctx context.Context, runs *sqlite.RunService, w io.Writer) error {
	found, err := runs.FindRuns(ctx)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, run := range found {
		fmt.Fprintf(w, "%s  %s  %d records\n", run.ID, run.CreatedAt.Format(time.RFC3339), run.RecordCount)
	}
	return nil
}

// showRun prints one run and its records.
func showRun(ctx context.Context, runs *sqlite.RunService, id string, w io.Writer) error {
	run, err := runs.FindRunByID(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Run %s (%s, %d records)\n", run.ID, run.CreatedAt.Format(time.RFC3339), run.RecordCount)

	records, err := runs.FindRecordsByRunID(ctx, id)
	if err != nil {
		return err
	}
	for _, c := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.URL, c.Name, c.Location, c.Domain)
	}
	return nil
}

// progressPrinter writes one line per pipeline milestone.
func progressPrinter(w io.Writer) scrape.ProgressFunc {
	return func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressLinksDiscovered:
			fmt.Fprintf(w, "Discovered %d company links\n", event.Total)
		case scrape.ProgressCompanyStarted:
			fmt.Fprintf(w, "[%d/%d] %s\n", event.Completed+1, event.Total, event.URL)
		case scrape.ProgressCompanyFailed:
			fmt.Fprintf(w, "[%d/%d] %s: skipped (%s)\n", event.Completed, event.Total, event.URL, vcfolio.ErrorMessage(event.Err))
		}
	}
}
