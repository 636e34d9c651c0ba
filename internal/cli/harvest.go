package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ronlog/internal/config"
	"github.com/ariel-frischer/ronlog/internal/errors"
	"github.com/ariel-frischer/ronlog/internal/fragment"
	"github.com/ariel-frischer/ronlog/internal/fsio"
	"github.com/ariel-frischer/ronlog/internal/harvest"
	"github.com/ariel-frischer/ronlog/internal/progress"
)

var (
	harvestDelimiter  string
	harvestBody       bool
	harvestDepth      int
	harvestStopAt     string
	harvestFormat     string
	harvestHeading    int
	harvestCategories []string
	harvestFallback   string
	harvestKeepACl    bool
	harvestLinks      []string
	harvestLinksFile  string
	harvestOutputDir  string
	harvestRepoPath   string
)

var harvestCmd = &cobra.Command{
	Use:     "harvest",
	Aliases: []string{"comment-changes"},
	Short:   "Harvest commit messages into a changelog fragment",
	Long: `Walk the commit history from HEAD backwards, split each message into a
category and a description at the configured delimiter, and write the
collected entries as one fragment file.

Commits without the delimiter in the chosen source are skipped unless a
fallback category is configured. The fragment file name encodes the
timestamp, username, and branch; re-running within the same second merges
into the existing fragment instead of duplicating it.

Examples:
  ronlog harvest -d ':'                     # All commits, summaries
  ronlog harvest -d '::=' -n 30             # Last 30 commits
  ronlog harvest -d ':' --stop-at 3f9c21a   # Stop before a known commit
  ronlog harvest -d ':' -f ron -o fragments # Machine-readable output
  ronlog harvest -d ':' -k -C Changed       # Keep a Changelog preset`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHarvest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	harvestCmd.Flags().StringVarP(&harvestDelimiter, "delimiter", "d", "", "Delimiter between category and description")
	harvestCmd.Flags().BoolVarP(&harvestBody, "body", "b", false, "Read commit bodies instead of summaries")
	harvestCmd.Flags().IntVarP(&harvestDepth, "depth", "n", 0, "Number of commits to analyse (0 = entire history)")
	harvestCmd.Flags().StringVar(&harvestStopAt, "stop-at", "", "Stop before this commit hash (exclusive)")
	harvestCmd.Flags().StringVarP(&harvestFormat, "format", "f", "", "Fragment encoding: md | rst | ron")
	harvestCmd.Flags().IntVarP(&harvestHeading, "heading", "H", 0, "Heading level of md/rst fragments (1-3)")
	harvestCmd.Flags().StringArrayVarP(&harvestCategories, "category", "c", nil, "Whitelisted category (repeatable)")
	harvestCmd.Flags().StringVarP(&harvestFallback, "fallback-category", "C", "", "Category for unmatched commits")
	harvestCmd.Flags().BoolVarP(&harvestKeepACl, "keep-a-changelog", "k", false, "Seed the whitelist with the Keep a Changelog preset")
	harvestCmd.Flags().StringArrayVarP(&harvestLinks, "link", "l", nil, "Hyperlink definition name=target (repeatable)")
	harvestCmd.Flags().StringVar(&harvestLinksFile, "links", "", "YAML link table file (name: target)")
	harvestCmd.Flags().StringVarP(&harvestOutputDir, "output", "o", "", "Directory for the fragment file")
	harvestCmd.Flags().StringVar(&harvestRepoPath, "repository", ".", "Repository to harvest")
}

func runHarvest(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyHarvestDefaults(cfg)

	if harvestDelimiter == "" {
		return errors.NewArgumentError("no delimiter configured",
			"Pass --delimiter (e.g. -d ':')",
			"Or set 'delimiter' in .ronlog.yml")
	}

	enc, err := fragment.ParseEncoding(harvestFormat)
	if err != nil {
		return errors.Wrap(err, errors.Argument, "Choose one of: md, rst, ron")
	}

	links, err := collectLinks()
	if err != nil {
		return err
	}

	repo, err := harvest.Open(harvestRepoPath)
	if err != nil {
		return err
	}

	stop := harvest.StopNever()
	switch {
	case harvestStopAt != "":
		stop = harvest.StopAt(harvestStopAt)
	case harvestDepth > 0:
		stop = harvest.StopAfter(harvestDepth)
	}

	caps := progress.Detect()
	var spin *spinner.Spinner
	if caps.IsTTY {
		symbols := progress.SelectSymbols(caps)
		spin = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond,
			spinner.WithWriter(cmd.ErrOrStderr()),
			spinner.WithSuffix(" walking commit history..."))
		spin.Start()
	}
	commits, err := repo.Commits(stop)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	source := harvest.SourceSummary
	if harvestBody {
		source = harvest.SourceBody
	}
	frag := harvest.Build(commits, harvest.Options{
		Delimiter:      harvestDelimiter,
		Source:         source,
		Categories:     harvestCategories,
		KeepAChangelog: harvestKeepACl,
		Fallback:       harvestFallback,
		Links:          links,
	})

	return persistFragment(cmd, repo, frag, enc)
}

// applyHarvestDefaults fills unset flags from the configuration.
func applyHarvestDefaults(cfg *config.Configuration) {
	if harvestDelimiter == "" {
		harvestDelimiter = cfg.Delimiter
	}
	if harvestFormat == "" {
		harvestFormat = cfg.Format
	}
	if harvestHeading == 0 {
		harvestHeading = cfg.Heading
	}
	if harvestOutputDir == "" {
		harvestOutputDir = cfg.OutputDir
	}
	if harvestFallback == "" {
		harvestFallback = cfg.FallbackCategory
	}
	if len(harvestCategories) == 0 {
		harvestCategories = cfg.Categories
	}
	if harvestLinksFile == "" {
		harvestLinksFile = cfg.LinksFile
	}
	harvestKeepACl = harvestKeepACl || cfg.KeepAChangelog
}

// collectLinks merges the --link pairs with the links file, flag pairs
// first.
func collectLinks() ([]fragment.Reference, error) {
	var links []fragment.Reference
	for _, pair := range harvestLinks {
		name, target, found := strings.Cut(pair, "=")
		if !found {
			return nil, errors.NewArgumentError(
				fmt.Sprintf("malformed link definition %q", pair),
				"Use --link name=target")
		}
		links = append(links, fragment.Reference{Name: name, Target: target})
	}

	if harvestLinksFile != "" {
		fromFile, err := config.LoadLinks(harvestLinksFile)
		if err != nil {
			return nil, errors.Wrap(err, errors.Configuration,
				"The links file must be a YAML mapping of name to target")
		}
		links = append(links, fromFile...)
	}
	return links, nil
}

// persistFragment writes the fragment to its canonical path, merging
// with an existing same-named fragment so re-runs stay idempotent.
func persistFragment(cmd *cobra.Command, repo *harvest.Repository, frag *fragment.Fragment, enc fragment.Encoding) error {
	if frag.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog-worthy commits found.")
		return nil
	}

	user, err := repo.User()
	if err != nil {
		return err
	}
	branch, err := repo.Branch()
	if err != nil {
		return err
	}

	path := filepath.Join(harvestOutputDir, fragment.Filename(time.Now(), user, branch, enc))

	if enc == fragment.EncodingRON && fsio.Exists(path) {
		existing, err := fsio.ReadFile(path)
		if err != nil {
			return err
		}
		persisted, err := fragment.DecodeRON(existing)
		if err != nil {
			return err
		}
		persisted.Merge(frag)
		frag = persisted
		logger.Debugf("merging into existing fragment %s", path)
	}

	content, err := fragment.Serialize(frag, enc, harvestHeading)
	if err != nil {
		return errors.Wrap(err, errors.Argument)
	}
	if err := fsio.WriteFileAtomic(path, []byte(content)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote fragment %s (%d entries).\n", path, frag.Len())
	return nil
}
