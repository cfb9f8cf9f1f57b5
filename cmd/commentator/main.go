package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/commentator-run/commentator/pkg/config"
	"github.com/commentator-run/commentator/pkg/github"
	"github.com/commentator-run/commentator/pkg/log"
	"github.com/commentator-run/commentator/pkg/publisher"
)

var (
	cfgPath     string
	repoURL     string
	apiURL      string
	token       string
	org         string
	repoName    string
	ref         string
	commentText string
	commentFile string
	useStdin    bool
	overwrite   string
	overwriteID string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "commentator",
	Short: "Post or update a status comment on the pull request for a branch",
	Long: `Commentator finds the open pull request whose head branch matches a
given ref and posts a comment on it. Comments written by commentator carry an
invisible metadata marker, so a later run can update its own comment in place
instead of piling up a new one per CI build.

The comment body comes from --comment, --comment-file or stdin (--use-stdin).
Whether an existing comment is updated is controlled by --overwrite:

  never             always create a new comment
  always            update the newest commentator comment (default)
  using-identifier  update the newest comment whose --overwrite-id matches

Examples:
  commentator --repo-url https://github.com/acme/widgets --ref feature/foo \
      --comment "Build passed"
  cat report.md | commentator --org acme --repo widgets --ref feature/foo \
      --use-stdin --overwrite-id build-7`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPublish,
}

func init() {
	rootCmd.Flags().StringVar(&cfgPath, "config", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&repoURL, "repo-url", "", "Repository URL to derive owner, repo and API endpoint from")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "GitHub API base URL (defaults to github.com)")
	rootCmd.Flags().StringVar(&token, "token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	rootCmd.Flags().StringVar(&org, "org", "", "Repository owner or organization")
	rootCmd.Flags().StringVar(&repoName, "repo", "", "Repository name")
	rootCmd.Flags().StringVar(&ref, "ref", "", "Head branch whose open PR receives the comment")
	rootCmd.Flags().StringVar(&commentText, "comment", "", "Comment body as a literal string")
	rootCmd.Flags().StringVar(&commentFile, "comment-file", "", "File to read the comment body from")
	rootCmd.Flags().BoolVar(&useStdin, "use-stdin", false, "Read the comment body from stdin")
	rootCmd.Flags().StringVar(&overwrite, "overwrite", "", "Overwrite mode: never, always or using-identifier")
	rootCmd.Flags().StringVar(&overwriteID, "overwrite-id", "", "Identifier stamped into the comment marker")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func runPublish(cmd *cobra.Command, args []string) error {
	// Local .env files are a convenience for development; a missing file
	// is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	if cfg.LogLevel != "" {
		log.Init(log.Config{Level: log.Level(cfg.LogLevel)})
	}
	defer log.Sync()

	if err := cfg.Resolve(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	source, err := commentSource()
	if err != nil {
		return err
	}

	client, err := github.NewClient(cfg.APIURL, cfg.Token)
	if err != nil {
		return err
	}
	log.Debugf("using %s", client)

	result, err := publisher.New(client).Publish(cmd.Context(), publisher.Request{
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Ref:    cfg.Ref,
		Source: source,
		Policy: policy,
	})
	if err != nil {
		return err
	}

	verb := "Created"
	if result.Updated {
		verb = "Updated"
	}
	fmt.Printf("%s comment %d on %s/%s#%d\n", verb, result.CommentID, cfg.Owner, cfg.Repo, result.PRNumber)
	return nil
}

// applyFlagOverrides copies explicitly set flags over the file and
// environment configuration. Flags have the highest precedence.
func applyFlagOverrides(cfg *config.Config) {
	if repoURL != "" {
		cfg.RepoURL = repoURL
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if token != "" {
		cfg.Token = token
	}
	if org != "" {
		cfg.Owner = org
	}
	if repoName != "" {
		cfg.Repo = repoName
	}
	if ref != "" {
		cfg.Ref = ref
	}
	if overwrite != "" {
		cfg.Overwrite = overwrite
	}
	if overwriteID != "" {
		cfg.OverwriteID = overwriteID
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

// commentSource picks the comment body source. A literal comment wins over
// a file, which wins over stdin; exactly one must be given.
func commentSource() (publisher.Source, error) {
	switch {
	case commentText != "":
		return publisher.Literal(commentText), nil
	case commentFile != "":
		return publisher.File(commentFile), nil
	case useStdin:
		return publisher.Reader(os.Stdin), nil
	default:
		return nil, fmt.Errorf("no comment body given: use --comment, --comment-file or --use-stdin")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
