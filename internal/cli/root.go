package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/pipeline"
	"github.com/matzehuels/toplangs/pkg/render"
	"github.com/matzehuels/toplangs/pkg/render/bars"
	"github.com/matzehuels/toplangs/pkg/usage"
)

// rootOpts holds the command-line flags of the root command.
type rootOpts struct {
	client clientOpts

	chart  bars.Config // geometry, title and caption; Ignore and Theme come from the fields below
	ignore []string    // languages hidden from the chart
	theme  string      // light or dark

	local       bool   // write the chart locally instead of publishing
	output      string // local output file; stdout when empty
	format      string // local output format
	repo        string // publish target, owner/repo or repo
	branch      string
	path        string
	message     string
	config      string // profile file; the XDG default when empty
	interactive bool   // pick hidden languages in a TUI
}

func newRootOpts() *rootOpts {
	return &rootOpts{
		chart:   bars.DefaultConfig(),
		ignore:  bars.DefaultIgnored,
		theme:   bars.ThemeDark.String(),
		format:  pipeline.FormatSVG,
		branch:  pipeline.DefaultBranch,
		path:    pipeline.DefaultPath,
		message: pipeline.DefaultMessage,
	}
}

// rootCommand creates the root command, which runs the whole pipeline.
func (c *CLI) rootCommand() *cobra.Command {
	opts := newRootOpts()

	cmd := &cobra.Command{
		Use:   appName,
		Short: "toplangs charts the languages of your GitHub repositories",
		Long: `toplangs reads the language statistics of every repository you own, ` +
			`ranks the largest languages and commits them as an SVG bar chart to your profile repository.`,
		Example: `  # publish to <login>/<login>:top-langs.svg on master
  toplangs

  # preview locally, light theme, top 8
  toplangs --local --theme light --top 8 -o langs.svg

  # choose hidden languages interactively
  toplangs -i --local -o langs.png`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolve(cmd); err != nil {
				return err
			}
			return c.runRoot(cmd.Context(), opts)
		},
	}

	opts.register(cmd)

	return cmd
}

// register adds the root command flags, bound to o.
func (o *rootOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	o.client.register(cmd)
	f.StringVar(&o.theme, "theme", o.theme, "color theme: dark (default), light")
	f.BoolVar(&o.local, "local", false, "write the chart locally instead of publishing it")
	f.StringVarP(&o.output, "output", "o", "", "output file for --local (default: stdout)")
	f.StringVarP(&o.format, "format", "f", o.format, "output format for --local: svg, png, pdf")
	f.Float64Var(&o.chart.Width, "width", o.chart.Width, "chart width")
	f.Float64Var(&o.chart.FontSize, "font-size", o.chart.FontSize, "font size")
	f.IntVar(&o.chart.TopN, "top", o.chart.TopN, "number of languages to show")
	f.StringSliceVar(&o.ignore, "ignore", o.ignore, "languages to hide (repeatable or comma-separated)")
	f.Float64Var(&o.chart.TextWidth, "text-width", o.chart.TextWidth, "label column width; longer names are truncated (0 disables)")
	f.StringVar(&o.chart.Title, "title", o.chart.Title, "chart title")
	f.StringVar(&o.chart.Caption, "caption", o.chart.Caption, "caption below the chart")
	f.StringVar(&o.repo, "repo", "", "target repository, owner/repo or repo (default: your profile repository)")
	f.StringVar(&o.branch, "branch", o.branch, "target branch")
	f.StringVar(&o.path, "path", o.path, "file path inside the target repository")
	f.StringVar(&o.message, "message", o.message, "commit message")
	f.StringVar(&o.config, "config", "", "profile file (default: $XDG_CONFIG_HOME/toplangs/config.toml)")
	f.BoolVarP(&o.interactive, "interactive", "i", false, "choose hidden languages interactively")
}

// resolve merges the profile file into the flags and finishes the chart
// configuration.
func (o *rootOpts) resolve(cmd *cobra.Command) error {
	path, explicit := o.config, o.config != ""
	if !explicit {
		p, err := defaultProfilePath()
		if err == nil {
			path = p
		}
	}
	prof, err := loadProfile(path, explicit)
	if err != nil {
		return err
	}
	prof.apply(o, cmd.Flags().Changed)

	theme, err := bars.ParseTheme(o.theme)
	if err != nil {
		return err
	}
	o.chart.Theme = theme
	o.chart.Ignore = usage.NewSet(o.ignore...)

	if o.output != "" && !cmd.Flags().Changed("format") {
		o.format = formatFromPath(o.output, o.format)
	}
	if o.output != "" && !o.local {
		return errors.New(errors.ErrCodeInvalidInput, "--output requires --local")
	}
	return nil
}

// pipelineOptions converts the flags into pipeline options.
func (o *rootOpts) pipelineOptions() (pipeline.Options, error) {
	owner, repo, err := splitRepo(o.repo)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Chart:   o.chart,
		Local:   o.local,
		Format:  o.format,
		Owner:   owner,
		Repo:    repo,
		Branch:  o.branch,
		Path:    o.path,
		Message: o.message,
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (c *CLI) runRoot(ctx context.Context, o *rootOpts) error {
	opts, err := o.pipelineOptions()
	if err != nil {
		return err
	}
	opts.Logger = c.Logger
	if opts.Local && opts.Format != pipeline.FormatSVG && !render.Available() {
		return errors.New(errors.ErrCodeUnsupported,
			"%s output needs %s from librsvg (brew install librsvg, apt install librsvg2-bin)", opts.Format, render.RSVGConvert)
	}

	client, err := c.newClient(o.client)
	if err != nil {
		return err
	}
	runner := c.newRunner(client)

	var result *pipeline.Result
	if o.interactive {
		result, err = c.runInteractive(ctx, runner, &opts)
	} else {
		spinner := newSpinnerWithContext(ctx, "Fetching repositories...")
		spinner.Start()
		result, err = runner.Execute(ctx, opts)
		spinner.Stop()
	}
	if err != nil || result == nil {
		return err
	}

	return c.report(result, o)
}

// runInteractive fetches first, lets the user pick the hidden languages and
// then renders and outputs the chart. A nil result means the user quit.
func (c *CLI) runInteractive(ctx context.Context, runner *pipeline.Runner, opts *pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, "Fetching repositories...")
	spinner.Start()
	u, err := runner.Fetch(ctx)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	ignore, ok, err := pickIgnored(u, opts.Chart.Ignore, opts.Chart.TopN)
	if err != nil {
		return nil, err
	}
	if !ok {
		printInfo("Cancelled")
		return nil, nil
	}
	opts.Chart.Ignore = ignore
	c.Logger.Debug("selected hidden languages", "ignore", ignore.Sorted())

	result, err := runner.Render(ctx, u, *opts)
	if err != nil {
		return nil, err
	}
	if opts.Local {
		result.Artifact, err = pipeline.Convert(ctx, result.SVG, opts.Format, opts.PNGScale)
		return result, err
	}

	spinner = newSpinnerWithContext(ctx, "Publishing chart...")
	spinner.Start()
	err = runner.Publish(ctx, result, *opts)
	spinner.Stop()
	return result, err
}

// report writes the local artifact and prints the summary.
func (c *CLI) report(result *pipeline.Result, o *rootOpts) error {
	if o.local {
		if o.output == "" {
			_, err := os.Stdout.Write(result.Artifact)
			return err
		}
		if err := os.WriteFile(o.output, result.Artifact, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", o.output, err)
		}
		printSuccess("Rendered %d languages", len(result.Top))
		printFile(o.output)
	} else if pub := result.Publish; pub != nil {
		if pub.Unchanged {
			printInfo("Chart unchanged, nothing to commit")
		} else {
			printSuccess("Published chart")
			if pub.URL != "" {
				fmt.Fprintln(stderr, "  "+StyleLink.Render(pub.URL))
			}
		}
	}

	printRanking(result.Top, result.Usage.Total())
	printStats(result.Stats)
	return nil
}

// formatFromPath infers the output format from a file extension, falling
// back to def for unknown extensions.
func formatFromPath(path, def string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if pipeline.ValidFormats[ext] {
		return ext
	}
	return def
}
