package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/github"
	"github.com/matzehuels/toplangs/pkg/observability"
	"github.com/matzehuels/toplangs/pkg/render"
	"github.com/matzehuels/toplangs/pkg/render/bars"
	"github.com/matzehuels/toplangs/pkg/usage"
)

// Runner wires a data source and a publisher into the pipeline.
//
// The Runner does not keep results between calls, so one Runner may serve
// several goroutines with different options.
type Runner struct {
	Source    Source
	Publisher Publisher
	Logger    *log.Logger
}

// NewRunner creates a runner. publisher may be nil for runs that never
// publish. A nil logger discards output.
func NewRunner(source Source, publisher Publisher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Source:    source,
		Publisher: publisher,
		Logger:    logger,
	}
}

// Execute runs fetch → rank → render and then either converts the chart
// for local output or publishes it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Fetch
	u, stats, err := r.fetch(ctx, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	// Stages 2 and 3: Rank and render
	result, err := r.Render(ctx, u, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	stats.RenderTime = result.Stats.RenderTime
	result.Stats = stats

	// Stage 4: Output
	if opts.Local {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, opts.Format)
		artifact, err := Convert(ctx, result.SVG, opts.Format, opts.PNGScale)
		observability.Pipeline().OnRenderComplete(ctx, opts.Format, len(artifact), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", opts.Format, err)
		}
		result.Artifact = artifact
		return result, nil
	}

	if err := r.Publish(ctx, result, opts); err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	return result, nil
}

// Fetch counts the user's repositories, reads their languages and
// aggregates them.
func (r *Runner) Fetch(ctx context.Context) (usage.Usage, error) {
	opts := Options{}
	r.applyLogger(&opts)
	u, _, err := r.fetch(ctx, opts.Logger)
	return u, err
}

func (r *Runner) fetch(ctx context.Context, logger *log.Logger) (u usage.Usage, stats Stats, err error) {
	if r.Source == nil {
		return nil, stats, errors.New(errors.ErrCodeInternal, "no data source configured")
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx)
	start := time.Now()
	defer func() {
		stats.FetchTime = time.Since(start)
		hooks.OnFetchComplete(ctx, stats.Repos, stats.Languages, stats.FetchTime, err)
	}()

	count, err := r.Source.RepoCount(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("count repositories: %w", err)
	}
	stats.RepoCount = count
	logger.Debug("counted repositories", "count", count)

	records, err := r.Source.Languages(ctx, count)
	if err != nil {
		return nil, stats, fmt.Errorf("read languages: %w", err)
	}
	stats.Repos = len(records)
	if len(records) != count {
		logger.Warn("repository count changed while reading", "expected", count, "read", len(records))
	}

	u, err = usage.Aggregate(records)
	if err != nil {
		return nil, stats, err
	}
	stats.Languages = len(u)
	stats.TotalBytes = u.Total()

	logger.Info("fetched languages",
		"repos", stats.Repos,
		"languages", stats.Languages,
		"duration", time.Since(start))
	return u, stats, nil
}

// Render ranks u with opts.Chart and renders the ranking as SVG.
// u is not modified.
func (r *Runner) Render(ctx context.Context, u usage.Usage, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	rankStart := time.Now()
	hooks.OnRankStart(ctx, opts.Chart.TopN, len(u))
	top := opts.Chart.Rank(u)
	hooks.OnRankComplete(ctx, len(top), time.Since(rankStart))

	renderStart := time.Now()
	hooks.OnRenderStart(ctx, FormatSVG)
	l, err := bars.Compute(top, opts.Chart)
	if err != nil {
		hooks.OnRenderComplete(ctx, FormatSVG, 0, time.Since(renderStart), err)
		return nil, err
	}
	svg := bars.RenderLayout(l)
	hooks.OnRenderComplete(ctx, FormatSVG, len(svg), time.Since(renderStart), nil)

	opts.Logger.Info("rendered chart",
		"languages", len(top),
		"theme", opts.Chart.Theme,
		"bytes", len(svg))

	return &Result{
		Usage:  u,
		Top:    top,
		Layout: l,
		SVG:    svg,
		Stats: Stats{
			Languages:  len(u),
			TotalBytes: u.Total(),
			RenderTime: time.Since(rankStart),
		},
	}, nil
}

// Publish commits res.SVG to the target in opts. An empty Owner or Repo
// is resolved from the publisher's login.
func (r *Runner) Publish(ctx context.Context, res *Result, opts Options) error {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if r.Publisher == nil {
		return errors.New(errors.ErrCodeInternal, "no publisher configured")
	}
	if res == nil || len(res.SVG) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "nothing to publish")
	}

	if opts.Owner == "" || opts.Repo == "" {
		login, err := r.Publisher.Login(ctx)
		if err != nil {
			return fmt.Errorf("resolve login: %w", err)
		}
		if opts.Owner == "" {
			opts.Owner = login
		}
		if opts.Repo == "" {
			opts.Repo = login
		}
	}

	target := opts.Target()
	hooks := observability.Pipeline()
	hooks.OnPublishStart(ctx, target)
	start := time.Now()

	pub, err := r.Publisher.Publish(ctx, github.PublishRequest{
		Owner:   opts.Owner,
		Repo:    opts.Repo,
		Branch:  opts.Branch,
		Path:    opts.Path,
		Content: res.SVG,
		Message: opts.Message,
	})
	res.Stats.PublishTime = time.Since(start)
	hooks.OnPublishComplete(ctx, target, pub != nil && pub.Unchanged, res.Stats.PublishTime, err)
	if err != nil {
		return err
	}
	res.Publish = pub

	if pub.Unchanged {
		opts.Logger.Info("chart unchanged, nothing to commit", "target", target)
	} else {
		opts.Logger.Info("published chart", "target", target, "commit", pub.CommitSHA)
	}
	return nil
}

// Convert turns an SVG document into the given format. svg is returned
// as is; png and pdf need rsvg-convert on PATH.
func Convert(ctx context.Context, svg []byte, format string, pngScale float64) ([]byte, error) {
	switch format {
	case FormatSVG, "":
		return svg, nil
	case FormatPNG:
		return render.ToPNG(ctx, svg, pngScale)
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	default:
		return nil, ValidateFormat(format)
	}
}

// applyLogger sets the runner's logger on options if not already set,
// falling back to a discarding logger for zero-value Runners.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
