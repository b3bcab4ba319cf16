// Package pipeline runs the fetch → rank → render → publish pipeline.
//
// The CLI is a thin layer over this package: it builds [Options] from flags
// and the profile file, wires a GitHub client in as [Source] and
// [Publisher], and prints the [Result].
//
// # Stages
//
//  1. Fetch: count the user's repositories, read every repository's language
//     breakdown and fold it into a [usage.Usage]
//  2. Rank: pick the TopN largest languages that are not ignored
//  3. Render: lay the ranking out as a bar chart and serialize it as SVG
//  4. Publish: commit the SVG to a repository, or convert it for local output
//
// # Usage
//
//	runner := pipeline.NewRunner(client, client, logger)
//	opts := pipeline.Options{Chart: bars.DefaultConfig(), Local: true}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
//
// Stages can also be run one at a time:
//
//	u, err := runner.Fetch(ctx)
//	result, err := runner.Render(ctx, u, opts)
//	err = runner.Publish(ctx, result, opts)
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/github"
	"github.com/matzehuels/toplangs/pkg/render/bars"
	"github.com/matzehuels/toplangs/pkg/usage"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Profile File
// =============================================================================

const (
	// DefaultBranch is the branch the chart is committed to.
	DefaultBranch = "master"

	// DefaultPath is the file the chart is committed as.
	DefaultPath = "top-langs.svg"

	// DefaultMessage is the commit message used when publishing.
	DefaultMessage = "Update top languages chart"

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for local output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// DefaultFormat is the local output format.
const DefaultFormat = FormatSVG

// ValidFormats is the set of supported local output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Interfaces
// =============================================================================

// Source provides the language statistics of one user's repositories.
// *github.Client implements it.
type Source interface {
	RepoCount(ctx context.Context) (int, error)
	Languages(ctx context.Context, count int) ([]usage.RepoLanguages, error)
}

// Publisher commits a rendered chart. *github.Client implements it.
type Publisher interface {
	Login(ctx context.Context) (string, error)
	Publish(ctx context.Context, req github.PublishRequest) (*github.PublishResult, error)
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Chart controls ranking and rendering. Start from bars.DefaultConfig.
	Chart bars.Config

	// Local skips publishing; the rendered chart ends up in Result.Artifact.
	Local bool
	// Format is the local output format (svg, png or pdf).
	Format string
	// PNGScale is the resolution multiplier for png output.
	PNGScale float64

	// Publish target. An empty Owner or Repo resolves to the token's login,
	// i.e. the user's profile repository.
	Owner   string
	Repo    string
	Branch  string
	Path    string
	Message string

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Usage is the aggregated, unfiltered language usage.
	Usage usage.Usage

	// Top is the ranking that was rendered.
	Top []usage.Entry

	// Layout is the computed chart geometry.
	Layout bars.Layout

	// SVG is the rendered chart.
	SVG []byte

	// Artifact is the chart in the requested local format. Only set for
	// local runs.
	Artifact []byte

	// Publish reports the commit. Only set for published runs.
	Publish *github.PublishResult

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RepoCount   int // repositories reported by the count query
	Repos       int // repositories actually read
	Languages   int // distinct languages across all repositories
	TotalBytes  int64
	FetchTime   time.Duration
	RenderTime  time.Duration
	PublishTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset publish and output fields. Chart is left alone:
// its zero values are meaningful (e.g. TopN 0) and validated as they are.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Branch == "" {
		o.Branch = DefaultBranch
	}
	if o.Path == "" {
		o.Path = DefaultPath
	}
	if o.Message == "" {
		o.Message = DefaultMessage
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the chart configuration and, depending on Local, either
// the output format or the publish target.
func (o *Options) Validate() error {
	if err := o.Chart.Validate(); err != nil {
		return err
	}
	if o.Local {
		if err := ValidateFormat(o.Format); err != nil {
			return err
		}
		if o.PNGScale <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", o.PNGScale)
		}
		return nil
	}
	if o.Format != FormatSVG && o.Format != "" {
		return errors.New(errors.ErrCodeInvalidInput, "only svg can be published, got %q", o.Format)
	}
	if err := errors.ValidateBranch(o.Branch); err != nil {
		return err
	}
	if err := errors.ValidatePath(o.Path); err != nil {
		return err
	}
	for _, name := range []string{o.Owner, o.Repo} {
		if name == "" {
			continue
		}
		if err := errors.ValidateRepoName(name); err != nil {
			return err
		}
	}
	return nil
}

// Target returns "owner/repo:path" for logs and hooks.
func (o *Options) Target() string {
	return fmt.Sprintf("%s/%s:%s", o.Owner, o.Repo, o.Path)
}
