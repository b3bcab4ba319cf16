package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/toplangs/pkg/errors"
)

// profileFile is the name of the profile inside the config directory.
const profileFile = "config.toml"

// profile is the optional TOML file holding a user's preferred settings.
// Pointer fields distinguish "not set" from zero values.
type profile struct {
	Width     *float64 `toml:"width"`
	FontSize  *float64 `toml:"font_size"`
	Top       *int     `toml:"top"`
	Ignore    []string `toml:"ignore"`
	TextWidth *float64 `toml:"text_width"`
	Theme     string   `toml:"theme"`
	Title     *string  `toml:"title"`
	Caption   *string  `toml:"caption"`
	Branch    string   `toml:"branch"`
	Repo      string   `toml:"repo"`
	Path      string   `toml:"path"`
	Message   string   `toml:"message"`
}

// defaultProfilePath returns where the profile is looked up when --config
// is not given.
func defaultProfilePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, profileFile), nil
}

// loadProfile reads the profile at path. When explicit is false a missing
// file is not an error and yields an empty profile. Unknown keys are
// rejected so typos do not go unnoticed.
func loadProfile(path string, explicit bool) (*profile, error) {
	var p profile
	if path == "" {
		return &p, nil
	}

	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &p, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read profile %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"profile %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &p, nil
}

// apply copies every value set in p into o, except for the fields whose
// flag was set explicitly on the command line.
func (p *profile) apply(o *rootOpts, changed func(flag string) bool) {
	set := func(flag string) bool { return !changed(flag) }

	if p.Width != nil && set("width") {
		o.chart.Width = *p.Width
	}
	if p.FontSize != nil && set("font-size") {
		o.chart.FontSize = *p.FontSize
	}
	if p.Top != nil && set("top") {
		o.chart.TopN = *p.Top
	}
	if p.Ignore != nil && set("ignore") {
		o.ignore = p.Ignore
	}
	if p.TextWidth != nil && set("text-width") {
		o.chart.TextWidth = *p.TextWidth
	}
	if p.Theme != "" && set("theme") {
		o.theme = p.Theme
	}
	if p.Title != nil && set("title") {
		o.chart.Title = *p.Title
	}
	if p.Caption != nil && set("caption") {
		o.chart.Caption = *p.Caption
	}
	if p.Branch != "" && set("branch") {
		o.branch = p.Branch
	}
	if p.Repo != "" && set("repo") {
		o.repo = p.Repo
	}
	if p.Path != "" && set("path") {
		o.path = p.Path
	}
	if p.Message != "" && set("message") {
		o.message = p.Message
	}
}

// resolveToken picks the GitHub token: the flag first, then GITHUB_TOKEN,
// then GH_TOKEN.
func resolveToken(flag string) (string, error) {
	for _, v := range []string{flag, os.Getenv("GITHUB_TOKEN"), os.Getenv("GH_TOKEN")} {
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnauthorized,
		"no GitHub token: pass --token or set GITHUB_TOKEN (a .env file works too)")
}

// splitRepo parses "owner/repo" or "repo". An empty owner means the
// token's login.
func splitRepo(s string) (owner, repo string, err error) {
	if s == "" {
		return "", "", nil
	}
	owner, repo, found := strings.Cut(s, "/")
	if !found {
		return "", s, nil
	}
	if owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "invalid repository %q (want owner/repo or repo)", s)
	}
	return owner, repo, nil
}
