package github

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/matzehuels/toplangs/pkg/errors"
)

// PublishRequest describes a single-file commit.
type PublishRequest struct {
	Owner   string
	Repo    string
	Branch  string
	Path    string // file path inside the repository, e.g. "top-langs.svg"
	Content []byte
	Message string
}

// PublishResult reports what [Client.Publish] did.
type PublishResult struct {
	// Unchanged is set when the file already had the requested content
	// and no commit was created.
	Unchanged bool `json:"unchanged"`

	CommitSHA string `json:"commit_sha,omitempty"`
	BlobSHA   string `json:"blob_sha"`
	URL       string `json:"url,omitempty"`
}

// Validate checks the request before any network traffic.
func (r PublishRequest) Validate() error {
	if err := errors.ValidateRepoName(r.Owner); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	if err := errors.ValidateRepoName(r.Repo); err != nil {
		return fmt.Errorf("repo: %w", err)
	}
	if err := errors.ValidateBranch(r.Branch); err != nil {
		return err
	}
	if err := errors.ValidatePath(r.Path); err != nil {
		return err
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "commit message cannot be empty")
	}
	return nil
}

type gitRef struct {
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

type gitCommit struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Tree    struct {
		SHA string `json:"sha"`
	} `json:"tree"`
}

type gitObject struct {
	SHA string `json:"sha"`
}

type treeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// Publish commits req.Content to req.Path on req.Branch.
//
// The branch is updated without force, so a concurrent push makes the
// final step fail instead of discarding someone else's commit.
func (c *Client) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	repoPath := "/repos/" + url.PathEscape(req.Owner) + "/" + url.PathEscape(req.Repo)
	branchPath := escapeSegments(req.Branch)
	blobSHA := BlobSHA(req.Content)

	existing, err := c.existingBlob(ctx, repoPath, req.Path, req.Branch)
	if err != nil {
		return nil, err
	}
	if existing == blobSHA {
		return &PublishResult{Unchanged: true, BlobSHA: blobSHA}, nil
	}

	var ref gitRef
	if err := c.get(ctx, repoPath+"/git/ref/heads/"+branchPath, &ref); err != nil {
		return nil, fmt.Errorf("resolve branch %q: %w", req.Branch, err)
	}
	head := ref.Object.SHA

	var headCommit gitCommit
	if err := c.get(ctx, repoPath+"/git/commits/"+head, &headCommit); err != nil {
		return nil, fmt.Errorf("read commit %s: %w", head, err)
	}

	var blob gitObject
	if err := c.send(ctx, http.MethodPost, repoPath+"/git/blobs", map[string]string{
		"content":  string(req.Content),
		"encoding": "utf-8",
	}, &blob); err != nil {
		return nil, fmt.Errorf("create blob: %w", err)
	}

	var tree gitObject
	if err := c.send(ctx, http.MethodPost, repoPath+"/git/trees", map[string]any{
		"base_tree": headCommit.Tree.SHA,
		"tree":      []treeEntry{{Path: req.Path, Mode: "100644", Type: "blob", SHA: blob.SHA}},
	}, &tree); err != nil {
		return nil, fmt.Errorf("create tree: %w", err)
	}

	var commit gitCommit
	if err := c.send(ctx, http.MethodPost, repoPath+"/git/commits", map[string]any{
		"message": req.Message,
		"tree":    tree.SHA,
		"parents": []string{head},
	}, &commit); err != nil {
		return nil, fmt.Errorf("create commit: %w", err)
	}

	if err := c.send(ctx, http.MethodPatch, repoPath+"/git/refs/heads/"+branchPath, map[string]any{
		"sha":   commit.SHA,
		"force": false,
	}, nil); err != nil {
		return nil, fmt.Errorf("update branch %q: %w", req.Branch, err)
	}

	return &PublishResult{CommitSHA: commit.SHA, BlobSHA: blob.SHA, URL: commit.HTMLURL}, nil
}

// existingBlob returns the blob SHA currently stored at path, or "" when
// the file does not exist yet.
func (c *Client) existingBlob(ctx context.Context, repoPath, path, branch string) (string, error) {
	var content struct {
		Type string `json:"type"`
		SHA  string `json:"sha"`
	}
	err := c.get(ctx, repoPath+"/contents/"+escapeSegments(path)+"?ref="+url.QueryEscape(branch), &content)
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("read %s: %w", path, err)
	case content.Type != "file":
		return "", errors.New(errors.ErrCodeInvalidPath, "%s is a %s, not a file", path, content.Type)
	}
	return content.SHA, nil
}

// BlobSHA returns the git object id of content stored as a blob.
func BlobSHA(content []byte) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", len(content))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func escapeSegments(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
