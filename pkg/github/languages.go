package github

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/matzehuels/toplangs/pkg/cache"
	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/observability"
	"github.com/matzehuels/toplangs/pkg/usage"
)

// PageSize is the largest page the GraphQL API hands out for repositories
// and for the languages of one repository.
const PageSize = 100

const repoCountQuery = `query {
  viewer {
    repositories(ownerAffiliations: OWNER) {
      totalCount
    }
  }
}`

const languagesQuery = `query($first: Int!, $after: String) {
  viewer {
    repositories(first: $first, after: $after, ownerAffiliations: OWNER) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        nameWithOwner
        languages(first: 100) {
          edges {
            size
            node {
              name
            }
          }
        }
      }
    }
  }
}`

const loginQuery = `query { viewer { login } }`

// RepoCount returns the number of repositories owned by the token's user.
func (c *Client) RepoCount(ctx context.Context) (int, error) {
	var data struct {
		Viewer *struct {
			Repositories *struct {
				TotalCount *int `json:"totalCount"`
			} `json:"repositories"`
		} `json:"viewer"`
	}
	if err := c.query(ctx, repoCountQuery, nil, &data); err != nil {
		return 0, err
	}
	if data.Viewer == nil || data.Viewer.Repositories == nil || data.Viewer.Repositories.TotalCount == nil {
		return 0, errors.New(errors.ErrCodeDataFormat, "invalid repo count: viewer.repositories.totalCount missing")
	}
	if n := *data.Viewer.Repositories.TotalCount; n >= 0 {
		return n, nil
	}
	return 0, errors.New(errors.ErrCodeDataFormat, "invalid repo count %d", *data.Viewer.Repositories.TotalCount)
}

// Login returns the login name of the token's user.
func (c *Client) Login(ctx context.Context) (string, error) {
	var data struct {
		Viewer *struct {
			Login *string `json:"login"`
		} `json:"viewer"`
	}
	if err := c.query(ctx, loginQuery, nil, &data); err != nil {
		return "", err
	}
	if data.Viewer == nil || data.Viewer.Login == nil || *data.Viewer.Login == "" {
		return "", errors.New(errors.ErrCodeDataFormat, "viewer.login missing")
	}
	return *data.Viewer.Login, nil
}

// Languages reads the language breakdown of up to count repositories owned
// by the token's user, count usually being the result of [Client.RepoCount].
//
// Pages are requested until count repositories have been read or the API
// reports no further page, so fewer records than count may be returned.
// A count of zero or less returns no records without a request.
func (c *Client) Languages(ctx context.Context, count int) ([]usage.RepoLanguages, error) {
	if count <= 0 {
		return []usage.RepoLanguages{}, nil
	}

	key := cache.Key("languages", c.baseURL, cache.Hash([]byte(c.token)), count)
	if !c.refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			var records []usage.RepoLanguages
			if json.Unmarshal(data, &records) == nil {
				observability.Cache().OnCacheHit(ctx, "languages")
				return records, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "languages")
	}

	records, err := c.fetchLanguages(ctx, count)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if c.cache.Set(ctx, key, data, c.cacheTTL) == nil {
			observability.Cache().OnCacheSet(ctx, "languages", len(data))
		}
	}
	return records, nil
}

type languagesPage struct {
	Viewer *struct {
		Repositories *struct {
			PageInfo *struct {
				HasNextPage bool    `json:"hasNextPage"`
				EndCursor   *string `json:"endCursor"`
			} `json:"pageInfo"`
			Nodes []*repoNode `json:"nodes"`
		} `json:"repositories"`
	} `json:"viewer"`
}

type repoNode struct {
	NameWithOwner string `json:"nameWithOwner"`
	Languages     *struct {
		Edges []*languageEdge `json:"edges"`
	} `json:"languages"`
}

type languageEdge struct {
	Size *int64 `json:"size"`
	Node *struct {
		Name *string `json:"name"`
	} `json:"node"`
}

func (c *Client) fetchLanguages(ctx context.Context, count int) ([]usage.RepoLanguages, error) {
	records := make([]usage.RepoLanguages, 0, count)
	var cursor *string

	for len(records) < count {
		vars := map[string]any{"first": min(count-len(records), PageSize)}
		if cursor != nil {
			vars["after"] = *cursor
		}

		var page languagesPage
		if err := c.query(ctx, languagesQuery, vars, &page); err != nil {
			return nil, err
		}
		if page.Viewer == nil || page.Viewer.Repositories == nil || page.Viewer.Repositories.PageInfo == nil {
			return nil, errors.New(errors.ErrCodeDataFormat, "viewer.repositories missing from languages page")
		}
		repos := page.Viewer.Repositories

		for i, node := range repos.Nodes {
			rec, err := node.record(len(records) + i)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}

		if !repos.PageInfo.HasNextPage || len(repos.Nodes) == 0 {
			break
		}
		if repos.PageInfo.EndCursor == nil {
			return nil, errors.New(errors.ErrCodeDataFormat, "pageInfo.endCursor missing while hasNextPage is set")
		}
		cursor = repos.PageInfo.EndCursor
	}

	if len(records) > count {
		records = records[:count]
	}
	return records, nil
}

func (n *repoNode) record(index int) (usage.RepoLanguages, error) {
	if n == nil {
		return usage.RepoLanguages{}, errors.New(errors.ErrCodeDataFormat, "repository #%d is null", index)
	}
	name := n.NameWithOwner
	if name == "" {
		name = "#" + strconv.Itoa(index)
	}
	if n.Languages == nil {
		return usage.RepoLanguages{}, errors.New(errors.ErrCodeDataFormat, "repository %q: languages missing", name)
	}

	rec := usage.RepoLanguages{Repo: name, Languages: make([]usage.LanguageSize, 0, len(n.Languages.Edges))}
	for i, e := range n.Languages.Edges {
		if e == nil || e.Size == nil || e.Node == nil || e.Node.Name == nil {
			return usage.RepoLanguages{}, errors.New(errors.ErrCodeDataFormat,
				"repository %q: language edge #%d lacks size or name", name, i)
		}
		rec.Languages = append(rec.Languages, usage.LanguageSize{Name: *e.Node.Name, Size: *e.Size})
	}
	return rec, nil
}
