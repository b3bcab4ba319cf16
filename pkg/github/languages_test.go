package github

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/toplangs/pkg/cache"
	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/usage"
)

func repoJSON(name string, langs ...any) map[string]any {
	edges := []any{}
	for i := 0; i+1 < len(langs); i += 2 {
		edges = append(edges, map[string]any{"size": langs[i+1], "node": map[string]any{"name": langs[i]}})
	}
	return map[string]any{"nameWithOwner": name, "languages": map[string]any{"edges": edges}}
}

func pageJSON(nodes []any, hasNext bool, cursor string) map[string]any {
	return map[string]any{"data": map[string]any{"viewer": map[string]any{"repositories": map[string]any{
		"pageInfo": map[string]any{"hasNextPage": hasNext, "endCursor": cursor},
		"nodes":    nodes,
	}}}}
}

func TestLanguagesSinglePage(t *testing.T) {
	srv := graphQLServer(t, func(req graphQLRequest) any {
		assert.EqualValues(t, 2, req.Variables["first"])
		assert.Nil(t, req.Variables["after"])
		return pageJSON([]any{
			repoJSON("me/api", "Go", 100, "Shell", 20),
			repoJSON("me/web", "Go", 250, "HTML", 9000),
		}, false, "c1")
	})

	records, err := testClient(srv).Languages(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []usage.RepoLanguages{
		{Repo: "me/api", Languages: []usage.LanguageSize{{Name: "Go", Size: 100}, {Name: "Shell", Size: 20}}},
		{Repo: "me/web", Languages: []usage.LanguageSize{{Name: "Go", Size: 250}, {Name: "HTML", Size: 9000}}},
	}, records)
}

func TestLanguagesPagination(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []map[string]any
	)
	srv := graphQLServer(t, func(req graphQLRequest) any {
		mu.Lock()
		requests = append(requests, req.Variables)
		mu.Unlock()
		first := int(req.Variables["first"].(float64))
		offset := 0
		if after, ok := req.Variables["after"].(string); ok {
			fmt.Sscanf(after, "cursor-%d", &offset)
		}
		nodes := make([]any, first)
		for i := range nodes {
			nodes[i] = repoJSON(fmt.Sprintf("me/r%d", offset+i), "Go", 1)
		}
		return pageJSON(nodes, true, fmt.Sprintf("cursor-%d", offset+first))
	})

	records, err := testClient(srv).Languages(context.Background(), 150)
	require.NoError(t, err)
	require.Len(t, records, 150)
	assert.Equal(t, "me/r149", records[149].Repo)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requests, 2)
	assert.EqualValues(t, 100, requests[0]["first"])
	assert.EqualValues(t, 50, requests[1]["first"])
	assert.Equal(t, "cursor-100", requests[1]["after"])

	u, err := usage.Aggregate(records)
	require.NoError(t, err)
	assert.Equal(t, usage.Usage{"Go": 150}, u)
}

func TestLanguagesStopsWithoutNextPage(t *testing.T) {
	var calls atomic.Int32
	srv := graphQLServer(t, func(graphQLRequest) any {
		calls.Add(1)
		return pageJSON([]any{repoJSON("me/a", "C", 1), repoJSON("me/b")}, false, "")
	})

	records, err := testClient(srv).Languages(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Empty(t, records[1].Languages)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLanguagesZeroCount(t *testing.T) {
	srv := graphQLServer(t, func(graphQLRequest) any {
		t.Error("no request expected")
		return nil
	})

	records, err := testClient(srv).Languages(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestLanguagesDataFormat(t *testing.T) {
	tests := []struct {
		name string
		resp any
	}{
		{"missing repositories", map[string]any{"data": map[string]any{"viewer": map[string]any{}}}},
		{"missing languages", pageJSON([]any{map[string]any{"nameWithOwner": "me/x"}}, false, "")},
		{"missing size", pageJSON([]any{map[string]any{"nameWithOwner": "me/x", "languages": map[string]any{
			"edges": []any{map[string]any{"node": map[string]any{"name": "Go"}}},
		}}}, false, "")},
		{"missing name", pageJSON([]any{map[string]any{"nameWithOwner": "me/x", "languages": map[string]any{
			"edges": []any{map[string]any{"size": 3, "node": map[string]any{}}},
		}}}, false, "")},
		{"string size", pageJSON([]any{repoJSON("me/x", "Go", "big")}, false, "")},
		{"null repository", pageJSON([]any{nil}, false, "")},
		{"next page without cursor", map[string]any{"data": map[string]any{"viewer": map[string]any{"repositories": map[string]any{
			"pageInfo": map[string]any{"hasNextPage": true},
			"nodes":    []any{repoJSON("me/x", "Go", 1)},
		}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := graphQLServer(t, func(graphQLRequest) any { return tt.resp })
			_, err := testClient(srv).Languages(context.Background(), 3)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeDataFormat), "got %v", err)
		})
	}
}

func TestLanguagesCache(t *testing.T) {
	var calls atomic.Int32
	srv := graphQLServer(t, func(graphQLRequest) any {
		calls.Add(1)
		return pageJSON([]any{repoJSON("me/a", "Rust", 7)}, false, "")
	})

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	c := testClient(srv, WithCache(fc, 0))
	first, err := c.Languages(ctx, 1)
	require.NoError(t, err)
	second, err := c.Languages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load(), "second call should be served from cache")

	_, err = testClient(srv, WithCache(fc, 0), WithRefresh(true)).Languages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "refresh should bypass the cache")

	other := NewClient("other-token", WithBaseURL(srv.URL), WithCache(fc, 0))
	_, err = other.Languages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load(), "cache entries are per token")
}
