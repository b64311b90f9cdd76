package bedrock_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrianliechti/prism/pkg/provider"
	"github.com/adrianliechti/prism/pkg/provider/bedrock"

	"github.com/stretchr/testify/require"
)

func setupCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
}

func TestComplete(t *testing.T) {
	setupCredentials(t)

	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output":{"message":{"role":"assistant","content":[{"text":"Ownership governs memory."}]}},
			"stopReason":"end_turn","usage":{"inputTokens":10,"outputTokens":5,"totalTokens":15}}`))
	}))

	defer server.Close()

	c, err := bedrock.NewCompleter("anthropic.claude-3-haiku", bedrock.WithRegion("us-east-1"), bedrock.WithURL(server.URL))
	require.NoError(t, err)

	completion, err := c.Complete(context.Background(), []provider.Message{
		provider.SystemMessage("be brief"),
		provider.UserMessage("rust ownership"),
	}, nil)

	require.NoError(t, err)

	require.True(t, strings.HasSuffix(path, "/converse"), path)
	require.Equal(t, "Ownership governs memory.", completion.Text())
}

func TestCompleteNoRetries(t *testing.T) {
	setupCredentials(t)

	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Amzn-Errortype", "InternalServerException")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"upstream failure"}`))
	}))

	defer server.Close()

	c, err := bedrock.NewCompleter("anthropic.claude-3-haiku", bedrock.WithRegion("us-east-1"), bedrock.WithURL(server.URL))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []provider.Message{provider.UserMessage("rust")}, nil)
	require.Error(t, err)

	require.Equal(t, 1, calls)
}
