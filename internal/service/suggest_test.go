package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSuggestService(apiURL string) *SuggestionService {
	return &SuggestionService{
		apiKey: "test-key",
		apiURL: apiURL,
		model:  "test-model",
		client: http.DefaultClient,
	}
}

func chatResponse(t *testing.T, content string) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func TestSuggestCoverImages(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req suggestRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "a coffee roastery brand")

		_, _ = w.Write(chatResponse(t, `{"image_urls": ["https://img.test/a.jpg", "https://img.test/b.jpg"]}`))
	}))
	defer server.Close()

	svc := newSuggestService(server.URL)
	urls, err := svc.SuggestCoverImages(context.Background(), "a coffee roastery brand")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.test/a.jpg", "https://img.test/b.jpg"}, urls)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestSuggestCoverImagesEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	svc := newSuggestService(server.URL)
	urls, err := svc.SuggestCoverImages(context.Background(), "a coffee roastery brand")
	require.NoError(t, err)
	assert.Nil(t, urls)
}

func TestSuggestCoverImagesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := newSuggestService(server.URL)
	_, err := svc.SuggestCoverImages(context.Background(), "a coffee roastery brand")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSuggestCoverImagesMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(chatResponse(t, `not json at all`))
	}))
	defer server.Close()

	svc := newSuggestService(server.URL)
	_, err := svc.SuggestCoverImages(context.Background(), "a coffee roastery brand")
	assert.Error(t, err)
}

func TestHashKeyNormalizesDescription(t *testing.T) {
	assert.Equal(t, hashKey("A Coffee Brand"), hashKey("  a coffee brand  "))
	assert.NotEqual(t, hashKey("a coffee brand"), hashKey("a tea brand"))
}
