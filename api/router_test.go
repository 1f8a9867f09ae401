package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studydeck/study-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupAPI wires a full router against an in-memory database and a fake
// completions upstream
func setupAPI(t *testing.T, upstream http.Handler) *API {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	viper.Set("database.driver", "sqlite")
	viper.Set("database.dsn", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))

	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.algorithm", "HS256")
	viper.Set("jwt.expire_minutes", 30)

	viper.Set("openai.base_url", srv.URL)
	viper.Set("openai.api_key", "test-api-key")
	viper.Set("openai.model", "gpt-3.5-turbo")
	viper.Set("openai.timeout_seconds", 5)

	viper.Set("argon.memory", 1024)
	viper.Set("argon.iterations", 1)
	viper.Set("argon.parallelism", 1)

	a, err := NewRouter()
	require.NoError(t, err)

	return a
}

func fixedSummaryUpstream(summary string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": summary}},
			},
		})
	})
}

func failingUpstream() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model overloaded"}`, http.StatusServiceUnavailable)
	})
}

func doRequest(a *API, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var data map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	return data
}

func registerAndLogin(t *testing.T, a *API, username, email, password string) string {
	t.Helper()

	w := doRequest(a, http.MethodPost, "/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(a, http.MethodPost, "/auth/token", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := decodeBody(t, w)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createDocument(t *testing.T, a *API, token, title, content string) uint {
	t.Helper()

	w := doRequest(a, http.MethodPost, "/documents", token, gin.H{
		"title":   title,
		"content": content,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return uint(decodeBody(t, w)["id"].(float64))
}

func TestAuthFlow(t *testing.T) {
	a := setupAPI(t, fixedSummaryUpstream("unused"))

	// Register
	w := doRequest(a, http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	user := decodeBody(t, w)
	require.Equal(t, "alice", user["username"])
	require.Equal(t, "a@x.com", user["email"])
	require.NotContains(t, w.Body.String(), "password", "hash must never leave the server")

	// Duplicate username and duplicate email both collide
	w = doRequest(a, http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice",
		"email":    "other@x.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(a, http.MethodPost, "/auth/register", "", gin.H{
		"username": "alice2",
		"email":    "a@x.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Login
	w = doRequest(a, http.MethodPost, "/auth/token", "", gin.H{
		"username": "alice",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	login := decodeBody(t, w)
	require.Equal(t, "bearer", login["token_type"])
	token := login["access_token"].(string)

	// Wrong password and unknown username are indistinguishable
	wrongPass := doRequest(a, http.MethodPost, "/auth/token", "", gin.H{
		"username": "alice",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)

	unknownUser := doRequest(a, http.MethodPost, "/auth/token", "", gin.H{
		"username": "nobody",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.Equal(t, decodeBody(t, wrongPass)["error"], decodeBody(t, unknownUser)["error"])

	// Identity endpoint
	w = doRequest(a, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "alice", decodeBody(t, w)["username"])

	w = doRequest(a, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(a, http.MethodGet, "/auth/me", token+"x", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDocumentCRUD(t *testing.T) {
	a := setupAPI(t, fixedSummaryUpstream("unused"))
	token := registerAndLogin(t, a, "alice", "a@x.com", "pw123456")

	content := strings.Repeat("a", 50)

	id1 := createDocument(t, a, token, "First", content)
	id2 := createDocument(t, a, token, "Second", content)
	id3 := createDocument(t, a, token, "Third", content)

	// Invalid input
	w := doRequest(a, http.MethodPost, "/documents", token, gin.H{"title": "", "content": content})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(a, http.MethodPost, "/documents", token, gin.H{"title": "ok", "content": "short"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(a, http.MethodPost, "/documents", "", gin.H{"title": "ok", "content": content})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Listing is newest first
	w = doRequest(a, http.MethodGet, "/documents", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []model.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	require.Equal(t, []uint{id3, id2, id1}, []uint{list[0].ID, list[1].ID, list[2].ID})

	// skip=1 limit=1 returns exactly the second most recent document
	w = doRequest(a, http.MethodGet, "/documents?skip=1&limit=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, id2, list[0].ID)

	w = doRequest(a, http.MethodGet, "/documents?limit=101", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Single fetch
	w = doRequest(a, http.MethodGet, fmt.Sprintf("/documents/%d", id1), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "First", decodeBody(t, w)["title"])

	// Partial update only touches the provided fields
	w = doRequest(a, http.MethodPut, fmt.Sprintf("/documents/%d", id1), token, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored model.Document
	require.NoError(t, a.DB.First(&stored, id1).Error)
	require.Equal(t, "Renamed", stored.Title)
	require.Equal(t, content, stored.Content)

	w = doRequest(a, http.MethodPut, fmt.Sprintf("/documents/%d", id1), token, gin.H{"content": "short"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Delete then fetch
	w = doRequest(a, http.MethodDelete, fmt.Sprintf("/documents/%d", id1), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(a, http.MethodGet, fmt.Sprintf("/documents/%d", id1), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(a, http.MethodDelete, fmt.Sprintf("/documents/%d", id1), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentOwnership(t *testing.T) {
	a := setupAPI(t, fixedSummaryUpstream("unused"))

	aliceToken := registerAndLogin(t, a, "alice", "a@x.com", "pw123456")
	bobToken := registerAndLogin(t, a, "bob", "b@x.com", "pw123456")

	docID := createDocument(t, a, aliceToken, "Private notes", strings.Repeat("a", 50))

	// A foreign document must look exactly like a missing one
	path := fmt.Sprintf("/documents/%d", docID)

	w := doRequest(a, http.MethodGet, path, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(a, http.MethodPut, path, bobToken, gin.H{"title": "hijacked"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(a, http.MethodDelete, path, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Still intact for the owner
	w = doRequest(a, http.MethodGet, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Private notes", decodeBody(t, w)["title"])
}

func TestSummarizeEndToEnd(t *testing.T) {
	a := setupAPI(t, fixedSummaryUpstream("a concise summary"))
	token := registerAndLogin(t, a, "alice", "a@x.com", "pw123456")

	docID := createDocument(t, a, token, "Notes", strings.Repeat("a", 50))

	w := doRequest(a, http.MethodPost, "/ai/summarize", token, gin.H{"document_id": docID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	require.Equal(t, float64(docID), resp["document_id"])
	require.Equal(t, "Notes", resp["title"])
	require.Equal(t, "a concise summary", resp["summary"])

	var stored model.Document
	require.NoError(t, a.DB.First(&stored, docID).Error)
	require.NotNil(t, stored.Summary)
	require.Equal(t, "a concise summary", *stored.Summary)

	// Unknown document
	w = doRequest(a, http.MethodPost, "/ai/summarize", token, gin.H{"document_id": 9999})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummarizeForeignDocument(t *testing.T) {
	a := setupAPI(t, fixedSummaryUpstream("should never be stored"))

	aliceToken := registerAndLogin(t, a, "alice", "a@x.com", "pw123456")
	bobToken := registerAndLogin(t, a, "bob", "b@x.com", "pw123456")

	docID := createDocument(t, a, aliceToken, "Notes", strings.Repeat("a", 50))

	w := doRequest(a, http.MethodPost, "/ai/summarize", bobToken, gin.H{"document_id": docID})
	require.Equal(t, http.StatusNotFound, w.Code)

	var stored model.Document
	require.NoError(t, a.DB.First(&stored, docID).Error)
	require.Nil(t, stored.Summary, "a foreign summarize attempt must not touch the document")
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	a := setupAPI(t, failingUpstream())
	token := registerAndLogin(t, a, "alice", "a@x.com", "pw123456")

	docID := createDocument(t, a, token, "Notes", strings.Repeat("a", 50))

	prior := "summary from an earlier run"
	require.NoError(t, a.DB.Model(&model.Document{}).Where("id = ?", docID).Update("summary", prior).Error)

	w := doRequest(a, http.MethodPost, "/ai/summarize", token, gin.H{"document_id": docID})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "test-api-key")

	var stored model.Document
	require.NoError(t, a.DB.First(&stored, docID).Error)
	require.NotNil(t, stored.Summary)
	require.Equal(t, prior, *stored.Summary)
}

func TestHeartbeat(t *testing.T) {
	a := setupAPI(t, fixedSummaryUpstream("unused"))

	w := doRequest(a, http.MethodHead, "/heartbeat", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
