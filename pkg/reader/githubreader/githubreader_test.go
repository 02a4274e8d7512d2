package githubreader_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	gogithub "github.com/google/go-github/v75/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/bobbin/internal/ghmock"
	"github.com/tilsley/bobbin/pkg/logging"
	"github.com/tilsley/bobbin/pkg/reader/githubreader"
)

const applicationYAML = `apiVersion: argoproj.io/v1alpha1
kind: Application
metadata:
  name: billing-api
spec:
  project: payments
`

// newMock starts a seeded ghmock server and returns it with its base URL.
func newMock(t *testing.T) (*ghmock.Server, string) {
	t.Helper()

	mock := ghmock.New(logging.Discard())
	seed, err := os.ReadFile(filepath.Join("testdata", "repos.yaml"))
	require.NoError(t, err)
	require.NoError(t, mock.LoadManifest(seed))

	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)
	return mock, srv.URL
}

// ─── Reading ──────────────────────────────────────────────────────────────────

func TestRead_ReturnsDecodedContent(t *testing.T) {
	_, url := newMock(t)
	gh := githubreader.NewTokenClient("test-token", url)
	r := githubreader.New(gh, "acme", "gitops")

	got, err := r.Read(context.Background(), "apps/billing-api/base/application.yaml")

	require.NoError(t, err)
	assert.Equal(t, applicationYAML, string(got))
}

func TestRead_BinaryContentSurvivesDecode(t *testing.T) {
	mock, url := newMock(t)
	raw := string([]byte{0x00, 0x01, 0xfe, 0xff, 'o', 'k'})
	mock.SetFile("acme", "gitops", "assets/logo.bin", raw)

	gh := githubreader.NewTokenClient("test-token", url)
	r := githubreader.New(gh, "acme", "gitops")

	got, err := r.Read(context.Background(), "assets/logo.bin")

	require.NoError(t, err)
	assert.Equal(t, []byte(raw), got)
}

func TestRead_MissingPath_ReturnsAPIError(t *testing.T) {
	_, url := newMock(t)
	gh := githubreader.NewTokenClient("test-token", url)
	r := githubreader.New(gh, "acme", "gitops")

	got, err := r.Read(context.Background(), "apps/billing-api/base/missing.yaml")

	require.Error(t, err)
	assert.Nil(t, got)

	// The underlying go-github error must stay reachable for callers that
	// branch on status codes.
	var apiErr *gogithub.ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Response.StatusCode)
}

func TestRead_DirectoryPath_ReturnsError(t *testing.T) {
	_, url := newMock(t)
	gh := githubreader.NewTokenClient("test-token", url)
	r := githubreader.New(gh, "acme", "gitops")

	got, err := r.Read(context.Background(), "apps/billing-api/base")

	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "directory")
}

func TestRead_ScopedToConfiguredRepo(t *testing.T) {
	_, url := newMock(t)
	gh := githubreader.NewTokenClient("test-token", url)
	r := githubreader.New(gh, "acme", "platform-docs")

	got, err := r.Read(context.Background(), "README.md")
	require.NoError(t, err)
	assert.Equal(t, "Internal platform documentation.\n", string(got))

	// Paths from the other seeded repo must not leak in.
	_, err = r.Read(context.Background(), "docs/runbook.md")
	assert.Error(t, err)
}

// ─── Client factories ─────────────────────────────────────────────────────────

func TestNewTokenClient_SendsBearerToken(t *testing.T) {
	mock, url := newMock(t)
	gh := githubreader.NewTokenClient("test-token", url)
	r := githubreader.New(gh, "acme", "gitops")

	_, err := r.Read(context.Background(), "docs/runbook.md")

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", mock.LastAuth())
}

func TestNewTokenClient_EmptyToken_SendsNoAuth(t *testing.T) {
	mock, url := newMock(t)
	gh := githubreader.NewTokenClient("", url)
	r := githubreader.New(gh, "acme", "gitops")

	_, err := r.Read(context.Background(), "docs/runbook.md")

	require.NoError(t, err)
	assert.Empty(t, mock.LastAuth())
}

func TestNewAppClient_ReadsWithInstallationToken(t *testing.T) {
	mock, url := newMock(t)

	gh, err := githubreader.NewAppClient(12345, 67890, writeTestKey(t), url)
	require.NoError(t, err)
	r := githubreader.New(gh, "acme", "gitops")

	got, err := r.Read(context.Background(), "apps/billing-api/base/values.yaml")

	require.NoError(t, err)
	assert.Contains(t, string(got), "replicaCount: 2")
	assert.Equal(t, "token "+ghmock.InstallationToken, mock.LastAuth())
}

func TestNewAppClient_MissingKeyFile_ReturnsError(t *testing.T) {
	gh, err := githubreader.NewAppClient(12345, 67890, filepath.Join(t.TempDir(), "absent.pem"), "")

	require.Error(t, err)
	assert.Nil(t, gh)
	assert.Contains(t, err.Error(), "github app auth")
}

func TestRead_ContextCanceled_ReturnsError(t *testing.T) {
	_, url := newMock(t)
	gh := githubreader.NewTokenClient("test-token", url)
	r := githubreader.New(gh, "acme", "gitops")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Read(ctx, "docs/runbook.md")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

// writeTestKey generates a throwaway RSA private key PEM and returns its path.
func writeTestKey(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "app.pem")
	data := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
