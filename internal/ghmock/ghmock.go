// Package ghmock is an in-process stand-in for the slice of the GitHub REST
// API that githubreader touches: the repository contents endpoint, plus the
// installation token endpoint so app-authenticated clients work too. Tests
// mount Handler on an httptest.Server and point a go-github client at it.
//
// Responses mirror the real API's shapes (a content object with a
// base64-encoded payload for files, a JSON array for directories, GitHub's
// {"message": ...} body on 404) so the go-github client exercises the same
// decode paths it would against api.github.com.
package ghmock

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// InstallationToken is the fixed token minted for every access_tokens
// request. Tests assert on it to verify app auth wiring.
const InstallationToken = "ghs_mock_installation_token"

// DirEntry is one item of a directory listing, shaped like the contents API's
// directory response.
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
}

// Server holds seeded repository file content and serves it over the
// contents endpoint. Safe for concurrent use.
type Server struct {
	mu       sync.RWMutex
	log      *slog.Logger
	files    map[string]map[string]string // "owner/repo" -> path -> content
	lastAuth string
	engine   *gin.Engine
}

// New creates an empty Server that logs requests to the given logger.
func New(log *slog.Logger) *Server {
	s := &Server{
		log:   log,
		files: make(map[string]map[string]string),
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.capture)
	r.GET("/repos/:owner/:repo/contents/*path", s.getContents)
	r.POST("/app/installations/:id/access_tokens", s.createInstallationToken)
	s.engine = r
	return s
}

// Handler returns the HTTP handler to mount on a test server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SetFile seeds a single file.
func (s *Server) SetFile(owner, repo, path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := owner + "/" + repo
	if s.files[key] == nil {
		s.files[key] = make(map[string]string)
	}
	s.files[key][path] = content
}

// manifest is the YAML fixture format accepted by LoadManifest.
type manifest struct {
	Repos []struct {
		Owner string            `yaml:"owner"`
		Name  string            `yaml:"name"`
		Files map[string]string `yaml:"files"`
	} `yaml:"repos"`
}

// LoadManifest seeds repositories from a YAML document:
//
//	repos:
//	  - owner: acme
//	    name: gitops
//	    files:
//	      apps/base.yaml: |
//	        kind: Application
func (s *Server) LoadManifest(data []byte) error {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse seed manifest: %w", err)
	}
	for _, repo := range m.Repos {
		if repo.Owner == "" || repo.Name == "" {
			return fmt.Errorf("seed manifest: repo entry missing owner or name")
		}
		for path, content := range repo.Files {
			s.SetFile(repo.Owner, repo.Name, path, content)
		}
	}
	return nil
}

// LastAuth returns the Authorization header of the most recent request, or
// the empty string if none was sent. Used to verify client auth wiring.
func (s *Server) LastAuth() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAuth
}

// capture records the Authorization header and logs the request.
func (s *Server) capture(c *gin.Context) {
	s.mu.Lock()
	s.lastAuth = c.GetHeader("Authorization")
	s.mu.Unlock()

	c.Next()
	s.log.Debug("ghmock request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
	)
}

// getContents serves GET /repos/:owner/:repo/contents/*path. Exact path
// matches return a file content object; prefix matches return a directory
// listing; anything else is GitHub's 404 shape.
func (s *Server) getContents(c *gin.Context) {
	owner := c.Param("owner")
	repo := c.Param("repo")
	path := strings.TrimPrefix(c.Param("path"), "/")

	if content, ok := s.getFile(owner, repo, path); ok {
		c.JSON(http.StatusOK, gin.H{
			"path":     path,
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
			"encoding": "base64",
		})
		return
	}

	if entries := s.listDir(owner, repo, path); len(entries) > 0 {
		c.JSON(http.StatusOK, entries)
		return
	}

	c.JSON(http.StatusNotFound, gin.H{
		"message": fmt.Sprintf("path %q not found in %s/%s", path, owner, repo),
	})
}

// createInstallationToken mints the fixed installation token. ghinstallation
// transports call this before their first API request and on expiry.
func (s *Server) createInstallationToken(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{
		"token":      InstallationToken,
		"expires_at": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
}

func (s *Server) getFile(owner, repo, path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if files, ok := s.files[owner+"/"+repo]; ok {
		if content, ok := files[path]; ok {
			return content, true
		}
	}
	return "", false
}

// listDir returns the immediate children of dirPath, like the contents API
// does when the requested path is a directory.
func (s *Server) listDir(owner, repo, dirPath string) []DirEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := s.files[owner+"/"+repo]
	if files == nil {
		return nil
	}

	prefix := dirPath
	if prefix != "" {
		prefix += "/"
	}

	seen := map[string]bool{}
	var entries []DirEntry
	for filePath := range files {
		if !strings.HasPrefix(filePath, prefix) {
			continue
		}
		rest := filePath[len(prefix):]
		idx := strings.Index(rest, "/")
		var name, entryType string
		if idx == -1 {
			name, entryType = rest, "file"
		} else {
			name, entryType = rest[:idx], "dir"
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, DirEntry{
			Name: name,
			Path: strings.TrimPrefix(dirPath+"/"+name, "/"),
			Type: entryType,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
