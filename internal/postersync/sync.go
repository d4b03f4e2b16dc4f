// Package postersync mirrors the poster files of a deployed instance into
// the local static directory.
package postersync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Syncer pulls the remote poster list and downloads files into dir.
type Syncer struct {
	remoteURL string
	dir       string
	client    *http.Client
	log       *zap.Logger
}

// Result counts what a sync run did.
type Result struct {
	Remote     int
	Downloaded int
	Skipped    int
	Failed     int
}

func New(remoteURL, dir string, log *zap.Logger) *Syncer {
	return &Syncer{
		remoteURL: remoteURL,
		dir:       dir,
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log.With(zap.String("component", "postersync")),
	}
}

// Sync fetches the remote poster list and downloads every file missing
// locally, or every file when force is set. A failed list fetch aborts the
// run; individual download failures are counted and logged only.
func (s *Syncer) Sync(ctx context.Context, force bool) (*Result, error) {
	names, err := s.fetchList(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch poster list: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare poster directory: %w", err)
	}

	result := &Result{Remote: len(names)}
	for _, name := range names {
		local := filepath.Join(s.dir, name)
		if !force {
			if _, err := os.Stat(local); err == nil {
				result.Skipped++
				continue
			}
		}

		if err := s.download(ctx, name, local); err != nil {
			s.log.Warn("Poster download failed", zap.String("file", name), zap.Error(err))
			result.Failed++
			continue
		}
		result.Downloaded++
	}

	s.log.Info("Poster sync finished",
		zap.Int("remote", result.Remote),
		zap.Int("downloaded", result.Downloaded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// fetchList accepts either a bare JSON array of file names or the API
// envelope with the array under "data".
func (s *Syncer) fetchList(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.remoteURL+"/static/posters/list", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(body, &names); err == nil {
		return names, nil
	}

	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode poster list: %w", err)
	}
	return envelope.Data, nil
}

func (s *Syncer) download(ctx context.Context, name, local string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.remoteURL+"/static/posters/"+name, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	dst, err := os.Create(local)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, resp.Body)
	return err
}

// Commit stages the poster directory and commits it. Used by deployments
// that keep posters under version control next to the app.
func (s *Syncer) Commit(ctx context.Context, message string) error {
	add := exec.CommandContext(ctx, "git", "add", s.dir)
	if out, err := add.CombinedOutput(); err != nil {
		return fmt.Errorf("git add: %s: %w", out, err)
	}

	commit := exec.CommandContext(ctx, "git", "commit", "-m", message)
	if out, err := commit.CombinedOutput(); err != nil {
		return fmt.Errorf("git commit: %s: %w", out, err)
	}
	return nil
}
