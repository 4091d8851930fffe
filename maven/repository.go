package maven

import (
	"context"
	"crypto/sha1" // nolint:gosec // repository checksums are defined as sha1
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/licensegate/licensegate/internal/log"
	"github.com/licensegate/licensegate/licensegate"
)

const (
	// DefaultRemote is the canonical central repository.
	DefaultRemote = "https://repo.maven.apache.org/maven2"
	// DefaultLocalRepository is the conventional local cache location.
	DefaultLocalRepository = "~/.m2/repository"
)

// RepositoryConfig is the serializable repository configuration.
type RepositoryConfig struct {
	Local   string   `json:"local" yaml:"local" mapstructure:"local"`
	Remotes []string `json:"remotes" yaml:"remotes" mapstructure:"remotes"`
}

func DefaultRepositoryConfig() RepositoryConfig {
	return RepositoryConfig{
		Local:   DefaultLocalRepository,
		Remotes: []string{DefaultRemote},
	}
}

// Repository fetches dependency descriptors from a local cache directory
// backed by an ordered list of remote repositories.
type Repository struct {
	local   string
	remotes []string
	client  *http.Client
}

func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	localPath := cfg.Local
	if localPath == "" {
		localPath = DefaultLocalRepository
	}
	local, err := homedir.Expand(localPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not expand local repository path")
	}

	remotes := cfg.Remotes
	if len(remotes) == 0 {
		remotes = []string{DefaultRemote}
	}

	return &Repository{
		local:   local,
		remotes: remotes,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// FetchDescriptor returns the raw descriptor bytes for ref, consulting
// the local cache first and then each remote in order. A descriptor
// served by a remote is written back into the local cache.
func (r *Repository) FetchDescriptor(ctx context.Context, ref licensegate.DependencyRef) ([]byte, error) {
	rel := descriptorPath(ref)
	localPath := filepath.Join(r.local, filepath.FromSlash(rel))
	if data, err := os.ReadFile(localPath); err == nil {
		log.WithFields("dependency", ref.ConflictID(), "path", localPath).Trace("descriptor cache hit")
		return data, nil
	}

	var lastErr error
	for _, remote := range r.remotes {
		data, err := r.download(ctx, remote, rel)
		if err != nil {
			lastErr = err
			log.WithFields("dependency", ref.ConflictID(), "remote", remote).Debugf("descriptor fetch failed: %v", err)
			continue
		}
		if err := r.store(localPath, data); err != nil {
			log.WithFields("dependency", ref.ConflictID(), "path", localPath).Warnf("unable to cache descriptor: %v", err)
		}
		return data, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no remote repositories configured")
	}
	return nil, &licensegate.ResolutionError{Ref: ref, Err: lastErr}
}

// descriptorPath is the repository-layout relative path of the POM for ref.
func descriptorPath(ref licensegate.DependencyRef) string {
	segments := strings.Split(ref.GroupID, ".")
	segments = append(segments, ref.ArtifactID, ref.Version, fmt.Sprintf("%s-%s.pom", ref.ArtifactID, ref.Version))
	return path.Join(segments...)
}

func (r *Repository) download(ctx context.Context, remote, rel string) ([]byte, error) {
	url := strings.TrimRight(remote, "/") + "/" + rel
	data, sum, err := r.get(ctx, url)
	if err != nil {
		return nil, err
	}

	// verify against the .sha1 sidecar when the remote serves one
	if checksum, err := r.getChecksum(ctx, url+".sha1"); err == nil && checksum != "" {
		if checksum != sum {
			return nil, fmt.Errorf("checksum mismatch for %q", url)
		}
		log.WithFields("checksum", checksum, "url", url).Trace("checksum verified")
	}

	return data, nil
}

func (r *Repository) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("bad status %q for %s", resp.Status, url)
	}

	h := sha1.New() // nolint:gosec
	data, err := io.ReadAll(io.TeeReader(resp.Body, h))
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%x", h.Sum(nil)), nil
}

func (r *Repository) getChecksum(ctx context.Context, url string) (string, error) {
	data, _, err := r.get(ctx, url)
	if err != nil {
		return "", err
	}
	// checksum files may carry "<hex>  <filename>"
	fields := strings.Fields(strings.TrimSpace(string(data)))
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), nil
}

func (r *Repository) store(localPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0750); err != nil {
		return err
	}
	return os.WriteFile(localPath, data, 0640)
}
