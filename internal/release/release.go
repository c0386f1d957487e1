// Package release checks the project's GitHub releases for a newer installer and launches it.
package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/despectus/despectus/internal/network"
)

const (
	DefaultAPIURL = "https://api.github.com"
	userAgent     = "Despectus-Updater"
	acceptHeader  = "application/vnd.github+json"
	// fallbackInstallerName is used when the download url does not end in an installer name.
	fallbackInstallerName = "Despectus-Setup.exe"
	silentFlag            = "/SILENT"
)

var (
	ErrCheck       = errors.New("failed to check for updates")
	ErrNoInstaller = errors.New("release has no installer asset")
	ErrDownload    = errors.New("failed to download installer")
	ErrLaunch      = errors.New("failed to launch installer")

	versionRx = regexp.MustCompile(`^\s*(\d+)\.(\d+)\.(\d+)\s*$`)
)

// Version is a plain major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion reads tags like "v1.4.2". Anything that is not strictly three numeric parts
// after stripping the v prefix parses as 0.0.0.
func ParseVersion(value string) Version {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(strings.TrimPrefix(value, "v"), "V")

	match := versionRx.FindStringSubmatch(value)
	if match == nil {
		return Version{}
	}

	parts := make([]int, 3)
	for idx := range parts {
		part, err := strconv.Atoi(match[idx+1])
		if err != nil {
			return Version{}
		}
		parts[idx] = part
	}

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return compareInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return compareInt(v.Minor, other.Minor)
	default:
		return compareInt(v.Patch, other.Patch)
	}
}

func compareInt(a int, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsNewer reports whether latest is strictly greater than current.
func IsNewer(latest string, current string) bool {
	return ParseVersion(latest).Compare(ParseVersion(current)) > 0
}

type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Release is the subset of the GitHub release payload used.
type Release struct {
	TagName    string  `json:"tag_name"`
	Name       string  `json:"name"`
	HTMLURL    string  `json:"html_url"`
	Draft      bool    `json:"draft"`
	Prerelease bool    `json:"prerelease"`
	Assets     []Asset `json:"assets"`
}

func (r Release) Version() Version {
	return ParseVersion(r.TagName)
}

// PickInstaller selects the windows installer. Only .exe assets with a download url qualify,
// preferring one with "setup" in its name.
func PickInstaller(assets []Asset) (Asset, bool) {
	var candidates []Asset

	for _, asset := range assets {
		if asset.BrowserDownloadURL == "" || !strings.HasSuffix(strings.ToLower(asset.Name), ".exe") {
			continue
		}

		candidates = append(candidates, asset)
	}

	if len(candidates) == 0 {
		return Asset{}, false
	}

	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate.Name), "setup") {
			return candidate, true
		}
	}

	return candidates[0], true
}

// Update describes an available newer release.
type Update struct {
	Current   Version
	Latest    Version
	Release   Release
	Installer Asset
}

type Option func(c *Checker)

func WithAPIURL(apiURL string) Option {
	return func(c *Checker) {
		c.apiURL = strings.TrimSuffix(apiURL, "/")
	}
}

type Checker struct {
	http   network.HTTPDoer
	apiURL string
	owner  string
	repo   string
}

func NewChecker(httpClient network.HTTPDoer, owner string, repo string, opts ...Option) *Checker {
	checker := &Checker{http: httpClient, apiURL: DefaultAPIURL, owner: owner, repo: repo}
	for _, opt := range opts {
		opt(checker)
	}

	return checker
}

func headers() []network.RequestOption {
	return []network.RequestOption{
		network.WithHeader("Accept", acceptHeader),
		network.WithHeader("User-Agent", userAgent),
	}
}

// Latest fetches the latest published release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiURL, url.PathEscape(c.owner), url.PathEscape(c.repo))

	latest, errLatest := network.FetchJSON[Release](ctx, c.http, endpoint, headers()...)
	if errLatest != nil {
		return nil, errors.Join(errLatest, ErrCheck)
	}

	return latest, nil
}

// Check returns the update when the latest release is newer than current and carries an
// installer. False is returned when already up to date.
func (c *Checker) Check(ctx context.Context, current string) (Update, bool, error) {
	latest, errLatest := c.Latest(ctx)
	if errLatest != nil {
		return Update{}, false, errLatest
	}

	update := Update{Current: ParseVersion(current), Latest: latest.Version(), Release: *latest}
	if update.Latest.Compare(update.Current) <= 0 {
		return update, false, nil
	}

	installer, found := PickInstaller(latest.Assets)
	if !found {
		return update, false, ErrNoInstaller
	}

	update.Installer = installer

	return update, true, nil
}

// InstallerName picks the local file name for the download.
func InstallerName(downloadURL string) string {
	parsed, errParse := url.Parse(downloadURL)
	if errParse != nil {
		return fallbackInstallerName
	}

	name := path.Base(parsed.Path)
	if !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return fallbackInstallerName
	}

	return name
}

// Download saves the installer into dir, the system temp dir when empty, returning the full
// path of the written file.
func (c *Checker) Download(ctx context.Context, asset Asset, dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	resp, errResp := network.Get(ctx, c.http, asset.BrowserDownloadURL, network.WithHeader("User-Agent", userAgent))
	if errResp != nil {
		return "", errors.Join(errResp, ErrDownload)
	}

	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			slog.Error("Failed to close installer body", slog.String("error", errClose.Error()))
		}
	}()

	fullPath := filepath.Join(dir, InstallerName(asset.BrowserDownloadURL))

	outFile, errCreate := os.Create(fullPath)
	if errCreate != nil {
		return "", errors.Join(errCreate, ErrDownload)
	}

	if _, errCopy := io.Copy(outFile, resp.Body); errCopy != nil {
		_ = outFile.Close()
		_ = os.Remove(fullPath)

		return "", errors.Join(errCopy, ErrDownload)
	}

	if errClose := outFile.Close(); errClose != nil {
		return "", errors.Join(errClose, ErrDownload)
	}

	return fullPath, nil
}

// Launch starts the installer without waiting on it. The caller is expected to exit so the
// installer can replace the running binary.
func Launch(installerPath string, silent bool) error {
	var args []string
	if silent {
		args = append(args, silentFlag)
	}

	cmd := exec.Command(installerPath, args...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		return errors.Join(err, ErrLaunch)
	}

	if err := cmd.Process.Release(); err != nil {
		return errors.Join(err, ErrLaunch)
	}

	return nil
}
