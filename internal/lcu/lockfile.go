package lcu

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	lockfileName = "lockfile"
	// maxParentDirs is how far above the executable the lockfile is searched for. The ux process
	// lives in a nested directory while the lockfile sits in the install root.
	maxParentDirs = 6
	lockfileSize  = 512
)

var errLockfileFormat = errors.New("invalid lockfile format")

// Session holds the credentials needed to talk to a running client.
type Session struct {
	ProcessName string
	PID         int
	Port        int
	Password    string
	Protocol    string
}

// BaseURL always points at the loopback address regardless of what the client binds.
func (s Session) BaseURL() string {
	return fmt.Sprintf("%s://127.0.0.1:%d", s.Protocol, s.Port)
}

// ParseLockfile reads the single line name:pid:port:password:protocol format.
func ParseLockfile(reader io.Reader) (Session, error) {
	raw, errRead := io.ReadAll(io.LimitReader(reader, lockfileSize))
	if errRead != nil {
		return Session{}, errors.Join(errRead, errLockfileFormat)
	}

	parts := strings.Split(strings.TrimSpace(string(raw)), ":")
	if len(parts) < 5 {
		return Session{}, errLockfileFormat
	}

	pid, errPID := strconv.Atoi(parts[1])
	if errPID != nil {
		return Session{}, errors.Join(errPID, errLockfileFormat)
	}

	port, errPort := strconv.Atoi(parts[2])
	if errPort != nil {
		return Session{}, errors.Join(errPort, errLockfileFormat)
	}

	if port <= 0 || port > 65535 {
		return Session{}, fmt.Errorf("%w: port out of range", errLockfileFormat)
	}

	protocol := strings.ToLower(parts[4])
	if protocol != "http" && protocol != "https" {
		return Session{}, fmt.Errorf("%w: unknown protocol %q", errLockfileFormat, protocol)
	}

	return Session{
		ProcessName: parts[0],
		PID:         pid,
		Port:        port,
		Password:    parts[3],
		Protocol:    protocol,
	}, nil
}

// FindLockfile searches dir and up to maxParentDirs parents of it for the lockfile.
func FindLockfile(dir string) (string, bool) {
	current := filepath.Clean(dir)
	for range maxParentDirs + 1 {
		candidate := filepath.Join(current, lockfileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}

		current = parent
	}

	return "", false
}

func readLockfile(path string) (Session, error) {
	file, errOpen := os.Open(path)
	if errOpen != nil {
		return Session{}, errOpen
	}

	defer func() {
		_ = file.Close()
	}()

	return ParseLockfile(file)
}
