package lcu

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/shirou/gopsutil/v4/process"
)

// ErrNotFound means no running client with a readable lockfile was found. This is the normal
// state whenever the client is closed.
var ErrNotFound = errors.New("league client not found")

// ClientProcessNames are the executables that own a lockfile. The extensionless names cover
// the macOS build.
var ClientProcessNames = []string{ //nolint:gochecknoglobals
	"LeagueClientUx.exe",
	"LeagueClient.exe",
	"LeagueClientUx",
	"LeagueClient",
}

// Process is a running client process.
type Process struct {
	PID  int
	Name string
	Exe  string
}

// ProcessFinder locates the first running process matching one of names.
type ProcessFinder interface {
	Find(ctx context.Context, names []string) (Process, error)
}

// SystemProcesses finds processes using the os process table.
type SystemProcesses struct{}

func (SystemProcesses) Find(ctx context.Context, names []string) (Process, error) {
	processes, errProcesses := process.ProcessesWithContext(ctx)
	if errProcesses != nil {
		return Process{}, errors.Join(errProcesses, ErrNotFound)
	}

	for _, proc := range processes {
		name, errName := proc.NameWithContext(ctx)
		if errName != nil || !slices.Contains(names, name) {
			continue
		}

		// Access denied is common for processes owned by other users.
		exe, errExe := proc.ExeWithContext(ctx)
		if errExe != nil {
			continue
		}

		return Process{PID: int(proc.Pid), Name: name, Exe: exe}, nil
	}

	return Process{}, ErrNotFound
}

// Locator finds the local client session.
type Locator struct {
	finder ProcessFinder
}

func NewLocator(finder ProcessFinder) *Locator {
	if finder == nil {
		finder = SystemProcesses{}
	}

	return &Locator{finder: finder}
}

// Locate returns the session of the running client. Any failure is reported as ErrNotFound.
func (l *Locator) Locate(ctx context.Context) (Session, error) {
	proc, errProc := l.finder.Find(ctx, ClientProcessNames)
	if errProc != nil {
		return Session{}, errors.Join(errProc, ErrNotFound)
	}

	lockfilePath, found := FindLockfile(filepath.Dir(proc.Exe))
	if !found {
		slog.Debug("Client running without lockfile", slog.String("exe", proc.Exe))

		return Session{}, ErrNotFound
	}

	session, errSession := readLockfile(lockfilePath)
	if errSession != nil {
		slog.Debug("Failed to read lockfile", slog.String("path", lockfilePath),
			slog.String("error", errSession.Error()))

		return Session{}, errors.Join(errSession, ErrNotFound)
	}

	return session, nil
}
