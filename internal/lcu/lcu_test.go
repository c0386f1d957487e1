package lcu_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/despectus/despectus/internal/lcu"
	"github.com/despectus/despectus/internal/rank"
	"github.com/stretchr/testify/require"
)

func TestParseLockfile(t *testing.T) {
	session, err := lcu.ParseLockfile(strings.NewReader("LeagueClient:23456:51234:s3cr3t-Pa55:https\n"))
	require.NoError(t, err)
	require.Equal(t, lcu.Session{
		ProcessName: "LeagueClient",
		PID:         23456,
		Port:        51234,
		Password:    "s3cr3t-Pa55",
		Protocol:    "https",
	}, session)
	require.Equal(t, "https://127.0.0.1:51234", session.BaseURL())

	for _, invalid := range []string{
		"",
		"LeagueClient:1:2:pw",
		"LeagueClient:pid:51234:pw:https",
		"LeagueClient:1:port:pw:https",
		"LeagueClient:1:0:pw:https",
		"LeagueClient:1:70000:pw:https",
		"LeagueClient:1:51234:pw:ftp",
	} {
		_, errInvalid := lcu.ParseLockfile(strings.NewReader(invalid))
		require.Error(t, errInvalid, invalid)
	}
}

type fakeFinder struct {
	proc lcu.Process
	err  error
}

func (f fakeFinder) Find(_ context.Context, _ []string) (lcu.Process, error) {
	return f.proc, f.err
}

func makeInstall(t *testing.T, depth int, lockfileDepth int, contents string) string {
	t.Helper()

	root := t.TempDir()
	dir := root
	for i := range depth {
		dir = filepath.Join(dir, "d"+strconv.Itoa(i))
	}
	require.NoError(t, os.MkdirAll(dir, 0o755))

	lockDir := root
	for i := range lockfileDepth {
		lockDir = filepath.Join(lockDir, "d"+strconv.Itoa(i))
	}
	require.NoError(t, os.WriteFile(filepath.Join(lockDir, "lockfile"), []byte(contents), 0o600))

	return filepath.Join(dir, "LeagueClientUx.exe")
}

func TestLocate(t *testing.T) {
	exe := makeInstall(t, 3, 1, "LeagueClient:100:50000:pw:https")
	locator := lcu.NewLocator(fakeFinder{proc: lcu.Process{PID: 100, Name: "LeagueClientUx.exe", Exe: exe}})

	session, err := locator.Locate(t.Context())
	require.NoError(t, err)
	require.Equal(t, 50000, session.Port)
	require.Equal(t, "pw", session.Password)
}

func TestLocateParentLimit(t *testing.T) {
	// Six parents above the executable directory is the furthest that is searched.
	found := makeInstall(t, 7, 1, "LeagueClient:100:50000:pw:https")
	_, errFound := lcu.NewLocator(fakeFinder{proc: lcu.Process{Exe: found}}).Locate(t.Context())
	require.NoError(t, errFound)

	tooDeep := makeInstall(t, 8, 1, "LeagueClient:100:50000:pw:https")
	_, errDeep := lcu.NewLocator(fakeFinder{proc: lcu.Process{Exe: tooDeep}}).Locate(t.Context())
	require.ErrorIs(t, errDeep, lcu.ErrNotFound)
}

func TestLocateNotFound(t *testing.T) {
	_, errNoProc := lcu.NewLocator(fakeFinder{err: lcu.ErrNotFound}).Locate(t.Context())
	require.ErrorIs(t, errNoProc, lcu.ErrNotFound)

	exe := makeInstall(t, 1, 1, "garbage")
	_, errBad := lcu.NewLocator(fakeFinder{proc: lcu.Process{Exe: exe}}).Locate(t.Context())
	require.ErrorIs(t, errBad, lcu.ErrNotFound)
}

func newClientServer(t *testing.T, handler http.Handler) *lcu.Client {
	t.Helper()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "riot" || pass != "pw" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	serverURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	_, portStr, errSplit := net.SplitHostPort(serverURL.Host)
	require.NoError(t, errSplit)

	port, errPort := strconv.Atoi(portStr)
	require.NoError(t, errPort)

	return lcu.NewClient(lcu.Session{Port: port, Password: "pw", Protocol: "https"}, time.Second)
}

func TestClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/lol-summoner/v1/current-summoner", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"displayName":"Hide on bush","summonerLevel":712,"profileIconId":6,"puuid":"local"}`))
	})
	mux.HandleFunc("/riotclient/region-locale", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"region":"KR","locale":"ko_KR"}`))
	})
	mux.HandleFunc("/lol-chat/v1/me", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"gameName":"Hide on bush","tagLine":"KR1"}`))
	})
	mux.HandleFunc("/lol-ranked/v1/current-ranked-stats", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"queueMap":{"RANKED_SOLO_5x5":{"queueType":"RANKED_SOLO_5x5","tier":"DIAMOND","division":"II","leaguePoints":67,"wins":120,"losses":100}}}`))
	})

	client := newClientServer(t, mux)

	summoner, err := client.CurrentSummoner(t.Context())
	require.NoError(t, err)
	require.Equal(t, 712, summoner.SummonerLevel)
	require.Equal(t, 6, summoner.ProfileIconID)

	region, errRegion := client.RegionLocale(t.Context())
	require.NoError(t, errRegion)
	require.Equal(t, "KR", region.Region)

	chat, errChat := client.ChatMe(t.Context())
	require.NoError(t, errChat)
	name, tag, ok := chat.RiotID()
	require.True(t, ok)
	require.Equal(t, "Hide on bush", name)
	require.Equal(t, "KR1", tag)

	ranked, errRanked := client.RankedStats(t.Context())
	require.NoError(t, errRanked)
	solo, found := ranked.SoloQueue()
	require.True(t, found)

	snap, ranked2 := solo.Snapshot()
	require.True(t, ranked2)
	require.Equal(t, rank.Diamond, snap.Tier)
	require.Equal(t, rank.DivisionII, snap.Division)
	require.Equal(t, 67, snap.LeaguePoints)
}

func TestClientUnavailable(t *testing.T) {
	client := newClientServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/lol-chat/v1/me" {
			_, _ = w.Write([]byte(`{"gameName":`))

			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.CurrentSummoner(t.Context())
	require.ErrorIs(t, err, lcu.ErrUnavailable)

	_, errDecode := client.ChatMe(t.Context())
	require.ErrorIs(t, errDecode, lcu.ErrUnavailable)

	closed := lcu.NewClient(lcu.Session{Port: 1, Password: "pw", Protocol: "https"}, time.Second)
	_, errClosed := closed.RegionLocale(t.Context())
	require.ErrorIs(t, errClosed, lcu.ErrUnavailable)
}

func TestRankedStatsQueues(t *testing.T) {
	stats := lcu.RankedStats{Queues: []lcu.RankedQueue{
		{QueueType: "RANKED_FLEX_SR", Tier: "GOLD", Division: "I"},
		{QueueType: "RANKED_SOLO_5x5", Tier: "NONE", Division: "NA"},
	}}

	solo, found := stats.SoloQueue()
	require.True(t, found)

	_, ranked := solo.Snapshot()
	require.False(t, ranked)

	_, missing := lcu.RankedStats{}.SoloQueue()
	require.False(t, missing)

	apex, ok := lcu.RankedQueue{QueueType: "RANKED_SOLO_5x5", Tier: "MASTER", Division: "I", LeaguePoints: 340}.Snapshot()
	require.True(t, ok)
	require.Equal(t, rank.DivisionNone, apex.Division)

	require.Equal(t, "tag", lcu.ChatMe{GameName: "n", GameTag: "tag", TagLine: "other"}.Tag())
	_, _, incomplete := lcu.ChatMe{GameName: "n"}.RiotID()
	require.False(t, incomplete)
}
