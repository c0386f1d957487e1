package ddragon_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/despectus/despectus/internal/cache"
	"github.com/despectus/despectus/internal/ddragon"
	"github.com/despectus/despectus/internal/network"
	"github.com/despectus/despectus/internal/rank"
	"github.com/stretchr/testify/require"
)

const championJSON = `{"type":"champion","version":"15.20.1","data":{
"Ahri":{"id":"Ahri","key":"103","name":"Ahri"},
"LeeSin":{"id":"LeeSin","key":"64","name":"Lee Sin"},
"Broken":{"id":"Broken","key":"x","name":"Broken"}}}`

type counts struct {
	versions  atomic.Int32
	champions atomic.Int32
}

func newServer(t *testing.T) (*httptest.Server, *counts) {
	t.Helper()

	hits := &counts{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, _ *http.Request) {
		hits.versions.Add(1)
		_, _ = w.Write([]byte(`["15.20.1","15.19.1"]`))
	})
	mux.HandleFunc("/cdn/15.20.1/data/en_US/champion.json", func(w http.ResponseWriter, _ *http.Request) {
		hits.champions.Add(1)
		_, _ = w.Write([]byte(championJSON))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, hits
}

func TestStaticData(t *testing.T) {
	server, hits := newServer(t)
	fsCache, errCache := cache.NewAt(t.TempDir())
	require.NoError(t, errCache)

	client := ddragon.New(network.NewClient(time.Second), fsCache, ddragon.WithBaseURL(server.URL))

	version, err := client.LatestVersion(t.Context())
	require.NoError(t, err)
	require.Equal(t, "15.20.1", version)

	champions, errChamps := client.Champions(t.Context(), version)
	require.NoError(t, errChamps)
	require.Equal(t, 2, champions.Len())
	require.Equal(t, "15.20.1", champions.Version())

	name, icon, found := champions.Champion(64)
	require.True(t, found)
	require.Equal(t, "Lee Sin", name)
	require.Equal(t, server.URL+"/cdn/15.20.1/img/champion/LeeSin.png", icon)

	_, _, missing := champions.Champion(1)
	require.False(t, missing)

	// Second lookups are served from the filesystem cache.
	_, err = client.LatestVersion(t.Context())
	require.NoError(t, err)
	_, err = client.Champions(t.Context(), version)
	require.NoError(t, err)
	require.Equal(t, int32(1), hits.versions.Load())
	require.Equal(t, int32(1), hits.champions.Load())
}

func TestURLs(t *testing.T) {
	client := ddragon.New(nil, nil)

	require.Equal(t, "https://ddragon.leagueoflegends.com/cdn/15.20.1/img/profileicon/6.png",
		client.ProfileIconURL("15.20.1", 6))
	require.Equal(t, "https://ddragon.leagueoflegends.com/cdn/15.20.1/img/champion/Ahri.png",
		client.ChampionIconURL("15.20.1", "Ahri"))
	require.Equal(t, ddragon.DefaultEmblemURL+"/emblem-grandmaster.png", client.RankEmblemURL(rank.Grandmaster))
	require.Equal(t, ddragon.DefaultEmblemURL+"/emblem-iron.png", client.RankEmblemURL(rank.Unranked))
	require.Equal(t, ddragon.DefaultEmblemURL+"/emblem-iron.png", client.RankEmblemURL("WOOD"))

	var nilChampions *ddragon.Champions
	_, _, found := nilChampions.Champion(103)
	require.False(t, found)
}
