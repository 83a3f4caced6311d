package api

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyager.com/pokerclient/game"
)

func gameBody(id string, version uint64) string {
	return fmt.Sprintf(`{"id":%q,"version":%d,"board":{"pot":0,"cards":[]},"players":[],"playerTurnI":0}`, id, version)
}

func TestCreateGame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/game", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"game":` + gameBody("g1", 1) + `}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.CreateGame(context.Background())
	require.NoError(t, err)
	require.False(t, result.Failed())
	assert.Equal(t, "g1", result.Game.ID)
	assert.Equal(t, int64(0), result.Game.Board.Pot)
	assert.Empty(t, result.Game.Players)
}

func TestCreateGameRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"out of tables"}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).CreateGame(context.Background())
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, "out of tables", result.Err)
	assert.Nil(t, result.Game)
}

func TestCreateGameStatusTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	result, err := NewClient(server.URL).CreateGame(context.Background())
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, "Service Unavailable", result.Err)
}

func TestFetchGameNotModified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/game/g1", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("modifiedOnly"))
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	result, err := NewClient(server.URL).FetchGame(context.Background(), "g1", true)
	require.NoError(t, err)
	require.False(t, result.Failed())
	assert.True(t, result.ModifiedOnly)
	assert.False(t, result.Modified)
	assert.Nil(t, result.Game)
}

func TestFetchGameUnmodifiedBody(t *testing.T) {
	// A 200 with modified=false while change detection is on is also a
	// skip signal: no snapshot reaches the caller.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game":` + gameBody("g1", 1) + `,"modified":false}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).FetchGame(context.Background(), "g1", true)
	require.NoError(t, err)
	require.False(t, result.Failed())
	assert.False(t, result.Modified)
	assert.Nil(t, result.Game)
}

func TestFetchGameModified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game":` + gameBody("g1", 4) + `,"modified":true}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).FetchGame(context.Background(), "g1", true)
	require.NoError(t, err)
	require.False(t, result.Failed())
	assert.True(t, result.Modified)
	require.NotNil(t, result.Game)
	assert.Equal(t, uint64(4), result.Game.Version)
}

func TestFetchGameFullSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("modifiedOnly"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game":` + gameBody("g1", 4) + `,"modified":false}`))
	}))
	defer server.Close()

	// With change detection off the snapshot comes through regardless
	// of the modified flag.
	result, err := NewClient(server.URL).FetchGame(context.Background(), "g1", false)
	require.NoError(t, err)
	require.False(t, result.Failed())
	assert.False(t, result.ModifiedOnly)
	assert.False(t, result.Modified)
	require.NotNil(t, result.Game)
}

func TestFetchGameNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"game not found"}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).FetchGame(context.Background(), "nope", true)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, "game not found", result.Err)
}

func TestSubmitAction(t *testing.T) {
	var requestBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/game/g1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		requestBody, _ = ioutil.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"game":` + gameBody("g1", 5) + `}`))
	}))
	defer server.Close()

	raiseTo := int64(500)
	input := game.PlayerInput{PlayerID: "p1", Action: game.ActionRaise, RaiseTo: &raiseTo}
	result, err := NewClient(server.URL).SubmitAction(context.Background(), "g1", input)
	require.NoError(t, err)
	require.False(t, result.Failed())
	assert.Equal(t, uint64(5), result.Game.Version)
	assert.Contains(t, string(requestBody), `"raiseTo":500`)
}

func TestSubmitActionFoldOmitsRaiseTo(t *testing.T) {
	var requestBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestBody, _ = ioutil.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"game":` + gameBody("g1", 5) + `}`))
	}))
	defer server.Close()

	input := game.PlayerInput{PlayerID: "p1", Action: game.ActionFold}
	_, err := NewClient(server.URL).SubmitAction(context.Background(), "g1", input)
	require.NoError(t, err)
	assert.NotContains(t, string(requestBody), "raiseTo")
}

func TestSubmitActionRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusExpectationFailed)
		w.Write([]byte(`{"error":"raise below minimum"}`))
	}))
	defer server.Close()

	input := game.PlayerInput{PlayerID: "p1", Action: game.ActionCall}
	result, err := NewClient(server.URL).SubmitAction(context.Background(), "g1", input)
	require.NoError(t, err)
	require.True(t, result.Failed())
	assert.Equal(t, "raise below minimum", result.Err)
}

func TestTransportFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(server.URL)
	_, err := client.CreateGame(context.Background())
	assert.Error(t, err)

	_, err = client.FetchGame(context.Background(), "g1", true)
	assert.Error(t, err)
}

func TestMalformedSuccessBodyIsTransportFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"game":`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).CreateGame(context.Background())
	assert.Error(t, err)
}
