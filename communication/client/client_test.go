package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gridmcts/communication"

	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("sending policy requests", func(t *testing.T) {
		var got communication.PolicyRequest
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/policy", r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(communication.PolicyResponse{Player: "white", Playouts: 7})
		}))
		defer ts.Close()

		resp, err := NewClient(ts.URL+"/").Policy(ctx, communication.PolicyRequest{
			State:  communication.State{Game: "pente", Player: "white"},
			Rounds: 7,
		})

		require.NoError(t, err)
		require.Equal(t, 7, resp.Playouts)
		require.Equal(t, "pente", got.Game)
		require.Equal(t, "white", got.Player)
		require.Equal(t, 7, got.Rounds)
	})

	t.Run("surfacing server errors", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/ping" {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(communication.ErrorResponse{Error: "unknown game variant"})
		}))
		defer ts.Close()
		c := NewClient(ts.URL)

		_, err := c.Variants(ctx)
		var status *StatusError
		require.ErrorAs(t, err, &status)
		require.Equal(t, http.StatusBadRequest, status.Code)
		require.Equal(t, "unknown game variant", status.Message)

		err = c.Ping(ctx)
		require.ErrorAs(t, err, &status)
		require.Equal(t, http.StatusServiceUnavailable, status.Code)
		require.Equal(t, "Service Unavailable", status.Message, "Bodies without an error should fall back to the status text")
	})

	t.Run("honouring cancellation", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer ts.Close()
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		err := NewClient(ts.URL).Ping(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}
