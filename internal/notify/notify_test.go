package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSyncPostsUser(t *testing.T) {
	var got ChatUser
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/sync", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"chat-jwt","userData":{"_id":"abc","fullName":"A"}}`))
	}))
	defer srv.Close()

	c := NewChatSync(srv.URL+"/", srv.Client(), zerolog.Nop())
	sess, err := c.SyncUser(context.Background(), ChatUser{Email: "a@b.co", FullName: "A", PostgresID: "7"})
	require.NoError(t, err)
	assert.Equal(t, "7", got.PostgresID)
	assert.Equal(t, "A", got.FullName)
	assert.Equal(t, "chat-jwt", sess.Token)
	assert.JSONEq(t, `{"_id":"abc","fullName":"A"}`, string(sess.UserData))
}

func TestChatSyncEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sess, err := NewChatSync(srv.URL, srv.Client(), zerolog.Nop()).SyncUser(context.Background(), ChatUser{})
	require.NoError(t, err)
	assert.Empty(t, sess.Token)
}

func TestChatSyncErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewChatSync(srv.URL, srv.Client(), zerolog.Nop()).SyncUser(context.Background(), ChatUser{})
	assert.Error(t, err)
}

func TestChatSyncDisabled(t *testing.T) {
	c := NewChatSync("", nil, zerolog.Nop())
	assert.False(t, c.Enabled())
	_, err := c.SyncUser(context.Background(), ChatUser{})
	assert.ErrorIs(t, err, ErrChatDisabled)
}

func TestDispatcherSurvivesFailures(t *testing.T) {
	d := NewDispatcher(time.Second, zerolog.Nop())
	var ran atomic.Int32

	d.Go("fails", func(context.Context) error { ran.Add(1); return errors.New("boom") })
	d.Go("panics", func(context.Context) error { ran.Add(1); panic("boom") })
	d.Go("ok", func(ctx context.Context) error {
		ran.Add(1)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx))
	assert.EqualValues(t, 3, ran.Load())
}
