package webpush

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	wp "github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubscription(t *testing.T, endpoint string) Subscription {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)

	return Subscription{
		Endpoint: endpoint,
		P256dh:   base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
		Auth:     base64.RawURLEncoding.EncodeToString(auth),
	}
}

func testClient(t *testing.T) *Client {
	t.Helper()
	priv, pub, err := wp.GenerateVAPIDKeys()
	require.NoError(t, err)
	return NewClient(Config{
		VAPIDPublicKey:  pub,
		VAPIDPrivateKey: priv,
		Subject:         "mailto:ops@example.com",
	})
}

func TestSend(t *testing.T) {
	var gotAuth, gotTTL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTTL = r.Header.Get("TTL")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := testClient(t)
	err := c.Send(context.Background(), testSubscription(t, srv.URL+"/push/1"), []byte(`{"title":"hi"}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotAuth, "vapid "))
	assert.Equal(t, "60", gotTTL)
}

func TestSendReportsStatus(t *testing.T) {
	tests := []struct {
		status int
		gone   bool
	}{
		{status: http.StatusGone, gone: true},
		{status: http.StatusNotFound, gone: true},
		{status: http.StatusTooManyRequests, gone: false},
		{status: http.StatusInternalServerError, gone: false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			err := testClient(t).Send(context.Background(), testSubscription(t, srv.URL), []byte("x"))
			var de *DeliveryError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.status, de.StatusCode)
			assert.Equal(t, "nope", de.Body)
			assert.Equal(t, tt.gone, IsGone(err))
		})
	}
}

func TestIsGoneIgnoresTransportErrors(t *testing.T) {
	assert.False(t, IsGone(assert.AnError))
	assert.False(t, IsGone(nil))
}
