package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCache_GetPut(t *testing.T) {
	now := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)
	c := NewCache(30 * time.Second)
	c.Now = func() time.Time { return now }

	_, ok := c.Get("AAPL")
	require.False(t, ok)

	resp := Response{Success: true, Message: "cached"}
	c.Put("AAPL", resp)

	got, ok := c.Get("AAPL")
	require.True(t, ok)
	require.Equal(t, resp, got)

	// just inside the TTL
	now = now.Add(30*time.Second - time.Nanosecond)
	_, ok = c.Get("AAPL")
	require.True(t, ok)

	// exactly at the TTL the entry is treated as absent
	now = now.Add(time.Nanosecond)
	_, ok = c.Get("AAPL")
	require.False(t, ok)
}

func TestCache_LastWriteWins(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put("AAPL", Response{Message: "first"})
	c.Put("AAPL", Response{Message: "second"})
	got, ok := c.Get("AAPL")
	require.True(t, ok)
	require.Equal(t, "second", got.Message)
}

func TestCache_DisabledTTL(t *testing.T) {
	c := NewCache(0)
	c.Put("AAPL", Response{Message: "x"})
	_, ok := c.Get("AAPL")
	require.False(t, ok)
}

func TestCache_NilReceiver(t *testing.T) {
	var c *Cache
	c.Put("AAPL", Response{})
	_, ok := c.Get("AAPL")
	require.False(t, ok)
}
