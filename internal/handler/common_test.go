package handler

import (
    "net/http"
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestPathUint(t *testing.T) {
    c, _ := newEchoContext(http.MethodGet, "/", "")
    c.SetParamNames("flightId")

    c.SetParamValues("42")
    v, ok := pathUint(c, "flightId")
    assert.True(t, ok)
    assert.Equal(t, uint64(42), v)

    for _, raw := range []string{"0", "-1", "abc", "", "1.5"} {
        c.SetParamValues(raw)
        _, ok := pathUint(c, "flightId")
        assert.False(t, ok, "raw=%q", raw)
    }
}

func TestPathInt(t *testing.T) {
    c, _ := newEchoContext(http.MethodGet, "/", "")
    c.SetParamNames("paxIndex")

    c.SetParamValues("0")
    v, ok := pathInt(c, "paxIndex")
    assert.True(t, ok)
    assert.Equal(t, 0, v)

    c.SetParamValues("3")
    v, ok = pathInt(c, "paxIndex")
    assert.True(t, ok)
    assert.Equal(t, 3, v)

    for _, raw := range []string{"-1", "abc", ""} {
        c.SetParamValues(raw)
        _, ok := pathInt(c, "paxIndex")
        assert.False(t, ok, "raw=%q", raw)
    }
}
