package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.Method, "enummixed")
	is.Equal(c.Rational, false)
	is.Equal(c.LogLevel, "info")
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{
		"--method", "lcp", "--rational", "--stop-after", "2", "game.efg",
	}))
	is.Equal(c.Method, "lcp")
	is.Equal(c.Rational, true)
	is.Equal(c.StopAfter, 2)
	is.Equal(c.Args, []string{"game.efg"})
}

func TestLoadEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("EQUILIB_METHOD", "gnm")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.Method, "gnm")
}
