package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	biome "github.com/anatolykoptev/go-biome"
)

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, "WARN", lvl.String())

	_, err = parseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestInitLogger_InvalidFormat(t *testing.T) {
	assert.Error(t, initLogger("info", "xml"))
}

func TestPrintThread(t *testing.T) {
	at := time.Date(2024, 5, 14, 18, 30, 0, 0, time.UTC)
	b := biome.NewBiome([]biome.Entity{
		biome.NewEntity("root", "mira", "", "listen", at, biome.WithAttachments(biome.Song{ID: "s1", Name: "Roads", ArtistName: "Portishead"})),
		biome.NewEntity("r1", "jon", "", "yes", at, biome.WithParent("root"), biome.WithAttachments(biome.Voice{ID: "v1"})),
	})

	var buf bytes.Buffer
	printThread(&buf, b)
	assert.Equal(t, "@mira: listen [♪ Portishead - Roads]\n  @jon: yes [voice]\n", buf.String())
}

func TestPrintEntry(t *testing.T) {
	var buf bytes.Buffer
	printEntry(&buf, biome.Entry{
		ID:           "en_1",
		CreatedAtRaw: "garbage",
		Author:       biome.UserSummary{Username: "mira"},
		Text:         "two\nlines",
		HeartCount:   2,
	})
	assert.Equal(t, "en_1\tgarbage\t@mira\t-\t♥2 🔥0 👎0\ttwo lines\n", buf.String())
}

func TestReportMetrics(t *testing.T) {
	opts := &options{metrics: true}
	_, err := opts.client()
	require.NoError(t, err)
	require.NotNil(t, opts.recorder)

	opts.recorder.Observe("UserFeed", true, false)
	assert.NoError(t, opts.reportMetrics())

	assert.NoError(t, (&options{}).reportMetrics(), "no registry when metrics are off")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["feed"])
	assert.True(t, names["thread"])
}
