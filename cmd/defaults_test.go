package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/paintshop-sim/paintshop-sim/sim"
	"github.com/paintshop-sim/paintshop-sim/sim/trace"
)

func TestWriteConfig_OutputLoadsBackUnderStrictParsing(t *testing.T) {
	// GIVEN the YAML printed by the defaults command
	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, sim.DefaultShopConfig()))
	out := buf.String()
	assert.Contains(t, out, "shift_duration: 480")
	assert.Contains(t, out, "queue_alert_threshold: 3")

	// WHEN it is fed back as a --config file over a different base
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	base := sim.DefaultShopConfig()
	base.Seed = 1
	cfg, err := LoadShopConfig(path, base)

	// THEN it reproduces the defaults exactly
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultShopConfig(), cfg)
}

func TestPrintTraceSummary(t *testing.T) {
	ts := &trace.TraceSummary{
		Arrived: 3, Exited: 1, Alerts: 2,
		Stations: map[string]*trace.StationSummary{
			"Cleaning": {Entries: 3, Exits: 2, PeakOccupied: 1, PeakQueue: 2, Alerts: 2},
		},
	}
	var buf bytes.Buffer
	printTraceSummary(&buf, ts)

	out := buf.String()
	assert.Contains(t, out, "Arrivals traced: 3")
	assert.Contains(t, out, " Cleaning: entries=3 exits=2 peak_occupied=1 peak_queue=2 alerts=2")
	assert.Contains(t, out, " Painting: no events")
	assert.Equal(t, 1, strings.Count(out, "=== Trace Summary ==="))
}
