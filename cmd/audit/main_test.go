package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/party-lottery/internal/audit"
	"github.com/xtding233/party-lottery/internal/rng"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAuditCommandReport(t *testing.T) {
	out, err := execute(t, "--seed", "1", "--size", "10", "--trials", "2000", "--workers", "3")
	require.NoError(t, err)

	var rep audit.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, rng.AlgXorShift, rep.Algorithm)
	assert.Equal(t, 10, rep.Size)
	assert.Equal(t, 2000, rep.Trials)
	assert.Equal(t, 9, rep.DF)
	assert.InDelta(t, 6.22, rep.ChiSquare, 1e-9)
	assert.InDelta(t, 5.5805, rep.Stats.Mean, 1e-9)
	assert.Len(t, rep.Counts, 10)
}

func TestAuditCommandCompact(t *testing.T) {
	out, err := execute(t, "--rng", "mt", "--size", "5", "--trials", "50", "--compact")
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")))
	assert.Contains(t, out, `"algorithm":"mt19937"`)
}

func TestAuditCommandErrors(t *testing.T) {
	_, err := execute(t, "--rng", "lcg")
	assert.ErrorIs(t, err, rng.ErrUnknownAlgorithm)

	_, err = execute(t, "--trials", "0")
	assert.ErrorIs(t, err, audit.ErrInvalidParams)

	_, err = execute(t, "extra")
	assert.Error(t, err)
}
