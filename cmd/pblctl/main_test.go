package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	adomain "pbl/internal/services/assistant/domain"
	ndomain "pbl/internal/services/notices/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PG_ENABLED", "false")
	t.Setenv("CH_ENABLED", "false")
	var out bytes.Buffer
	cmd := newRoot(strings.NewReader(stdin), &out)
	cmd.SetErr(&bytes.Buffer{})
	env := filepath.Join(t.TempDir(), "missing.env")
	cmd.SetArgs(append([]string{"--env", env}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRules(t *testing.T) {
	out, err := run(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "pbl-assistant v1")
	assert.Contains(t, out, "1. greeting: hello")
}

func TestClassify(t *testing.T) {
	out, err := run(t, "", "classify", "set", "a", "schedule", "for", "cse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "intent: reminder\n"), out)
	assert.Contains(t, out, `"cse"`)

	_, err = run(t, "", "classify")
	assert.Error(t, err)
}

func TestAsk_ArgsAndStdin(t *testing.T) {
	out, err := run(t, "", "--user", "s1", "ask", "what", "is", "the", "time")
	require.NoError(t, err)
	var res adomain.AskResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "time_query", string(res.Intent))

	out, err = run(t, "set reminder for 10am for study session\n\nxyzzy\n", "--user", "s1", "ask")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &res))
	assert.Equal(t, "reminder", string(res.Intent))
	assert.Contains(t, res.Reply, "10am")
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &res))
	assert.Equal(t, "unknown", string(res.Intent))
}

func TestReminders_EmptyForFreshStore(t *testing.T) {
	out, err := run(t, "", "--user", "s1", "reminders")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestNotices(t *testing.T) {
	out, err := run(t, "", "--user", "s1", "--dept", "CSE", "notices", "list", "--filter", "my")
	require.NoError(t, err)
	var items []ndomain.Notice
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	for _, n := range items {
		assert.Contains(t, []string{"CSE", "all"}, n.Department)
	}

	_, err = run(t, "", "--user", "s1", "notices", "list", "--filter", "nope")
	assert.Error(t, err)

	_, err = run(t, "", "notices", "import")
	assert.ErrorContains(t, err, "FEED_URLS")
}
