package cli_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/ironjira/internal/cli"
)

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, exitCode := c.Run("--invalid-flag", "list")

	assert.Equal(t, 1, exitCode)
	assert.Empty(t, stdout)

	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")

	cli.AssertContains(t, stderr, "Global flags:")
	cli.AssertContains(t, stderr, "--cwd")
	cli.AssertContains(t, stderr, "--config")
	cli.AssertContains(t, stderr, "--format")
}

func Test_Empty_Global_Flag_Value_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, flag := range []string{"--format=", "--color=", "--config="} {
		flag := flag
		t.Run(flag, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stderr := c.MustFail(flag, "list")

			cli.AssertContains(t, stderr, "empty value not allowed: "+strings.TrimSuffix(flag, "="))
		})
	}
}

func Test_Invalid_Format_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("--format", "xml", "list")

	cli.AssertContains(t, stderr, `format "xml"`)
}

func Test_Bare_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	code := cli.Run(nil, &out, &errOut, []string{"jira"}, map[string]string{}, nil)

	assert.Equal(t, 0, code)
	assert.Empty(t, errOut.String())
	cli.AssertContains(t, out.String(), "Usage: jira [options] <command> [flags]")
}

func Test_Main_Help_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--help"}, {"-h"}, {}} {
		c := cli.NewCLI(t)
		stdout, stderr, code := c.Run(args...)

		assert.Equal(t, 0, code)
		assert.Empty(t, stderr)
		cli.AssertContains(t, stdout, "Commands:")

		for _, name := range []string{"create", "edit", "delete", "list", "show", "shell", "print-config"} {
			cli.AssertContains(t, stdout, "  "+name)
		}
	}
}

func Test_Unknown_Command_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("close", "--id", "1")

	cli.AssertContains(t, stderr, "error: unknown command: close")
	cli.AssertContains(t, stderr, "Commands:")
}

func Test_Verbose_Logs_Debug_JSON_When_Not_A_Terminal(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	_, stderr, code := c.Run("-v", "create", "-t", "a", "-d", "b")

	require.Equal(t, 0, code)

	var sawCreated bool

	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var entry map[string]any

		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log line %q", line)

		if entry["msg"] == "ticket created" {
			sawCreated = true

			assert.Equal(t, "debug", entry["level"])
			assert.NotEmpty(t, entry["ticket_id"])
		}
	}

	assert.True(t, sawCreated, "expected a ticket created log entry\n%s", stderr)
}

func Test_Quiet_By_Default_When_Command_Succeeds(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	_, stderr, code := c.Run("create", "-t", "a", "-d", "b")

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
}

func Test_Scenario_From_Fresh_Start(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	created := c.MustRun("create", "-t", "Fix bug", "-d", "NPE on login")
	assert.Len(t, cli.CreatedIDs(created), 1)

	assert.Equal(t, "No ticket found with id 1", c.MustRun("edit", "--id", "1", "--status", "InProgress"))
	assert.Empty(t, c.MustRun("list"))
}
