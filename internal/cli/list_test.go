package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/ironjira/internal/cli"
)

func Test_List_Prints_Nothing_When_Store_Empty(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.Run("list")

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func Test_List_Prints_Tickets_In_Creation_Order(t *testing.T) {
	t.Parallel()

	c := newSequenceCLI(t)
	stdout, stderr, _ := c.Session(
		`create -t first -d one`,
		`create -t second -d two`,
		`create -t third -d three`,
		`edit --id T-2 -s blocked`,
		`delete --id T-1`,
		`list`,
	)

	assert.Empty(t, stderr)
	cli.AssertContains(t, stdout, "T-2 [Blocked] - second\nT-3 [ToDo] - third\n")
	cli.AssertNotContains(t, stdout, "T-1 [")
}

func Test_List_Prints_Empty_Array_When_Format_JSON(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("--format=json", "list")

	var got []map[string]any

	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func Test_List_Fails_When_Given_Arguments(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("list", "all")

	cli.AssertContains(t, stderr, `unexpected argument: "all"`)
}
