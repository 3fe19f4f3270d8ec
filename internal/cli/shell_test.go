package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/ironjira/internal/cli"
)

func Test_Shell_Shares_Store_Across_Lines(t *testing.T) {
	t.Parallel()

	c := newSequenceCLI(t)
	stdout, stderr, code := c.Session(
		`create -t "Fix bug" -d "NPE on login"`,
		`create -t 'Add docs' -d 'Explain the "shell" command'`,
		`edit --id T-1 --status in-progress`,
		`list`,
	)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	assert.Equal(t, []string{"T-1", "T-2"}, cli.CreatedIDs(stdout))
	cli.AssertContains(t, stdout, `description: Explain the "shell" command`)
	cli.AssertContains(t, stdout, "T-1 [InProgress] - Fix bug\nT-2 [ToDo] - Add docs\n")
}

func Test_Shell_Continues_When_Line_Fails(t *testing.T) {
	t.Parallel()

	c := newSequenceCLI(t)
	stdout, stderr, code := c.Session(
		`bogus`,
		`create -t "unterminated`,
		`create -t "" -d x`,
		`show --id T-9`,
		`create -t ok -d ok`,
	)

	assert.Equal(t, 0, code)
	cli.AssertContains(t, stderr, "error: unknown command: bogus (type 'help' for commands)")
	cli.AssertContains(t, stderr, "error: unterminated quote")
	cli.AssertContains(t, stderr, "error: --title: title cannot be empty")
	cli.AssertContains(t, stderr, "error: ticket not found: T-9")
	assert.Equal(t, []string{"T-1"}, cli.CreatedIDs(stdout))
}

func Test_Shell_Stops_At_Exit_When_Lines_Follow(t *testing.T) {
	t.Parallel()

	c := newSequenceCLI(t)
	stdout, _, code := c.Session(
		`create -t a -d a`,
		`exit`,
		`create -t b -d b`,
	)

	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"T-1"}, cli.CreatedIDs(stdout))
}

func Test_Shell_Skips_Blank_And_Comment_Lines(t *testing.T) {
	t.Parallel()

	c := newSequenceCLI(t)
	stdout, stderr, _ := c.Session(
		``,
		`   `,
		`# create -t no -d no`,
		`list`,
	)

	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func Test_Shell_Prints_Help_When_Asked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, _, _ := c.Session(`help`)

	cli.AssertContains(t, stdout, "Commands:")

	for _, name := range []string{"create", "edit", "delete", "list", "show", "help", "exit"} {
		cli.AssertContains(t, stdout, "  "+name)
	}

	cli.AssertNotContains(t, stdout, "print-config")
	cli.AssertNotContains(t, stdout, "  shell")
}

func Test_Shell_Saves_History_When_Configured(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteConfig(`{"id_scheme": "sequence", "history_file": "state/history"}`)

	_, _, code := c.Session(`list`, `create -t a -d b`)
	require.Equal(t, 0, code)

	_, _, code = c.Session(`show --id T-1`)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(c.Dir, "state", "history"))
	require.NoError(t, err)

	assert.Equal(t, []string{"list", "create -t a -d b", "show --id T-1"},
		strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func Test_Shell_Uses_Format_For_Every_Line(t *testing.T) {
	t.Parallel()

	c := newSequenceCLI(t)
	stdout, _, code := c.RunWithInput("create -t a -d b\nlist\n", "--format", "yaml", "shell")

	assert.Equal(t, 0, code)
	cli.AssertContains(t, stdout, "action: created\n")
	cli.AssertContains(t, stdout, "- id: T-1\n")
}

func Test_Shell_Colours_Status_When_Color_Always(t *testing.T) {
	t.Parallel()

	c := newSequenceCLI(t)
	stdout, _, _ := c.RunWithInput("create -t a -d b\nlist\n", "--color", "always", "shell")

	cli.AssertContains(t, stdout, "\x1b[")

	plain, _, _ := c.RunWithInput("create -t a -d b\nlist\n", "--color", "never", "shell")
	cli.AssertNotContains(t, plain, "\x1b[")
}

func Test_Shell_Fails_When_Given_Arguments(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("shell", "script.txt")

	cli.AssertContains(t, stderr, `unexpected argument: "script.txt"`)
}

func Test_Shell_Keeps_Backslashes_In_Double_Quoted_Values(t *testing.T) {
	t.Parallel()

	c := newSequenceCLI(t)
	stdout, stderr, code := c.Session(
		`create -t "C:\work\notes" -d "tab\tx and \"quoted\""`,
		`create -t bad -d trailing\`,
	)

	assert.Equal(t, 0, code)
	cli.AssertContains(t, stdout, `title:       C:\work\notes`)
	cli.AssertContains(t, stdout, `description: tab\tx and "quoted"`)
	cli.AssertContains(t, stderr, "error: line ends with a backslash")
	cli.AssertNotContains(t, stderr, "unterminated quote")
	assert.Equal(t, []string{"T-1"}, cli.CreatedIDs(stdout))
}
