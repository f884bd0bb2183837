package board

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanbolano/mini-trello/internal/cli"
	"github.com/juanbolano/mini-trello/internal/testutil"
	clitest "github.com/juanbolano/mini-trello/internal/testutil/cli"
)

// ============================================================================
// board add
// ============================================================================

func TestAddBoard_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)

	tests := []struct {
		name         string
		flags        []string
		expectedCode int
		verifyOutput func(t *testing.T, output string)
	}{
		{
			name:  "Human-readable output",
			flags: []string{"--title", "Roadmap"},
			verifyOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Board 'Roadmap' created successfully")
			},
		},
		{
			name:  "JSON output",
			flags: []string{"--title", "Ops", "--json"},
			verifyOutput: func(t *testing.T, output string) {
				result := testutil.ParseJSON(t, output)
				assert.Equal(t, true, result["success"])
				created := result["board"].(map[string]interface{})
				assert.Equal(t, "Ops", created["title"])
				assert.NotEmpty(t, created["id"])
			},
		},
		{
			name:  "Quiet output prints the ID",
			flags: []string{"--title", "Quiet", "--quiet"},
			verifyOutput: func(t *testing.T, output string) {
				assert.NotEmpty(t, strings.TrimSpace(output))
				assert.NotContains(t, output, "Quiet")
			},
		},
		{
			name:         "Blank title is a validation error",
			flags:        []string{"--title", "   ", "--json"},
			expectedCode: cli.ExitValidation,
			verifyOutput: func(t *testing.T, output string) {
				result := testutil.ParseJSON(t, output)
				assert.Equal(t, false, result["success"])
				errData := result["error"].(map[string]interface{})
				assert.Equal(t, "VALIDATION_ERROR", errData["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := clitest.ExecuteCLICommand(t, app, AddCmd(), tt.flags)
			assert.Equal(t, tt.expectedCode, cli.ExitCode(err))
			if tt.verifyOutput != nil {
				tt.verifyOutput(t, output)
			}
		})
	}

	var count int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM boards").Scan(&count))
	assert.Equal(t, 3, count)
	t.Logf("✓ %d boards created through the CLI", count)
}

// ============================================================================
// board list
// ============================================================================

func TestListBoards_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No boards found")

	first := testutil.CreateTestBoard(t, db, "First")
	second := testutil.CreateTestBoard(t, db, "Second")

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, strings.Fields(output))

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	result := testutil.ParseJSON(t, output)
	boards := result["boards"].([]interface{})
	assert.Len(t, boards, 2)
}

// ============================================================================
// board use
// ============================================================================

func TestUseBoard_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	id := testutil.CreateTestBoard(t, db, "Roadmap")

	output, err := clitest.ExecuteCLICommand(t, app, UseCmd(), []string{id})
	require.NoError(t, err)
	assert.Equal(t, "export "+cli.BoardEnv+"="+id, strings.TrimSpace(output))

	active, ok := app.Session.ActiveBoard()
	require.True(t, ok)
	assert.Equal(t, id, active.ID)

	_, err = clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"missing"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))

	_, err = clitest.ExecuteCLICommand(t, app, UseCmd(), nil)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	output, err = clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"--clear"})
	require.NoError(t, err)
	assert.Equal(t, "unset "+cli.BoardEnv, strings.TrimSpace(output))
}
