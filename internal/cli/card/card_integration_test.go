package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanbolano/mini-trello/internal/cli"
	"github.com/juanbolano/mini-trello/internal/testutil"
	clitest "github.com/juanbolano/mini-trello/internal/testutil/cli"
)

// ============================================================================
// card add
// ============================================================================

func TestAddCard_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	tb := testutil.CreateTestBoardWithColumns(t, db, "Sprint")

	tests := []struct {
		name         string
		flags        []string
		expectedCode int
		verifyOutput func(t *testing.T, output string)
	}{
		{
			name:  "Human-readable output",
			flags: []string{"--column", tb.Todo, "--title", "Fix login"},
			verifyOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Card 'Fix login' created successfully")
				assert.Contains(t, output, "Column: Todo")
			},
		},
		{
			name:  "JSON output keeps content",
			flags: []string{"--column", tb.Doing, "--title", "Docs", "--content", "# Heading", "--json"},
			verifyOutput: func(t *testing.T, output string) {
				result := testutil.ParseJSON(t, output)
				card := result["card"].(map[string]interface{})
				assert.Equal(t, "Docs", card["title"])
				assert.Equal(t, "# Heading", card["content"])
				assert.Equal(t, tb.Doing, card["column"])
			},
		},
		{
			name:         "Unknown column",
			flags:        []string{"--column", "nope", "--title", "Lost"},
			expectedCode: cli.ExitNotFound,
		},
		{
			name:         "Blank title",
			flags:        []string{"--column", tb.Todo, "--title", "  "},
			expectedCode: cli.ExitValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--board", tb.ID}, tt.flags...)
			output, err := clitest.ExecuteCLICommand(t, app, AddCmd(), args)
			assert.Equal(t, tt.expectedCode, cli.ExitCode(err))
			if tt.verifyOutput != nil {
				tt.verifyOutput(t, output)
			}
		})
	}

	assert.Len(t, app.Session.CardsFor(tb.Todo), 1)
	assert.Len(t, app.Session.CardsFor(tb.Doing), 1)
}

// ============================================================================
// card list
// ============================================================================

func TestListCards_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	tb := testutil.CreateTestBoardWithColumns(t, db, "Sprint")
	first := testutil.CreateTestCard(t, db, tb.Todo, "First", "")
	second := testutil.CreateTestCard(t, db, tb.Todo, "Second", "")
	done := testutil.CreateTestCard(t, db, tb.Done, "Shipped", "")

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--board", tb.ID, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, []string{first, second, done}, strings.Fields(output))

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--board", tb.ID, "--column", tb.Done, "--json"})
	require.NoError(t, err)
	result := testutil.ParseJSON(t, output)
	cards := result["cards"].([]interface{})
	require.Len(t, cards, 1)
	assert.Equal(t, "Shipped", cards[0].(map[string]interface{})["title"])

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--board", tb.ID})
	require.NoError(t, err)
	assert.Contains(t, output, "Todo (2)")
	assert.Contains(t, output, "Doing (0)")
}

func TestListCards_EmptyBoardJSON(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	boardID := testutil.CreateTestBoard(t, db, "Empty")

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--board", boardID, "--json"})
	require.NoError(t, err)
	assert.Contains(t, output, `"cards":[]`)
}

// ============================================================================
// card edit / delete / show
// ============================================================================

func TestEditCard_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	tb := testutil.CreateTestBoardWithColumns(t, db, "Sprint")
	cardID := testutil.CreateTestCard(t, db, tb.Todo, "Draft", "keep me")

	output, err := clitest.ExecuteCLICommand(t, app, EditCmd(), []string{"--board", tb.ID, "--id", cardID, "--title", "Final"})
	require.NoError(t, err)
	assert.Contains(t, output, "Card 'Final' updated")

	card, ok := app.Session.Card(cardID)
	require.True(t, ok)
	assert.Equal(t, "Final", card.Title)
	assert.Equal(t, "keep me", card.Content, "omitted content keeps its value")
	assert.Equal(t, tb.Todo, card.ColumnID)

	_, err = clitest.ExecuteCLICommand(t, app, EditCmd(), []string{"--board", tb.ID, "--id", cardID, "--content", ""})
	require.NoError(t, err)
	card, _ = app.Session.Card(cardID)
	assert.Equal(t, "", card.Content)

	_, err = clitest.ExecuteCLICommand(t, app, EditCmd(), []string{"--board", tb.ID, "--id", "nope", "--title", "x"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestDeleteCard_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	tb := testutil.CreateTestBoardWithColumns(t, db, "Sprint")
	cardID := testutil.CreateTestCard(t, db, tb.Todo, "Obsolete", "")

	output, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--board", tb.ID, "--id", cardID})
	require.NoError(t, err)
	assert.Contains(t, output, "Card 'Obsolete' deleted")

	_, ok := app.Session.Card(cardID)
	assert.False(t, ok)

	_, err = clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--board", tb.ID, "--id", cardID})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestShowCard_Integration(t *testing.T) {
	db, app := clitest.SetupCLITest(t)
	tb := testutil.CreateTestBoardWithColumns(t, db, "Sprint")
	cardID := testutil.CreateTestCard(t, db, tb.Doing, "Release", "ship it")

	output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", tb.ID, "--id", cardID})
	require.NoError(t, err)
	assert.Contains(t, output, "Release")
	assert.Contains(t, output, "Doing")
	assert.Contains(t, output, "ship it")

	output, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", tb.ID, "--id", cardID, "--json"})
	require.NoError(t, err)
	result := testutil.ParseJSON(t, output)
	card := result["card"].(map[string]interface{})
	assert.Equal(t, cardID, card["id"])
	assert.NotEmpty(t, card["created"])
}
