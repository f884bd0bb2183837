package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/spf13/cobra"

	"github.com/juanbolano/mini-trello/internal/app"
	"github.com/juanbolano/mini-trello/internal/cli"
	"github.com/juanbolano/mini-trello/internal/database"
	"github.com/juanbolano/mini-trello/internal/remote/local"
	"github.com/juanbolano/mini-trello/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and an App
// whose store is the in-process dispatcher over it.
// This lives in its own package so service tests can import testutil
// without pulling in the CLI.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	appInstance := app.New(local.NewFromRepository(database.NewRepository(db)))
	t.Cleanup(func() { appInstance.Session.Close() })
	return db, appInstance
}

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is injected through the context so commands use the test database.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctx := cli.WithApp(context.Background(), testApp)

	cmd.SetArgs(args)

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})

	return output, executeErr
}
