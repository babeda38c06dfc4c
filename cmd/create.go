/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/cssbridge/internal/ioschema"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create legacy CSS tables",
		Long: `Create legacy CSS3.0 tables for every account of the configured
processing stages.

This command:
  1. Connects to the legacy store (PostgreSQL or sqlite)
  2. Creates a schema per account on PostgreSQL
  3. Creates arrival, assoc, origin, origerr, evtcontrol, ar_info,
     amplitude, netmag and stamag tables using GORM AutoMigrate

Existing tables are kept, running the command again is safe.

Examples:
  cssbridge create
  CSSBRIDGE_DATABASE_DRIVER=sqlite cssbridge create`,
		RunE: runCreate,
	}

	return createCmd
}

func runCreate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		printError(err)
		return err
	}
	defer op.Close()

	accounts := cfg.Accounts()
	gn.Info("Creating tables for accounts: <em>%s</em>", strings.Join(accounts, ", "))

	sm := ioschema.NewManager(op)
	if err = sm.Create(ctx, accounts); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	successMsg := gnlib.FormatMessage(`
<em>Legacy tables are ready.</em>
Load CSS records, then run <em>cssbridge convert</em>.
`,
		nil,
	)
	fmt.Println(successMsg)
	return nil
}
