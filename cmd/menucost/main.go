// Command menucost is the admin CLI: schema migrations, seeding, menu reports
// and spreadsheet import/export against the same database as the server.
package main

import (
	"os"

	"github.com/Simplici0/menucost/internal/config"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}
