// Command replybot answers free-text queries with canned responses.
package main

import (
	"os"

	"github.com/custodia-labs/replybot/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
