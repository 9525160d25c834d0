// Command zia runs and inspects concept-graph scripts.
package main

import (
	"os"

	"github.com/ziacorp/zia/cmd/zia/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
