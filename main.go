// go-swarmsend delivers end to end encrypted messages to the swarms of storage nodes.
package main

import (
	"fmt"
	"os"

	"github.com/swarmsend/go-swarmsend/cmd"
	"github.com/swarmsend/go-swarmsend/node"
)

var (
	version string
	commit  string
	branch  string
)

func main() { // run the app
	cmd.Version = version
	cmd.Commit = commit
	cmd.Branch = branch
	if err := node.GetCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
