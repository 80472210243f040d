/*
custodyd is a command line interface to a custody engine kept on disk.

State is stored in an iavl tree under the home directory and every
committed event is appended to a journal. Each invocation performs a single
call on behalf of the address given with --as.

	custodyd init --genesis genesis.json
	custodyd propose-transfer --as <signer> <recipient> <amount>
	custodyd approve-transfer --as <signer> <id>
	custodyd execute-transfer --as <signer> <id>
	custodyd query transfer <id>
	custodyd events --after 10
*/
package main

import (
	"fmt"
	"os"

	"github.com/iov-one/custody/errors"
)

func main() {
	root := NewRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		code, log := errors.Info(err, os.Getenv("CUSTODY_DEBUG") != "")
		fmt.Fprintf(os.Stderr, "Error (code %d): %s\n", code, log)
		os.Exit(2)
	}
}
