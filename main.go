package main

import (
	"github.com/blacktop/swtws/cmd"
	"github.com/carlmjohnson/exitcode"
)

func main() {
	exitcode.Exit(cmd.Execute())
}
