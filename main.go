// Package main provides the entry point for the tallycsv CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ksismad/tallycsv/cmd/convert"
	"github.com/ksismad/tallycsv/cmd/detect"
	"github.com/ksismad/tallycsv/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(detect.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
