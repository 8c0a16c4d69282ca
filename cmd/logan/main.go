// Logan parses a log file with configured rules and shows it as a table.
package main

import (
	"fmt"
	"os"
)

const (
	cfgFile = "logan.yaml"
	logFile = "logan.log"
)

func main() {

	err := rootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
