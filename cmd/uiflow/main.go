// Command uiflow drives the uiflow event engine from a terminal or from a
// recorded input script.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
