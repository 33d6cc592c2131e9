/*
 * Copyright (c) Atlas Projects Manager authors.
 */

package main

import (
	"fmt"
	"os"

	"github.com/atlas-pm/cli/cmd"
	atlasAuthClient "github.com/atlas-pm/cli/internal/client"
)

func main() {
	b, err := os.ReadFile("version.txt")
	if err != nil {
		fmt.Print(err.Error() + "\n")
	}
	version := string(b)

	atlasAuthClient.SetVersion(version)
	cmd.Execute(version)
}
