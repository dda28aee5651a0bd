package main

import (
	"os"

	qdistancecmder "github.com/theapemachine/qdistance/cmd/qdistance"
)

func main() {
	cmd := qdistancecmder.NewQDistanceCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
