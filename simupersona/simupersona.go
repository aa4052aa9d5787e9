package main

import (
	"os"

	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"
	cli "github.com/viant/simupersona/cmd/simupersona"
)

// Version is populated with -ldflags "-X main.Version=..."
var Version string

func main() {
	cli.SetVersion(Version)
	cli.Run(os.Args[1:])
}
