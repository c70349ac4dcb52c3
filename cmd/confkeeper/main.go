package main

import (
	"os"

	"github.com/MKhiriev/go-conf-keeper/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
