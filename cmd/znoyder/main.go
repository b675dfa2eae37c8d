package main

import (
	"os"

	"github.com/SoftKiwiGames/znoyder/znoyder"
)

func main() {
	znoyder.New(os.Stdout, os.Stderr).Run()
}
