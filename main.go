package main

import "github.com/Zurki/immich-avif-generator/cmd"

func main() {
	cmd.Execute()
}
