package main

import "github.com/thien/ecom-seeder/cmd"

func main() {
	cmd.Execute()
}
