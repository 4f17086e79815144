package main

import "github.com/maastricht-university/oralargs/cmd"

func main() {
	cmd.Execute()
}
