package main

import "github.com/inovacc/fieldlog/cmd"

func main() {
	cmd.Execute()
}
