package main

import "github.com/scout/scout/cmd/scout"

func main() { scout.Execute() }
