package main

import "github.com/pqradar/pqradar/cmd/pqradar"

func main() { pqradar.Execute() }
