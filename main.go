/*
	Copyright 2023 Markus Papenbrock
*/

package main

import "github.com/sergeyb2024/telemetry/cmd"

func main() {
	cmd.Execute()
}
