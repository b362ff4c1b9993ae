// Command flowgui loads wires of GUI nodes, runs them against the recording
// backend and prints what they drew.
package main

import "github.com/go-drift/flowgui/cmd/flowgui/internal/command"

func main() {
	command.Execute()
}
