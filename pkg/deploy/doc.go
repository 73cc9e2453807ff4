// Package deploy wires the engine together for the command line: it loads
// a profile, builds the plan, executes it and summarizes the outcomes.
package deploy
