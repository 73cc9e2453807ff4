// Package types defines the core types shared by the dotdeploy engine.
// This includes the parsed profile model (Group, Entry), the resolved
// deployment units (Action, Plan), execution results (Outcome, Status)
// and the FS interface every component performs filesystem access through.
package types
