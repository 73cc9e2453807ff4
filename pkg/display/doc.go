// Package display renders deployment reports, plans and errors in the
// formats dotdeploy supports: plain text, rich terminal output, JSON, YAML
// and XML.
package display
