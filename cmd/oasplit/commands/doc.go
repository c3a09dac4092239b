// Package commands provides CLI command handlers for oasplit.
package commands
