// Package cli implements the interactive listkeeper shell.
//
// The shell keeps one selected plan and one open list. Every editing command
// goes through the list's reconciliation store, so a command that changes
// nothing performs no write. Item positions are shown and accepted 1-based.
//
// Example session:
//
//	lk> new Weekend
//	lk (Weekend/tasks)> add Book a table
//	lk (Weekend/tasks)> list shopping
//	lk (Weekend/shopping)> add Sunscreen x2 @8.50 #health
//	lk (Weekend/shopping)> show
package cli
