// Package report writes impact analysis spreadsheets.
package report
