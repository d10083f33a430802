//go:build !cgo
// +build !cgo

package main

import "log/slog"

func runLocalDemo(bool) error {
	slog.Info("cgo disabled, skipping local export demo")
	return nil
}
