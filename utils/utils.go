// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path"

	formatter "github.com/onsi/ginkgo/v2/formatter"

	"github.com/countervm/countervm/consts"
)

// ToID returns the sha256 hash of [bytes] as a fixed-size id.
func ToID(bytes []byte) [consts.IDLen]byte {
	return sha256.Sum256(bytes)
}

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, 0o755)
}

// Outf writes a formatted, colored message to stdout.
//
// e.g.,
//
//	Outf("{{green}}{{bold}}hi there %q{{/}}", "aa")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}
