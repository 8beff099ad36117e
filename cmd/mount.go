// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package cmd

import (
	"context"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

const mountTimeout = 30 * time.Second

// mountImage loop mounts a disk image read-only and returns the mount
// point together with a function that unmounts and removes it again. The
// caller must run the returned cleanup on every exit path.
func mountImage(ctx context.Context, imagePath string) (string, func(), error) {
	if _, err := os.Stat(imagePath); err != nil {
		return "", nil, errors.Wrap(err, "image not found")
	}

	mountPoint, err := ioutil.TempDir("", "cmdusage-mount-")
	if err != nil {
		return "", nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, mountTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "mount", "-o", "ro,loop", imagePath, mountPoint).CombinedOutput() // #nosec
	if err != nil {
		os.Remove(mountPoint) // nolint:errcheck
		return "", nil, errors.Wrapf(err, "could not mount %s: %s", imagePath, out)
	}

	unmount := func() {
		if out, err := exec.Command("umount", mountPoint).CombinedOutput(); err != nil { // #nosec
			log.Printf("could not unmount %s: %s (%s)", mountPoint, err, out)
			return
		}
		os.Remove(mountPoint) // nolint:errcheck
	}
	return mountPoint, unmount, nil
}
